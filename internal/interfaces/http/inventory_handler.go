package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP de movimientos e inventario (protegido).
type InventoryHandler struct {
	uc  *inventory.RegisterMovementUseCase
	log *inventory.MovementLogUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, log *inventory.MovementLogUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// CreateMovement POST /api/inventory/movements
func (h *InventoryHandler) CreateMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.CreateMovementFromRequest(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// CreateMovementBatch POST /api/inventory/movements/batch (todo o nada).
func (h *InventoryHandler) CreateMovementBatch(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMovementBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movs, err := h.uc.CreateMovementsFromRequest(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"total":     len(movs),
		"movements": dto.ToMovementResponses(movs),
	})
}

// GetMovement GET /api/inventory/movements/:id
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.log.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(mov))
}

// ListMovements GET /api/inventory/movements?product_id=|location_id=|reference_type=&reference_id=
// Filtros opcionales: from, to (RFC3339), limit, offset.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}

	ctx := c.UserContext()
	var list []*entity.Movement
	switch {
	case c.Query("product_id") != "":
		list, err = h.log.ListByProduct(ctx, c.Query("product_id"), q)
	case c.Query("location_id") != "":
		list, err = h.log.ListByLocation(ctx, c.Query("location_id"), q)
	case c.Query("reference_id") != "":
		list, err = h.log.ListByReference(ctx, c.Query("reference_type"), c.Query("reference_id"))
	default:
		return writeError(c, &domain.MissingFieldError{Field: "product_id"})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MovementListResponse{
		Items: dto.ToMovementResponses(list),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: len(list)},
	})
}

// ListRecords GET /api/inventory/records?product_id=|location_id=
func (h *InventoryHandler) ListRecords(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var (
		records []*entity.InventoryRecord
		err     error
	)
	switch {
	case c.Query("product_id") != "":
		records, err = h.log.ListRecords(ctx, c.Query("product_id"))
	case c.Query("location_id") != "":
		records, err = h.log.ListRecordsByLocation(ctx, c.Query("location_id"))
	default:
		return writeError(c, &domain.MissingFieldError{Field: "product_id"})
	}
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.InventoryRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, dto.ToInventoryRecordResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(items), "records": items})
}

// GetRecord GET /api/inventory/records/key?product_id=&location_id=[&variant_id=&lot_id=&serial_id=]
func (h *InventoryHandler) GetRecord(c *fiber.Ctx) error {
	key := entity.InventoryKey{
		ProductID:  c.Query("product_id"),
		VariantID:  c.Query("variant_id"),
		LocationID: c.Query("location_id"),
		LotID:      c.Query("lot_id"),
		SerialID:   c.Query("serial_id"),
	}
	if key.ProductID == "" {
		return writeError(c, &domain.MissingFieldError{Field: "product_id"})
	}
	if key.LocationID == "" {
		return writeError(c, &domain.MissingFieldError{Field: "location_id"})
	}
	rec, err := h.log.GetRecord(c.UserContext(), key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToInventoryRecordResponse(rec))
}

func listQuery(c *fiber.Ctx) (inventory.ListQuery, error) {
	q := inventory.ListQuery{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	for name, dst := range map[string]**time.Time{"from": &q.From, "to": &q.To} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return q, fiber.NewError(fiber.StatusBadRequest, name+" debe ser RFC3339")
		}
		*dst = &t
	}
	q.Normalize()
	return q, nil
}
