package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Acepta pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (id, sku, name, cost_price, sale_price, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.CostPrice, p.SalePrice, nullable(p.CategoryID), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

const productColumns = `id, sku, name, cost_price, sale_price, category_id, created_at, updated_at`

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForShare FOR KEY SHARE: el DELETE del producto espera al fin de la transacción.
func (r *ProductRepo) GetForShare(ctx context.Context, id string) (*entity.Product, error) {
	p, err := r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR KEY SHARE`, id)
	return p, wrapLock("product "+id, err)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	var p entity.Product
	var categoryID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.CostPrice, &p.SalePrice, &categoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p.CategoryID = deref(categoryID)
	return &p, nil
}

func (r *ProductRepo) CreateVariant(ctx context.Context, v *entity.ProductVariant) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	query := `
		INSERT INTO product_variants (id, product_id, name, sku, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, v.ID, v.ProductID, v.Name, nullable(v.SKU), v.CreatedAt)
	if err != nil {
		if isFKViolation(err) {
			return &domain.NotFoundError{Kind: "product", ID: v.ProductID}
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product variant: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetVariant(ctx context.Context, id string) (*entity.ProductVariant, error) {
	query := `SELECT id, product_id, name, sku, created_at FROM product_variants WHERE id = $1`
	var v entity.ProductVariant
	var sku *string
	err := r.q.QueryRow(ctx, query, id).Scan(&v.ID, &v.ProductID, &v.Name, &sku, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product variant: %w", err)
	}
	v.SKU = deref(sku)
	return &v, nil
}

// Delete borra el producto y sus variantes. Con registros, lotes, seriales o movimientos
// la FK lo impide y se devuelve domain.ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isFKViolation(err) {
			return domain.ErrConflict
		}
		return wrapLock("product "+id, fmt.Errorf("delete product: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Kind: "product", ID: id}
	}
	return nil
}
