package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// ---------- productos y variantes ----------

type productRepo struct{ t *tx }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	s := r.t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	s := r.t.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetForShare(ctx context.Context, id string) (*entity.Product, error) {
	if err := r.t.share(ctx, "product:"+id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *productRepo) CreateVariant(_ context.Context, v *entity.ProductVariant) error {
	s := r.t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[v.ProductID]; !ok {
		return &domain.NotFoundError{Kind: "product", ID: v.ProductID}
	}
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	s.variants[v.ID] = *v
	return nil
}

func (r *productRepo) GetVariant(_ context.Context, id string) (*entity.ProductVariant, error) {
	s := r.t.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.variants[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// Delete espera a que terminen los movimientos en curso sobre el producto.
func (r *productRepo) Delete(ctx context.Context, id string) error {
	return r.t.exclusive(ctx, "product:"+id, func() error { return r.delete(id) })
}

func (r *productRepo) delete(id string) error {
	s := r.t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return &domain.NotFoundError{Kind: "product", ID: id}
	}
	for k := range s.records {
		if k.ProductID == id {
			return domain.ErrConflict
		}
	}
	for _, m := range s.movements {
		if m.ProductID == id {
			return domain.ErrConflict
		}
	}
	for _, l := range s.lots {
		if l.ProductID == id {
			return domain.ErrConflict
		}
	}
	for _, sr := range s.serials {
		if sr.ProductID == id {
			return domain.ErrConflict
		}
	}
	for vid, v := range s.variants {
		if v.ProductID == id {
			delete(s.variants, vid)
		}
	}
	delete(s.products, id)
	return nil
}

// ---------- ubicaciones ----------

type locationRepo struct{ t *tx }

func (r *locationRepo) Create(_ context.Context, l *entity.Location) error {
	s := r.t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.locations {
		if existing.Name == l.Name {
			return domain.ErrDuplicate
		}
	}
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	s.locations[l.ID] = *l
	return nil
}

func (r *locationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	s := r.t.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *locationRepo) GetForShare(ctx context.Context, id string) (*entity.Location, error) {
	if err := r.t.share(ctx, "location:"+id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *locationRepo) List(_ context.Context, limit, offset int) ([]*entity.Location, error) {
	s := r.t.s
	s.mu.RLock()
	list := make([]*entity.Location, 0, len(s.locations))
	for _, l := range s.locations {
		l := l
		list = append(list, &l)
	}
	s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *locationRepo) Delete(ctx context.Context, id string) error {
	return r.t.exclusive(ctx, "location:"+id, func() error { return r.delete(id) })
}

func (r *locationRepo) delete(id string) error {
	s := r.t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locations[id]; !ok {
		return &domain.NotFoundError{Kind: "location", ID: id}
	}
	for k := range s.records {
		if k.LocationID == id {
			return domain.ErrConflict
		}
	}
	for _, m := range s.movements {
		if m.FromLocationID == id || m.ToLocationID == id {
			return domain.ErrConflict
		}
	}
	delete(s.locations, id)
	return nil
}

// ---------- lotes ----------

type lotRepo struct{ t *tx }

func (r *lotRepo) Create(_ context.Context, lot *entity.ProductLot) error {
	s := r.t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[lot.ProductID]; !ok {
		return &domain.NotFoundError{Kind: "product", ID: lot.ProductID}
	}
	for _, existing := range s.lots {
		if existing.ProductID == lot.ProductID && existing.LotNumber == lot.LotNumber {
			return domain.ErrDuplicate
		}
	}
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	s.lots[lot.ID] = *lot
	return nil
}

func (r *lotRepo) GetByID(_ context.Context, id string) (*entity.ProductLot, error) {
	if l, ok := r.t.lots[id]; ok {
		return &l, nil
	}
	s := r.t.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lots[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *lotRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductLot, error) {
	if err := r.t.lock(ctx, "lot:"+id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *lotRepo) UpdateState(ctx context.Context, id string, current decimal.Decimal, status entity.LotStatus) error {
	lot, err := r.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if lot == nil {
		return &domain.NotFoundError{Kind: "lot", ID: id}
	}
	lot.CurrentQuantity = current
	lot.Status = status
	lot.UpdatedAt = time.Now()
	r.t.lots[id] = *lot
	return nil
}

// ---------- seriales ----------

type serialRepo struct{ t *tx }

func (r *serialRepo) Create(_ context.Context, sr *entity.ProductSerial) error {
	s := r.t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[sr.ProductID]; !ok {
		return &domain.NotFoundError{Kind: "product", ID: sr.ProductID}
	}
	for _, existing := range s.serials {
		if existing.SerialNumber == sr.SerialNumber {
			return domain.ErrDuplicate
		}
	}
	if sr.ID == "" {
		sr.ID = uuid.New().String()
	}
	s.serials[sr.ID] = *sr
	return nil
}

func (r *serialRepo) GetByID(_ context.Context, id string) (*entity.ProductSerial, error) {
	if sr, ok := r.t.serials[id]; ok {
		return &sr, nil
	}
	s := r.t.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	sr, ok := s.serials[id]
	if !ok {
		return nil, nil
	}
	return &sr, nil
}

func (r *serialRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductSerial, error) {
	if err := r.t.lock(ctx, "serial:"+id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *serialRepo) UpdateStatus(ctx context.Context, id string, status entity.SerialStatus) error {
	sr, err := r.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if sr == nil {
		return &domain.NotFoundError{Kind: "serial", ID: id}
	}
	sr.Status = status
	sr.UpdatedAt = time.Now()
	r.t.serials[id] = *sr
	return nil
}

// ---------- registros de inventario ----------

type recordRepo struct{ t *tx }

func (r *recordRepo) Get(_ context.Context, key entity.InventoryKey) (*entity.InventoryRecord, error) {
	if rec, ok := r.t.records[key]; ok {
		return &rec, nil
	}
	s := r.t.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *recordRepo) GetOrCreate(ctx context.Context, key entity.InventoryKey) (*entity.InventoryRecord, error) {
	if err := r.t.lock(ctx, "record:"+key.String()); err != nil {
		return nil, err
	}
	rec, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}
	now := time.Now()
	created := entity.InventoryRecord{
		ID:        uuid.New().String(),
		Key:       key,
		Quantity:  decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.t.records[key] = created
	return &created, nil
}

func (r *recordRepo) ApplyDelta(ctx context.Context, key entity.InventoryKey, delta decimal.Decimal) (*entity.InventoryRecord, error) {
	rec, err := r.GetOrCreate(ctx, key)
	if err != nil {
		return nil, err
	}
	next := rec.Quantity.Add(delta)
	if next.IsNegative() {
		return nil, &domain.InsufficientStockError{Key: key, Available: rec.Quantity, Requested: delta.Neg()}
	}
	rec.Quantity = next
	rec.UpdatedAt = time.Now()
	r.t.records[key] = *rec
	return rec, nil
}

func (r *recordRepo) SumBySerial(_ context.Context, serialID string) (decimal.Decimal, error) {
	total := decimal.Zero
	s := r.t.s
	s.mu.RLock()
	for k, rec := range s.records {
		if k.SerialID != serialID {
			continue
		}
		if _, pending := r.t.records[k]; pending {
			continue
		}
		total = total.Add(rec.Quantity)
	}
	s.mu.RUnlock()
	for k, rec := range r.t.records {
		if k.SerialID == serialID {
			total = total.Add(rec.Quantity)
		}
	}
	return total, nil
}

func (r *recordRepo) ListByProduct(_ context.Context, productID string) ([]*entity.InventoryRecord, error) {
	return r.list(func(k entity.InventoryKey) bool { return k.ProductID == productID }), nil
}

func (r *recordRepo) ListByLocation(_ context.Context, locationID string) ([]*entity.InventoryRecord, error) {
	return r.list(func(k entity.InventoryKey) bool { return k.LocationID == locationID }), nil
}

// list registros confirmados más los pendientes de esta transacción, por clave canónica.
func (r *recordRepo) list(keep func(entity.InventoryKey) bool) []*entity.InventoryRecord {
	merged := make(map[entity.InventoryKey]entity.InventoryRecord)
	s := r.t.s
	s.mu.RLock()
	for k, rec := range s.records {
		if keep(k) {
			merged[k] = rec
		}
	}
	s.mu.RUnlock()
	for k, rec := range r.t.records {
		if keep(k) {
			merged[k] = rec
		}
	}
	list := make([]*entity.InventoryRecord, 0, len(merged))
	for _, rec := range merged {
		rec := rec
		list = append(list, &rec)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Key.String() < list[j].Key.String() })
	return list
}

// ---------- log de movimientos ----------

type movementRepo struct{ t *tx }

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if r.t.auto {
		s := r.t.s
		s.mu.Lock()
		s.movements = append(s.movements, *m)
		s.mu.Unlock()
		return nil
	}
	r.t.movements = append(r.t.movements, *m)
	return nil
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range r.all() {
		if m.ID == id {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.filter(func(m entity.Movement) bool {
		return m.ProductID == productID && inRange(m.MovementDate, from, to)
	}, limit, offset), nil
}

func (r *movementRepo) ListByLocation(_ context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.filter(func(m entity.Movement) bool {
		return (m.FromLocationID == locationID || m.ToLocationID == locationID) && inRange(m.MovementDate, from, to)
	}, limit, offset), nil
}

func (r *movementRepo) ListByReference(_ context.Context, docType, docID string) ([]*entity.Movement, error) {
	return r.filter(func(m entity.Movement) bool {
		return m.ReferenceDocumentID == docID && (docType == "" || m.ReferenceDocumentType == docType)
	}, 0, 0), nil
}

// all log confirmado más los movimientos pendientes de esta transacción.
func (r *movementRepo) all() []entity.Movement {
	s := r.t.s
	s.mu.RLock()
	out := make([]entity.Movement, 0, len(s.movements)+len(r.t.movements))
	out = append(out, s.movements...)
	s.mu.RUnlock()
	return append(out, r.t.movements...)
}

func (r *movementRepo) filter(keep func(entity.Movement) bool, limit, offset int) []*entity.Movement {
	var list []*entity.Movement
	for _, m := range r.all() {
		if keep(m) {
			m := m
			list = append(list, &m)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].MovementDate.Equal(list[j].MovementDate) {
			return list[i].MovementDate.After(list[j].MovementDate)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return page(list, limit, offset)
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// page aplica limit/offset; limit <= 0 devuelve todo desde offset.
func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	if offset > 0 {
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
