// Package memory implementa los puertos del libro de inventario en memoria, con la misma
// disciplina de bloqueo por clave que el adaptador PostgreSQL: cada transacción bloquea
// lote, serial y registros hasta Commit/Rollback y sus escrituras solo son visibles al
// confirmar. Producto y ubicaciones se bloquean en modo compartido mientras dure el
// movimiento, así un borrado espera a que termine. Se usa en tests y con LEDGER_STORE=memory.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

var errOutsideTx = errors.New("memory: escritura de inventario fuera de transacción")

// Store estado confirmado más la tabla de bloqueos por recurso.
type Store struct {
	mu        sync.RWMutex
	products  map[string]entity.Product
	variants  map[string]entity.ProductVariant
	locations map[string]entity.Location
	lots      map[string]entity.ProductLot
	serials   map[string]entity.ProductSerial
	records   map[entity.InventoryKey]entity.InventoryRecord
	movements []entity.Movement

	locksMu     sync.Mutex
	locks       map[string]*lockEntry
	lockTimeout time.Duration
}

// NewStore crea un almacén vacío. lockTimeout acota la espera por un bloqueo.
func NewStore(lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = 5 * time.Second
	}
	return &Store{
		products:    make(map[string]entity.Product),
		variants:    make(map[string]entity.ProductVariant),
		locations:   make(map[string]entity.Location),
		lots:        make(map[string]entity.ProductLot),
		serials:     make(map[string]entity.ProductSerial),
		records:     make(map[entity.InventoryKey]entity.InventoryRecord),
		locks:       make(map[string]*lockEntry),
		lockTimeout: lockTimeout,
	}
}

// Run ejecuta fn en una transacción: Commit si devuelve nil, descarta todo si no.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.Repositories) error) error {
	t := s.begin()
	defer t.release()
	if err := fn(ctx, t.repositories()); err != nil {
		return err
	}
	t.commit()
	return nil
}

// Repositories repositorios sin transacción: lecturas confirmadas y alta de catálogo.
// Las escrituras de cantidades/estados fuera de Run fallan.
func (s *Store) Repositories() inventory.Repositories {
	return (&tx{s: s, auto: true}).repositories()
}

func (s *Store) begin() *tx {
	return &tx{
		s:       s,
		held:    make(map[string]heldLock),
		records: make(map[entity.InventoryKey]entity.InventoryRecord),
		lots:    make(map[string]entity.ProductLot),
		serials: make(map[string]entity.ProductSerial),
	}
}

// maxReaders peso de un bloqueo exclusivo: excluye a cualquier número razonable de lectores.
const maxReaders = 1 << 20

// lockEntry semáforo de un recurso; refs cuenta transacciones que lo tienen o lo esperan.
type lockEntry struct {
	sem  *semaphore.Weighted
	refs int
}

func (s *Store) acquireEntry(name string) *lockEntry {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	e, ok := s.locks[name]
	if !ok {
		e = &lockEntry{sem: semaphore.NewWeighted(maxReaders)}
		s.locks[name] = e
	}
	e.refs++
	return e
}

// releaseEntry descarta la entrada cuando ninguna transacción la usa.
func (s *Store) releaseEntry(name string, e *lockEntry) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(s.locks, name)
	}
}

// tx escrituras pendientes y bloqueos tomados por una transacción.
type tx struct {
	s    *Store
	auto bool

	held      map[string]heldLock
	records   map[entity.InventoryKey]entity.InventoryRecord
	lots      map[string]entity.ProductLot
	serials   map[string]entity.ProductSerial
	movements []entity.Movement
}

type heldLock struct {
	entry  *lockEntry
	weight int64
}

// lock toma el bloqueo exclusivo del recurso hasta el fin de la transacción.
func (t *tx) lock(ctx context.Context, name string) error {
	return t.acquire(ctx, name, maxReaders)
}

// lockShared bloqueo compartido (equivalente a FOR KEY SHARE): convive con otros
// lectores y excluye al borrado del recurso.
func (t *tx) lockShared(ctx context.Context, name string) error {
	return t.acquire(ctx, name, 1)
}

// share bloqueo compartido dentro de una transacción; fuera de ella es una lectura simple.
func (t *tx) share(ctx context.Context, name string) error {
	if t.auto {
		return nil
	}
	return t.lockShared(ctx, name)
}

// exclusive ejecuta fn con el recurso bloqueado en exclusiva. Fuera de Run el bloqueo
// dura solo lo que dura fn.
func (t *tx) exclusive(ctx context.Context, name string, fn func() error) error {
	owner := t
	if t.auto {
		owner = t.s.begin()
		defer owner.release()
	}
	if err := owner.lock(ctx, name); err != nil {
		return err
	}
	return fn()
}

func (t *tx) acquire(ctx context.Context, name string, weight int64) error {
	if t.auto {
		return errOutsideTx
	}
	h, ok := t.held[name]
	if ok && h.weight >= weight {
		return nil
	}
	need := weight - h.weight

	e := h.entry
	if !ok {
		e = t.s.acquireEntry(name)
	}
	waitCtx, cancel := context.WithTimeout(ctx, t.s.lockTimeout)
	defer cancel()
	if err := e.sem.Acquire(waitCtx, need); err != nil {
		if !ok {
			t.s.releaseEntry(name, e)
		}
		switch {
		case errors.Is(ctx.Err(), context.Canceled):
			return ctx.Err()
		case ctx.Err() != nil:
			return &domain.LockTimeoutError{Resource: name, Err: ctx.Err()}
		default:
			return &domain.LockTimeoutError{Resource: name}
		}
	}
	t.held[name] = heldLock{entry: e, weight: weight}
	return nil
}

func (t *tx) release() {
	for name, h := range t.held {
		h.entry.sem.Release(h.weight)
		t.s.releaseEntry(name, h.entry)
		delete(t.held, name)
	}
}

func (t *tx) commit() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for k, r := range t.records {
		t.s.records[k] = r
	}
	for id, l := range t.lots {
		t.s.lots[id] = l
	}
	for id, sr := range t.serials {
		t.s.serials[id] = sr
	}
	t.s.movements = append(t.s.movements, t.movements...)
}

func (t *tx) repositories() inventory.Repositories {
	return inventory.Repositories{
		Products:  &productRepo{t: t},
		Locations: &locationRepo{t: t},
		Lots:      &lotRepo{t: t},
		Serials:   &serialRepo{t: t},
		Records:   &recordRepo{t: t},
		Movements: &movementRepo{t: t},
	}
}
