// Package memory implementa los repositorios sobre estructuras en memoria con la misma semántica
// transaccional que PostgreSQL: bloqueos por fila retenidos hasta Commit/Rollback y escrituras
// invisibles para otras transacciones hasta el Commit.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

type table[T any] struct {
	rows map[int64]T
	seq  int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) nextID() int64 {
	t.seq++
	return t.seq
}

// changes escrituras pendientes de una transacción. Un valor nil marca la fila como borrada.
type changes[T any] map[int64]*T

func (c changes[T]) put(id int64, v T) { c[id] = &v }

func (c changes[T]) del(id int64) { c[id] = nil }

func (c changes[T]) apply(t *table[T]) {
	for id, v := range c {
		if v == nil {
			delete(t.rows, id)
			continue
		}
		t.rows[id] = *v
	}
}

// lookup lee la fila vista por la transacción: primero sus cambios, luego lo confirmado.
func lookup[T any](t *table[T], c changes[T], id int64) (T, bool) {
	if v, ok := c[id]; ok {
		if v == nil {
			var zero T
			return zero, false
		}
		return *v, true
	}
	v, ok := t.rows[id]
	return v, ok
}

// scan devuelve las filas visibles ordenadas por id.
func scan[T any](t *table[T], c changes[T], keep func(T) bool) []T {
	ids := make([]int64, 0, len(t.rows)+len(c))
	for id := range t.rows {
		if _, shadowed := c[id]; !shadowed {
			ids = append(ids, id)
		}
	}
	for id, v := range c {
		if v != nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		v, _ := lookup(t, c, id)
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Store base de datos en memoria. mu protege los mapas y nunca se retiene mientras se espera
// un bloqueo de fila; la serialización por fila la dan los canales de locks.
type Store struct {
	mu sync.Mutex

	positions   *table[entity.StockPosition]
	movements   *table[entity.MovementRecord]
	adjustments *table[entity.AdjustmentRecord]
	orders      *table[entity.Order]
	orderLines  *table[entity.OrderLine]
	sales       *table[entity.Sale]
	saleLines   *table[entity.SaleLine]
	users       *table[entity.User]

	products   map[int64]entity.Product
	warehouses map[int64]entity.Warehouse
	customers  map[int64]entity.Customer
	suppliers  map[int64]entity.Supplier

	locks map[string]*rowLock
	now   func() time.Time
}

// rowLock canal de capacidad 1 más el número de transacciones que lo retienen o esperan.
// La entrada se borra del mapa cuando refs llega a cero.
type rowLock struct {
	ch   chan struct{}
	refs int
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		positions:   newTable[entity.StockPosition](),
		movements:   newTable[entity.MovementRecord](),
		adjustments: newTable[entity.AdjustmentRecord](),
		orders:      newTable[entity.Order](),
		orderLines:  newTable[entity.OrderLine](),
		sales:       newTable[entity.Sale](),
		saleLines:   newTable[entity.SaleLine](),
		users:       newTable[entity.User](),
		products:    make(map[int64]entity.Product),
		warehouses:  make(map[int64]entity.Warehouse),
		customers:   make(map[int64]entity.Customer),
		suppliers:   make(map[int64]entity.Supplier),
		locks:       make(map[string]*rowLock),
		now:         time.Now,
	}
}

// AddProduct registra un producto del catálogo.
func (s *Store) AddProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// AddWarehouse registra un almacén del catálogo.
func (s *Store) AddWarehouse(w entity.Warehouse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouses[w.ID] = w
}

// AddCustomer registra un cliente del catálogo.
func (s *Store) AddCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
}

// AddSupplier registra un proveedor del catálogo.
func (s *Store) AddSupplier(p entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[p.ID] = p
}

// Reader unidad de trabajo sin transacción: lecturas de lo confirmado.
func (s *Store) Reader() repository.UnitOfWork {
	return &session{s: s, tx: s.readTx()}
}

// Users repositorio de usuarios fuera de transacción (cada escritura se confirma sola).
func (s *Store) Users() repository.UserRepository {
	return &userRepo{session: &session{s: s, tx: s.readTx()}}
}

// TxRunner devuelve el runner transaccional del store.
func (s *Store) TxRunner() repository.TxRunner {
	return txRunner{s: s}
}

type txRunner struct {
	s *Store
}

// Run Commit si fn retorna nil; en cualquier otro caso descarta los cambios. Siempre libera los bloqueos.
func (r txRunner) Run(ctx context.Context, fn func(ctx context.Context, uow repository.UnitOfWork) error) error {
	t := r.s.begin()
	defer func() {
		if p := recover(); p != nil {
			t.rollback()
			panic(p)
		}
	}()
	if err := ctx.Err(); err != nil {
		t.rollback()
		return err
	}
	if err := fn(ctx, &session{s: r.s, tx: t}); err != nil {
		t.rollback()
		return err
	}
	if err := ctx.Err(); err != nil {
		t.rollback()
		return err
	}
	t.commit()
	return nil
}

// tx estado de una transacción: cambios pendientes y bloqueos retenidos.
type tx struct {
	s        *Store
	readOnly bool

	held    []string
	heldSet map[string]bool

	positions   changes[entity.StockPosition]
	movements   changes[entity.MovementRecord]
	adjustments changes[entity.AdjustmentRecord]
	orders      changes[entity.Order]
	orderLines  changes[entity.OrderLine]
	sales       changes[entity.Sale]
	saleLines   changes[entity.SaleLine]
	users       changes[entity.User]
}

func (s *Store) readTx() *tx {
	return &tx{s: s, readOnly: true}
}

func (s *Store) begin() *tx {
	return &tx{
		s:           s,
		heldSet:     make(map[string]bool),
		positions:   make(changes[entity.StockPosition]),
		movements:   make(changes[entity.MovementRecord]),
		adjustments: make(changes[entity.AdjustmentRecord]),
		orders:      make(changes[entity.Order]),
		orderLines:  make(changes[entity.OrderLine]),
		sales:       make(changes[entity.Sale]),
		saleLines:   make(changes[entity.SaleLine]),
		users:       make(changes[entity.User]),
	}
}

// lock adquiere el bloqueo exclusivo de key hasta el fin de la transacción. Reentrante.
func (t *tx) lock(ctx context.Context, key string) error {
	if t.heldSet[key] {
		return nil
	}
	s := t.s
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &rowLock{ch: make(chan struct{}, 1)}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		t.heldSet[key] = true
		t.held = append(t.held, key)
		return nil
	case <-ctx.Done():
		s.unref(key, l)
		return fmt.Errorf("esperando bloqueo %s: %w", key, ctx.Err())
	}
}

func (t *tx) release() {
	s := t.s
	for _, key := range t.held {
		s.mu.Lock()
		l := s.locks[key]
		s.mu.Unlock()
		<-l.ch
		s.unref(key, l)
	}
	t.held = nil
	t.heldSet = make(map[string]bool)
}

func (s *Store) unref(key string, l *rowLock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, key)
	}
}

func (t *tx) commit() {
	s := t.s
	s.mu.Lock()
	t.positions.apply(s.positions)
	t.movements.apply(s.movements)
	t.adjustments.apply(s.adjustments)
	t.orders.apply(s.orders)
	t.orderLines.apply(s.orderLines)
	t.sales.apply(s.sales)
	t.saleLines.apply(s.saleLines)
	t.users.apply(s.users)
	s.mu.Unlock()
	t.release()
}

func (t *tx) rollback() {
	t.release()
}

// session implementa repository.UnitOfWork sobre una transacción (o sobre lo confirmado).
type session struct {
	s  *Store
	tx *tx
}

func (u *session) StockPositions() repository.StockPositionRepository { return &positionRepo{u} }
func (u *session) Movements() repository.MovementRepository           { return &movementRepo{u} }
func (u *session) Adjustments() repository.AdjustmentRepository       { return &adjustmentRepo{u} }
func (u *session) Orders() repository.OrderRepository                 { return &orderRepo{u} }
func (u *session) Sales() repository.SaleRepository                   { return &saleRepo{u} }
func (u *session) Catalog() repository.CatalogRepository              { return &catalogRepo{u} }

// write ejecuta fn en la transacción de la sesión; fuera de transacción abre una y la confirma.
func (u *session) write(ctx context.Context, fn func(t *tx) error) error {
	if !u.tx.readOnly {
		return fn(u.tx)
	}
	t := u.s.begin()
	if err := fn(t); err != nil {
		t.rollback()
		return err
	}
	if err := ctx.Err(); err != nil {
		t.rollback()
		return err
	}
	t.commit()
	return nil
}

// read ejecuta fn con los mapas protegidos.
func (u *session) read(fn func(t *tx)) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	fn(u.tx)
}
