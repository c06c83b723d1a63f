package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

func posLock(id int64) string            { return fmt.Sprintf("pos:%d", id) }
func posKeyLock(k entity.StockKey) string { return fmt.Sprintf("poskey:%d:%d", k.ProductID, k.WarehouseID) }

// ── Stock positions ─────────────────────────────────────────────────────────

type positionRepo struct{ u *session }

func (r *positionRepo) decorate(p entity.StockPosition) *entity.StockPosition {
	p.ProductName = r.u.s.products[p.ProductID].Name
	p.WarehouseName = r.u.s.warehouses[p.WarehouseID].Name
	return &p
}

func (r *positionRepo) Create(ctx context.Context, p *entity.StockPosition) error {
	key := entity.StockKey{ProductID: p.ProductID, WarehouseID: p.WarehouseID}
	return r.u.write(ctx, func(t *tx) error {
		if err := t.lock(ctx, posKeyLock(key)); err != nil {
			return err
		}
		s := r.u.s
		s.mu.Lock()
		defer s.mu.Unlock()
		dup := scan(s.positions, t.positions, func(x entity.StockPosition) bool {
			return x.ProductID == key.ProductID && x.WarehouseID == key.WarehouseID
		})
		if len(dup) > 0 {
			return domain.ErrDuplicatePosition
		}
		p.ID = s.positions.nextID()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = s.now()
		}
		p.UpdatedAt = p.CreatedAt
		t.positions.put(p.ID, *p)
		return nil
	})
}

func (r *positionRepo) GetByID(_ context.Context, id int64) (*entity.StockPosition, error) {
	var out *entity.StockPosition
	r.u.read(func(t *tx) {
		if p, ok := lookup(r.u.s.positions, t.positions, id); ok {
			out = r.decorate(p)
		}
	})
	return out, nil
}

func (r *positionRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.StockPosition, error) {
	if r.u.tx.readOnly {
		return nil, fmt.Errorf("bloqueo fuera de transacción")
	}
	if err := r.u.tx.lock(ctx, posLock(id)); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *positionRepo) findByKey(key entity.StockKey) *entity.StockPosition {
	var out *entity.StockPosition
	r.u.read(func(t *tx) {
		list := scan(r.u.s.positions, t.positions, func(x entity.StockPosition) bool {
			return x.ProductID == key.ProductID && x.WarehouseID == key.WarehouseID
		})
		if len(list) > 0 {
			out = r.decorate(list[0])
		}
	})
	return out
}

func (r *positionRepo) GetByKey(_ context.Context, key entity.StockKey) (*entity.StockPosition, error) {
	return r.findByKey(key), nil
}

func (r *positionRepo) GetByKeyForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockPosition, error) {
	p := r.findByKey(key)
	if p == nil {
		return nil, nil
	}
	return r.GetByIDForUpdate(ctx, p.ID)
}

func (r *positionRepo) UpdateQuantity(ctx context.Context, id, quantity int64) error {
	if quantity < 0 {
		return fmt.Errorf("cantidad negativa para posición %d", id)
	}
	return r.u.write(ctx, func(t *tx) error {
		if err := t.lock(ctx, posLock(id)); err != nil {
			return err
		}
		s := r.u.s
		s.mu.Lock()
		defer s.mu.Unlock()
		p, ok := lookup(s.positions, t.positions, id)
		if !ok {
			return domain.ErrPositionNotFound
		}
		p.Quantity = quantity
		p.UpdatedAt = s.now()
		t.positions.put(id, p)
		return nil
	})
}

func (r *positionRepo) list(keep func(entity.StockPosition) bool) []*entity.StockPosition {
	var out []*entity.StockPosition
	r.u.read(func(t *tx) {
		for _, p := range scan(r.u.s.positions, t.positions, keep) {
			out = append(out, r.decorate(p))
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ProductName != out[j].ProductName {
			return out[i].ProductName < out[j].ProductName
		}
		return out[i].WarehouseName < out[j].WarehouseName
	})
	return out
}

func (r *positionRepo) List(_ context.Context, f repository.StockPositionFilter) ([]*entity.StockPosition, error) {
	return r.list(func(p entity.StockPosition) bool {
		if f.ProductID != nil && p.ProductID != *f.ProductID {
			return false
		}
		return f.WarehouseID == nil || p.WarehouseID == *f.WarehouseID
	}), nil
}

func (r *positionRepo) ListLowStock(context.Context) ([]*entity.StockPosition, error) {
	return r.list(func(p entity.StockPosition) bool { return p.Quantity <= p.MinStock }), nil
}

// ── Movements & adjustments ─────────────────────────────────────────────────

type movementRepo struct{ u *session }

func (r *movementRepo) Create(ctx context.Context, m *entity.MovementRecord) error {
	return r.u.write(ctx, func(t *tx) error {
		s := r.u.s
		s.mu.Lock()
		defer s.mu.Unlock()
		m.ID = s.movements.nextID()
		if m.CreatedAt.IsZero() {
			m.CreatedAt = s.now()
		}
		t.movements.put(m.ID, *m)
		return nil
	})
}

func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.MovementRecord, error) {
	var rows []entity.MovementRecord
	r.u.read(func(t *tx) {
		rows = scan(r.u.s.movements, t.movements, func(m entity.MovementRecord) bool {
			if f.ProductID != nil && m.ProductID != *f.ProductID {
				return false
			}
			return inRange(m.CreatedAt, f.From, f.To)
		})
	})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	rows = page(rows, f.Limit, f.Offset)
	out := make([]*entity.MovementRecord, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

func (r *movementRepo) ListByPosition(_ context.Context, stockPositionID int64) ([]*entity.MovementRecord, error) {
	var rows []entity.MovementRecord
	r.u.read(func(t *tx) {
		rows = scan(r.u.s.movements, t.movements, func(m entity.MovementRecord) bool {
			return m.StockPositionID == stockPositionID
		})
	})
	out := make([]*entity.MovementRecord, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

type adjustmentRepo struct{ u *session }

func (r *adjustmentRepo) Create(ctx context.Context, a *entity.AdjustmentRecord) error {
	return r.u.write(ctx, func(t *tx) error {
		s := r.u.s
		s.mu.Lock()
		defer s.mu.Unlock()
		a.ID = s.adjustments.nextID()
		if a.CreatedAt.IsZero() {
			a.CreatedAt = s.now()
		}
		t.adjustments.put(a.ID, *a)
		return nil
	})
}

func (r *adjustmentRepo) List(_ context.Context, productID *int64) ([]*entity.AdjustmentRecord, error) {
	var rows []entity.AdjustmentRecord
	r.u.read(func(t *tx) {
		rows = scan(r.u.s.adjustments, t.adjustments, func(a entity.AdjustmentRecord) bool {
			return productID == nil || a.ProductID == *productID
		})
	})
	out := make([]*entity.AdjustmentRecord, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, &rows[i])
	}
	return out, nil
}

// ── Orders ──────────────────────────────────────────────────────────────────

type orderRepo struct{ u *session }

func orderLock(id int64) string { return fmt.Sprintf("order:%d", id) }

func (r *orderRepo) decorate(o entity.Order) *entity.Order {
	s := r.u.s
	o.Lines = nil
	if o.CustomerID != nil {
		o.CustomerName = s.customers[*o.CustomerID].Name
	}
	if o.SupplierID != nil {
		o.SupplierName = s.suppliers[*o.SupplierID].Name
	}
	return &o
}

func (r *orderRepo) Create(ctx context.Context, o *entity.Order) error {
	return r.u.write(ctx, func(t *tx) error {
		s := r.u.s
		s.mu.Lock()
		defer s.mu.Unlock()
		o.ID = s.orders.nextID()
		row := *o
		row.Lines = nil
		t.orders.put(o.ID, row)
		return nil
	})
}

func (r *orderRepo) Update(ctx context.Context, o *entity.Order) error {
	return r.u.write(ctx, func(t *tx) error {
		if err := t.lock(ctx, orderLock(o.ID)); err != nil {
			return err
		}
		s := r.u.s
		s.mu.Lock()
		defer s.mu.Unlock()
		cur, ok := lookup(s.orders, t.orders, o.ID)
		if !ok {
			return domain.ErrOrderNotFound
		}
		row := *o
		row.Lines = nil
		row.CreatedAt = cur.CreatedAt
		t.orders.put(o.ID, row)
		return nil
	})
}

func (r *orderRepo) Delete(ctx context.Context, id int64) error {
	return r.u.write(ctx, func(t *tx) error {
		if err := t.lock(ctx, orderLock(id)); err != nil {
			return err
		}
		s := r.u.s
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := lookup(s.orders, t.orders, id); !ok {
			return domain.ErrOrderNotFound
		}
		for _, l := range scan(s.orderLines, t.orderLines, func(l entity.OrderLine) bool { return l.OrderID == id }) {
			t.orderLines.del(l.ID)
		}
		t.orders.del(id)
		return nil
	})
}

func (r *orderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	var out *entity.Order
	r.u.read(func(t *tx) {
		if o, ok := lookup(r.u.s.orders, t.orders, id); ok {
			out = r.decorate(o)
		}
	})
	return out, nil
}

func (r *orderRepo) List(_ context.Context, from, to *time.Time) ([]*entity.Order, error) {
	var out []*entity.Order
	r.u.read(func(t *tx) {
		rows := scan(r.u.s.orders, t.orders, func(o entity.Order) bool { return inRange(o.CreatedAt, from, to) })
		for i := len(rows) - 1; i >= 0; i-- {
			out = append(out, r.decorate(rows[i]))
		}
	})
	return out, nil
}

func (r *orderRepo) CreateLine(ctx context.Context, l *entity.OrderLine) error {
	return r.u.write(ctx, func(t *tx) error {
		s := r.u.s
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := lookup(s.orders, t.orders, l.OrderID); !ok {
			return domain.ErrOrderNotFound
		}
		l.ID = s.orderLines.nextID()
		t.orderLines.put(l.ID, *l)
		return nil
	})
}

func (r *orderRepo) DeleteLines(ctx context.Context, orderID int64) error {
	return r.u.write(ctx, func(t *tx) error {
		s := r.u.s
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, l := range scan(s.orderLines, t.orderLines, func(l entity.OrderLine) bool { return l.OrderID == orderID }) {
			t.orderLines.del(l.ID)
		}
		return nil
	})
}

func (r *orderRepo) ListLines(_ context.Context, orderID int64) ([]*entity.OrderLine, error) {
	var out []*entity.OrderLine
	r.u.read(func(t *tx) {
		for _, l := range scan(r.u.s.orderLines, t.orderLines, func(l entity.OrderLine) bool { return l.OrderID == orderID }) {
			l.ProductName = r.u.s.products[l.ProductID].Name
			line := l
			out = append(out, &line)
		}
	})
	return out, nil
}

// ── Sales ───────────────────────────────────────────────────────────────────

type saleRepo struct{ u *session }

func saleLock(id int64) string { return fmt.Sprintf("sale:%d", id) }

func (r *saleRepo) decorate(v entity.Sale) *entity.Sale {
	s := r.u.s
	v.Lines = nil
	if v.CustomerID != nil {
		v.CustomerName = s.customers[*v.CustomerID].Name
	}
	if u, ok := lookup(s.users, r.u.tx.users, v.OperatorID); ok {
		v.OperatorName = u.FullName
		if v.OperatorName == "" {
			v.OperatorName = u.Username
		}
	}
	return &v
}

func (r *saleRepo) Create(ctx context.Context, v *entity.Sale) error {
	return r.u.write(ctx, func(t *tx) error {
		if err := t.lock(ctx, "salenum:"+v.SaleNumber); err != nil {
			return err
		}
		s := r.u.s
		s.mu.Lock()
		defer s.mu.Unlock()
		if len(scan(s.sales, t.sales, func(x entity.Sale) bool { return x.SaleNumber == v.SaleNumber })) > 0 {
			return domain.ErrDuplicateSaleNumber
		}
		v.ID = s.sales.nextID()
		row := *v
		row.Lines = nil
		t.sales.put(v.ID, row)
		return nil
	})
}

func (r *saleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	return r.u.write(ctx, func(t *tx) error {
		s := r.u.s
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := lookup(s.sales, t.sales, l.SaleID); !ok {
			return domain.ErrSaleNotFound
		}
		l.ID = s.saleLines.nextID()
		t.saleLines.put(l.ID, *l)
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	var out *entity.Sale
	r.u.read(func(t *tx) {
		if v, ok := lookup(r.u.s.sales, t.sales, id); ok {
			out = r.decorate(v)
		}
	})
	return out, nil
}

func (r *saleRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	if r.u.tx.readOnly {
		return nil, fmt.Errorf("bloqueo fuera de transacción")
	}
	if err := r.u.tx.lock(ctx, saleLock(id)); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *saleRepo) ListLines(_ context.Context, saleID int64) ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	r.u.read(func(t *tx) {
		for _, l := range scan(r.u.s.saleLines, t.saleLines, func(l entity.SaleLine) bool { return l.SaleID == saleID }) {
			l.ProductName = r.u.s.products[l.ProductID].Name
			line := l
			out = append(out, &line)
		}
	})
	return out, nil
}

func (r *saleRepo) update(ctx context.Context, id int64, fn func(v *entity.Sale)) error {
	return r.u.write(ctx, func(t *tx) error {
		if err := t.lock(ctx, saleLock(id)); err != nil {
			return err
		}
		s := r.u.s
		s.mu.Lock()
		defer s.mu.Unlock()
		v, ok := lookup(s.sales, t.sales, id)
		if !ok {
			return domain.ErrSaleNotFound
		}
		fn(&v)
		t.sales.put(id, v)
		return nil
	})
}

func (r *saleRepo) UpdateStatus(ctx context.Context, id int64, status entity.SaleStatus, modifiedAt time.Time) error {
	return r.update(ctx, id, func(v *entity.Sale) {
		v.Status = status
		v.ModifiedAt = modifiedAt
	})
}

func (r *saleRepo) UpdateType(ctx context.Context, id int64, saleType entity.SaleType, modifiedAt time.Time) error {
	return r.update(ctx, id, func(v *entity.Sale) {
		v.SaleType = saleType
		v.ModifiedAt = modifiedAt
	})
}

func (r *saleRepo) List(_ context.Context, from, to *time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	r.u.read(func(t *tx) {
		rows := scan(r.u.s.sales, t.sales, func(v entity.Sale) bool { return inRange(v.SaleDate, from, to) })
		sort.Slice(rows, func(i, j int) bool {
			if !rows[i].SaleDate.Equal(rows[j].SaleDate) {
				return rows[i].SaleDate.After(rows[j].SaleDate)
			}
			return rows[i].ID > rows[j].ID
		})
		for _, v := range rows {
			out = append(out, r.decorate(v))
		}
	})
	return out, nil
}

// ── Catalog ─────────────────────────────────────────────────────────────────

type catalogRepo struct{ u *session }

func (r *catalogRepo) GetProduct(_ context.Context, id int64) (*entity.Product, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	if p, ok := r.u.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *catalogRepo) GetWarehouse(_ context.Context, id int64) (*entity.Warehouse, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	if w, ok := r.u.s.warehouses[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r *catalogRepo) GetCustomer(_ context.Context, id int64) (*entity.Customer, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	if c, ok := r.u.s.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *catalogRepo) GetSupplier(_ context.Context, id int64) (*entity.Supplier, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	if p, ok := r.u.s.suppliers[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *catalogRepo) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	return (&userRepo{session: r.u}).GetByID(ctx, id)
}

// ── Users ───────────────────────────────────────────────────────────────────

type userRepo struct{ *session }

func (r *userRepo) Create(ctx context.Context, u *entity.User) error {
	username := strings.ToLower(strings.TrimSpace(u.Username))
	email := strings.ToLower(strings.TrimSpace(u.Email))
	return r.write(ctx, func(t *tx) error {
		if err := t.lock(ctx, "username:"+username); err != nil {
			return err
		}
		if email != "" {
			if err := t.lock(ctx, "email:"+email); err != nil {
				return err
			}
		}
		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()
		taken := scan(s.users, t.users, func(x entity.User) bool {
			return strings.EqualFold(x.Username, username) || (email != "" && strings.EqualFold(x.Email, email))
		})
		if len(taken) > 0 {
			return domain.ErrUsernameTaken
		}
		u.ID = s.users.nextID()
		if u.CreatedAt.IsZero() {
			u.CreatedAt = s.now()
		}
		t.users.put(u.ID, *u)
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	r.read(func(t *tx) {
		if u, ok := lookup(r.s.users, t.users, id); ok {
			out = &u
		}
	})
	return out, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	r.read(func(t *tx) {
		list := scan(r.s.users, t.users, func(x entity.User) bool { return strings.EqualFold(x.Username, username) })
		if len(list) > 0 {
			out = &list[0]
		}
	})
	return out, nil
}

func (r *userRepo) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.write(ctx, func(t *tx) error {
		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()
		u, ok := lookup(s.users, t.users, id)
		if !ok {
			return domain.ErrUserNotFound
		}
		u.LastLoginAt = &at
		t.users.put(id, u)
		return nil
	})
}

func inRange(at time.Time, from, to *time.Time) bool {
	if from != nil && at.Before(*from) {
		return false
	}
	return to == nil || !at.After(*to)
}

func page[T any](rows []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return nil
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
