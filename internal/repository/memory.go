package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-backend/internal/entity"
)

// MemoryStore is an in-memory implementation of every repository interface
// plus TxManager. Transactions take a snapshot of the whole state and restore
// it when fn fails, so rollback semantics match the SQL store.
type MemoryStore struct {
	mu    sync.Mutex
	state *memState
}

type memState struct {
	nextID int

	users           map[int]entity.User
	categories      map[int]entity.Category
	products        map[int]entity.Product
	formats         map[int]entity.ProductFormat
	retailPoints    map[int]entity.RetailPoint
	inventories     map[int]entity.Inventory
	movements       map[int]entity.StockMovement
	carts           map[int]entity.Cart
	cartItems       map[int]entity.CartItem
	orders          map[int]entity.Order
	orderItems      map[int]entity.OrderItem
	tokenTxs        map[int]entity.TokenTransaction
	notifications   map[int]entity.Notification
	disputes        map[int]entity.Dispute
	disputeMessages map[int]entity.DisputeMessage
}

func newMemState() *memState {
	return &memState{
		nextID:          1,
		users:           make(map[int]entity.User),
		categories:      make(map[int]entity.Category),
		products:        make(map[int]entity.Product),
		formats:         make(map[int]entity.ProductFormat),
		retailPoints:    make(map[int]entity.RetailPoint),
		inventories:     make(map[int]entity.Inventory),
		movements:       make(map[int]entity.StockMovement),
		carts:           make(map[int]entity.Cart),
		cartItems:       make(map[int]entity.CartItem),
		orders:          make(map[int]entity.Order),
		orderItems:      make(map[int]entity.OrderItem),
		tokenTxs:        make(map[int]entity.TokenTransaction),
		notifications:   make(map[int]entity.Notification),
		disputes:        make(map[int]entity.Dispute),
		disputeMessages: make(map[int]entity.DisputeMessage),
	}
}

func (s *memState) clone() *memState {
	c := &memState{nextID: s.nextID}
	c.users = cloneMap(s.users)
	c.categories = cloneMap(s.categories)
	c.products = cloneMap(s.products)
	c.formats = cloneMap(s.formats)
	c.retailPoints = cloneMap(s.retailPoints)
	c.inventories = cloneMap(s.inventories)
	c.movements = cloneMap(s.movements)
	c.carts = cloneMap(s.carts)
	c.cartItems = cloneMap(s.cartItems)
	c.orders = cloneMap(s.orders)
	c.orderItems = cloneMap(s.orderItems)
	c.tokenTxs = cloneMap(s.tokenTxs)
	c.notifications = cloneMap(s.notifications)
	c.disputes = cloneMap(s.disputes)
	c.disputeMessages = cloneMap(s.disputeMessages)
	return c
}

func cloneMap[V any](m map[int]V) map[int]V {
	c := make(map[int]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemState()}
}

type memTxKey struct{}

func inMemTx(ctx context.Context) bool {
	v, ok := ctx.Value(memTxKey{}).(bool)
	return ok && v
}

func (s *MemoryStore) lock(ctx context.Context) {
	if !inMemTx(ctx) {
		s.mu.Lock()
	}
}

func (s *MemoryStore) unlock(ctx context.Context) {
	if !inMemTx(ctx) {
		s.mu.Unlock()
	}
}

// WithTransaction holds the store lock for the whole fn and restores the
// pre-transaction snapshot when fn returns an error.
func (s *MemoryStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *MemoryStore) allocID() int {
	id := s.state.nextID
	s.state.nextID++
	return id
}

func sortedIDs[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Accessors returning the per-entity repository views.

func (s *MemoryStore) Users() UserRepository               { return &memUsers{s} }
func (s *MemoryStore) Catalog() CatalogRepository          { return &memCatalog{s} }
func (s *MemoryStore) RetailPoints() RetailPointRepository { return &memRetailPoints{s} }
func (s *MemoryStore) Inventories() InventoryRepository    { return &memInventories{s} }
func (s *MemoryStore) Carts() CartRepository               { return &memCarts{s} }
func (s *MemoryStore) Orders() OrderRepository             { return &memOrders{s} }
func (s *MemoryStore) TokenTransactions() TokenTransactionRepository {
	return &memTokenTxs{s}
}
func (s *MemoryStore) Notifications() NotificationRepository { return &memNotifications{s} }
func (s *MemoryStore) Disputes() DisputeRepository           { return &memDisputes{s} }

var (
	_ TxManager = (*MemoryStore)(nil)
)

// --- users ---

type memUsers struct{ s *MemoryStore }

func (r *memUsers) Create(ctx context.Context, u *entity.User) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	u.ID = r.s.allocID()
	r.s.state.users[u.ID] = *u
	return nil
}

func (r *memUsers) GetByID(ctx context.Context, id int) (*entity.User, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	u, ok := r.s.state.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (r *memUsers) UpdateBalance(ctx context.Context, id int, balance decimal.Decimal, updatedAt time.Time) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	u, ok := r.s.state.users[id]
	if !ok {
		return ErrNotFound
	}
	u.TokenBalance = balance
	u.UpdatedAt = updatedAt
	r.s.state.users[id] = u
	return nil
}

// --- catalog ---

type memCatalog struct{ s *MemoryStore }

func (r *memCatalog) CreateCategory(ctx context.Context, c *entity.Category) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	c.ID = r.s.allocID()
	r.s.state.categories[c.ID] = *c
	return nil
}

func (r *memCatalog) ListCategories(ctx context.Context) ([]entity.Category, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	var out []entity.Category
	for _, id := range sortedIDs(r.s.state.categories) {
		out = append(out, r.s.state.categories[id])
	}
	return out, nil
}

func (r *memCatalog) CreateProduct(ctx context.Context, p *entity.Product) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	p.ID = r.s.allocID()
	stored := *p
	stored.Formats = nil
	r.s.state.products[p.ID] = stored
	return nil
}

func (r *memCatalog) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	p, ok := r.s.state.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	cp.Formats = r.formatsOf(id)
	return &cp, nil
}

func (r *memCatalog) formatsOf(productID int) []entity.ProductFormat {
	var out []entity.ProductFormat
	for _, id := range sortedIDs(r.s.state.formats) {
		if pf := r.s.state.formats[id]; pf.ProductID == productID {
			out = append(out, pf)
		}
	}
	return out
}

func (r *memCatalog) ListProducts(ctx context.Context, f ProductFilter) ([]entity.Product, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	var out []entity.Product
	for _, id := range sortedIDs(r.s.state.products) {
		p := r.s.state.products[id]
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
			continue
		}
		if f.ManufacturerID != nil && p.ManufacturerID != *f.ManufacturerID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memCatalog) CreateFormat(ctx context.Context, pf *entity.ProductFormat) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	pf.ID = r.s.allocID()
	r.s.state.formats[pf.ID] = *pf
	return nil
}

func (r *memCatalog) GetFormatByID(ctx context.Context, id int) (*entity.ProductFormat, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	pf, ok := r.s.state.formats[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := pf
	return &cp, nil
}

func (r *memCatalog) UpdateFormat(ctx context.Context, pf *entity.ProductFormat) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	if _, ok := r.s.state.formats[pf.ID]; !ok {
		return ErrNotFound
	}
	r.s.state.formats[pf.ID] = *pf
	return nil
}

func (r *memCatalog) DeleteFormat(ctx context.Context, id int) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	if _, ok := r.s.state.formats[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.state.formats, id)
	return nil
}

func (r *memCatalog) ListFormats(ctx context.Context, productID int) ([]entity.ProductFormat, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	return r.formatsOf(productID), nil
}

// --- retail points ---

type memRetailPoints struct{ s *MemoryStore }

func (r *memRetailPoints) Create(ctx context.Context, rp *entity.RetailPoint) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	rp.ID = r.s.allocID()
	r.s.state.retailPoints[rp.ID] = *rp
	return nil
}

func (r *memRetailPoints) GetByID(ctx context.Context, id int) (*entity.RetailPoint, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	rp, ok := r.s.state.retailPoints[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := rp
	return &cp, nil
}

func (r *memRetailPoints) ListByOwner(ctx context.Context, ownerID int) ([]entity.RetailPoint, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	var out []entity.RetailPoint
	for _, id := range sortedIDs(r.s.state.retailPoints) {
		if rp := r.s.state.retailPoints[id]; rp.OwnerID == ownerID {
			out = append(out, rp)
		}
	}
	return out, nil
}

// --- inventories ---

type memInventories struct{ s *MemoryStore }

func (r *memInventories) Create(ctx context.Context, inv *entity.Inventory) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	inv.ID = r.s.allocID()
	stored := *inv
	stored.ProductFormat = nil
	r.s.state.inventories[inv.ID] = stored
	return nil
}

func (r *memInventories) GetByID(ctx context.Context, id int) (*entity.Inventory, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	return r.get(id)
}

func (r *memInventories) get(id int) (*entity.Inventory, error) {
	inv, ok := r.s.state.inventories[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := inv
	if pf, ok := r.s.state.formats[inv.ProductFormatID]; ok {
		pfCopy := pf
		cp.ProductFormat = &pfCopy
	}
	return &cp, nil
}

func (r *memInventories) Update(ctx context.Context, inv *entity.Inventory) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	stored, ok := r.s.state.inventories[inv.ID]
	if !ok {
		return ErrNotFound
	}
	stored.AlertThreshold = inv.AlertThreshold
	stored.PriceOverride = inv.PriceOverride
	stored.IsAvailable = inv.IsAvailable
	stored.UpdatedAt = inv.UpdatedAt
	r.s.state.inventories[inv.ID] = stored
	return nil
}

func (r *memInventories) UpdateStock(ctx context.Context, id int, stock decimal.Decimal, updatedAt time.Time) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	inv, ok := r.s.state.inventories[id]
	if !ok {
		return ErrNotFound
	}
	inv.CurrentStock = stock
	inv.UpdatedAt = updatedAt
	r.s.state.inventories[id] = inv
	return nil
}

func (r *memInventories) Delete(ctx context.Context, id int) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	if _, ok := r.s.state.inventories[id]; !ok {
		return ErrNotFound
	}
	// protective reference: order items block deletion
	for _, item := range r.s.state.orderItems {
		if item.InventoryID == id {
			return ErrInventoryInUse
		}
	}
	delete(r.s.state.inventories, id)
	return nil
}

func (r *memInventories) List(ctx context.Context, f InventoryFilter) ([]entity.Inventory, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	var out []entity.Inventory
	for _, id := range sortedIDs(r.s.state.inventories) {
		inv, err := r.get(id)
		if err != nil {
			return nil, err
		}
		if f.RetailPointID != nil && inv.RetailPointID != *f.RetailPointID {
			continue
		}
		if f.ManufacturerID != nil && !r.madeBy(inv, *f.ManufacturerID) {
			continue
		}
		if f.OwnerID != nil && !r.ownedBy(inv, *f.OwnerID) {
			continue
		}
		if f.AvailableOnly && !inv.IsAvailable {
			continue
		}
		if f.InStockOnly && !inv.CurrentStock.IsPositive() {
			continue
		}
		out = append(out, *inv)
	}
	return out, nil
}

func (r *memInventories) madeBy(inv *entity.Inventory, manufacturerID int) bool {
	pf, ok := r.s.state.formats[inv.ProductFormatID]
	if !ok {
		return false
	}
	p, ok := r.s.state.products[pf.ProductID]
	return ok && p.ManufacturerID == manufacturerID
}

func (r *memInventories) ownedBy(inv *entity.Inventory, ownerID int) bool {
	rp, ok := r.s.state.retailPoints[inv.RetailPointID]
	return ok && rp.OwnerID == ownerID
}

func (r *memInventories) CreateMovement(ctx context.Context, m *entity.StockMovement) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	m.ID = r.s.allocID()
	r.s.state.movements[m.ID] = *m
	return nil
}

func (r *memInventories) ListMovements(ctx context.Context, inventoryID int) ([]entity.StockMovement, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	var out []entity.StockMovement
	for _, id := range sortedIDs(r.s.state.movements) {
		if m := r.s.state.movements[id]; m.InventoryID == inventoryID {
			out = append(out, m)
		}
	}
	return out, nil
}

// --- carts ---

type memCarts struct{ s *MemoryStore }

func (r *memCarts) GetOrCreateByUser(ctx context.Context, userID int, now time.Time) (*entity.Cart, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	for _, cart := range r.s.state.carts {
		if cart.UserID == userID {
			cp := cart
			return &cp, nil
		}
	}
	cart := entity.Cart{ID: r.s.allocID(), UserID: userID, CreatedAt: now, UpdatedAt: now}
	r.s.state.carts[cart.ID] = cart
	cp := cart
	return &cp, nil
}

func (r *memCarts) ListItems(ctx context.Context, cartID int) ([]entity.CartItem, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	inventories := memInventories{r.s}
	var out []entity.CartItem
	for _, id := range sortedIDs(r.s.state.cartItems) {
		item := r.s.state.cartItems[id]
		if item.CartID != cartID {
			continue
		}
		inv, err := inventories.get(item.InventoryID)
		if err != nil {
			return nil, err
		}
		item.Inventory = inv
		out = append(out, item)
	}
	return out, nil
}

func (r *memCarts) UpsertItem(ctx context.Context, item *entity.CartItem) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	for id, existing := range r.s.state.cartItems {
		if existing.CartID == item.CartID && existing.InventoryID == item.InventoryID {
			existing.Quantity = item.Quantity
			r.s.state.cartItems[id] = existing
			item.ID = id
			return nil
		}
	}
	item.ID = r.s.allocID()
	stored := *item
	stored.Inventory = nil
	r.s.state.cartItems[item.ID] = stored
	return nil
}

func (r *memCarts) DeleteItem(ctx context.Context, cartID, itemID int) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	item, ok := r.s.state.cartItems[itemID]
	if !ok || item.CartID != cartID {
		return ErrNotFound
	}
	delete(r.s.state.cartItems, itemID)
	return nil
}

func (r *memCarts) ClearItems(ctx context.Context, cartID int) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	for id, item := range r.s.state.cartItems {
		if item.CartID == cartID {
			delete(r.s.state.cartItems, id)
		}
	}
	return nil
}

// --- orders ---

type memOrders struct{ s *MemoryStore }

func (r *memOrders) Create(ctx context.Context, o *entity.Order) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	o.ID = r.s.allocID()
	stored := *o
	stored.Items = nil
	r.s.state.orders[o.ID] = stored
	return nil
}

func (r *memOrders) AddItem(ctx context.Context, item *entity.OrderItem) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	item.ID = r.s.allocID()
	r.s.state.orderItems[item.ID] = *item
	return nil
}

func (r *memOrders) UpdateTotal(ctx context.Context, orderID int, total decimal.Decimal, updatedAt time.Time) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	o, ok := r.s.state.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.TotalAmount = total
	o.UpdatedAt = updatedAt
	r.s.state.orders[orderID] = o
	return nil
}

func (r *memOrders) UpdateStatus(ctx context.Context, orderID int, status string, updatedAt time.Time) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	o, ok := r.s.state.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	r.s.state.orders[orderID] = o
	return nil
}

func (r *memOrders) GetByID(ctx context.Context, id int) (*entity.Order, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	o, ok := r.s.state.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	cp.Items = r.itemsOf(id)
	return &cp, nil
}

func (r *memOrders) itemsOf(orderID int) []entity.OrderItem {
	var out []entity.OrderItem
	for _, id := range sortedIDs(r.s.state.orderItems) {
		if item := r.s.state.orderItems[id]; item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out
}

func (r *memOrders) List(ctx context.Context, f OrderFilter) ([]entity.Order, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	ids := sortedIDs(r.s.state.orders)
	var out []entity.Order
	for i := len(ids) - 1; i >= 0; i-- {
		o := r.s.state.orders[ids[i]]
		if f.UserID != nil && o.UserID != *f.UserID {
			continue
		}
		if f.RetailPointID != nil && (o.RetailPointID == nil || *o.RetailPointID != *f.RetailPointID) {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		o.Items = r.itemsOf(o.ID)
		if f.SellerID != nil && !r.soldBy(&o, *f.SellerID) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *memOrders) soldBy(o *entity.Order, sellerID int) bool {
	for _, item := range o.Items {
		inv, ok := r.s.state.inventories[item.InventoryID]
		if !ok {
			continue
		}
		rp, ok := r.s.state.retailPoints[inv.RetailPointID]
		if ok && rp.OwnerID == sellerID {
			return true
		}
	}
	return false
}

// --- token transactions ---

type memTokenTxs struct{ s *MemoryStore }

func (r *memTokenTxs) Create(ctx context.Context, t *entity.TokenTransaction) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	t.ID = r.s.allocID()
	r.s.state.tokenTxs[t.ID] = *t
	return nil
}

func (r *memTokenTxs) ListByUser(ctx context.Context, userID int) ([]entity.TokenTransaction, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	ids := sortedIDs(r.s.state.tokenTxs)
	var out []entity.TokenTransaction
	for i := len(ids) - 1; i >= 0; i-- {
		if t := r.s.state.tokenTxs[ids[i]]; t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// --- notifications ---

type memNotifications struct{ s *MemoryStore }

func (r *memNotifications) Create(ctx context.Context, n *entity.Notification) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	n.ID = r.s.allocID()
	r.s.state.notifications[n.ID] = *n
	return nil
}

func (r *memNotifications) ListByUser(ctx context.Context, userID int) ([]entity.Notification, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	ids := sortedIDs(r.s.state.notifications)
	var out []entity.Notification
	for i := len(ids) - 1; i >= 0; i-- {
		if n := r.s.state.notifications[ids[i]]; n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNotifications) MarkRead(ctx context.Context, id, userID int) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	n, ok := r.s.state.notifications[id]
	if !ok || n.UserID != userID {
		return ErrNotFound
	}
	n.IsRead = true
	r.s.state.notifications[id] = n
	return nil
}

// --- disputes ---

type memDisputes struct{ s *MemoryStore }

func (r *memDisputes) Create(ctx context.Context, d *entity.Dispute) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	d.ID = r.s.allocID()
	stored := *d
	stored.Messages = nil
	r.s.state.disputes[d.ID] = stored
	return nil
}

func (r *memDisputes) GetByID(ctx context.Context, id int) (*entity.Dispute, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	d, ok := r.s.state.disputes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := d
	for _, mid := range sortedIDs(r.s.state.disputeMessages) {
		if m := r.s.state.disputeMessages[mid]; m.DisputeID == id {
			cp.Messages = append(cp.Messages, m)
		}
	}
	return &cp, nil
}

func (r *memDisputes) Update(ctx context.Context, d *entity.Dispute) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	stored, ok := r.s.state.disputes[d.ID]
	if !ok {
		return ErrNotFound
	}
	stored.AssignedTo = d.AssignedTo
	stored.Status = d.Status
	stored.Resolution = d.Resolution
	stored.UpdatedAt = d.UpdatedAt
	r.s.state.disputes[d.ID] = stored
	return nil
}

func (r *memDisputes) List(ctx context.Context, f DisputeFilter) ([]entity.Dispute, error) {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	ids := sortedIDs(r.s.state.disputes)
	var out []entity.Dispute
	for i := len(ids) - 1; i >= 0; i-- {
		d := r.s.state.disputes[ids[i]]
		if f.ParticipantID != nil {
			assigned := d.AssignedTo != nil && *d.AssignedTo == *f.ParticipantID
			if d.CreatedByID != *f.ParticipantID && !assigned {
				continue
			}
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.DisputeType != "" && d.DisputeType != f.DisputeType {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *memDisputes) AddMessage(ctx context.Context, m *entity.DisputeMessage) error {
	r.s.lock(ctx)
	defer r.s.unlock(ctx)
	if _, ok := r.s.state.disputes[m.DisputeID]; !ok {
		return ErrNotFound
	}
	m.ID = r.s.allocID()
	r.s.state.disputeMessages[m.ID] = *m
	return nil
}
