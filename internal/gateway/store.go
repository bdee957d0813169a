package gateway

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"app/internal/domain/model"
)

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrDuplicateSKU     = errors.New("sku already exists")
	ErrDuplicateEmail   = errors.New("email already exists")
)

// 在庫不足。メッセージに商品名を含める
type InsufficientStockError struct {
	ItemName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock for item %s", e.ItemName)
}

// 注文明細が在庫に無い。メッセージにIDを含める
type UnknownLineItemError struct {
	ID int64
}

func (e *UnknownLineItemError) Error() string {
	return fmt.Sprintf("Item with ID %d not found", e.ID)
}

// レガシー表現の在庫アイテム。statusは保存されたままの表示用フィールド
type Item struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Category string  `json:"category"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
	Status   string  `json:"status"`
}

type Supplier struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Status        string `json:"status"`
}

type Order struct {
	ID            int64     `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Status        string    `json:"status"`
	TotalAmount   float64   `json:"total_amount"`
	OrderDate     time.Time `json:"order_date"`
}

type OrderLine struct {
	ID       int64 `json:"id"`
	Quantity int64 `json:"quantity"`
}

// 全リソースを一つのmutexで守るデモ用ストア
type Store struct {
	mu        sync.Mutex
	items     []Item
	suppliers []Supplier
	orders    []Order
}

func NewStore() *Store {
	return &Store{}
}

// デモ用の初期データ入り
func NewSeededStore() *Store {
	return &Store{
		items: []Item{
			{ID: 1, Name: "Racing Wheel", SKU: "RW-001", Category: "Accessories", Quantity: 15, Price: 299.99, Status: statusFor(15)},
			{ID: 2, Name: "Carbon Fiber Spoiler", SKU: "CFS-100", Category: "Body Parts", Quantity: 8, Price: 599.99, Status: statusFor(8)},
			{ID: 3, Name: "Performance Brake Kit", SKU: "PBK-200", Category: "Brakes", Quantity: 5, Price: 899.99, Status: statusFor(5)},
			{ID: 4, Name: "LED Headlight Set", SKU: "LHS-300", Category: "Lighting", Quantity: 0, Price: 450.00, Status: statusFor(0)},
		},
		suppliers: []Supplier{
			{ID: 1, Name: "LH44 Racing Supplies", ContactPerson: "Lewis Hamilton", Email: "lewis@lh44racing.com", Phone: "555-123-4567", Status: "active"},
			{ID: 2, Name: "VER1 Performance Parts", ContactPerson: "Max Verstappen", Email: "max@ver1performance.com", Phone: "555-987-6543", Status: "active"},
			{ID: 3, Name: "Ferrari Aftermarket", ContactPerson: "Charles Leclerc", Email: "charles@ferrariparts.com", Phone: "555-789-1234", Status: "inactive"},
		},
		orders: []Order{
			{ID: 1, OrderNumber: "ORD-2025-001", CustomerName: "Toto Wolff", Status: "completed", TotalAmount: 1499.95, OrderDate: mustTime("2025-04-01T10:30:00Z")},
			{ID: 2, OrderNumber: "ORD-2025-002", CustomerName: "Christian Horner", Status: "processing", TotalAmount: 2199.98, OrderDate: mustTime("2025-04-15T14:45:00Z")},
			{ID: 3, OrderNumber: "ORD-2025-003", CustomerName: "Zak Brown", Status: "pending", TotalAmount: 899.99, OrderDate: mustTime("2025-04-20T09:15:00Z")},
		},
	}
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// statusは本体側と同じ一つの閾値から導出する
func statusFor(quantity int64) string {
	return string(model.DeriveStockStatus(quantity))
}

func (s *Store) ListItems() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) GetItem(id int64) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, ErrItemNotFound
}

type CreateItemInput struct {
	Name     string
	SKU      string
	Category string
	Quantity int64
	Price    float64
}

func (s *Store) CreateItem(in CreateItemInput) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	//SKU重複はレガシー仕様どおり作成前に弾く
	for _, it := range s.items {
		if it.SKU == in.SKU {
			return Item{}, ErrDuplicateSKU
		}
	}

	item := Item{
		ID:       nextItemID(s.items),
		Name:     in.Name,
		SKU:      in.SKU,
		Category: in.Category,
		Quantity: in.Quantity,
		Price:    in.Price,
		Status:   statusFor(in.Quantity),
	}
	s.items = append(s.items, item)
	return item, nil
}

// 部分更新。空文字・nilは「変更しない」の意味
type UpdateItemInput struct {
	Name     string
	SKU      string
	Category string
	Quantity *int64
	Price    *float64
}

func (s *Store) UpdateItem(id int64, in UpdateItemInput) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}

		if in.Name != "" {
			s.items[i].Name = in.Name
		}
		if in.SKU != "" {
			s.items[i].SKU = in.SKU
		}
		if in.Category != "" {
			s.items[i].Category = in.Category
		}
		if in.Quantity != nil {
			s.items[i].Quantity = *in.Quantity
		}
		if in.Price != nil {
			s.items[i].Price = *in.Price
		}

		//数量が変わったら保存statusを引き直す
		s.items[i].Status = statusFor(s.items[i].Quantity)
		return s.items[i], nil
	}
	return Item{}, ErrItemNotFound
}

func (s *Store) DeleteItem(id int64) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			deleted := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return deleted, nil
		}
	}
	return Item{}, ErrItemNotFound
}

func (s *Store) ListSuppliers() []Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Supplier, len(s.suppliers))
	copy(out, s.suppliers)
	return out
}

func (s *Store) GetSupplier(id int64) (Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sp := range s.suppliers {
		if sp.ID == id {
			return sp, nil
		}
	}
	return Supplier{}, ErrSupplierNotFound
}

type CreateSupplierInput struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Status        string
}

func (s *Store) CreateSupplier(in CreateSupplierInput) (Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sp := range s.suppliers {
		if sp.Email == in.Email {
			return Supplier{}, ErrDuplicateEmail
		}
	}

	status := in.Status
	if status == "" {
		status = "active"
	}

	sp := Supplier{
		ID:            nextSupplierID(s.suppliers),
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Status:        status,
	}
	s.suppliers = append(s.suppliers, sp)
	return sp, nil
}

type UpdateSupplierInput struct {
	Name          string
	ContactPerson *string
	Email         string
	Phone         *string
	Status        string
}

func (s *Store) UpdateSupplier(id int64, in UpdateSupplierInput) (Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.suppliers {
		if s.suppliers[i].ID != id {
			continue
		}

		if in.Name != "" {
			s.suppliers[i].Name = in.Name
		}
		if in.ContactPerson != nil {
			s.suppliers[i].ContactPerson = *in.ContactPerson
		}
		if in.Email != "" {
			s.suppliers[i].Email = in.Email
		}
		if in.Phone != nil {
			s.suppliers[i].Phone = *in.Phone
		}
		if in.Status != "" {
			s.suppliers[i].Status = in.Status
		}
		return s.suppliers[i], nil
	}
	return Supplier{}, ErrSupplierNotFound
}

func (s *Store) DeleteSupplier(id int64) (Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.suppliers {
		if s.suppliers[i].ID == id {
			deleted := s.suppliers[i]
			s.suppliers = append(s.suppliers[:i], s.suppliers[i+1:]...)
			return deleted, nil
		}
	}
	return Supplier{}, ErrSupplierNotFound
}

func (s *Store) ListOrders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Store) GetOrder(id int64) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrOrderNotFound
}

type PlaceOrderInput struct {
	CustomerName  string
	CustomerEmail string
	Lines         []OrderLine
}

// 注文作成。全明細の検証が通ってから在庫を減らす
func (s *Store) PlaceOrder(in PlaceOrderInput) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, line := range in.Lines {
		item := findItem(s.items, line.ID)
		if item == nil {
			return Order{}, &UnknownLineItemError{ID: line.ID}
		}
		if line.Quantity > item.Quantity {
			return Order{}, &InsufficientStockError{ItemName: item.Name}
		}
		total += item.Price * float64(line.Quantity)
	}

	now := time.Now()
	order := Order{
		ID:            nextOrderID(s.orders),
		OrderNumber:   fmt.Sprintf("ORD-%d-%03d", now.Year(), len(s.orders)+1),
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		Status:        "pending",
		TotalAmount:   total,
		OrderDate:     now,
	}
	s.orders = append(s.orders, order)

	//在庫を減らして保存statusを引き直す
	for _, line := range in.Lines {
		item := findItem(s.items, line.ID)
		item.Quantity -= line.Quantity
		item.Status = statusFor(item.Quantity)
	}

	return order, nil
}

type UpdateOrderInput struct {
	CustomerName  string
	CustomerEmail *string
	Status        string
}

func (s *Store) UpdateOrder(id int64, in UpdateOrderInput) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}

		if in.CustomerName != "" {
			s.orders[i].CustomerName = in.CustomerName
		}
		if in.CustomerEmail != nil {
			s.orders[i].CustomerEmail = *in.CustomerEmail
		}
		if in.Status != "" {
			s.orders[i].Status = in.Status
		}
		return s.orders[i], nil
	}
	return Order{}, ErrOrderNotFound
}

func (s *Store) DeleteOrder(id int64) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			deleted := s.orders[i]
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return deleted, nil
		}
	}
	return Order{}, ErrOrderNotFound
}

type Summary struct {
	Inventory struct {
		Total      int `json:"total"`
		LowStock   int `json:"lowStock"`
		OutOfStock int `json:"outOfStock"`
	} `json:"inventory"`
	Orders struct {
		Total      int `json:"total"`
		Pending    int `json:"pending"`
		Processing int `json:"processing"`
	} `json:"orders"`
	Suppliers struct {
		Total    int `json:"total"`
		Active   int `json:"active"`
		Inactive int `json:"inactive"`
	} `json:"suppliers"`
}

func (s *Store) Summarize() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out Summary

	out.Inventory.Total = len(s.items)
	for _, it := range s.items {
		switch it.Status {
		case string(model.StockStatusLowStock):
			out.Inventory.LowStock++
		case string(model.StockStatusOutOfStock):
			out.Inventory.OutOfStock++
		}
	}

	out.Orders.Total = len(s.orders)
	for _, o := range s.orders {
		switch o.Status {
		case "pending":
			out.Orders.Pending++
		case "processing":
			out.Orders.Processing++
		}
	}

	out.Suppliers.Total = len(s.suppliers)
	for _, sp := range s.suppliers {
		switch sp.Status {
		case "active":
			out.Suppliers.Active++
		case "inactive":
			out.Suppliers.Inactive++
		}
	}

	return out
}

func findItem(items []Item, id int64) *Item {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

func nextItemID(items []Item) int64 {
	max := int64(0)
	for _, it := range items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max + 1
}

func nextSupplierID(suppliers []Supplier) int64 {
	max := int64(0)
	for _, sp := range suppliers {
		if sp.ID > max {
			max = sp.ID
		}
	}
	return max + 1
}

func nextOrderID(orders []Order) int64 {
	max := int64(0)
	for _, o := range orders {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}
