package gateway

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStore_CreateItem_DerivesStatus(t *testing.T) {
	s := NewStore()

	item, err := s.CreateItem(CreateItemInput{Name: "Turbo Kit", SKU: "TK-01", Category: "Engine", Quantity: 3, Price: 1200})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, "low-stock", item.Status)

	got, err := s.GetItem(item.ID)
	assert.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestStore_CreateItem_DuplicateSKU(t *testing.T) {
	s := NewSeededStore()

	_, err := s.CreateItem(CreateItemInput{Name: "Copy", SKU: "RW-001", Category: "Accessories", Quantity: 1, Price: 1})
	assert.True(t, errors.Is(err, ErrDuplicateSKU))
}

func TestStore_UpdateItem_PartialAndStatusRefresh(t *testing.T) {
	s := Store{items: []Item{
		{ID: 1, Name: "Racing Wheel", SKU: "RW-001", Category: "Accessories", Quantity: 15, Price: 299.99, Status: "in-stock"},
	}}

	qty := int64(0)
	item, err := s.UpdateItem(1, UpdateItemInput{Quantity: &qty})
	assert.NoError(t, err)

	//数量だけ変わり、statusは保存値が引き直される
	assert.Equal(t, "Racing Wheel", item.Name)
	assert.Equal(t, "RW-001", item.SKU)
	assert.Equal(t, int64(0), item.Quantity)
	assert.Equal(t, 299.99, item.Price)
	assert.Equal(t, "out-of-stock", item.Status)
}

func TestStore_UpdateItem_NotFound(t *testing.T) {
	s := NewStore()

	_, err := s.UpdateItem(99, UpdateItemInput{Name: "x"})
	assert.True(t, errors.Is(err, ErrItemNotFound))
}

func TestStore_DeleteItem_ReturnsDeleted(t *testing.T) {
	s := NewSeededStore()

	deleted, err := s.DeleteItem(2)
	assert.NoError(t, err)
	assert.Equal(t, "Carbon Fiber Spoiler", deleted.Name)

	_, err = s.GetItem(2)
	assert.True(t, errors.Is(err, ErrItemNotFound))
	assert.Len(t, s.ListItems(), 3)
}

func TestStore_CreateSupplier_DefaultsActiveAndRejectsDuplicateEmail(t *testing.T) {
	s := NewSeededStore()

	sp, err := s.CreateSupplier(CreateSupplierInput{Name: "NOR4 Parts", Email: "lando@nor4parts.com"})
	assert.NoError(t, err)
	assert.Equal(t, int64(4), sp.ID)
	assert.Equal(t, "active", sp.Status)

	_, err = s.CreateSupplier(CreateSupplierInput{Name: "Copy", Email: "lewis@lh44racing.com"})
	assert.True(t, errors.Is(err, ErrDuplicateEmail))
}

func TestStore_PlaceOrder_DecrementsStock(t *testing.T) {
	s := NewSeededStore()

	order, err := s.PlaceOrder(PlaceOrderInput{
		CustomerName: "Oscar Piastri",
		Lines: []OrderLine{
			{ID: 1, Quantity: 2},
			{ID: 3, Quantity: 5},
		},
	})
	assert.NoError(t, err)

	assert.Equal(t, "pending", order.Status)
	assert.InDelta(t, 2*299.99+5*899.99, order.TotalAmount, 0.001)
	assert.Equal(t, fmt.Sprintf("ORD-%d-004", time.Now().Year()), order.OrderNumber)

	wheel, _ := s.GetItem(1)
	assert.Equal(t, int64(13), wheel.Quantity)

	//5個全部買ったので在庫切れに落ちる
	brakes, _ := s.GetItem(3)
	assert.Equal(t, int64(0), brakes.Quantity)
	assert.Equal(t, "out-of-stock", brakes.Status)
}

func TestStore_PlaceOrder_InsufficientStockLeavesStoreUntouched(t *testing.T) {
	s := NewSeededStore()

	_, err := s.PlaceOrder(PlaceOrderInput{
		CustomerName: "Oscar Piastri",
		Lines: []OrderLine{
			{ID: 1, Quantity: 2},
			{ID: 3, Quantity: 6},
		},
	})

	var insuff *InsufficientStockError
	assert.True(t, errors.As(err, &insuff))
	assert.Equal(t, "Not enough stock for item Performance Brake Kit", err.Error())

	//1行でも失敗したら何も減らさない
	wheel, _ := s.GetItem(1)
	assert.Equal(t, int64(15), wheel.Quantity)
	assert.Len(t, s.ListOrders(), 3)
}

func TestStore_PlaceOrder_UnknownLineItem(t *testing.T) {
	s := NewSeededStore()

	_, err := s.PlaceOrder(PlaceOrderInput{
		CustomerName: "Oscar Piastri",
		Lines:        []OrderLine{{ID: 42, Quantity: 1}},
	})

	var unknown *UnknownLineItemError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Item with ID 42 not found", err.Error())
}

func TestStore_Summarize(t *testing.T) {
	s := NewSeededStore()

	sum := s.Summarize()

	assert.Equal(t, 4, sum.Inventory.Total)
	assert.Equal(t, 2, sum.Inventory.LowStock)
	assert.Equal(t, 1, sum.Inventory.OutOfStock)

	assert.Equal(t, 3, sum.Orders.Total)
	assert.Equal(t, 1, sum.Orders.Pending)
	assert.Equal(t, 1, sum.Orders.Processing)

	assert.Equal(t, 3, sum.Suppliers.Total)
	assert.Equal(t, 2, sum.Suppliers.Active)
	assert.Equal(t, 1, sum.Suppliers.Inactive)
}
