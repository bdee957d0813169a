package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderUsecaseForTest(
	items *ItemRepoMock,
	stock *StockRepoMock,
	orders *OrderRepoMock,
	orderItems *OrderItemRepoMock,
	suppliers *SupplierRepoMock,
	supplierProducts *SupplierProductRepoMock,
) *usecase.OrderUsecase {
	tx := &txManagerStub{repos: &txReposStub{
		orders:           orders,
		orderItems:       orderItems,
		items:            items,
		stock:            stock,
		suppliers:        suppliers,
		supplierProducts: supplierProducts,
	}}
	return usecase.NewOrderUsecase(tx, orders, orderItems)
}

func TestOrderUsecase_PlaceInventoryOrder_Validation(t *testing.T) {
	uc := newOrderUsecaseForTest(new(ItemRepoMock), new(StockRepoMock), new(OrderRepoMock), new(OrderItemRepoMock), new(SupplierRepoMock), new(SupplierProductRepoMock))

	_, err := uc.PlaceInventoryOrder(context.Background(), usecase.PlaceInventoryOrderInput{
		CustomerName: "",
		Lines:        []usecase.OrderLineInput{{ProductID: "id-1", Quantity: 1}},
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.PlaceInventoryOrder(context.Background(), usecase.PlaceInventoryOrderInput{
		CustomerName: "Toto Wolff",
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.PlaceInventoryOrder(context.Background(), usecase.PlaceInventoryOrderInput{
		CustomerName: "Toto Wolff",
		Lines:        []usecase.OrderLineInput{{ProductID: "id-1", Quantity: 0}},
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestOrderUsecase_PlaceInventoryOrder_TotalAndSnapshots(t *testing.T) {
	items := new(ItemRepoMock)
	stock := new(StockRepoMock)
	orders := new(OrderRepoMock)
	orderItems := new(OrderItemRepoMock)
	uc := newOrderUsecaseForTest(items, stock, orders, orderItems, new(SupplierRepoMock), new(SupplierProductRepoMock))

	items.On("FindByID", mock.Anything, "id-1").Return(model.InventoryItem{
		ID: "id-1", Name: "Wheel", Stock: 20, Price: decimal.RequireFromString("10.00"),
	}, nil)
	items.On("FindByID", mock.Anything, "id-2").Return(model.InventoryItem{
		ID: "id-2", Name: "Spoiler", Stock: 20, Price: decimal.RequireFromString("5.00"),
	}, nil)

	stock.On("DecreaseStockIfEnough", mock.Anything, "id-1", int64(2)).Return(true, nil)
	stock.On("DecreaseStockIfEnough", mock.Anything, "id-2", int64(3)).Return(true, nil)

	orders.On("Count", mock.Anything).Return(int64(3), nil)
	orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		// 10.00*2 + 5.00*3 = 35.00
		return o.TotalAmount.Equal(decimal.RequireFromString("35.00")) &&
			o.ItemsCount == 5 &&
			o.Status == model.OrderStatusPending &&
			o.CustomerName == "Toto Wolff" &&
			strings.HasPrefix(o.OrderNumber, "ORD-") &&
			strings.HasSuffix(o.OrderNumber, "-004")
	})).Return(model.Order{ID: "order-1", OrderNumber: "ORD-2026-004", Status: model.OrderStatusPending, ItemsCount: 5, TotalAmount: decimal.RequireFromString("35.00")}, nil)

	orderItems.On("CreateBulk", mock.Anything, "order-1", mock.MatchedBy(func(its []model.OrderItem) bool {
		return len(its) == 2 &&
			its[0].ProductNameSnapshot == "Wheel" &&
			its[0].PriceSnapshot.Equal(decimal.RequireFromString("10.00")) &&
			its[1].ProductNameSnapshot == "Spoiler"
	})).Return(nil)

	out, err := uc.PlaceInventoryOrder(context.Background(), usecase.PlaceInventoryOrderInput{
		CustomerName: "Toto Wolff",
		Lines: []usecase.OrderLineInput{
			{ProductID: "id-1", Quantity: 2},
			{ProductID: "id-2", Quantity: 3},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "35", out.TotalAmount.String())
	assert.Equal(t, int64(5), out.ItemsCount)
	assert.Len(t, out.Items, 2)

	items.AssertExpectations(t)
	stock.AssertExpectations(t)
	orders.AssertExpectations(t)
	orderItems.AssertExpectations(t)
}

func TestOrderUsecase_PlaceInventoryOrder_InsufficientStock(t *testing.T) {
	items := new(ItemRepoMock)
	stock := new(StockRepoMock)
	orders := new(OrderRepoMock)
	orderItems := new(OrderItemRepoMock)
	uc := newOrderUsecaseForTest(items, stock, orders, orderItems, new(SupplierRepoMock), new(SupplierProductRepoMock))

	items.On("FindByID", mock.Anything, "id-1").Return(model.InventoryItem{
		ID: "id-1", Name: "Wheel", Stock: 1, Price: decimal.RequireFromString("10.00"),
	}, nil)
	stock.On("DecreaseStockIfEnough", mock.Anything, "id-1", int64(5)).Return(false, nil)

	_, err := uc.PlaceInventoryOrder(context.Background(), usecase.PlaceInventoryOrderInput{
		CustomerName: "Toto Wolff",
		Lines:        []usecase.OrderLineInput{{ProductID: "id-1", Quantity: 5}},
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), "not enough stock")

	//注文は作られない
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	orderItems.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceInventoryOrder_ItemNotFound(t *testing.T) {
	items := new(ItemRepoMock)
	stock := new(StockRepoMock)
	orders := new(OrderRepoMock)
	uc := newOrderUsecaseForTest(items, stock, orders, new(OrderItemRepoMock), new(SupplierRepoMock), new(SupplierProductRepoMock))

	items.On("FindByID", mock.Anything, "missing").Return(model.InventoryItem{}, repo.ErrNotFound)

	_, err := uc.PlaceInventoryOrder(context.Background(), usecase.PlaceInventoryOrderInput{
		CustomerName: "Toto Wolff",
		Lines:        []usecase.OrderLineInput{{ProductID: "missing", Quantity: 1}},
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	//在庫には触らない
	stock.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceCatalogOrder_Success(t *testing.T) {
	suppliers := new(SupplierRepoMock)
	supplierProducts := new(SupplierProductRepoMock)
	orders := new(OrderRepoMock)
	orderItems := new(OrderItemRepoMock)
	uc := newOrderUsecaseForTest(new(ItemRepoMock), new(StockRepoMock), orders, orderItems, suppliers, supplierProducts)

	suppliers.On("FindByID", mock.Anything, "sup-1").Return(model.Supplier{ID: "sup-1", Name: "LH44"}, nil)
	supplierProducts.On("FindByID", mock.Anything, "prod-1").Return(model.SupplierProduct{
		ID: "prod-1", SupplierID: "sup-1", ProductName: "Brake Kit",
		Price: decimal.NewNullDecimal(decimal.RequireFromString("899.99")),
	}, nil)

	orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.SupplierID != nil && *o.SupplierID == "sup-1" &&
			o.TotalAmount.Equal(decimal.RequireFromString("1799.98")) &&
			strings.HasPrefix(o.OrderNumber, "ORD-")
	})).Return(model.Order{ID: "order-1", TotalAmount: decimal.RequireFromString("1799.98")}, nil)
	orderItems.On("CreateBulk", mock.Anything, "order-1", mock.Anything).Return(nil)

	out, err := uc.PlaceCatalogOrder(context.Background(), usecase.PlaceCatalogOrderInput{
		SupplierID: "sup-1",
		Lines:      []usecase.OrderLineInput{{ProductID: "prod-1", Quantity: 2}},
	})
	assert.NoError(t, err)
	assert.Equal(t, "1799.98", out.TotalAmount.String())
	//取得済みの仕入先名をレスポンスに含める
	assert.Equal(t, "LH44", out.SupplierName)

	suppliers.AssertExpectations(t)
	supplierProducts.AssertExpectations(t)
	orders.AssertExpectations(t)
	orderItems.AssertExpectations(t)
}

func TestOrderUsecase_PlaceCatalogOrder_ProductOfOtherSupplier(t *testing.T) {
	suppliers := new(SupplierRepoMock)
	supplierProducts := new(SupplierProductRepoMock)
	orders := new(OrderRepoMock)
	uc := newOrderUsecaseForTest(new(ItemRepoMock), new(StockRepoMock), orders, new(OrderItemRepoMock), suppliers, supplierProducts)

	suppliers.On("FindByID", mock.Anything, "sup-1").Return(model.Supplier{ID: "sup-1"}, nil)
	supplierProducts.On("FindByID", mock.Anything, "prod-9").Return(model.SupplierProduct{
		ID: "prod-9", SupplierID: "sup-2", ProductName: "Other",
	}, nil)

	_, err := uc.PlaceCatalogOrder(context.Background(), usecase.PlaceCatalogOrderInput{
		SupplierID: "sup-1",
		Lines:      []usecase.OrderLineInput{{ProductID: "prod-9", Quantity: 1}},
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_UpdateStatus(t *testing.T) {
	orders := new(OrderRepoMock)
	stock := new(StockRepoMock)
	uc := newOrderUsecaseForTest(new(ItemRepoMock), stock, orders, new(OrderItemRepoMock), new(SupplierRepoMock), new(SupplierProductRepoMock))

	orders.On("FindByID", mock.Anything, "order-1").Return(model.Order{ID: "order-1", Status: model.OrderStatusPending}, nil)
	orders.On("UpdateStatus", mock.Anything, "order-1", model.OrderStatusCompleted).Return(nil)

	out, err := uc.UpdateStatus(context.Background(), "order-1", "completed")
	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusCompleted), out.Status)

	//未知のstatusは400
	_, err = uc.UpdateStatus(context.Background(), "order-1", "shipped")
	assertHTTPStatus(t, err, http.StatusBadRequest)

	//完了への遷移では在庫に触らない
	stock.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertExpectations(t)
}

func TestOrderUsecase_UpdateStatus_CancelRestoresStock(t *testing.T) {
	orders := new(OrderRepoMock)
	orderItems := new(OrderItemRepoMock)
	stock := new(StockRepoMock)
	uc := newOrderUsecaseForTest(new(ItemRepoMock), stock, orders, orderItems, new(SupplierRepoMock), new(SupplierProductRepoMock))

	orders.On("FindByID", mock.Anything, "order-1").Return(model.Order{ID: "order-1", Status: model.OrderStatusPending}, nil)
	orderItems.On("ListByOrderID", mock.Anything, "order-1").Return([]model.OrderItem{
		{ID: "oi-1", ProductID: "id-1", Quantity: 2},
		{ID: "oi-2", ProductID: "id-2", Quantity: 3},
	}, nil)

	//引き当てた数だけ戻す
	stock.On("IncreaseStock", mock.Anything, "id-1", int64(2)).Return(nil)
	stock.On("IncreaseStock", mock.Anything, "id-2", int64(3)).Return(nil)
	orders.On("UpdateStatus", mock.Anything, "order-1", model.OrderStatusCancelled).Return(nil)

	out, err := uc.UpdateStatus(context.Background(), "order-1", "cancelled")
	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusCancelled), out.Status)

	stock.AssertExpectations(t)
	orders.AssertExpectations(t)
	orderItems.AssertExpectations(t)
}

func TestOrderUsecase_UpdateStatus_CancelCatalogOrderSkipsRestock(t *testing.T) {
	orders := new(OrderRepoMock)
	orderItems := new(OrderItemRepoMock)
	stock := new(StockRepoMock)
	uc := newOrderUsecaseForTest(new(ItemRepoMock), stock, orders, orderItems, new(SupplierRepoMock), new(SupplierProductRepoMock))

	supplierID := "sup-1"
	orders.On("FindByID", mock.Anything, "order-1").Return(model.Order{
		ID: "order-1", SupplierID: &supplierID, Status: model.OrderStatusPending,
	}, nil)
	orders.On("UpdateStatus", mock.Anything, "order-1", model.OrderStatusCancelled).Return(nil)

	_, err := uc.UpdateStatus(context.Background(), "order-1", "cancelled")
	assert.NoError(t, err)

	//仕入先発注は在庫を引いていないので戻さない
	stock.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
	orderItems.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

func TestOrderUsecase_UpdateStatus_CancelledIsTerminal(t *testing.T) {
	orders := new(OrderRepoMock)
	stock := new(StockRepoMock)
	uc := newOrderUsecaseForTest(new(ItemRepoMock), stock, orders, new(OrderItemRepoMock), new(SupplierRepoMock), new(SupplierProductRepoMock))

	orders.On("FindByID", mock.Anything, "order-1").Return(model.Order{ID: "order-1", Status: model.OrderStatusCancelled}, nil)

	//cancelled→completedは拒否
	_, err := uc.UpdateStatus(context.Background(), "order-1", "completed")
	assertHTTPStatus(t, err, http.StatusBadRequest)

	//cancelled→cancelledは何もせず200（二重在庫戻しの防止）
	out, err := uc.UpdateStatus(context.Background(), "order-1", "cancelled")
	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusCancelled), out.Status)

	stock.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
