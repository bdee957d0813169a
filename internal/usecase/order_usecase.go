package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	orderRepo repo.OrderRepository
	itemRepo  repo.OrderItemRepository
}

func NewOrderUsecase(tx repo.TransactionManager, orderRepo repo.OrderRepository, itemRepo repo.OrderItemRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, orderRepo: orderRepo, itemRepo: itemRepo}
}

type OrderLineInput struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type OrderItemOutput struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

type OrderOutput struct {
	ID            string            `json:"id"`
	OrderNumber   string            `json:"order_number"`
	SupplierID    *string           `json:"supplier_id"`
	SupplierName  string            `json:"supplier_name,omitempty"`
	CustomerName  string            `json:"customer_name,omitempty"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	Status        string            `json:"status"`
	ItemsCount    int64             `json:"items_count"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items,omitempty"`
}

func (u *OrderUsecase) List(ctx context.Context) ([]OrderOutput, error) {
	orders, err := u.orderRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o, nil))
	}
	return outs, nil
}

func (u *OrderUsecase) Get(ctx context.Context, orderID string) (OrderOutput, error) {
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.itemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toOrderOutput(o, items), nil
}

type PlaceInventoryOrderInput struct {
	CustomerName  string
	CustomerEmail string
	Lines         []OrderLineInput
}

// 在庫引当の注文フロー。
// 明細の解決・在庫減算・注文作成を同一トランザクションで行う。
// 途中で失敗しても在庫だけ減った状態は残らない。
func (u *OrderUsecase) PlaceInventoryOrder(ctx context.Context, in PlaceInventoryOrderInput) (OrderOutput, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "customer name is required")
	}
	if len(in.Lines) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "at least one item is required")
	}
	for _, l := range in.Lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order line")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		total := decimal.Zero
		var itemsCount int64 = 0
		orderItems := make([]model.OrderItem, 0, len(in.Lines))

		for _, l := range in.Lines {
			//対象アイテムの解決
			item, err := r.Items().FindByID(ctx, l.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("item with ID %s not found", l.ProductID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//在庫減算（足りないなら false）
			ok, err := r.Stock().DecreaseStockIfEnough(ctx, l.ProductID, l.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("not enough stock for item %s", item.Name))
			}

			//スナップショット
			orderItems = append(orderItems, model.OrderItem{
				ID:                  uuid.NewString(),
				ProductID:           item.ID,
				ProductNameSnapshot: item.Name,
				PriceSnapshot:       item.Price,
				Quantity:            l.Quantity,
			})

			total = total.Add(item.Price.Mul(decimal.NewFromInt(l.Quantity)))
			itemsCount += l.Quantity
		}

		//注文番号はORD-YYYY-NNN形式（連番、衝突耐性は保証しない）
		count, err := r.Orders().Count(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		orderNumber := fmt.Sprintf("ORD-%d-%03d", time.Now().Year(), count+1)

		created, err := r.Orders().Create(ctx, model.Order{
			ID:            uuid.NewString(),
			OrderNumber:   orderNumber,
			CustomerName:  strings.TrimSpace(in.CustomerName),
			CustomerEmail: strings.TrimSpace(in.CustomerEmail),
			Status:        model.OrderStatusPending,
			ItemsCount:    itemsCount,
			TotalAmount:   total,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, created.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

type PlaceCatalogOrderInput struct {
	SupplierID string
	Lines      []OrderLineInput
}

// 仕入先カタログからの発注フロー。
// 仕入先商品は在庫数を持たないので在庫チェックはしない。
func (u *OrderUsecase) PlaceCatalogOrder(ctx context.Context, in PlaceCatalogOrderInput) (OrderOutput, error) {
	if strings.TrimSpace(in.SupplierID) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "supplier_id is required")
	}
	if len(in.Lines) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "at least one item is required")
	}
	for _, l := range in.Lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order line")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		sup, err := r.Suppliers().FindByID(ctx, in.SupplierID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "supplier not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		total := decimal.Zero
		var itemsCount int64 = 0
		orderItems := make([]model.OrderItem, 0, len(in.Lines))

		for _, l := range in.Lines {
			p, err := r.SupplierProducts().FindByID(ctx, l.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("item with ID %s not found", l.ProductID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if p.SupplierID != in.SupplierID {
				return NewHTTPError(http.StatusBadRequest, "product does not belong to supplier")
			}

			price := decimal.Zero
			if p.Price.Valid {
				price = p.Price.Decimal
			}

			orderItems = append(orderItems, model.OrderItem{
				ID:                  uuid.NewString(),
				ProductID:           p.ID,
				ProductNameSnapshot: p.ProductName,
				PriceSnapshot:       price,
				Quantity:            l.Quantity,
			})

			total = total.Add(price.Mul(decimal.NewFromInt(l.Quantity)))
			itemsCount += l.Quantity
		}

		supplierID := in.SupplierID
		created, err := r.Orders().Create(ctx, model.Order{
			ID:          uuid.NewString(),
			OrderNumber: fmt.Sprintf("ORD-%d", time.Now().UnixMilli()),
			SupplierID:  &supplierID,
			Status:      model.OrderStatusPending,
			ItemsCount:  itemsCount,
			TotalAmount: total,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, created.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created.Supplier = &sup
		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ステータス遷移は明示的なユーザー操作でのみ行う。
// キャンセルへの遷移では引き当てた在庫を戻すので、更新と在庫戻しを同一トランザクションで行う。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID string, status string) (OrderOutput, error) {
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	parsed, ok := parseOrderStatus(status)
	if !ok {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//すでに同じなら何もしない（200）
		if o.Status == parsed {
			out = toOrderOutput(o, nil)
			return nil
		}

		//キャンセル済みは終端。二重の在庫戻しも防ぐ
		if o.Status == model.OrderStatusCancelled {
			return NewHTTPError(http.StatusBadRequest, "cannot change cancelled order")
		}

		//キャンセル時だけ在庫戻し。仕入先発注（SupplierID付き）は在庫を引いていない
		if parsed == model.OrderStatusCancelled && o.SupplierID == nil {
			items, err := r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			for _, it := range items {
				if err := r.Stock().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, parsed); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = parsed
		out = toOrderOutput(o, nil)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func parseOrderStatus(s string) (model.OrderStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return model.OrderStatusPending, true
	case "processing":
		return model.OrderStatusProcessing, true
	case "completed":
		return model.OrderStatusCompleted, true
	case "cancelled":
		return model.OrderStatusCancelled, true
	default:
		return "", false
	}
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	out := OrderOutput{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		SupplierID:    o.SupplierID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        string(o.Status),
		ItemsCount:    o.ItemsCount,
		TotalAmount:   o.TotalAmount,
		CreatedAt:     o.CreatedAt,
	}
	if o.Supplier != nil {
		out.SupplierName = o.Supplier.Name
	}
	for _, it := range items {
		out.Items = append(out.Items, OrderItemOutput{
			ProductID:   it.ProductID,
			ProductName: it.ProductNameSnapshot,
			Price:       it.PriceSnapshot,
			Quantity:    it.Quantity,
		})
	}
	return out
}
