package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	//仕入先の表示名付きで全件を返す
	List(ctx context.Context) ([]model.Order, error)

	FindByID(ctx context.Context, orderID string) (model.Order, error)

	Create(ctx context.Context, order model.Order) (model.Order, error)

	//注文番号の連番用。衝突耐性は保証しない
	Count(ctx context.Context) (int64, error)

	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
}
