package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type DashboardUsecase struct {
	itemRepo     repo.InventoryItemRepository
	orderRepo    repo.OrderRepository
	supplierRepo repo.SupplierRepository
}

func NewDashboardUsecase(
	itemRepo repo.InventoryItemRepository,
	orderRepo repo.OrderRepository,
	supplierRepo repo.SupplierRepository,
) *DashboardUsecase {
	return &DashboardUsecase{
		itemRepo:     itemRepo,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
	}
}

type InventorySummary struct {
	Total      int `json:"total"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

type OrderSummary struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
}

type SupplierSummary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

type DashboardSummary struct {
	Inventory InventorySummary `json:"inventory"`
	Orders    OrderSummary     `json:"orders"`
	Suppliers SupplierSummary  `json:"suppliers"`
}

// ダッシュボード用の集計。
// 件数程度の規模なので全件を読んで数える
func (u *DashboardUsecase) Summary(ctx context.Context) (DashboardSummary, error) {
	items, err := u.itemRepo.List(ctx)
	if err != nil {
		return DashboardSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	orders, err := u.orderRepo.List(ctx)
	if err != nil {
		return DashboardSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	suppliers, err := u.supplierRepo.List(ctx)
	if err != nil {
		return DashboardSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var summary DashboardSummary

	summary.Inventory.Total = len(items)
	for _, it := range items {
		switch model.DeriveStockStatus(it.Stock) {
		case model.StockStatusLowStock:
			summary.Inventory.LowStock++
		case model.StockStatusOutOfStock:
			summary.Inventory.OutOfStock++
		}
	}

	summary.Orders.Total = len(orders)
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusPending:
			summary.Orders.Pending++
		case model.OrderStatusProcessing:
			summary.Orders.Processing++
		}
	}

	summary.Suppliers.Total = len(suppliers)
	for _, s := range suppliers {
		switch s.Status {
		case model.SupplierStatusActive:
			summary.Suppliers.Active++
		case model.SupplierStatusInactive:
			summary.Suppliers.Inactive++
		}
	}

	return summary, nil
}
