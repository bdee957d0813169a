package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders           repo.OrderRepository
	orderItems       repo.OrderItemRepository
	items            repo.InventoryItemRepository
	stock            repo.InventoryStockRepository
	supplierProducts repo.SupplierProductRepository
	suppliers        repo.SupplierRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                    { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository            { return r.orderItems }
func (r *txReposGorm) Items() repo.InventoryItemRepository             { return r.items }
func (r *txReposGorm) Stock() repo.InventoryStockRepository            { return r.stock }
func (r *txReposGorm) SupplierProducts() repo.SupplierProductRepository { return r.supplierProducts }
func (r *txReposGorm) Suppliers() repo.SupplierRepository              { return r.suppliers }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:           NewOrderGormRepository(tx),
			orderItems:       NewOrderItemGormRepository(tx),
			items:            NewInventoryItemGormRepository(tx),
			stock:            NewInventoryStockGormRepository(tx),
			supplierProducts: NewSupplierProductGormRepository(tx),
			suppliers:        NewSupplierGormRepository(tx),
		}
		return fn(r)
	})
}
