package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Items() InventoryItemRepository
	Stock() InventoryStockRepository
	SupplierProducts() SupplierProductRepository
	Suppliers() SupplierRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// 注文確定と在庫減算を必ず同一トランザクションに入れるために使う。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
