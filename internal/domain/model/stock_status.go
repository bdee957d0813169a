package model

// 在庫数から導出する表示ステータス
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in-stock"
	StockStatusLowStock   StockStatus = "low-stock"
	StockStatusOutOfStock StockStatus = "out-of-stock"
)

// 低在庫のしきい値。全経路でこの定数だけを使う
const LowStockThreshold int64 = 10

// 在庫数→ステータスの純関数
func DeriveStockStatus(stock int64) StockStatus {
	if stock <= 0 {
		return StockStatusOutOfStock
	}
	if stock <= LowStockThreshold {
		return StockStatusLowStock
	}
	return StockStatusInStock
}
