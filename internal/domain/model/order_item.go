package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。
// 商品名と単価は注文時点のスナップショットで、以後変更しない。
type OrderItem struct {
	ID                  string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID             string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID           string          `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductNameSnapshot string          `gorm:"type:varchar(255);not null;column:product_name" json:"product_name"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	PriceSnapshot       decimal.Decimal `gorm:"type:numeric(12,2);not null;column:price" json:"price"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
