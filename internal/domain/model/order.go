package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// 注文。
// 仕入先カタログ注文はsupplier_id、在庫引当注文はcustomer_nameを持つ。
// テーブルは1つに正規化してある。
type Order struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber string  `gorm:"type:varchar(50);not null;index" json:"order_number"`
	SupplierID  *string `gorm:"type:uuid;index" json:"supplier_id"`

	CustomerName  string `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerEmail string `gorm:"type:varchar(255)" json:"customer_email"`

	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//明細数量の合計
	ItemsCount int64 `gorm:"not null" json:"items_count"`

	//作成時点の合計金額。以後は再計算しない
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"suppliers,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}
