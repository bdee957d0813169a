package model

import "time"

type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "Active"
	SupplierStatusInactive SupplierStatus = "Inactive"
)

// 仕入先
type Supplier struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	ContactPerson string         `gorm:"type:varchar(255)" json:"contact_person"`
	Email         string         `gorm:"type:varchar(255);not null" json:"email"`
	Phone         string         `gorm:"type:varchar(30)" json:"phone"`
	Address       string         `gorm:"type:varchar(255)" json:"address"`
	Status        SupplierStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//評価（未評価はnull）
	Rating *float64 `gorm:"type:numeric(3,1)" json:"rating"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
