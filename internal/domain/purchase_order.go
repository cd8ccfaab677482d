package domain

import "time"

type PurchaseOrderStatus string

const (
	POPending   PurchaseOrderStatus = "pending"
	POApproved  PurchaseOrderStatus = "approved"
	POReceived  PurchaseOrderStatus = "received"
	POCancelled PurchaseOrderStatus = "cancelled"
)

type PurchaseOrder struct {
	ID        int64               `json:"id" gorm:"primaryKey"`
	ProjectID int64               `json:"project_id" gorm:"index"`
	Supplier  string              `json:"supplier"`
	Total     float64             `json:"total"`
	Status    PurchaseOrderStatus `json:"status"`
	Notes     string              `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy int64               `json:"created_by"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`

	Items []PurchaseOrderItem `json:"items,omitempty" gorm:"foreignKey:PurchaseOrderID"`
}

func (PurchaseOrder) TableName() string { return "purchase_orders" }

type PurchaseOrderItem struct {
	ID              int64   `json:"-" gorm:"primaryKey"`
	PurchaseOrderID int64   `json:"-" gorm:"index"`
	Description     string  `json:"description"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
}

func (PurchaseOrderItem) TableName() string { return "purchase_order_items" }
