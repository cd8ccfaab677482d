package purchase

type OrderItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64 `json:"unit_price" binding:"min=0"`
}

type CreateOrderRequest struct {
	ProjectID int64              `json:"project_id" binding:"required"`
	Supplier  string             `json:"supplier" binding:"required"`
	Notes     string             `json:"notes"`
	Items     []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
