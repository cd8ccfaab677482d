package purchase

import (
	"context"

	"prodflow/internal/domain"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	List(ctx context.Context, projectID *int64) ([]domain.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PurchaseOrderStatus) error
}

type ProjectReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
}
