package purchase

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"prodflow/internal/domain"
)

type Service struct {
	orders   PurchaseOrderRepository
	projects ProjectReader
}

func NewService(orders PurchaseOrderRepository, projects ProjectReader) *Service {
	return &Service{orders: orders, projects: projects}
}

var validStatuses = map[domain.PurchaseOrderStatus]bool{
	domain.POPending:   true,
	domain.POApproved:  true,
	domain.POReceived:  true,
	domain.POCancelled: true,
}

// Create records a purchase order. The total is always derived from the
// items server-side; client-sent totals are ignored.
func (s *Service) Create(ctx context.Context, createdBy int64, req CreateOrderRequest) (*domain.PurchaseOrder, error) {
	if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectGone
		}
		return nil, err
	}

	po := &domain.PurchaseOrder{
		ProjectID: req.ProjectID,
		Supplier:  req.Supplier,
		Notes:     req.Notes,
		Status:    domain.POPending,
		CreatedBy: createdBy,
	}
	for _, it := range req.Items {
		po.Items = append(po.Items, domain.PurchaseOrderItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
		po.Total += float64(it.Quantity) * it.UnitPrice
	}

	if err := s.orders.Create(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

func (s *Service) List(ctx context.Context, projectID *int64) ([]domain.PurchaseOrder, error) {
	return s.orders.List(ctx, projectID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	po, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return po, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*domain.PurchaseOrder, error) {
	st := domain.PurchaseOrderStatus(status)
	if !validStatuses[st] {
		return nil, ErrInvalidStatus
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
