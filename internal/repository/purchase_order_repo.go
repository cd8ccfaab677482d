package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"prodflow/internal/domain"
)

type PurchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

func (r *PurchaseOrderRepository) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

func (r *PurchaseOrderRepository) GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	tx := r.db.WithContext(ctx).Preload("Items").First(&po, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &po, nil
}

func (r *PurchaseOrderRepository) List(ctx context.Context, projectID *int64) ([]domain.PurchaseOrder, error) {
	q := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if projectID != nil {
		q = q.Where("project_id = ?", *projectID)
	}
	var orders []domain.PurchaseOrder
	tx := q.Find(&orders)
	return orders, tx.Error
}

func (r *PurchaseOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.PurchaseOrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.PurchaseOrder{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()}).Error
}
