package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"prodflow/internal/domain"
)

type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	args := m.Called(ctx, po)
	if po != nil {
		po.ID = 31
	}
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) List(ctx context.Context, projectID *int64) ([]domain.PurchaseOrder, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.PurchaseOrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockProjectReader struct {
	mock.Mock
}

func (m *MockProjectReader) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func TestService_Create_DerivesTotalFromItems(t *testing.T) {
	orders := new(MockPurchaseOrderRepository)
	projects := new(MockProjectReader)
	svc := NewService(orders, projects)

	projects.On("GetByID", mock.Anything, int64(8)).Return(&domain.Project{ID: 8}, nil)
	orders.On("Create", mock.Anything, mock.Anything).Return(nil)

	po, err := svc.Create(context.Background(), 3, CreateOrderRequest{
		ProjectID: 8,
		Supplier:  "SteelCo",
		Items: []OrderItemRequest{
			{Description: "Steel sheet", Quantity: 10, UnitPrice: 25.5},
			{Description: "Bolts M8", Quantity: 200, UnitPrice: 0.4},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.POPending, po.Status)
	assert.InDelta(t, 335.0, po.Total, 0.001)
	assert.Len(t, po.Items, 2)
}

func TestService_Create_UnknownProject(t *testing.T) {
	orders := new(MockPurchaseOrderRepository)
	projects := new(MockProjectReader)
	svc := NewService(orders, projects)

	projects.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), 3, CreateOrderRequest{
		ProjectID: 99,
		Supplier:  "SteelCo",
		Items:     []OrderItemRequest{{Description: "x", Quantity: 1, UnitPrice: 1}},
	})

	assert.ErrorIs(t, err, ErrProjectGone)
	orders.AssertNotCalled(t, "Create")
}

func TestService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	orders := new(MockPurchaseOrderRepository)
	svc := NewService(orders, new(MockProjectReader))

	_, err := svc.UpdateStatus(context.Background(), 31, "shipped")

	assert.ErrorIs(t, err, ErrInvalidStatus)
	orders.AssertNotCalled(t, "UpdateStatus")
}

func TestService_UpdateStatus_Success(t *testing.T) {
	orders := new(MockPurchaseOrderRepository)
	svc := NewService(orders, new(MockProjectReader))

	orders.On("GetByID", mock.Anything, int64(31)).Return(&domain.PurchaseOrder{ID: 31, Status: domain.POPending}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(31), domain.POReceived).Return(nil)

	_, err := svc.UpdateStatus(context.Background(), 31, "received")

	assert.NoError(t, err)
	orders.AssertExpectations(t)
}
