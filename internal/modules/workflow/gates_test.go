package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"prodflow/internal/domain"
)

type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Exists(ctx context.Context, projectID int64, documentType string) (bool, error) {
	args := m.Called(ctx, projectID, documentType)
	return args.Bool(0), args.Error(1)
}

func TestGateChecker_DesignAlwaysPasses(t *testing.T) {
	artifacts := new(MockArtifactStore)
	g := NewGateChecker(artifacts)

	p := &domain.Project{ID: 1, Status: domain.ProjectDesign}
	assert.NoError(t, g.CanAdvance(context.Background(), p))
	artifacts.AssertNotCalled(t, "Exists")
}

func TestGateChecker_ValidationRequiresMaterialsList(t *testing.T) {
	artifacts := new(MockArtifactStore)
	g := NewGateChecker(artifacts)
	p := &domain.Project{ID: 7, Status: domain.ProjectValidation}

	artifacts.On("Exists", mock.Anything, int64(7), domain.DocMaterialsList).Return(false, nil).Once()
	err := g.CanAdvance(context.Background(), p)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidState))

	artifacts.On("Exists", mock.Anything, int64(7), domain.DocMaterialsList).Return(true, nil).Once()
	assert.NoError(t, g.CanAdvance(context.Background(), p))

	artifacts.AssertExpectations(t)
}

func TestGateChecker_PurchasingRequiresPurchaseOrder(t *testing.T) {
	artifacts := new(MockArtifactStore)
	g := NewGateChecker(artifacts)
	p := &domain.Project{ID: 9, Status: domain.ProjectPurchasing}

	artifacts.On("Exists", mock.Anything, int64(9), domain.DocPurchaseOrder).Return(false, nil).Once()
	err := g.CanAdvance(context.Background(), p)
	assert.Error(t, err)

	var blocked *GateBlockedError
	assert.True(t, errors.As(err, &blocked))
	assert.Contains(t, blocked.Reason, "purchase order")
}

func TestGateChecker_WarehouseRequiresConfirmation(t *testing.T) {
	artifacts := new(MockArtifactStore)
	g := NewGateChecker(artifacts)

	p := &domain.Project{
		ID:     3,
		Status: domain.ProjectWarehouse,
		Stages: []domain.ProjectStage{
			{Stage: domain.StageWarehouse, Status: domain.StageInProgress},
		},
	}
	assert.Error(t, g.CanAdvance(context.Background(), p))

	p.Stages[0].MaterialsConfirmed = true
	assert.NoError(t, g.CanAdvance(context.Background(), p))
}
