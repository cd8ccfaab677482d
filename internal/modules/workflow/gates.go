package workflow

import (
	"context"

	"prodflow/internal/domain"
)

// GateChecker validates the stage-specific preconditions a project must meet
// before it may leave its current stage. Checks are pure reads over
// persisted state.
type GateChecker struct {
	artifacts ArtifactStore
}

func NewGateChecker(artifacts ArtifactStore) *GateChecker {
	return &GateChecker{artifacts: artifacts}
}

// CanAdvance returns nil when the project may leave its current stage, or a
// GateBlockedError naming the unmet precondition.
func (g *GateChecker) CanAdvance(ctx context.Context, p *domain.Project) error {
	switch p.Status {
	case domain.ProjectValidation:
		ok, err := g.artifacts.Exists(ctx, p.ID, domain.DocMaterialsList)
		if err != nil {
			return err
		}
		if !ok {
			return &GateBlockedError{Reason: "materials list required before leaving validation"}
		}

	case domain.ProjectPurchasing:
		ok, err := g.artifacts.Exists(ctx, p.ID, domain.DocPurchaseOrder)
		if err != nil {
			return err
		}
		if !ok {
			return &GateBlockedError{Reason: "purchase order required before leaving purchasing"}
		}

	case domain.ProjectWarehouse:
		stage := p.Stage(domain.StageWarehouse)
		if stage == nil || !stage.MaterialsConfirmed {
			return &GateBlockedError{Reason: "materials must be confirmed before leaving warehouse"}
		}
	}

	return nil
}
