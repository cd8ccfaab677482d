package domain

// StageTransition describes how a project leaves its current stage: which
// stage record is closed, which status comes next, which stage record (if
// any) opens, and the role responsible for the opened stage.
type StageTransition struct {
	CurrentStage StageKey
	NextStatus   ProjectStatus
	NextStage    StageKey // empty when the transition is terminal
	NextRole     UserRole // empty when the transition is terminal
}

// stageTable is the single source of truth for stage order. Nothing else may
// hard-code successor stages or responsible roles.
var stageTable = map[ProjectStatus]StageTransition{
	ProjectDesign:        {StageDesign, ProjectValidation, StageValidation, RoleManufacturingChief},
	ProjectValidation:    {StageValidation, ProjectPurchasing, StagePurchasing, RolePurchasing},
	ProjectPurchasing:    {StagePurchasing, ProjectWarehouse, StageWarehouse, RoleWarehouse},
	ProjectWarehouse:     {StageWarehouse, ProjectManufacturing, StageManufacturing, RoleDesigner},
	ProjectManufacturing: {StageManufacturing, ProjectCompleted, "", ""},
}

// Transition returns the table entry for a status that can still advance.
func Transition(status ProjectStatus) (StageTransition, bool) {
	t, ok := stageTable[status]
	return t, ok
}

// ActiveStageRole maps each advanceable status to the role allowed to act on
// the stage it names.
var activeStageRole = map[ProjectStatus]UserRole{
	ProjectDesign:        RoleDesigner,
	ProjectValidation:    RoleManufacturingChief,
	ProjectPurchasing:    RolePurchasing,
	ProjectWarehouse:     RoleWarehouse,
	ProjectManufacturing: RoleDesigner,
}

func ActiveStageRole(status ProjectStatus) (UserRole, bool) {
	r, ok := activeStageRole[status]
	return r, ok
}

// ActiveStageKey returns the stage record named by an in-flight status.
func ActiveStageKey(status ProjectStatus) (StageKey, bool) {
	t, ok := stageTable[status]
	if !ok {
		return "", false
	}
	return t.CurrentStage, true
}
