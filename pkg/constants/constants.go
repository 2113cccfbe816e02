package constants

// User roles. ADMIN and MANAGER may mutate shared resources,
// OPERATOR works production screens, VIEWER is read-only.
const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleOperator = "OPERATOR"
	RoleViewer   = "VIEWER"
)

var Roles = []string{RoleAdmin, RoleManager, RoleOperator, RoleViewer}

// Production stages of an apparel order.
const (
	StageCutting   = "CUTTING"
	StagePrinting  = "PRINTING"
	StageSewing    = "SEWING"
	StageFinishing = "FINISHING"
)

var ProductionStages = []string{StageCutting, StagePrinting, StageSewing, StageFinishing}

// Employee pay schemes.
const (
	PaySchemeSalaried  = "SALARIED"
	PaySchemePieceRate = "PIECE_RATE"
)

// Notification statuses.
const (
	NotificationScheduled = "SCHEDULED"
	NotificationFailed    = "FAILED"
)
