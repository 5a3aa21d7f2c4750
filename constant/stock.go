package constant

type MovementType string

const (
	MovementTypeSale       MovementType = "sale"
	MovementTypeRestock    MovementType = "restock"
	MovementTypeAdjustment MovementType = "adjustment"
)

type ContextKey string

const (
	UserIDKey  ContextKey = "user_id"
	ActorIDKey ContextKey = "actor_id"
)
