package domain

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

func IsValidAction(value string) bool {
	switch value {
	case ActionCreated, ActionUpdated, ActionDeleted:
		return true
	default:
		return false
	}
}
