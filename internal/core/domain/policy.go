package domain

// Action names a guarded operation for the permission table.
type Action string

const (
	ActionCreateShipment  Action = "shipment:create"
	ActionUpdateShipment  Action = "shipment:update_status"
	ActionDeleteShipment  Action = "shipment:delete"
	ActionAssignDriver    Action = "shipment:assign_driver"
	ActionReviewComplaint Action = "complaint:review"
	ActionManageUsers     Action = "user:manage"
	ActionManageProducts  Action = "product:manage"
	ActionViewAggregates  Action = "aggregate:view"
)

// rolePermissions is the authorization policy table. Per-resource rules
// (assigned driver may update their own shipment, reporter may cancel their
// own pending complaint) are enforced in the services on top of this table.
var rolePermissions = map[string]map[Action]struct{}{
	RoleAdmin: {
		ActionCreateShipment:  {},
		ActionUpdateShipment:  {},
		ActionDeleteShipment:  {},
		ActionAssignDriver:    {},
		ActionReviewComplaint: {},
		ActionManageUsers:     {},
		ActionManageProducts:  {},
		ActionViewAggregates:  {},
	},
	RoleManager: {
		ActionCreateShipment:  {},
		ActionUpdateShipment:  {},
		ActionDeleteShipment:  {},
		ActionAssignDriver:    {},
		ActionReviewComplaint: {},
		ActionManageUsers:     {},
		ActionManageProducts:  {},
		ActionViewAggregates:  {},
	},
	RoleDriver: {},
	RoleStaff:  {},
}

// Allowed reports whether role may perform action.
func Allowed(role string, action Action) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = perms[action]
	return ok
}

// IsReviewer reports whether role reviews complaints and manages shipments
// (admin or manager).
func IsReviewer(role string) bool {
	return role == RoleAdmin || role == RoleManager
}
