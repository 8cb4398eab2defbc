package domain

import "time"

// ActivityType identifies an auditable action. The code is what gets stored;
// the human name is what history endpoints render.
type ActivityType string

const (
	ActivityUserCreate     ActivityType = "USER_CREATE"
	ActivityUserUpdate     ActivityType = "USER_UPDATE"
	ActivityUserDelete     ActivityType = "USER_DELETE"
	ActivityUserActivate   ActivityType = "USER_ACTIVATE"
	ActivityUserDeactivate ActivityType = "USER_DEACTIVATE"

	ActivityEventCreate ActivityType = "EVENT_CREATE"
	ActivityEventUpdate ActivityType = "EVENT_UPDATE"
	ActivityEventDelete ActivityType = "EVENT_DELETE"

	ActivityRoleCreate           ActivityType = "ROLE_CREATE"
	ActivityRoleUpdate           ActivityType = "ROLE_UPDATE"
	ActivityRoleDelete           ActivityType = "ROLE_DELETE"
	ActivityRoleAssignPermission ActivityType = "ROLE_ASSIGN_PERMISSION"
	ActivityRoleRemovePermission ActivityType = "ROLE_REMOVE_PERMISSION"

	ActivityPermissionCreate ActivityType = "PERMISSION_CREATE"
	ActivityPermissionUpdate ActivityType = "PERMISSION_UPDATE"
	ActivityPermissionDelete ActivityType = "PERMISSION_DELETE"

	ActivityPasswordChange ActivityType = "PASSWORD_CHANGE"
	ActivityPasswordReset  ActivityType = "PASSWORD_RESET"
)

var activityNames = map[ActivityType]string{
	ActivityUserCreate:           "User Created",
	ActivityUserUpdate:           "User Updated",
	ActivityUserDelete:           "User Deleted",
	ActivityUserActivate:         "User Activated",
	ActivityUserDeactivate:       "User Deactivated",
	ActivityEventCreate:          "Event Created",
	ActivityEventUpdate:          "Event Updated",
	ActivityEventDelete:          "Event Deleted",
	ActivityRoleCreate:           "Role Created",
	ActivityRoleUpdate:           "Role Updated",
	ActivityRoleDelete:           "Role Deleted",
	ActivityRoleAssignPermission: "Permission Assigned To Role",
	ActivityRoleRemovePermission: "Permission Removed From Role",
	ActivityPermissionCreate:     "Permission Created",
	ActivityPermissionUpdate:     "Permission Updated",
	ActivityPermissionDelete:     "Permission Deleted",
	ActivityPasswordChange:       "Password Changed",
	ActivityPasswordReset:        "Password Reset",
}

// Name returns the human-readable label for the activity type, falling back
// to the raw code for types the catalogue does not know.
func (a ActivityType) Name() string {
	if n, ok := activityNames[a]; ok {
		return n
	}
	return string(a)
}

// ActivityTypes lists the catalogue in a stable order.
func ActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityUserCreate, ActivityUserUpdate, ActivityUserDelete,
		ActivityUserActivate, ActivityUserDeactivate,
		ActivityEventCreate, ActivityEventUpdate, ActivityEventDelete,
		ActivityRoleCreate, ActivityRoleUpdate, ActivityRoleDelete,
		ActivityRoleAssignPermission, ActivityRoleRemovePermission,
		ActivityPermissionCreate, ActivityPermissionUpdate, ActivityPermissionDelete,
		ActivityPasswordChange, ActivityPasswordReset,
	}
}

// ActivityRecord is one row of the user activity audit trail.
//
// UserID holds the acting username: the historical schema used the column
// that way and readers depend on it.
type ActivityRecord struct {
	ID           uint
	UserID       string
	UserGroup    string
	ActivityType ActivityType
	Username     string
	DeviceID     string
	SessionID    string
	IPAddress    string
	EntityType   string
	EntityID     string
	EntityName   string
	Description  string
	OldValues    string
	NewValues    string
	CreatedBy    string
	CreatedAt    time.Time
}

// Login outcome values stored in LoginRecord.LoginStatus.
const (
	LoginStatusSuccess = "SUCCESS"
	LoginStatusFailed  = "FAILED"
)

// LoginRecord tracks one login session. LogoutTime stays nil until the
// session is closed by a logout; at most one open row exists per token.
type LoginRecord struct {
	ID          uint
	UserID      string
	Token       string
	UserType    string
	RequestFrom string
	RequestIP   string
	DeviceInfo  string
	LoginTime   time.Time
	LogoutTime  *time.Time
	LoginStatus string
	CreatedAt   time.Time
}

// Open reports whether the session has not been closed by a logout yet.
func (r LoginRecord) Open() bool { return r.LogoutTime == nil }

// PasswordRecord tracks one password change or reset. Both hash columns hold
// bcrypt hashes, never plaintext, and history endpoints redact them.
type PasswordRecord struct {
	ID         uint
	UserID     string
	ChangedBy  string
	ChangeDate time.Time
	OldHash    string
	NewHash    string
	CreatedAt  time.Time
}
