package postgres

import (
	"time"

	"github.com/gatherly/eventhub/internal/core/domain"
)

// Persistence models. Table and column names match the historical schema;
// conversion to and from the domain types happens here and nowhere else.

type userModel struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	FullName     string `gorm:"column:full_name;type:varchar(100)"`
	Phone        string `gorm:"column:phone_number;type:varchar(20)"`
	DateOfBirth  domain.Date `gorm:"column:date_of_birth;type:date"`
	Active       bool        `gorm:"column:is_active;not null;default:true"`
	RoleID       uint        `gorm:"column:role_id;index;not null"`
	Role         roleModel   `gorm:"foreignKey:RoleID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type roleModel struct {
	ID          uint              `gorm:"primarykey"`
	Name        string            `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string            `gorm:"type:varchar(255)"`
	Permissions []permissionModel `gorm:"many2many:role_permissions;joinForeignKey:role_id;joinReferences:permission_id"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (roleModel) TableName() string { return "roles" }

type permissionModel struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (permissionModel) TableName() string { return "permissions" }

type eventModel struct {
	ID          uint             `gorm:"primarykey"`
	Title       string           `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string           `gorm:"type:varchar(1000);not null"`
	Location    string           `gorm:"type:varchar(255);not null"`
	EventDate   domain.Date      `gorm:"column:event_date;type:date;not null"`
	StartTime   domain.TimeOfDay `gorm:"column:start_time;type:time;not null"`
	EndTime     domain.TimeOfDay `gorm:"column:end_time;type:time;not null"`
	EventType   string           `gorm:"column:event_type;type:varchar(20);not null"`
	OrganizerID uint             `gorm:"column:organizer_id;index;not null"`
	Organizer   userModel        `gorm:"foreignKey:OrganizerID"`
	Invitees    []userModel      `gorm:"many2many:event_invitations;joinForeignKey:event_id;joinReferences:user_id"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (eventModel) TableName() string { return "events" }

type activityModel struct {
	ID               uint      `gorm:"primarykey"`
	UserID           string    `gorm:"column:user_id;type:varchar(100);not null;index"`
	UserGroup        string    `gorm:"column:user_group;type:varchar(100)"`
	ActivityTypeCode string    `gorm:"column:activity_type_code;type:varchar(100);index"`
	ActivityTypeName string    `gorm:"column:activity_type_name;type:varchar(255)"`
	Username         string    `gorm:"type:varchar(100);index"`
	DeviceID         string    `gorm:"column:device_id;type:varchar(500)"`
	SessionID        string    `gorm:"column:session_id;type:varchar(100)"`
	IP               string    `gorm:"column:ip;type:varchar(100)"`
	EntityType       string    `gorm:"column:entity_type;type:varchar(100)"`
	EntityID         string    `gorm:"column:entity_id;type:varchar(100)"`
	EntityName       string    `gorm:"column:entity_name;type:varchar(500)"`
	Description      string    `gorm:"type:text"`
	OldValues        string    `gorm:"column:old_values;type:text"`
	NewValues        string    `gorm:"column:new_values;type:text"`
	CreatedBy        string    `gorm:"column:created_by;type:varchar(100)"`
	CreatedAt        time.Time `gorm:"column:created_date"`
}

func (activityModel) TableName() string { return "user_activity_history" }

type loginModel struct {
	ID          uint       `gorm:"primarykey"`
	UserID      string     `gorm:"column:user_id;type:varchar(100);not null;index"`
	UserToken   string     `gorm:"column:user_token;type:text;not null"`
	UserType    string     `gorm:"column:user_type;type:varchar(100);not null"`
	RequestFrom string     `gorm:"column:request_from;type:varchar(100)"`
	RequestIP   string     `gorm:"column:request_ip;type:text;not null"`
	DeviceInfo  string     `gorm:"column:device_info;type:text"`
	LoginTime   time.Time  `gorm:"column:login_time;not null"`
	LogoutTime  *time.Time `gorm:"column:logout_time"`
	LoginStatus string     `gorm:"column:login_status;type:varchar(255)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (loginModel) TableName() string { return "user_login_logout_history" }

type passwordModel struct {
	ID          uint      `gorm:"primarykey"`
	UserID      string    `gorm:"column:user_id;type:varchar(100);not null;index"`
	ChangedBy   string    `gorm:"column:password_change_by;type:varchar(100);not null"`
	ChangeDate  time.Time `gorm:"column:change_date;not null"`
	OldPassword string    `gorm:"column:old_password;type:varchar(200)"`
	NewPassword string    `gorm:"column:new_password;type:varchar(200)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (passwordModel) TableName() string { return "user_password_history" }

// --- converters ---

func toUserModel(u *domain.User) *userModel {
	return &userModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Phone:        u.Phone,
		DateOfBirth:  u.DateOfBirth,
		Active:       u.Active,
		RoleID:       u.RoleID,
	}
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Phone:        m.Phone,
		DateOfBirth:  m.DateOfBirth,
		Active:       m.Active,
		RoleID:       m.RoleID,
		Role:         *m.Role.toDomain(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toRoleModel(r *domain.Role) *roleModel {
	m := &roleModel{ID: r.ID, Name: r.Name, Description: r.Description}
	for _, p := range r.Permissions {
		m.Permissions = append(m.Permissions, *toPermissionModel(&p))
	}
	return m
}

func (m *roleModel) toDomain() *domain.Role {
	r := &domain.Role{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, p := range m.Permissions {
		r.Permissions = append(r.Permissions, *p.toDomain())
	}
	return r
}

func toPermissionModel(p *domain.Permission) *permissionModel {
	return &permissionModel{ID: p.ID, Name: p.Name, Description: p.Description}
}

func (m *permissionModel) toDomain() *domain.Permission {
	return &domain.Permission{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toEventModel(e *domain.Event) *eventModel {
	m := &eventModel{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		EventDate:   e.EventDate,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		EventType:   string(e.EventType),
		OrganizerID: e.OrganizerID,
	}
	for _, u := range e.Invitees {
		m.Invitees = append(m.Invitees, *toUserModel(&u))
	}
	return m
}

func (m *eventModel) toDomain() *domain.Event {
	e := &domain.Event{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		EventDate:   m.EventDate,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		EventType:   domain.EventType(m.EventType),
		OrganizerID: m.OrganizerID,
		Organizer:   *m.Organizer.toDomain(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, u := range m.Invitees {
		e.Invitees = append(e.Invitees, *u.toDomain())
	}
	return e
}

func toActivityModel(r *domain.ActivityRecord) *activityModel {
	return &activityModel{
		ID:               r.ID,
		UserID:           r.UserID,
		UserGroup:        r.UserGroup,
		ActivityTypeCode: string(r.ActivityType),
		ActivityTypeName: r.ActivityType.Name(),
		Username:         r.Username,
		DeviceID:         r.DeviceID,
		SessionID:        r.SessionID,
		IP:               r.IPAddress,
		EntityType:       r.EntityType,
		EntityID:         r.EntityID,
		EntityName:       r.EntityName,
		Description:      r.Description,
		OldValues:        r.OldValues,
		NewValues:        r.NewValues,
		CreatedBy:        r.CreatedBy,
		CreatedAt:        r.CreatedAt,
	}
}

func (m *activityModel) toDomain() *domain.ActivityRecord {
	return &domain.ActivityRecord{
		ID:           m.ID,
		UserID:       m.UserID,
		UserGroup:    m.UserGroup,
		ActivityType: domain.ActivityType(m.ActivityTypeCode),
		Username:     m.Username,
		DeviceID:     m.DeviceID,
		SessionID:    m.SessionID,
		IPAddress:    m.IP,
		EntityType:   m.EntityType,
		EntityID:     m.EntityID,
		EntityName:   m.EntityName,
		Description:  m.Description,
		OldValues:    m.OldValues,
		NewValues:    m.NewValues,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

func toLoginModel(r *domain.LoginRecord) *loginModel {
	return &loginModel{
		ID:          r.ID,
		UserID:      r.UserID,
		UserToken:   r.Token,
		UserType:    r.UserType,
		RequestFrom: r.RequestFrom,
		RequestIP:   r.RequestIP,
		DeviceInfo:  r.DeviceInfo,
		LoginTime:   r.LoginTime,
		LogoutTime:  r.LogoutTime,
		LoginStatus: r.LoginStatus,
	}
}

func (m *loginModel) toDomain() *domain.LoginRecord {
	return &domain.LoginRecord{
		ID:          m.ID,
		UserID:      m.UserID,
		Token:       m.UserToken,
		UserType:    m.UserType,
		RequestFrom: m.RequestFrom,
		RequestIP:   m.RequestIP,
		DeviceInfo:  m.DeviceInfo,
		LoginTime:   m.LoginTime,
		LogoutTime:  m.LogoutTime,
		LoginStatus: m.LoginStatus,
		CreatedAt:   m.CreatedAt,
	}
}

func toPasswordModel(r *domain.PasswordRecord) *passwordModel {
	return &passwordModel{
		ID:          r.ID,
		UserID:      r.UserID,
		ChangedBy:   r.ChangedBy,
		ChangeDate:  r.ChangeDate,
		OldPassword: r.OldHash,
		NewPassword: r.NewHash,
	}
}

func (m *passwordModel) toDomain() *domain.PasswordRecord {
	return &domain.PasswordRecord{
		ID:         m.ID,
		UserID:     m.UserID,
		ChangedBy:  m.ChangedBy,
		ChangeDate: m.ChangeDate,
		OldHash:    m.OldPassword,
		NewHash:    m.NewPassword,
		CreatedAt:  m.CreatedAt,
	}
}
