package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/gatherly/eventhub/internal/core/domain"
)

// ActivityRepository persists the user_activity_history table.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, record *domain.ActivityRecord) error {
	model := toActivityModel(record)
	if err := dbFrom(ctx, r.db).WithContext(ctx).Create(model).Error; err != nil {
		return translate(err, "activity record not found")
	}
	record.ID = model.ID
	return nil
}

func (r *ActivityRepository) ListByUsername(ctx context.Context, username string) ([]*domain.ActivityRecord, error) {
	return r.list(ctx, "username = ?", username)
}

func (r *ActivityRepository) ListByType(ctx context.Context, activityType domain.ActivityType) ([]*domain.ActivityRecord, error) {
	return r.list(ctx, "activity_type_code = ?", string(activityType))
}

func (r *ActivityRepository) List(ctx context.Context) ([]*domain.ActivityRecord, error) {
	return r.list(ctx, "", nil)
}

func (r *ActivityRepository) list(ctx context.Context, query string, arg any) ([]*domain.ActivityRecord, error) {
	db := dbFrom(ctx, r.db).WithContext(ctx).Order("created_date DESC")
	if query != "" {
		db = db.Where(query, arg)
	}
	var models []activityModel
	if err := db.Find(&models).Error; err != nil {
		return nil, translate(err, "activity records not found")
	}
	records := make([]*domain.ActivityRecord, 0, len(models))
	for i := range models {
		records = append(records, models[i].toDomain())
	}
	return records, nil
}

// LoginRepository persists the user_login_logout_history table.
type LoginRepository struct {
	db *gorm.DB
}

func NewLoginRepository(db *gorm.DB) *LoginRepository {
	return &LoginRepository{db: db}
}

func (r *LoginRepository) Create(ctx context.Context, record *domain.LoginRecord) error {
	model := toLoginModel(record)
	if err := dbFrom(ctx, r.db).WithContext(ctx).Create(model).Error; err != nil {
		return translate(err, "login record not found")
	}
	record.ID = model.ID
	return nil
}

func (r *LoginRepository) Update(ctx context.Context, record *domain.LoginRecord) error {
	model := toLoginModel(record)
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&loginModel{ID: model.ID}).
		Select("LogoutTime", "LoginStatus").
		Updates(model).Error
	return translate(err, "login record not found with id: %d", record.ID)
}

func (r *LoginRepository) FindOpenSession(ctx context.Context, token string) (*domain.LoginRecord, error) {
	var model loginModel
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("user_token = ? AND logout_time IS NULL", token).
		Order("login_time DESC").
		First(&model).Error
	if err != nil {
		return nil, translate(err, "no open session for token")
	}
	return model.toDomain(), nil
}

func (r *LoginRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.LoginRecord, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *LoginRepository) List(ctx context.Context) ([]*domain.LoginRecord, error) {
	return r.list(ctx, "", nil)
}

func (r *LoginRepository) list(ctx context.Context, query string, arg any) ([]*domain.LoginRecord, error) {
	db := dbFrom(ctx, r.db).WithContext(ctx).Order("login_time DESC")
	if query != "" {
		db = db.Where(query, arg)
	}
	var models []loginModel
	if err := db.Find(&models).Error; err != nil {
		return nil, translate(err, "login records not found")
	}
	records := make([]*domain.LoginRecord, 0, len(models))
	for i := range models {
		records = append(records, models[i].toDomain())
	}
	return records, nil
}

// PasswordRepository persists the user_password_history table.
type PasswordRepository struct {
	db *gorm.DB
}

func NewPasswordRepository(db *gorm.DB) *PasswordRepository {
	return &PasswordRepository{db: db}
}

func (r *PasswordRepository) Create(ctx context.Context, record *domain.PasswordRecord) error {
	model := toPasswordModel(record)
	if err := dbFrom(ctx, r.db).WithContext(ctx).Create(model).Error; err != nil {
		return translate(err, "password record not found")
	}
	record.ID = model.ID
	return nil
}

func (r *PasswordRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.PasswordRecord, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *PasswordRepository) List(ctx context.Context) ([]*domain.PasswordRecord, error) {
	return r.list(ctx, "", nil)
}

func (r *PasswordRepository) list(ctx context.Context, query string, arg any) ([]*domain.PasswordRecord, error) {
	db := dbFrom(ctx, r.db).WithContext(ctx).Order("change_date DESC")
	if query != "" {
		db = db.Where(query, arg)
	}
	var models []passwordModel
	if err := db.Find(&models).Error; err != nil {
		return nil, translate(err, "password records not found")
	}
	records := make([]*domain.PasswordRecord, 0, len(models))
	for i := range models {
		records = append(records, models[i].toDomain())
	}
	return records, nil
}
