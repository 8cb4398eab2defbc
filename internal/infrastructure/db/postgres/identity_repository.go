package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/gatherly/eventhub/internal/core/domain"
)

// UserRepository persists users with their role and its permissions
// preloaded.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	model := toUserModel(user)
	if err := dbFrom(ctx, r.db).WithContext(ctx).Omit("Role").Create(model).Error; err != nil {
		return nil, translate(err, "User not found")
	}
	return r.FindByID(ctx, model.ID)
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	model := toUserModel(user)
	err := dbFrom(ctx, r.db).WithContext(ctx).Omit("Role").
		Select("Username", "Email", "PasswordHash", "FullName", "Phone", "DateOfBirth", "Active", "RoleID").
		Where("id = ?", model.ID).
		Updates(model).Error
	if err != nil {
		return nil, translate(err, "User not found with id: %d", user.ID)
	}
	return r.FindByID(ctx, model.ID)
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := dbFrom(ctx, r.db).WithContext(ctx).Delete(&userModel{}, id)
	if res.Error != nil {
		return translate(res.Error, "User not found with id: %d", id)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("User not found with id: %d", id)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var model userModel
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Role.Permissions").Preload("Role").
		First(&model, id).Error
	if err != nil {
		return nil, translate(err, "User not found with id: %d", id)
	}
	return model.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var model userModel
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Role.Permissions").Preload("Role").
		Where("username = ?", username).
		First(&model).Error
	if err != nil {
		return nil, translate(err, "User not found with username: %s", username)
	}
	return model.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model userModel
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Role.Permissions").Preload("Role").
		Where("email = ?", email).
		First(&model).Error
	if err != nil {
		return nil, translate(err, "User not found with email: %s", email)
	}
	return model.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var models []userModel
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Role.Permissions").Preload("Role").
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, translate(err, "users not found")
	}
	users := make([]*domain.User, 0, len(models))
	for i := range models {
		users = append(users, models[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := dbFrom(ctx, r.db).WithContext(ctx).Model(&userModel{}).Count(&n).Error; err != nil {
		return 0, translate(err, "users not found")
	}
	return n, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, roleID uint) (int64, error) {
	var n int64
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&userModel{}).
		Where("role_id = ?", roleID).
		Count(&n).Error
	if err != nil {
		return 0, translate(err, "users not found")
	}
	return n, nil
}

// RoleRepository persists roles and the role_permissions join rows.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	model := toRoleModel(role)
	if err := dbFrom(ctx, r.db).WithContext(ctx).Create(model).Error; err != nil {
		return nil, translate(err, "Role not found")
	}
	return r.FindByID(ctx, model.ID)
}

// Update saves the scalar fields and replaces the permission set with
// whatever the domain role carries.
func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	db := dbFrom(ctx, r.db).WithContext(ctx)
	model := toRoleModel(role)

	err := db.Model(&roleModel{ID: model.ID}).
		Select("Name", "Description").
		Updates(model).Error
	if err != nil {
		return nil, translate(err, "Role not found with id: %d", role.ID)
	}

	perms := make([]permissionModel, len(model.Permissions))
	copy(perms, model.Permissions)
	if err := db.Model(&roleModel{ID: model.ID}).Association("Permissions").Replace(perms); err != nil {
		return nil, translate(err, "Role not found with id: %d", role.ID)
	}

	return r.FindByID(ctx, model.ID)
}

func (r *RoleRepository) Delete(ctx context.Context, id uint) error {
	db := dbFrom(ctx, r.db).WithContext(ctx)
	if err := db.Model(&roleModel{ID: id}).Association("Permissions").Clear(); err != nil {
		return translate(err, "Role not found with id: %d", id)
	}
	res := db.Delete(&roleModel{}, id)
	if res.Error != nil {
		return translate(res.Error, "Role not found with id: %d", id)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("Role not found with id: %d", id)
	}
	return nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id uint) (*domain.Role, error) {
	var model roleModel
	err := dbFrom(ctx, r.db).WithContext(ctx).Preload("Permissions").First(&model, id).Error
	if err != nil {
		return nil, translate(err, "Role not found with id: %d", id)
	}
	return model.toDomain(), nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var model roleModel
	err := dbFrom(ctx, r.db).WithContext(ctx).Preload("Permissions").
		Where("name = ?", name).
		First(&model).Error
	if err != nil {
		return nil, translate(err, "Role not found with name: %s", name)
	}
	return model.toDomain(), nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	var models []roleModel
	err := dbFrom(ctx, r.db).WithContext(ctx).Preload("Permissions").Order("id").Find(&models).Error
	if err != nil {
		return nil, translate(err, "roles not found")
	}
	roles := make([]*domain.Role, 0, len(models))
	for i := range models {
		roles = append(roles, models[i].toDomain())
	}
	return roles, nil
}

func (r *RoleRepository) AssignPermission(ctx context.Context, roleID, permissionID uint) error {
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&roleModel{ID: roleID}).
		Association("Permissions").
		Append(&permissionModel{ID: permissionID})
	return translate(err, "Role not found with id: %d", roleID)
}

func (r *RoleRepository) RemovePermission(ctx context.Context, roleID, permissionID uint) error {
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&roleModel{ID: roleID}).
		Association("Permissions").
		Delete(&permissionModel{ID: permissionID})
	return translate(err, "Role not found with id: %d", roleID)
}

// PermissionRepository persists permissions.
type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Create(ctx context.Context, permission *domain.Permission) (*domain.Permission, error) {
	model := toPermissionModel(permission)
	if err := dbFrom(ctx, r.db).WithContext(ctx).Create(model).Error; err != nil {
		return nil, translate(err, "Permission not found")
	}
	return r.FindByID(ctx, model.ID)
}

func (r *PermissionRepository) Update(ctx context.Context, permission *domain.Permission) (*domain.Permission, error) {
	model := toPermissionModel(permission)
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&permissionModel{ID: model.ID}).
		Select("Name", "Description").
		Updates(model).Error
	if err != nil {
		return nil, translate(err, "Permission not found with id: %d", permission.ID)
	}
	return r.FindByID(ctx, model.ID)
}

func (r *PermissionRepository) Delete(ctx context.Context, id uint) error {
	res := dbFrom(ctx, r.db).WithContext(ctx).Delete(&permissionModel{}, id)
	if res.Error != nil {
		return translate(res.Error, "Permission not found with id: %d", id)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("Permission not found with id: %d", id)
	}
	return nil
}

func (r *PermissionRepository) FindByID(ctx context.Context, id uint) (*domain.Permission, error) {
	var model permissionModel
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&model, id).Error
	if err != nil {
		return nil, translate(err, "Permission not found with id: %d", id)
	}
	return model.toDomain(), nil
}

func (r *PermissionRepository) FindByName(ctx context.Context, name string) (*domain.Permission, error) {
	var model permissionModel
	err := dbFrom(ctx, r.db).WithContext(ctx).Where("name = ?", name).First(&model).Error
	if err != nil {
		return nil, translate(err, "Permission not found with name: %s", name)
	}
	return model.toDomain(), nil
}

func (r *PermissionRepository) List(ctx context.Context) ([]*domain.Permission, error) {
	var models []permissionModel
	err := dbFrom(ctx, r.db).WithContext(ctx).Order("id").Find(&models).Error
	if err != nil {
		return nil, translate(err, "permissions not found")
	}
	perms := make([]*domain.Permission, 0, len(models))
	for i := range models {
		perms = append(perms, models[i].toDomain())
	}
	return perms, nil
}
