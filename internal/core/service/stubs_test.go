package service

import (
	"context"
	"sort"
	"time"

	"github.com/gatherly/eventhub/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubTx struct {
	calls int
}

func (t *stubTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type stubUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (r *stubUserRepo) add(u domain.User) *domain.User {
	if u.ID == 0 {
		u.ID = r.nextID
	}
	if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	r.users[u.ID] = &u
	clone := u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.Conflict("duplicate key")
		}
	}
	return r.add(*u), nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.users[u.ID]; !ok {
		return nil, domain.NotFound("User not found with id: %d", u.ID)
	}
	clone := *u
	r.users[u.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return domain.NotFound("User not found with id: %d", id)
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NotFound("User not found with id: %d", id)
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.NotFound("User not found with username: %s", username)
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.NotFound("User not found with email: %s", email)
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, roleID uint) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

type stubRoleRepo struct {
	roles  map[uint]*domain.Role
	nextID uint
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[uint]*domain.Role), nextID: 1}
}

func (r *stubRoleRepo) add(role domain.Role) *domain.Role {
	if role.ID == 0 {
		role.ID = r.nextID
	}
	if role.ID >= r.nextID {
		r.nextID = role.ID + 1
	}
	r.roles[role.ID] = &role
	clone := role
	return &clone
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return nil, domain.Conflict("duplicate key")
		}
	}
	return r.add(*role), nil
}

func (r *stubRoleRepo) Update(_ context.Context, role *domain.Role) (*domain.Role, error) {
	if _, ok := r.roles[role.ID]; !ok {
		return nil, domain.NotFound("Role not found with id: %d", role.ID)
	}
	clone := *role
	r.roles[role.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRoleRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.roles[id]; !ok {
		return domain.NotFound("Role not found with id: %d", id)
	}
	delete(r.roles, id)
	return nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id uint) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.NotFound("Role not found with id: %d", id)
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			clone := *role
			return &clone, nil
		}
	}
	return nil, domain.NotFound("Role not found with name: %s", name)
}

func (r *stubRoleRepo) List(_ context.Context) ([]*domain.Role, error) {
	out := make([]*domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		clone := *role
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRoleRepo) AssignPermission(_ context.Context, roleID, permissionID uint) error {
	role, ok := r.roles[roleID]
	if !ok {
		return domain.NotFound("Role not found with id: %d", roleID)
	}
	role.Permissions = append(role.Permissions, domain.Permission{ID: permissionID})
	return nil
}

func (r *stubRoleRepo) RemovePermission(_ context.Context, roleID, permissionID uint) error {
	role, ok := r.roles[roleID]
	if !ok {
		return domain.NotFound("Role not found with id: %d", roleID)
	}
	kept := role.Permissions[:0]
	for _, p := range role.Permissions {
		if p.ID != permissionID {
			kept = append(kept, p)
		}
	}
	role.Permissions = kept
	return nil
}

type stubPermissionRepo struct {
	permissions map[uint]*domain.Permission
	nextID      uint
}

func newStubPermissionRepo() *stubPermissionRepo {
	return &stubPermissionRepo{permissions: make(map[uint]*domain.Permission), nextID: 1}
}

func (r *stubPermissionRepo) add(p domain.Permission) *domain.Permission {
	if p.ID == 0 {
		p.ID = r.nextID
	}
	if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	r.permissions[p.ID] = &p
	clone := p
	return &clone
}

func (r *stubPermissionRepo) Create(_ context.Context, p *domain.Permission) (*domain.Permission, error) {
	for _, existing := range r.permissions {
		if existing.Name == p.Name {
			return nil, domain.Conflict("duplicate key")
		}
	}
	return r.add(*p), nil
}

func (r *stubPermissionRepo) Update(_ context.Context, p *domain.Permission) (*domain.Permission, error) {
	if _, ok := r.permissions[p.ID]; !ok {
		return nil, domain.NotFound("Permission not found with id: %d", p.ID)
	}
	clone := *p
	r.permissions[p.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPermissionRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.permissions[id]; !ok {
		return domain.NotFound("Permission not found with id: %d", id)
	}
	delete(r.permissions, id)
	return nil
}

func (r *stubPermissionRepo) FindByID(_ context.Context, id uint) (*domain.Permission, error) {
	p, ok := r.permissions[id]
	if !ok {
		return nil, domain.NotFound("Permission not found with id: %d", id)
	}
	clone := *p
	return &clone, nil
}

func (r *stubPermissionRepo) FindByName(_ context.Context, name string) (*domain.Permission, error) {
	for _, p := range r.permissions {
		if p.Name == name {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.NotFound("Permission not found with name: %s", name)
}

func (r *stubPermissionRepo) List(_ context.Context) ([]*domain.Permission, error) {
	out := make([]*domain.Permission, 0, len(r.permissions))
	for _, p := range r.permissions {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubEventRepo struct {
	events map[uint]*domain.Event
	nextID uint
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{events: make(map[uint]*domain.Event), nextID: 1}
}

func cloneEvent(e *domain.Event) *domain.Event {
	clone := *e
	clone.Invitees = append([]domain.User(nil), e.Invitees...)
	return &clone
}

func (r *stubEventRepo) add(e domain.Event) *domain.Event {
	if e.ID == 0 {
		e.ID = r.nextID
	}
	if e.ID >= r.nextID {
		r.nextID = e.ID + 1
	}
	stored := cloneEvent(&e)
	r.events[e.ID] = stored
	return cloneEvent(stored)
}

func (r *stubEventRepo) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	for _, existing := range r.events {
		if existing.Title == e.Title {
			return nil, domain.Conflict("duplicate key")
		}
	}
	return r.add(*e), nil
}

func (r *stubEventRepo) Update(_ context.Context, e *domain.Event) (*domain.Event, error) {
	if _, ok := r.events[e.ID]; !ok {
		return nil, domain.NotFound("Event not found with id: %d", e.ID)
	}
	r.events[e.ID] = cloneEvent(e)
	return cloneEvent(e), nil
}

func (r *stubEventRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.events[id]; !ok {
		return domain.NotFound("Event not found with id: %d", id)
	}
	delete(r.events, id)
	return nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id uint) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.NotFound("Event not found with id: %d", id)
	}
	return cloneEvent(e), nil
}

func (r *stubEventRepo) FindByTitle(_ context.Context, title string) (*domain.Event, error) {
	for _, e := range r.events {
		if e.Title == title {
			return cloneEvent(e), nil
		}
	}
	return nil, domain.NotFound("Event not found with title: %s", title)
}

func (r *stubEventRepo) List(_ context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, cloneEvent(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubEventRepo) ListByOrganizer(ctx context.Context, organizerID uint) ([]*domain.Event, error) {
	all, _ := r.List(ctx)
	out := make([]*domain.Event, 0, len(all))
	for _, e := range all {
		if e.OrganizerID == organizerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEventRepo) ListByInvitee(ctx context.Context, userID uint) ([]*domain.Event, error) {
	all, _ := r.List(ctx)
	out := make([]*domain.Event, 0, len(all))
	for _, e := range all {
		if e.IsInvited(userID) {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubActivityRepo struct {
	records []*domain.ActivityRecord
}

func (r *stubActivityRepo) Create(_ context.Context, record *domain.ActivityRecord) error {
	record.ID = uint(len(r.records) + 1)
	clone := *record
	r.records = append(r.records, &clone)
	return nil
}

func (r *stubActivityRepo) ListByUsername(_ context.Context, username string) ([]*domain.ActivityRecord, error) {
	out := make([]*domain.ActivityRecord, 0, len(r.records))
	for _, rec := range r.records {
		if rec.Username == username {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubActivityRepo) ListByType(_ context.Context, activityType domain.ActivityType) ([]*domain.ActivityRecord, error) {
	out := make([]*domain.ActivityRecord, 0, len(r.records))
	for _, rec := range r.records {
		if rec.ActivityType == activityType {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubActivityRepo) List(_ context.Context) ([]*domain.ActivityRecord, error) {
	out := make([]*domain.ActivityRecord, 0, len(r.records))
	for _, rec := range r.records {
		clone := *rec
		out = append(out, &clone)
	}
	return out, nil
}

type stubLoginRepo struct {
	records []*domain.LoginRecord
}

func (r *stubLoginRepo) Create(_ context.Context, record *domain.LoginRecord) error {
	record.ID = uint(len(r.records) + 1)
	record.CreatedAt = time.Now()
	clone := *record
	r.records = append(r.records, &clone)
	return nil
}

func (r *stubLoginRepo) Update(_ context.Context, record *domain.LoginRecord) error {
	for i, rec := range r.records {
		if rec.ID == record.ID {
			clone := *record
			r.records[i] = &clone
			return nil
		}
	}
	return domain.NotFound("login record not found with id: %d", record.ID)
}

func (r *stubLoginRepo) FindOpenSession(_ context.Context, token string) (*domain.LoginRecord, error) {
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].Token == token && r.records[i].Open() {
			clone := *r.records[i]
			return &clone, nil
		}
	}
	return nil, domain.NotFound("no open session for token")
}

func (r *stubLoginRepo) ListByUserID(_ context.Context, userID string) ([]*domain.LoginRecord, error) {
	out := make([]*domain.LoginRecord, 0, len(r.records))
	for _, rec := range r.records {
		if rec.UserID == userID {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubLoginRepo) List(_ context.Context) ([]*domain.LoginRecord, error) {
	out := make([]*domain.LoginRecord, 0, len(r.records))
	for _, rec := range r.records {
		clone := *rec
		out = append(out, &clone)
	}
	return out, nil
}

type stubPasswordRepo struct {
	records []*domain.PasswordRecord
}

func (r *stubPasswordRepo) Create(_ context.Context, record *domain.PasswordRecord) error {
	record.ID = uint(len(r.records) + 1)
	clone := *record
	r.records = append(r.records, &clone)
	return nil
}

func (r *stubPasswordRepo) ListByUserID(_ context.Context, userID string) ([]*domain.PasswordRecord, error) {
	out := make([]*domain.PasswordRecord, 0, len(r.records))
	for _, rec := range r.records {
		if rec.UserID == userID {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPasswordRepo) List(_ context.Context) ([]*domain.PasswordRecord, error) {
	out := make([]*domain.PasswordRecord, 0, len(r.records))
	for _, rec := range r.records {
		clone := *rec
		out = append(out, &clone)
	}
	return out, nil
}
