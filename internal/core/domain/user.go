package domain

import "time"

// Built-in role names seeded at startup.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleAttendee   = "ATTENDEE"
)

type Permission struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Role struct {
	ID          uint
	Name        string
	Description string
	Permissions []Permission
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPermission reports whether the role carries the named permission.
func (r Role) HasPermission(name string) bool {
	for _, p := range r.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Phone        string
	DateOfBirth  Date
	Active       bool
	Role         Role
	RoleID       uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Age is derived from the date of birth at the given instant. Zero when the
// birth date is unset or in the future.
func (u User) Age(now time.Time) int {
	if u.DateOfBirth.IsZero() {
		return 0
	}
	today := DateOf(now)
	years := today.Year - u.DateOfBirth.Year
	birthdayThisYear := Date{Year: today.Year, Month: u.DateOfBirth.Month, Day: u.DateOfBirth.Day}
	if today.Before(birthdayThisYear) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
