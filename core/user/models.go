package user

import (
	"github.com/ecoone/campus/core/sheet"
)

// Roles
const (
	RoleAdmin     = "Admin"
	RoleStudent   = "Student"
	RoleFaculty   = "Faculty"
	RoleLibrarian = "Librarian"
	RoleWarden    = "Hostel Warden"
)

var AllRoles = []string{RoleStudent, RoleFaculty, RoleLibrarian, RoleWarden, RoleAdmin}

func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is one row of the users table. Password is the raw cell value: the
// table is a shared office spreadsheet, so credentials live there as-is.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func FromRow(r sheet.Row) User {
	return User{
		Username: r.Get("username"),
		Password: r.Get("password"),
		Role:     r.Get("role"),
		Email:    r.Get("email"),
		Phone:    r.Get("phone"),
	}
}

// Values returns the row cells in users schema order.
func (u User) Values() []string {
	return []string{u.Username, u.Password, u.Role, u.Email, u.Phone}
}

func (u User) IsAdmin() bool     { return u.Role == RoleAdmin }
func (u User) IsStudent() bool   { return u.Role == RoleStudent }
func (u User) IsLibrarian() bool { return u.Role == RoleLibrarian }
func (u User) IsWarden() bool    { return u.Role == RoleWarden }

// NewUser is the sign-up payload.
type NewUser struct {
	Username string `json:"username" validate:"required,alphanum_"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,validrole"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}
