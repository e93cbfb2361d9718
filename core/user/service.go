package user

import (
	"github.com/pkg/errors"

	"github.com/ecoone/campus/core"
	"github.com/ecoone/campus/core/sheet"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrUsernameExists     = errors.New("a user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Service struct {
	gw     *sheet.Gateway
	mirror *sheet.Mirror
}

func NewService(gw *sheet.Gateway) *Service {
	return &Service{gw: gw, mirror: gw.Mirror()}
}

// All returns every user in the current mirror snapshot.
func (svc *Service) All() []User {
	rows, _ := svc.mirror.Snapshot(sheet.TableUsers)
	users := make([]User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromRow(row))
	}
	return users
}

// GetByUsername matches modulo case and surrounding whitespace and returns the
// user with its current mirror position.
func (svc *Service) GetByUsername(uname string) (User, int, error) {
	uname = core.CleanString(uname, true /* lower */)
	rows, err := svc.mirror.Snapshot(sheet.TableUsers)
	if err != nil {
		return User{}, -1, err
	}
	for i, row := range rows {
		if core.CleanString(row.Get("username"), true) == uname {
			return FromRow(row), i, nil
		}
	}
	return User{}, -1, ErrNotFound
}

// SignUp validates and appends a new account.
func (svc *Service) SignUp(nu NewUser) (User, error) {
	if err := nu.Validate(); err != nil {
		return User{}, err
	}
	if err := svc.checkUniqueness(nu.Username); err != nil {
		return User{}, err
	}

	usr := User{
		Username: nu.Username,
		Password: nu.Password,
		Role:     nu.Role,
		Email:    nu.Email,
		Phone:    nu.Phone,
	}
	if err := svc.gw.AppendRow(sheet.TableUsers, usr.Values()); err != nil {
		return User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

// Add is the admin quick-add: username, password and role only.
func (svc *Service) Add(username, password, role string) (User, error) {
	nu := NewUser{
		Username: username,
		Password: password,
		Role:     role,
	}
	return svc.SignUp(nu)
}

// Delete removes the user's row. The position is recomputed from the current
// snapshot immediately before the delete.
func (svc *Service) Delete(username string) error {
	_, pos, err := svc.GetByUsername(username)
	if err != nil {
		return err
	}
	if err = svc.gw.DeleteRow(sheet.TableUsers, pos); err != nil {
		return errors.Wrap(err, "deleting user "+username)
	}
	return nil
}

// Authenticate checks credentials against the users snapshot: the username
// matches modulo case and surrounding whitespace, the password modulo
// surrounding whitespace. It returns the user with its canonical (stored)
// username.
func (svc *Service) Authenticate(username, password string) (User, error) {
	uname := core.CleanString(username, true /* lower */)
	pwd := core.CleanString(password)

	rows, err := svc.mirror.Snapshot(sheet.TableUsers)
	if err != nil {
		return User{}, err
	}
	if len(rows) == 0 {
		// the mirror may not have been loaded yet
		if err = svc.mirror.Refresh(sheet.TableUsers); err != nil {
			return User{}, errors.Wrap(err, "refreshing users")
		}
		rows, _ = svc.mirror.Snapshot(sheet.TableUsers)
	}

	for _, row := range rows {
		if core.CleanString(row.Get("username"), true) == uname &&
			core.CleanString(row.Get("password")) == pwd {
			return FromRow(row), nil
		}
	}
	return User{}, ErrInvalidCredentials
}

func (svc *Service) checkUniqueness(uname string) error {
	if _, _, err := svc.GetByUsername(uname); err == nil {
		return core.NewValidationError(ErrUsernameExists,
			core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
	}
	return nil
}
