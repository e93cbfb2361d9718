package user

import (
	"github.com/pkg/errors"

	"github.com/ecoone/campus/core/sheet"
)

// DemoUsers are the accounts seeded against a fresh store so every portal
// has a working login out of the box.
var DemoUsers = []User{
	{Username: "admin", Password: "pass123", Role: RoleAdmin, Email: "admin@example.com", Phone: "999000501"},
	{Username: "student1", Password: "pass123", Role: RoleStudent, Email: "student1@example.com", Phone: "999000111"},
	{Username: "student2", Password: "pass123", Role: RoleStudent, Email: "student2@example.com", Phone: "999000112"},
	{Username: "librarian", Password: "pass123", Role: RoleLibrarian, Email: "lib@example.com", Phone: "999000301"},
	{Username: "warden", Password: "pass123", Role: RoleWarden, Email: "warden@example.com", Phone: "999000401"},
}

// EnsureDemoUsers appends any demo account whose username (matched modulo
// case) is not in the users table yet. Existing rows are never touched.
func (svc *Service) EnsureDemoUsers() error {
	for _, usr := range DemoUsers {
		if _, _, err := svc.GetByUsername(usr.Username); err == nil {
			continue
		}
		if err := svc.gw.AppendRow(sheet.TableUsers, usr.Values()); err != nil {
			return errors.Wrap(err, "seeding demo user "+usr.Username)
		}
	}
	return nil
}
