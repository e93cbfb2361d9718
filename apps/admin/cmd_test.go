package main

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/ecoone/campus/core/sheet"
	"github.com/ecoone/campus/core/user"
	testutil "github.com/ecoone/campus/tests"
)

func setup(t *testing.T) *commandLine {
	t.Helper()
	reg := sheet.NewRegistry()
	store, _, gw := testutil.Setup(t)
	return &commandLine{
		store:  store,
		reg:    reg,
		usrSvc: user.NewService(gw),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func Test_commandLine_run(t *testing.T) {
	tests := []cliTest{
		{name: "no args prints usage", args: nil, wantErr: errHelp},
		{name: "unknown command prints usage", args: []string{"frobnicate"}, wantErr: errHelp},
		{name: "adduser requires username", args: []string{"adduser"}, wantErr: errHelp},
		{name: "adduser requires password", args: []string{"adduser", "-username", "zoe"}, pwd: "", wantErr: errHelp},
		{name: "deluser requires username", args: []string{"deluser"}, wantErr: errHelp},
		{name: "repairheaders", args: []string{"repairheaders"}},
		{name: "seeddemo", args: []string{"seeddemo"}},
		{name: "adduser", args: []string{"adduser", "-username", "zoe", "-role", user.RoleFaculty}, pwd: "s3same"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := setup(t)
			readPasswordFunc = func(fd int) ([]byte, error) { return []byte(tt.pwd), nil }

			err := cli.run(append([]string{"admin"}, tt.args...))
			if errors.Cause(err) != tt.wantErr {
				t.Errorf("run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	if err := cli.addUser("Zoe", "s3same", user.RoleFaculty); err != nil {
		t.Fatalf("addUser() failed: %v", err)
	}
	usr, _, err := cli.usrSvc.GetByUsername("zoe")
	if err != nil {
		t.Fatalf("GetByUsername() failed: %v", err)
	}
	if usr.Role != user.RoleFaculty {
		t.Errorf("role = %q, want %q", usr.Role, user.RoleFaculty)
	}

	if err := cli.addUser("eve", "s3same", "Janitor"); err == nil {
		t.Error("addUser() with an unknown role should fail")
	}
}

func Test_commandLine_delUser(t *testing.T) {
	cli := setup(t)

	if err := cli.seedDemo(); err != nil {
		t.Fatalf("seedDemo() failed: %v", err)
	}
	if err := cli.delUser("STUDENT2"); err != nil {
		t.Fatalf("delUser() failed: %v", err)
	}
	if _, _, err := cli.usrSvc.GetByUsername("student2"); errors.Cause(err) != user.ErrNotFound {
		t.Errorf("GetByUsername() error = %v, want ErrNotFound", err)
	}

	if err := cli.delUser("ghost"); errors.Cause(err) != user.ErrNotFound {
		t.Errorf("delUser(ghost) error = %v, want ErrNotFound", err)
	}
}

func Test_commandLine_seedDemo(t *testing.T) {
	cli := setup(t)

	if err := cli.seedDemo(); err != nil {
		t.Fatalf("seedDemo() failed: %v", err)
	}
	// seeding twice must not duplicate accounts
	if err := cli.seedDemo(); err != nil {
		t.Fatalf("second seedDemo() failed: %v", err)
	}
	if got := len(cli.usrSvc.All()); got != len(user.DemoUsers) {
		t.Errorf("users count = %d, want %d", got, len(user.DemoUsers))
	}
}
