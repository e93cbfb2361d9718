package main

import (
	"fmt"

	"github.com/ecoone/campus/core"
)

// addUser creates a user account with the quick-add fields.
func (cli *commandLine) addUser(uname, pwd, role string) error {
	uname = core.CleanString(uname, true /* lower */)

	usr, err := cli.usrSvc.Add(uname, pwd, role)
	if err != nil {
		return err
	}
	fmt.Printf("user %q (%s) created\n", usr.Username, usr.Role)
	return nil
}

// delUser removes the account matching the username.
func (cli *commandLine) delUser(uname string) error {
	if err := cli.usrSvc.Delete(uname); err != nil {
		return err
	}
	fmt.Printf("user %q deleted\n", core.CleanString(uname, true))
	return nil
}
