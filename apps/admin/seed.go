package main

import (
	"fmt"
)

// repairHeaders re-runs table creation and header repair against the store.
func (cli *commandLine) repairHeaders() error {
	if err := cli.reg.EnsureHeaders(cli.store); err != nil {
		return err
	}
	fmt.Println("tables and headers verified")
	return nil
}

// seedDemo appends the demo accounts that are not in the users table yet.
func (cli *commandLine) seedDemo() error {
	if err := cli.usrSvc.EnsureDemoUsers(); err != nil {
		return err
	}
	fmt.Println("demo users seeded")
	return nil
}
