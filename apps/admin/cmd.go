package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/ecoone/campus/core/sheet"
	"github.com/ecoone/campus/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	store  sheet.Store
	reg    *sheet.Registry
	usrSvc *user.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  repairheaders                        - create missing tables and repair headers")
	fmt.Println("  seeddemo                             - seed the demo accounts")
	fmt.Println("  adduser -username USERNAME -role ROLE - add a user; the password will be prompted")
	fmt.Println("  deluser -username USERNAME           - delete a user")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserUname := addUserCmd.String("username", "", "The new user's username. The password will be prompted next.")
	addUserRole := addUserCmd.String("role", user.RoleStudent, "One of: Admin, Student, Faculty, Librarian, Hostel Warden.")

	delUserCmd := flag.NewFlagSet("deluser", flag.ExitOnError)
	delUserUname := delUserCmd.String("username", "", "The username to delete.")

	switch args[1] {
	case "repairheaders":
		return cli.repairHeaders()
	case "seeddemo":
		return cli.seedDemo()
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserUname, string(pwd), *addUserRole)
	case "deluser":
		if err := delUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *delUserUname == "" {
			delUserCmd.Usage()
			return errHelp
		}
		return cli.delUser(*delUserUname)
	default:
		cli.printUsage()
		return errHelp
	}
}
