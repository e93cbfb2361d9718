package main

import (
	"log"
	"os"

	"github.com/ecoone/campus/core"
	"github.com/ecoone/campus/core/sheet"
	"github.com/ecoone/campus/core/user"
	logsvc "github.com/ecoone/campus/services/logger"
	"github.com/ecoone/campus/storage/database"
	"github.com/ecoone/campus/storage/gsheets"
	"github.com/ecoone/campus/storage/inmem"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.Conf
	errAndDie(conf.Validate())

	// set up the table store
	store, err := openStore(conf)
	errAndDie(err)

	reg := sheet.NewRegistry()
	errAndDie(reg.EnsureHeaders(store))

	mirror := sheet.NewMirror(reg, store, logsvc.NewStdLogger("ADMIN"))
	errAndDie(mirror.LoadAll())
	gw := sheet.NewGateway(reg, store, mirror)

	// start CLI
	cli := commandLine{
		store:  store,
		reg:    reg,
		usrSvc: user.NewService(gw),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func openStore(conf *core.Config) (sheet.Store, error) {
	switch conf.StoreBackend {
	case core.StoreGSheets:
		return gsheets.Open(conf)
	case core.StorePostgres:
		return database.Open(conf)
	default:
		return inmem.Open(), nil
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
