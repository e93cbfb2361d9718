package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecoone/campus/core"
	"github.com/ecoone/campus/core/activity"
	"github.com/ecoone/campus/core/notification"
	"github.com/ecoone/campus/core/payment"
	"github.com/ecoone/campus/core/request"
	"github.com/ecoone/campus/core/sheet"
	"github.com/ecoone/campus/core/student"
	"github.com/ecoone/campus/core/user"

	echoapi "github.com/ecoone/campus/apps/api/echo"
	emailsvc "github.com/ecoone/campus/services/email"
	sendgridmail "github.com/ecoone/campus/services/email/sendgrid"
	logsvc "github.com/ecoone/campus/services/logger"
	"github.com/ecoone/campus/storage/database"
	"github.com/ecoone/campus/storage/gsheets"
	"github.com/ecoone/campus/storage/inmem"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf := core.Conf
	if err := conf.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// set up logger
	var logger core.Logger
	if conf.RollbarToken != "" {
		std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
		rollbarLogger := logsvc.NewRollbarLogger(std, conf)
		rollbarLogger.Enable(!conf.Debug)
		logger = rollbarLogger
	} else {
		logger = logsvc.NewStdLogger("API")
	}

	// set up the table store
	store, err := openStore(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening %s store: %v", conf.StoreBackend, err))
	}

	reg := sheet.NewRegistry()
	if err = reg.EnsureHeaders(store); err != nil {
		logger.Fatal(fmt.Sprintf("ensuring table headers: %v", err))
	}

	mirror := sheet.NewMirror(reg, store, logger)
	if err = mirror.LoadAll(); err != nil {
		logger.Fatal(fmt.Sprintf("loading mirror: %v", err))
	}
	gw := sheet.NewGateway(reg, store, mirror)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = sendgridmail.NewService(conf)
	}

	usrSvc := user.NewService(gw)
	stuSvc := student.NewService(gw)
	auditSvc := activity.NewService(gw)
	noteSvc := notification.NewService(gw, mailSvc, conf.NotifyEmail)
	reqSvc := request.NewService(gw, stuSvc, auditSvc, noteSvc)
	paySvc := payment.NewService(mirror)

	if err = usrSvc.EnsureDemoUsers(); err != nil {
		logger.Fatal(fmt.Sprintf("seeding demo users: %v", err))
	}

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(&echoapi.Options{
		Address:         conf.Server.Address,
		Logger:          logger,
		Shutdown:        shutdown,
		UserSvc:         usrSvc,
		StudentSvc:      stuSvc,
		RequestSvc:      reqSvc,
		PaymentSvc:      paySvc,
		ActivitySvc:     auditSvc,
		NotificationSvc: noteSvc,
	})

	go server.Start()
	logger.Info(fmt.Sprintf("%s listening on %s (store: %s)", conf.AppName, conf.Server.Address, conf.StoreBackend))

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Stop(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err))
	}
	logger.Info("application stopped")
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
