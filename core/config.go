package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreGSheets  = "gsheets"
	StorePostgres = "postgres"
)

type (
	SheetsConfig struct {
		SpreadsheetID   string
		CredentialsJSON string // inline service account payload; takes precedence over the file
		CredentialsFile string
	}

	DatabaseConfig struct {
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}

	ServerConfig struct {
		Address string
	}

	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		AppName  string

		SecretKey        string
		DefaultFromEmail mail.Address
		NotifyEmail      string // office inbox for notification fan-out

		StoreBackend string // memory | gsheets | postgres

		Server   ServerConfig
		Sheets   SheetsConfig
		Database DatabaseConfig

		SendgridAPIKey string
		RollbarToken   string
	}
)

func (dc DatabaseConfig) Address() string {
	return dc.Host + ":" + dc.Port
}

// Validate checks invariants that must hold before the app can start.
func (c *Config) Validate() error {
	checks := vala.BeginValidation().Validate(
		vala.StringNotEmpty(c.AppName, "appName"),
		vala.StringNotEmpty(c.SecretKey, "secretKey"),
		vala.StringNotEmpty(c.StoreBackend, "storeBackend"),
	)
	if c.StoreBackend == StoreGSheets {
		checks = checks.Validate(
			vala.StringNotEmpty(c.Sheets.SpreadsheetID, "sheets.spreadsheetID"),
		)
	}
	if c.StoreBackend == StorePostgres {
		checks = checks.Validate(
			vala.StringNotEmpty(c.Database.Name, "database.name"),
			vala.StringNotEmpty(c.Database.User, "database.user"),
		)
	}
	return checks.Check()
}

var Conf *Config

func init() {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "EcoOne ERP")
	v.SetDefault("secretKey", "x$p2m)9vq&+48=dz(wez!h#0c7^yg4n@5cegm2kqy")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("notifyEmail", "")
	v.SetDefault("storeBackend", StoreMemory)
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("sheetsSpreadsheetID", "")
	v.SetDefault("sheetsCredentialsJSON", "")
	v.SetDefault("sheetsCredentialsFile", "service_account.json")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", "5432")
	v.SetDefault("databaseName", "campus")
	v.SetDefault("databaseUser", "campus")
	v.SetDefault("databasePassword", "")
	v.SetDefault("databaseDisableTLS", true)
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         env == "TEST",
		Env:              env,
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		NotifyEmail:      v.GetString("notifyEmail"),
		StoreBackend:     v.GetString("storeBackend"),
		Server:           ServerConfig{Address: v.GetString("serverAddress")},
		Sheets: SheetsConfig{
			SpreadsheetID:   v.GetString("sheetsSpreadsheetID"),
			CredentialsJSON: v.GetString("sheetsCredentialsJSON"),
			CredentialsFile: v.GetString("sheetsCredentialsFile"),
		},
		Database: DatabaseConfig{
			Host:       v.GetString("databaseHost"),
			Port:       v.GetString("databasePort"),
			Name:       v.GetString("databaseName"),
			User:       v.GetString("databaseUser"),
			Password:   v.GetString("databasePassword"),
			DisableTLS: v.GetBool("databaseDisableTLS"),
		},
		SendgridAPIKey: v.GetString("sendgridApiKey"),
		RollbarToken:   v.GetString("rollbarToken"),
	}
}
