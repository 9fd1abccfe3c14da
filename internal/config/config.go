package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
	Storage  *storageConfig
	Mail     *mailConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"quotes"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address        string `envconfig:"QUOTE_INTAKE_ADDRESS" default:":8080"`
	MetricsAddress string `envconfig:"QUOTE_INTAKE_METRICS_ADDRESS" default:":8081"`
	BaseUrl        string `envconfig:"QUOTE_INTAKE_BASE_URL" default:"http://localhost:8080"`
	LogLevel       string `envconfig:"QUOTE_INTAKE_LOG_LEVEL" default:"info"`

	// StrictPersistence promotes a failed submissions insert to a fatal
	// pipeline error. The default keeps persistence best-effort: the job
	// sheet and the notification mail are the operational record.
	StrictPersistence bool `envconfig:"QUOTE_INTAKE_STRICT_PERSISTENCE" default:"false"`

	MigrationFolder string `envconfig:"QUOTE_INTAKE_MIGRATIONS_FOLDER" default:""`
}

type storageConfig struct {
	Endpoint      string `envconfig:"QUOTE_INTAKE_STORAGE_ENDPOINT" default:"localhost:9000"`
	Bucket        string `envconfig:"QUOTE_INTAKE_STORAGE_BUCKET" default:"quote-intake"`
	AccessKey     string `envconfig:"QUOTE_INTAKE_STORAGE_ACCESS_KEY" default:""`
	SecretKey     string `envconfig:"QUOTE_INTAKE_STORAGE_SECRET_KEY" default:""`
	UseSSL        bool   `envconfig:"QUOTE_INTAKE_STORAGE_USE_SSL" default:"false"`
	PublicBaseUrl string `envconfig:"QUOTE_INTAKE_STORAGE_PUBLIC_BASE_URL" default:""`
}

type mailConfig struct {
	ApiKey       string   `envconfig:"QUOTE_INTAKE_MAIL_API_KEY" default:""`
	From         string   `envconfig:"QUOTE_INTAKE_MAIL_FROM" default:"Grand & Upright <quotes@grandupright.co.uk>"`
	InternalTo   string   `envconfig:"QUOTE_INTAKE_MAIL_INTERNAL_TO" default:"bookings@grandupright.co.uk"`
	InternalCc   []string `envconfig:"QUOTE_INTAKE_MAIL_INTERNAL_CC" default:""`
	ThreadDomain string   `envconfig:"QUOTE_INTAKE_MAIL_THREAD_DOMAIN" default:"grandupright.co.uk"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a config populated with defaults only, ignoring the
// environment. Intended for tests.
func NewDefault() *Config {
	cfg := &Config{
		Database: &dbConfig{Type: "sqlite", Name: "file::memory:?cache=shared"},
		Service: &svcConfig{
			Address:        ":8080",
			MetricsAddress: ":8081",
			BaseUrl:        "http://localhost:8080",
			LogLevel:       "info",
		},
		Storage: &storageConfig{
			Endpoint: "localhost:9000",
			Bucket:   "quote-intake",
		},
		Mail: &mailConfig{
			From:         "Grand & Upright <quotes@grandupright.co.uk>",
			InternalTo:   "bookings@grandupright.co.uk",
			ThreadDomain: "grandupright.co.uk",
		},
	}
	return cfg
}
