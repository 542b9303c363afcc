package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"
)

type Config struct {
	StoreDriver       string `mapstructure:"store_driver"`
	DataDir           string `mapstructure:"data_dir"`
	CatalogFile       string `mapstructure:"catalog_file"`
	TransactionFile   string `mapstructure:"transaction_file"`
	DBDSN             string `mapstructure:"db_dsn"`
	LowStockThreshold int    `mapstructure:"low_stock_threshold"`
	LogFile           string `mapstructure:"log_file"`
	LogLevel          string `mapstructure:"log_level"`
}

var defaults = map[string]any{
	"store_driver":        DriverCSV,
	"data_dir":            ".",
	"catalog_file":        "catalog.csv",
	"transaction_file":    "transactions.csv",
	"db_dsn":              "beautystock.db",
	"low_stock_threshold": 10,
	"log_file":            "beautystock.log",
	"log_level":           "info",
}

// Load resolves configuration from flags, environment (a .env file in the
// working directory is honoured), an optional beautystock.yaml and defaults,
// in that order of precedence.
func Load(args []string) (Config, error) {
	_ = godotenv.Load() // optional

	flags := pflag.NewFlagSet("beautystock", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to a YAML config file")
	flags.String("store", DriverCSV, "storage driver: csv or sqlite")
	flags.String("data-dir", ".", "directory holding the data files")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	for key, def := range defaults {
		v.SetDefault(key, def)
	}
	// LOG_FILE= turns file logging off, so an empty variable must count as set
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"store_driver": "store",
		"data_dir":     "data-dir",
		"log_level":    "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return Config{}, err
		}
	}

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", *configFile, err)
		}
	} else {
		v.SetConfigName("beautystock")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, err
			}
		}
	}

	// empty means "unset" for everything but log_file
	for key, def := range defaults {
		if key != "log_file" && strings.TrimSpace(v.GetString(key)) == "" {
			v.Set(key, def)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case DriverCSV, DriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("low stock threshold must not be negative, got %d", c.LowStockThreshold)
	}
	return nil
}

func (c Config) CatalogPath() string     { return c.inDataDir(c.CatalogFile) }
func (c Config) TransactionPath() string { return c.inDataDir(c.TransactionFile) }

// DBPath places a plain file DSN under the data directory.
func (c Config) DBPath() string {
	if c.DBDSN == ":memory:" || strings.HasPrefix(c.DBDSN, "file:") {
		return c.DBDSN
	}
	return c.inDataDir(c.DBDSN)
}

func (c Config) inDataDir(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// Fields is the resolved configuration in log form.
func (c Config) Fields() map[string]any {
	return map[string]any{
		"store_driver":        c.StoreDriver,
		"data_dir":            c.DataDir,
		"catalog_file":        c.CatalogPath(),
		"transaction_file":    c.TransactionPath(),
		"db_dsn":              c.DBPath(),
		"low_stock_threshold": c.LowStockThreshold,
		"log_level":           c.LogLevel,
	}
}
