// Package config manages the daemon configuration from environment
// variables with sane defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory storing the internal state of
	// the daemon.
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the
	// values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DbTypeKey selects the storage backend, either "badger" or "inmemory".
	DbTypeKey = "DB_TYPE"
	// StatsIntervalKey defines the interval in seconds for printing basic
	// markets statistics.
	StatsIntervalKey = "STATS_INTERVAL"
	// CollectorAddressKey is the ledger account receiving the swap fees of
	// every market created by the daemon.
	CollectorAddressKey = "COLLECTOR_ADDRESS"

	// DbLocation is the subdirectory of the datadir holding the db files.
	DbLocation = "db"
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("BONDEX")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir())
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DbTypeKey, "badger")
	vip.SetDefault(StatsIntervalKey, 600)
	vip.SetDefault(CollectorAddressKey, "collector")
}

// GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetDatadir ...
func GetDatadir() string {
	return vip.GetString(DatadirKey)
}

// GetDbDir returns the db directory inside the datadir.
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// Validate checks the configuration and prepares the datadir. It must be
// called once at startup.
func Validate() error {
	switch dbType := GetString(DbTypeKey); dbType {
	case "badger", "inmemory":
	default:
		return fmt.Errorf("unknown db type %q", dbType)
	}
	if GetString(CollectorAddressKey) == "" {
		return fmt.Errorf("collector address must not be empty")
	}
	if err := initDatadir(); err != nil {
		return fmt.Errorf("creating datadir: %w", err)
	}
	return nil
}

func initDatadir() error {
	return os.MkdirAll(GetDbDir(), 0755)
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.WithError(err).Warn("cannot detect home directory, using cwd as datadir")
		return ".bondex-daemon"
	}
	return filepath.Join(home, ".bondex-daemon")
}
