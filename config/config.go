package config

import (
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Keys used to look up settings in files, the environment and flags.
const (
	KeyAddress       = "address"
	KeyDrainTimeout  = "drain_timeout"
	KeyLogFile       = "log_file"
	KeyLogMaxSizeMB  = "log_max_size_mb"
	KeyLogMaxBackups = "log_max_backups"
	KeyLogMaxAgeDays = "log_max_age_days"
	KeyRedirectLogs  = "redirect_logs"
)

// EnvPrefix is prepended to setting keys when reading them from the environment,
// so drain_timeout is read from HELLOD_DRAIN_TIMEOUT.
const EnvPrefix = "HELLOD"

// DefaultAddress is the address the server binds when none is configured.
const DefaultAddress = "0.0.0.0:8000"

// Settings holds the runtime configuration for hellod
type Settings struct {
	// Address to bind, in host:port form
	Address string
	// Maximum time to wait for in-flight requests on shutdown. Zero waits indefinitely.
	DrainTimeout time.Duration

	// Path to the diagnostic log file. Empty uses the default under the hellod home dir.
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	// Write diagnostic logs to stderr instead of LogFile
	RedirectLogs bool
}

// New creates a viper instance with hellod's defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAddress, DefaultAddress)
	v.SetDefault(KeyDrainTimeout, time.Duration(0))
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSizeMB, 50)
	v.SetDefault(KeyLogMaxBackups, 30)
	v.SetDefault(KeyLogMaxAgeDays, 1)
	v.SetDefault(KeyRedirectLogs, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads settings from v, merging in the file at path if non-empty.
func Load(v *viper.Viper, path string) (Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, errors.Wrapf(err, "could not read config file %v", path)
		}
	}

	s := Settings{
		Address:       v.GetString(KeyAddress),
		DrainTimeout:  v.GetDuration(KeyDrainTimeout),
		LogFile:       v.GetString(KeyLogFile),
		LogMaxSizeMB:  v.GetInt(KeyLogMaxSizeMB),
		LogMaxBackups: v.GetInt(KeyLogMaxBackups),
		LogMaxAgeDays: v.GetInt(KeyLogMaxAgeDays),
		RedirectLogs:  v.GetBool(KeyRedirectLogs),
	}
	return s, errors.WithStack(s.Validate())
}

// Validate checks the settings for values the server cannot use.
func (s Settings) Validate() error {
	if _, _, err := net.SplitHostPort(s.Address); err != nil {
		return errors.Wrapf(err, "invalid address %q", s.Address)
	}
	if s.DrainTimeout < 0 {
		return errors.Errorf("drain timeout must not be negative, got %v", s.DrainTimeout)
	}
	return nil
}
