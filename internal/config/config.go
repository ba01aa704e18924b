package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Bind      string
	Port      int
	LogLevel  string // "debug", "info", "warn", "error"
	LogFormat string // "json" or "text"
	QRSize    int    // QR code edge length in pixels
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.QRSize < 64 || c.QRSize > 2048 {
		return fmt.Errorf("invalid qr-size (must be between 64-2048 inclusive): %d", c.QRSize)
	}
	return nil
}

// Addr returns the server address in host:port format
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Bind, strconv.Itoa(c.Port))
}

// RegisterFlags declares the command's flags and binds each one to a
// TUBEGUESS_* environment variable; an env value only applies when the
// flag was not set explicitly.
func RegisterFlags(cmd *cobra.Command, cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix("TUBEGUESS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: TUBEGUESS_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 8080, "port to listen on (env: TUBEGUESS_PORT)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn, error (env: TUBEGUESS_LOG_LEVEL)")
	fs.StringVar(&cfg.LogFormat, "log-format", "text", "log format: json or text (env: TUBEGUESS_LOG_FORMAT)")
	fs.IntVar(&cfg.QRSize, "qr-size", 256, "size of generated room QR codes in pixels (env: TUBEGUESS_QR_SIZE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}
