// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON file and environment
// variables.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address"`

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string `json:"database_dsn"`

	// Config is the path to the Config file.
	Config string `json:"-"`

	// SessionKey is the secret the session cookie keys are derived from.
	SessionKey string `json:"session_key"`

	// SessionTTL is how long a login stays valid.
	SessionTTL time.Duration `json:"-"`

	// WebRoot is the directory holding the static pages and assets.
	WebRoot string `json:"web_root"`

	// LogLevel is the minimum zap level to log.
	LogLevel string `json:"log_level"`

	// AdminUsername and AdminPassword provision the bootstrap admin account.
	AdminUsername string `json:"admin_username"`
	AdminPassword string `json:"admin_password"`

	// SecureCookies marks the session cookie HTTPS-only.
	SecureCookies bool `json:"secure_cookies"`

	// GeneratedSessionKey reports that no secret was configured and a random
	// one was generated, so sessions will not survive a restart.
	GeneratedSessionKey bool `json:"-"`
}

// fileOptions mirrors the JSON config file. Durations are written as strings
// such as "12h".
type fileOptions struct {
	*Options
	SessionTTL string `json:"session_ttl"`
}

// Parse parses the command-line flags, config file and environment
// variables. It exits the process on invalid configuration.
func Parse() *Options {
	opts, err := ParseArgs(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("error while parsing configuration: %v", err)
	}
	return opts
}

// ParseArgs builds Options from args and getenv. Precedence, lowest first:
// flag defaults, config file, explicitly set flags, environment.
func ParseArgs(args []string, getenv func(string) string) (*Options, error) {
	opts := &Options{}

	fs := flag.NewFlagSet("admissions", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&opts.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&opts.Config, "config", "config.json", "path to config file")
	fs.StringVar(&opts.Config, "c", "config.json", "path to config file (shorthand)")
	fs.StringVar(&opts.SessionKey, "s", "", "session cookie secret")
	fs.DurationVar(&opts.SessionTTL, "session-ttl", 12*time.Hour, "login session lifetime")
	fs.StringVar(&opts.WebRoot, "w", "web", "directory with static pages")
	fs.StringVar(&opts.LogLevel, "l", "Info", "log level")
	fs.StringVar(&opts.AdminUsername, "admin-user", "", "bootstrap admin username")
	fs.StringVar(&opts.AdminPassword, "admin-password", "", "bootstrap admin password")
	fs.BoolVar(&opts.SecureCookies, "secure-cookies", false, "send the session cookie over HTTPS only")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configPath := getenv("CONFIG"); configPath != "" {
		opts.Config = configPath
	}

	if opts.Config != "" {
		if err := loadFile(opts.Config, opts, fs); err != nil {
			return nil, err
		}
	}

	applyEnv(opts, getenv)

	if opts.SessionKey == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session key: %w", err)
		}
		opts.SessionKey = hex.EncodeToString(key)
		opts.GeneratedSessionKey = true
	}

	return opts, nil
}

// loadFile overlays the JSON file at path onto opts, then re-applies flags
// given on the command line so they win over the file.
// A missing file is not an error.
func loadFile(path string, opts *Options, fs *flag.FlagSet) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}

	// Flag values share storage with opts, so capture them before the file
	// overwrites it.
	explicit := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = f.Value.String()
	})

	fo := fileOptions{Options: opts}
	if err := json.Unmarshal(data, &fo); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}
	if fo.SessionTTL != "" {
		ttl, err := time.ParseDuration(fo.SessionTTL)
		if err != nil {
			return fmt.Errorf("error while parsing session_ttl: %w", err)
		}
		opts.SessionTTL = ttl
	}

	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("error while applying flag -%s: %w", name, err)
		}
	}
	return nil
}

func applyEnv(opts *Options, getenv func(string) string) {
	if port := getenv("PORT"); port != "" {
		opts.Port = ":" + port
	}
	if serverAddress := getenv("SERVER_ADDRESS"); serverAddress != "" {
		opts.Port = serverAddress
	}
	if dsn := getenv("DATABASE_DSN"); dsn != "" {
		opts.DatabaseDSN = dsn
	}
	if key := getenv("SESSION_KEY"); key != "" {
		opts.SessionKey = key
	}
	if ttl := getenv("SESSION_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			opts.SessionTTL = d
		} else {
			log.Printf("ignoring invalid SESSION_TTL %q: %v", ttl, err)
		}
	}
	if root := getenv("WEB_ROOT"); root != "" {
		opts.WebRoot = root
	}
	if level := getenv("LOG_LEVEL"); level != "" {
		opts.LogLevel = level
	}
	if user := getenv("ADMIN_USERNAME"); user != "" {
		opts.AdminUsername = user
	}
	if pass := getenv("ADMIN_PASSWORD"); pass != "" {
		opts.AdminPassword = pass
	}
}
