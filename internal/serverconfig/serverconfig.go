// Package serverconfig manages configuration parameters for the key server.
// It supports configuration via command-line flags, environment variables, and JSON config file,
// prioritizing flags over environment variables, and environment variables over config file.
package serverconfig

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"rsakeygen/internal/addr"

	"github.com/caarlos0/env/v6"
)

// ServerConfigs holds all configuration settings for the server.
type ServerConfigs struct {
	// Addr is the HTTP listen address (host:port).
	Addr addr.Addr `env:"ADDRESS" envDefault:"localhost:8080"`

	// GRPCAddr is the gRPC listen address; empty disables gRPC.
	GRPCAddr string `env:"GRPC_ADDRESS" envDefault:""`

	// Key is the HMAC secret shared with the UI shell.
	Key string `env:"KEY" envDefault:""`

	// RequireSignature rejects unsigned POST requests when Key is set.
	RequireSignature bool `env:"REQUIRE_SIGNATURE" envDefault:"false"`

	// TrustedSubnet limits callers to a CIDR; empty allows everyone.
	TrustedSubnet string `env:"TRUSTED_SUBNET" envDefault:"127.0.0.0/8"`

	// TrustedProxies lists peers whose X-Real-IP is believed; empty ignores the header.
	TrustedProxies string `env:"TRUSTED_PROXIES" envDefault:""`

	// MinKeySize is the smallest key size accepted from callers; 0 defers to crypto/rsa.
	MinKeySize int `env:"MIN_KEY_SIZE" envDefault:"2048"`

	// MaxKeySize caps the key size; generation cannot be interrupted once started.
	MaxKeySize int `env:"MAX_KEY_SIZE" envDefault:"16384"`

	// GenerationTimeout bounds how long a request waits for a key pair.
	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT" envDefault:"60s"`

	// ConfigPath is the path to the JSON configuration file.
	ConfigPath string `env:"CONFIG"`
}

// fileConfig is an internal struct to map JSON fields exactly as required.
type fileConfig struct {
	Address           string `json:"address"`
	GRPCAddress       string `json:"grpc_address"`
	TrustedSubnet     string `json:"trusted_subnet"`
	TrustedProxies    string `json:"trusted_proxies"`
	MinKeySize        *int   `json:"min_key_size"`
	MaxKeySize        *int   `json:"max_key_size"`
	GenerationTimeout string `json:"generation_timeout"` // JSON uses string duration like "30s"
	RequireSignature  *bool  `json:"require_signature"`
}

// GetAddr returns the full HTTP address string.
func (o *ServerConfigs) GetAddr() string {
	return o.Addr.GetAddr()
}

// InitialFlags creates a new ServerConfigs with zero values.
func InitialFlags() ServerConfigs {
	return ServerConfigs{
		Addr: addr.Addr{},
	}
}

// ParseFlags reads configuration from os.Args, the environment and the JSON file.
func (o *ServerConfigs) ParseFlags() error {
	return o.ParseArgs(flag.CommandLine, os.Args[1:])
}

// ParseArgs is ParseFlags for an explicit FlagSet and argument list.
// Priority: Flags > Env > Config File > Defaults.
func (o *ServerConfigs) ParseArgs(fs *flag.FlagSet, args []string) error {
	// 1. Defaults and ENV
	if err := env.Parse(o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	// 2. Flags, with ENV values as their defaults
	fs.Var(&o.Addr, "a", "HTTP host and port")
	fs.StringVar(&o.GRPCAddr, "g", o.GRPCAddr, "gRPC host and port, empty to disable")
	fs.StringVar(&o.Key, "k", o.Key, "HMAC key shared with the UI shell")
	fs.BoolVar(&o.RequireSignature, "s", o.RequireSignature, "Reject unsigned requests")
	fs.StringVar(&o.TrustedSubnet, "t", o.TrustedSubnet, "Trusted subnet (CIDR)")
	fs.StringVar(&o.TrustedProxies, "proxies", o.TrustedProxies, "Proxies allowed to set X-Real-IP (CIDR)")
	fs.IntVar(&o.MinKeySize, "m", o.MinKeySize, "Minimum accepted key size in bits, 0 to disable")
	fs.IntVar(&o.MaxKeySize, "max", o.MaxKeySize, "Maximum accepted key size in bits")
	fs.DurationVar(&o.GenerationTimeout, "timeout", o.GenerationTimeout, "Key generation timeout")
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "Path to configuration file")
	fs.StringVar(&o.ConfigPath, "c", o.ConfigPath, "Path to configuration file (shorthand)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// 3. Config file fills whatever flags and ENV left alone
	if o.ConfigPath != "" {
		if err := o.loadConfigFile(fs, o.ConfigPath); err != nil {
			return err
		}
	}

	if o.MinKeySize < 0 {
		return fmt.Errorf("MIN_KEY_SIZE must be >= 0, got %d", o.MinKeySize)
	}
	if o.MaxKeySize <= 0 || o.MaxKeySize < o.MinKeySize {
		return fmt.Errorf("MAX_KEY_SIZE must be > 0 and >= MIN_KEY_SIZE, got %d", o.MaxKeySize)
	}
	return nil
}

func (o *ServerConfigs) loadConfigFile(fs *flag.FlagSet, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	var jCfg fileConfig
	if err := json.NewDecoder(file).Decode(&jCfg); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}

	isFlagSet := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		isFlagSet[f.Name] = true
	})
	isSet := func(flagName, envName string) bool {
		_, ok := os.LookupEnv(envName)
		return isFlagSet[flagName] || ok
	}

	if !isSet("a", "ADDRESS") && jCfg.Address != "" {
		if err := o.Addr.Set(jCfg.Address); err != nil {
			return fmt.Errorf("invalid address in config file: %w", err)
		}
	}
	if !isSet("g", "GRPC_ADDRESS") && jCfg.GRPCAddress != "" {
		o.GRPCAddr = jCfg.GRPCAddress
	}
	if !isSet("t", "TRUSTED_SUBNET") && jCfg.TrustedSubnet != "" {
		o.TrustedSubnet = jCfg.TrustedSubnet
	}
	if !isSet("proxies", "TRUSTED_PROXIES") && jCfg.TrustedProxies != "" {
		o.TrustedProxies = jCfg.TrustedProxies
	}
	if !isSet("m", "MIN_KEY_SIZE") && jCfg.MinKeySize != nil {
		o.MinKeySize = *jCfg.MinKeySize
	}
	if !isSet("max", "MAX_KEY_SIZE") && jCfg.MaxKeySize != nil {
		o.MaxKeySize = *jCfg.MaxKeySize
	}
	if !isSet("s", "REQUIRE_SIGNATURE") && jCfg.RequireSignature != nil {
		o.RequireSignature = *jCfg.RequireSignature
	}
	if !isSet("timeout", "GENERATION_TIMEOUT") && jCfg.GenerationTimeout != "" {
		dur, err := time.ParseDuration(jCfg.GenerationTimeout)
		if err != nil {
			return fmt.Errorf("invalid generation_timeout in config file: %w", err)
		}
		o.GenerationTimeout = dur
	}
	return nil
}
