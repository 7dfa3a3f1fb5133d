// Package clientconfig manages configuration parameters for the keygen CLI.
// It supports configuration via command-line flags, environment variables and a JSON file,
// prioritizing flags over environment variables, and environment variables over the file.
package clientconfig

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"rsakeygen/internal/addr"

	"github.com/caarlos0/env/v6"
)

const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

var ErrUnknownTransport = errors.New("unknown transport")

// ClientConfig holds all configuration settings for the client.
// Fields are tagged for parsing from environment variables using github.com/caarlos0/env.
type ClientConfig struct {
	// Addr is the HTTP server address (host:port).
	Addr addr.Addr `env:"ADDRESS" envDefault:"localhost:8080"`

	// GRPCAddr is the gRPC server address, used when Transport is "grpc".
	GRPCAddr string `env:"GRPC_ADDRESS" envDefault:"localhost:3200"`

	// Transport is "http" or "grpc".
	Transport string `env:"TRANSPORT" envDefault:"http"`

	// Key is the HMAC secret for the HashSHA256 header.
	Key string `env:"KEY" envDefault:""`

	// KeySize is the requested modulus size in bits.
	KeySize uint `env:"KEY_SIZE" envDefault:"2048"`

	// IncludeJWK asks the server for the public key as a JWK too.
	IncludeJWK bool `env:"INCLUDE_JWK" envDefault:"false"`

	// Compress enables gzip for request bodies ("gzip" or empty).
	Compress string `env:"COMPRESS" envDefault:"gzip"`

	// Retry is the number of attempts for a transport call.
	Retry int `env:"RETRY" envDefault:"4"`

	// Timeout bounds a single call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"90s"`

	// RealIP is sent as X-Real-IP / x-real-ip when set; "auto" picks the outbound interface address.
	RealIP string `env:"REAL_IP" envDefault:""`

	// Out is the private key path; the public key goes to Out + ".pub". Empty prints to stdout.
	Out string `env:"OUT" envDefault:""`

	// ConfigPath is the path to the JSON configuration file.
	ConfigPath string `env:"CONFIG"`
}

type fileConfig struct {
	Address     string `json:"address"`
	GRPCAddress string `json:"grpc_address"`
	Transport   string `json:"transport"`
	KeySize     uint   `json:"key_size"`
	Retry       int    `json:"retry"`
	Timeout     string `json:"timeout"`
}

// GetPort returns the port string formatted with a colon (e.g., ":8080").
func (o *ClientConfig) GetPort() string {
	return fmt.Sprintf(":%d", o.Addr.GetPort())
}

// GetHost returns the hostname part of the address.
func (o *ClientConfig) GetHost() string {
	return o.Addr.GetHost()
}

// InitialFlags creates a new ClientConfig with zero values.
func InitialFlags() ClientConfig {
	return ClientConfig{
		Addr: addr.Addr{},
	}
}

// ParseFlags reads configuration from os.Args, the environment and the JSON file.
func (o *ClientConfig) ParseFlags() error {
	return o.parse(flag.CommandLine, os.Args[1:])
}

// ParseFlagsFromArgs is ParseFlags on a private FlagSet, for tests and embedding.
func (o *ClientConfig) ParseFlagsFromArgs(args []string) error {
	return o.parse(flag.NewFlagSet("keygen", flag.ContinueOnError), args)
}

func (o *ClientConfig) parse(fs *flag.FlagSet, args []string) error {
	if err := env.Parse(o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	fs.Var(&o.Addr, "a", "HTTP server host and port")
	fs.StringVar(&o.GRPCAddr, "g", o.GRPCAddr, "gRPC server host and port")
	fs.StringVar(&o.Transport, "transport", o.Transport, "Transport: http or grpc")
	fs.StringVar(&o.Key, "k", o.Key, "HMAC key")
	fs.UintVar(&o.KeySize, "b", o.KeySize, "Key size in bits")
	fs.BoolVar(&o.IncludeJWK, "jwk", o.IncludeJWK, "Also fetch the public key as JWK")
	fs.StringVar(&o.Compress, "z", o.Compress, "Request compression (gzip or empty)")
	fs.IntVar(&o.Retry, "r", o.Retry, "Attempts per call")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Per-call timeout")
	fs.StringVar(&o.RealIP, "ip", o.RealIP, "Value for X-Real-IP")
	fs.StringVar(&o.Out, "o", o.Out, "Write private key here and public key to <path>.pub")
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "Path to configuration file")
	fs.StringVar(&o.ConfigPath, "c", o.ConfigPath, "Path to configuration file (shorthand)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if o.ConfigPath != "" {
		if err := o.loadConfigFile(fs, o.ConfigPath); err != nil {
			return err
		}
	}

	switch o.Transport {
	case TransportHTTP, TransportGRPC:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTransport, o.Transport)
	}
	return nil
}

func (o *ClientConfig) loadConfigFile(fs *flag.FlagSet, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jCfg fileConfig
	if err := json.Unmarshal(data, &jCfg); err != nil {
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
	if !isSet("transport", "TRANSPORT") && jCfg.Transport != "" {
		o.Transport = jCfg.Transport
	}
	if !isSet("b", "KEY_SIZE") && jCfg.KeySize != 0 {
		o.KeySize = jCfg.KeySize
	}
	if !isSet("r", "RETRY") && jCfg.Retry != 0 {
		o.Retry = jCfg.Retry
	}
	if !isSet("timeout", "TIMEOUT") && jCfg.Timeout != "" {
		dur, err := time.ParseDuration(jCfg.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in config file: %w", err)
		}
		o.Timeout = dur
	}
	return nil
}
