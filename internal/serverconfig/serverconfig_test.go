package serverconfig

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsakeygen/internal/addr"
)

var serverEnv = []string{
	"ADDRESS", "GRPC_ADDRESS", "KEY", "REQUIRE_SIGNATURE",
	"TRUSTED_SUBNET", "TRUSTED_PROXIES", "MIN_KEY_SIZE", "MAX_KEY_SIZE",
	"GENERATION_TIMEOUT", "CONFIG",
}

// clearEnv убирает переменные сервера и восстанавливает их после теста.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range serverEnv {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func createTempConfig(t *testing.T, content fileConfig) string {
	t.Helper()
	file, err := os.CreateTemp(t.TempDir(), "config_*.json")
	require.NoError(t, err)
	defer file.Close()

	require.NoError(t, json.NewEncoder(file).Encode(content))
	return file.Name()
}

func intPtr(v int) *int { return &v }

func TestServerConfigs_ParseArgs(t *testing.T) {
	jsonContent := fileConfig{
		Address:           "localhost:9090",
		GRPCAddress:       "localhost:3200",
		TrustedSubnet:     "10.0.0.0/8",
		TrustedProxies:    "10.255.0.0/16",
		MinKeySize:        intPtr(3072),
		MaxKeySize:        intPtr(8192),
		GenerationTimeout: "5s",
	}

	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		useJSON bool
		want    ServerConfigs
	}{
		{
			name: "Default values",
			want: ServerConfigs{
				Addr:              addr.Addr{Host: "localhost", Port: 8080},
				TrustedSubnet:     "127.0.0.0/8",
				MinKeySize:        2048,
				MaxKeySize:        16384,
				GenerationTimeout: time.Minute,
			},
		},
		{
			name: "Flags only (Flags > Defaults)",
			args: []string{
				"-a", "127.0.0.1:8181",
				"-g", "127.0.0.1:3200",
				"-k", "secret_flag",
				"-s",
				"-t", "",
				"-m", "0",
				"-max", "4096",
				"-proxies", "10.0.0.0/8",
				"-timeout", "90s",
			},
			want: ServerConfigs{
				Addr:              addr.Addr{Host: "127.0.0.1", Port: 8181},
				GRPCAddr:          "127.0.0.1:3200",
				Key:               "secret_flag",
				RequireSignature:  true,
				TrustedSubnet:     "",
				TrustedProxies:    "10.0.0.0/8",
				MinKeySize:        0,
				MaxKeySize:        4096,
				GenerationTimeout: 90 * time.Second,
			},
		},
		{
			name: "Env overrides defaults",
			env: map[string]string{
				"ADDRESS":            "0.0.0.0:80",
				"KEY":                "env_key",
				"MIN_KEY_SIZE":       "4096",
				"GENERATION_TIMEOUT": "2m",
			},
			want: ServerConfigs{
				Addr:              addr.Addr{Host: "0.0.0.0", Port: 80},
				Key:               "env_key",
				TrustedSubnet:     "127.0.0.0/8",
				MinKeySize:        4096,
				MaxKeySize:        16384,
				GenerationTimeout: 2 * time.Minute,
			},
		},
		{
			name:    "JSON fills the rest",
			useJSON: true,
			want: ServerConfigs{
				Addr:              addr.Addr{Host: "localhost", Port: 9090},
				GRPCAddr:          "localhost:3200",
				TrustedSubnet:     "10.0.0.0/8",
				TrustedProxies:    "10.255.0.0/16",
				MinKeySize:        3072,
				MaxKeySize:        8192,
				GenerationTimeout: 5 * time.Second,
			},
		},
		{
			name: "Priority check: Flags > Env > JSON",
			args: []string{"-m", "1024"},
			env: map[string]string{
				"MIN_KEY_SIZE":   "4096",
				"TRUSTED_SUBNET": "192.168.0.0/16",
			},
			useJSON: true,
			want: ServerConfigs{
				Addr:              addr.Addr{Host: "localhost", Port: 9090},
				GRPCAddr:          "localhost:3200",
				TrustedSubnet:     "192.168.0.0/16",
				TrustedProxies:    "10.255.0.0/16",
				MinKeySize:        1024,
				MaxKeySize:        8192,
				GenerationTimeout: 5 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			args := tt.args
			if tt.useJSON {
				args = append(args, "-config", createTempConfig(t, jsonContent))
			}

			cfg := InitialFlags()
			err := cfg.ParseArgs(flag.NewFlagSet("cmd", flag.ContinueOnError), args)
			require.NoError(t, err)

			assert.Equal(t, tt.want.Addr, cfg.Addr, "Addr mismatch")
			assert.Equal(t, tt.want.GRPCAddr, cfg.GRPCAddr, "GRPCAddr mismatch")
			assert.Equal(t, tt.want.Key, cfg.Key, "Key mismatch")
			assert.Equal(t, tt.want.RequireSignature, cfg.RequireSignature, "RequireSignature mismatch")
			assert.Equal(t, tt.want.TrustedSubnet, cfg.TrustedSubnet, "TrustedSubnet mismatch")
			assert.Equal(t, tt.want.TrustedProxies, cfg.TrustedProxies, "TrustedProxies mismatch")
			assert.Equal(t, tt.want.MinKeySize, cfg.MinKeySize, "MinKeySize mismatch")
			assert.Equal(t, tt.want.MaxKeySize, cfg.MaxKeySize, "MaxKeySize mismatch")
			assert.Equal(t, tt.want.GenerationTimeout, cfg.GenerationTimeout, "GenerationTimeout mismatch")
		})
	}
}

func TestServerConfigs_ParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		file string
	}{
		{name: "bad address flag", args: []string{"-a", "nohost"}},
		{name: "negative min size", args: []string{"-m", "-1"}},
		{name: "max below min", args: []string{"-m", "4096", "-max", "2048"}},
		{name: "zero max", env: map[string]string{"MAX_KEY_SIZE": "0"}},
		{name: "bad env int", env: map[string]string{"MIN_KEY_SIZE": "big"}},
		{name: "missing config file", args: []string{"-c", "/nonexistent/config.json"}},
		{name: "broken config file", file: "{"},
		{name: "bad timeout in config file", file: `{"generation_timeout":"soon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			args := tt.args
			if tt.file != "" {
				path := t.TempDir() + "/config.json"
				require.NoError(t, os.WriteFile(path, []byte(tt.file), 0o600))
				args = append(args, "-c", path)
			}

			cfg := InitialFlags()
			fs := flag.NewFlagSet("cmd", flag.ContinueOnError)
			fs.SetOutput(nopWriter{})
			assert.Error(t, cfg.ParseArgs(fs, args))
		})
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func ExampleServerConfigs_ParseFlags() {
	// СБРОС ФЛАГОВ ОБЯЗАТЕЛЕН ДЛЯ EXAMPLE
	flag.CommandLine = flag.NewFlagSet("example", flag.ContinueOnError)

	oldArgs := os.Args
	os.Args = []string{"example", "-a", "127.0.0.1:8181", "-m", "3072"}
	defer func() { os.Args = oldArgs }()

	cfg := InitialFlags()
	if err := cfg.ParseFlags(); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Listen: %s\n", cfg.GetAddr())
	fmt.Printf("Min key size: %d\n", cfg.MinKeySize)

	// Output:
	// Listen: 127.0.0.1:8181
	// Min key size: 3072
}
