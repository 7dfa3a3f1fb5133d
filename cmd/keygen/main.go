// Package main is the keygen CLI: it asks a running key server for an RSA key
// pair over HTTP or gRPC and writes the PEM blocks to stdout or to files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc/status"

	"rsakeygen/configs"
	"rsakeygen/internal/api/keysdto"
	"rsakeygen/internal/clientconfig"
	"rsakeygen/internal/grpcclient"
	"rsakeygen/internal/httpclient"
	"rsakeygen/internal/logger"
	"rsakeygen/internal/netutil"
	"rsakeygen/internal/retry"
)

type keyClient interface {
	MakeRSAKeys(ctx context.Context, keySize uint, includeJWK bool) (*keysdto.KeyPairResponse, error)
}

// retryingClient re-runs transport failures of the wrapped client.
type retryingClient struct {
	next  keyClient
	retry retry.RetryConfig
}

func (c retryingClient) MakeRSAKeys(ctx context.Context, keySize uint, includeJWK bool) (*keysdto.KeyPairResponse, error) {
	res, err := c.retry.Retry(ctx, func(args ...any) (any, error) {
		return c.next.MakeRSAKeys(ctx, args[0].(uint), args[1].(bool))
	}, keySize, includeJWK)
	if err != nil {
		return nil, err
	}
	return res.(*keysdto.KeyPairResponse), nil
}

func main() {
	if err := run(); err != nil {
		fail(err)
	}
}

// fail prints err and exits non-zero. Server errors already carry the
// "Error generating keys: " prefix.
func fail(err error) {
	msg := err.Error()
	if st, ok := status.FromError(err); ok {
		msg = st.Message()
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func run() error {
	cfg := clientconfig.InitialFlags()
	if err := cfg.ParseFlags(); err != nil {
		return err
	}

	newLogger, err := logger.CreateLoggerRequest()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer newLogger.Sync()
	newLogger.Debugw("keygen", configs.LogFields()...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	retryCfg := retry.DefaultConfig()
	retryCfg.Attempts = cfg.Retry
	retryCfg.OnRetry = func(err error, attempt int, delay time.Duration) {
		newLogger.Warnf("retry attempt %d failed: %v; next retry in %v", attempt, err, delay)
	}

	target := cfg.Addr.GetAddr()
	if cfg.Transport == clientconfig.TransportGRPC {
		target = cfg.GRPCAddr
	}
	realIP, err := netutil.ResolveRealIP(cfg.RealIP, target)
	if err != nil {
		return err
	}

	var client keyClient
	switch cfg.Transport {
	case clientconfig.TransportGRPC:
		gc, err := grpcclient.NewClient(cfg.GRPCAddr, realIP, cfg.Timeout)
		if err != nil {
			return fmt.Errorf("dial %s: %w", cfg.GRPCAddr, err)
		}
		defer gc.Close()
		client = retryingClient{next: gc, retry: retryCfg}
	default:
		client = httpclient.New(cfg.Addr.URL(),
			httpclient.WithKey(cfg.Key),
			httpclient.WithCompression(cfg.Compress == "gzip"),
			httpclient.WithRealIP(realIP),
			httpclient.WithTimeout(cfg.Timeout),
			httpclient.WithRetry(retryCfg),
		)
	}

	out, err := client.MakeRSAKeys(ctx, cfg.KeySize, cfg.IncludeJWK)
	if err != nil {
		return err
	}
	newLogger.Infow("key pair received", "bits", cfg.KeySize, "fingerprint", out.Fingerprint)

	return writeKeys(cfg.Out, os.Stdout, out)
}

// writeKeys prints both PEM blocks to w, or writes them to path and path.pub.
func writeKeys(path string, w io.Writer, out *keysdto.KeyPairResponse) error {
	if path == "" {
		if _, err := io.WriteString(w, out.PrivateKeyPEM); err != nil {
			return err
		}
		if _, err := io.WriteString(w, out.PublicKeyPEM); err != nil {
			return err
		}
		if len(out.PublicJWK) > 0 {
			_, err := fmt.Fprintf(w, "%s\n", out.PublicJWK)
			return err
		}
		return nil
	}

	if err := os.WriteFile(path, []byte(out.PrivateKeyPEM), 0o600); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}
	if err := os.WriteFile(path+".pub", []byte(out.PublicKeyPEM), 0o644); err != nil {
		return fmt.Errorf("write public key: %w", err)
	}
	if len(out.PublicJWK) > 0 {
		if err := os.WriteFile(path+".jwk", out.PublicJWK, 0o644); err != nil {
			return fmt.Errorf("write jwk: %w", err)
		}
	}
	return nil
}
