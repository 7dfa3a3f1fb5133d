// Package command is the invocation surface the desktop shell calls into.
//
// It exposes the make_rsa_keys command both as a typed Go method and through a
// name-based dispatcher taking JSON arguments, the way UI frameworks invoke
// backend commands. Every failure is reported as "Error generating keys: <cause>".
package command

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"rsakeygen/internal/keypair"
	"rsakeygen/internal/logger"
)

// MakeRSAKeys is the name under which key generation is registered.
const MakeRSAKeys = "make_rsa_keys"

// ErrorPrefix starts every message returned by make_rsa_keys on failure.
const ErrorPrefix = "Error generating keys: "

// DefaultMaxKeySize is the upper bound used when WithMaxKeySize is not given.
const DefaultMaxKeySize = 16384

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrKeySizeTooLow  = errors.New("key size below configured minimum")
	ErrKeySizeTooHigh = errors.New("key size above configured maximum")
	ErrKeySizeRange   = errors.New("key size out of range")
)

// Generator produces key pairs.
type Generator interface {
	GenerateContext(ctx context.Context, bits int) (keypair.KeyPair, error)
}

// Observer receives generation outcomes, e.g. prometheus metrics.
type Observer interface {
	ObserveSuccess(bits int, elapsed time.Duration)
	ObserveFailure(stage string)
}

// Error is the single error kind returned by make_rsa_keys.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return ErrorPrefix + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Commands struct {
	generator Generator
	minBits   int
	maxBits   int
	timeout   time.Duration
	log       *logger.LoggerRequest
	observer  Observer
}

type Option func(*Commands)

// WithMinKeySize rejects requests below bits before generation starts.
// Zero leaves the decision to the RSA primitive.
func WithMinKeySize(bits int) Option {
	return func(c *Commands) { c.minBits = bits }
}

// WithMaxKeySize rejects requests above bits. RSA generation cannot be
// interrupted, so without a cap one request can hold a CPU for hours.
// Zero removes the cap.
func WithMaxKeySize(bits int) Option {
	return func(c *Commands) { c.maxBits = bits }
}

// WithTimeout bounds how long a caller waits for a key pair.
func WithTimeout(d time.Duration) Option {
	return func(c *Commands) { c.timeout = d }
}

func WithLogger(l *logger.LoggerRequest) Option {
	return func(c *Commands) { c.log = l }
}

func WithObserver(o Observer) Option {
	return func(c *Commands) { c.observer = o }
}

func New(gen Generator, opts ...Option) *Commands {
	c := &Commands{
		generator: gen,
		maxBits:   DefaultMaxKeySize,
		log:       logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MakeRSAKeys generates a key pair and returns (private PEM, public PEM).
func (c *Commands) MakeRSAKeys(keySize uint) (string, string, error) {
	return c.MakeRSAKeysContext(context.Background(), keySize)
}

// MakeRSAKeysContext is MakeRSAKeys bounded by ctx and the configured timeout.
func (c *Commands) MakeRSAKeysContext(ctx context.Context, keySize uint) (string, string, error) {
	if keySize > math.MaxInt32 {
		c.fail("policy", keySize, ErrKeySizeRange)
		return "", "", &Error{Err: fmt.Errorf("%w: %d", ErrKeySizeRange, keySize)}
	}
	bits := int(keySize)
	if c.minBits > 0 && bits < c.minBits {
		c.fail("policy", keySize, ErrKeySizeTooLow)
		return "", "", &Error{Err: fmt.Errorf("%w: %d < %d", ErrKeySizeTooLow, bits, c.minBits)}
	}
	if c.maxBits > 0 && bits > c.maxBits {
		c.fail("policy", keySize, ErrKeySizeTooHigh)
		return "", "", &Error{Err: fmt.Errorf("%w: %d > %d", ErrKeySizeTooHigh, bits, c.maxBits)}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	pair, err := c.generator.GenerateContext(ctx, bits)
	if err != nil {
		c.fail(failureStage(err), keySize, err)
		return "", "", &Error{Err: err}
	}
	elapsed := time.Since(start)

	if c.observer != nil {
		c.observer.ObserveSuccess(bits, elapsed)
	}
	if fp, fpErr := keypair.Fingerprint(pair.PublicKeyPEM); fpErr == nil {
		c.log.Infow("key pair generated", "bits", bits, "duration", elapsed, "fingerprint", fp)
	} else {
		c.log.Infow("key pair generated", "bits", bits, "duration", elapsed)
	}

	return pair.PrivateKeyPEM, pair.PublicKeyPEM, nil
}

func failureStage(err error) string {
	var genErr *keypair.GenerationError
	switch {
	case errors.As(err, &genErr):
		return genErr.Stage
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return keypair.StageGenerate
	}
}

func (c *Commands) fail(stage string, keySize uint, err error) {
	if c.observer != nil {
		c.observer.ObserveFailure(stage)
	}
	c.log.Warnw("key generation failed", "bits", keySize, "stage", stage, "error", err)
}
