// Package keypair generates RSA key pairs and encodes them as PKCS#1 PEM text.
// The service is stateless: every call draws fresh entropy from the OS random
// source and nothing about the generated keys is retained after return.
package keypair

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
)

// KeyPairRequest is the caller-supplied generation request.
type KeyPairRequest struct {
	KeySizeBits int
}

// KeyPair holds both keys of a single generation call as PEM text.
type KeyPair struct {
	PrivateKeyPEM string
	PublicKeyPEM  string
}

// Service produces RSA key pairs from crypto/rand entropy.
// It carries no state, so one Service may be shared by concurrent callers.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Generate creates a new RSA key pair of the requested size.
// Failures are returned as *GenerationError with the underlying cause attached.
func (s *Service) Generate(bits int) (KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return KeyPair{}, &GenerationError{Stage: StageGenerate, Bits: bits, Err: err}
	}

	privPEM, err := EncodePrivateKeyPEM(privateKey)
	if err != nil {
		return KeyPair{}, &GenerationError{Stage: StageEncode, Bits: bits, Err: err}
	}
	pubPEM, err := EncodePublicKeyPEM(&privateKey.PublicKey)
	if err != nil {
		return KeyPair{}, &GenerationError{Stage: StageEncode, Bits: bits, Err: err}
	}

	return KeyPair{PrivateKeyPEM: privPEM, PublicKeyPEM: pubPEM}, nil
}

// GenerateRequest is Generate for a KeyPairRequest.
func (s *Service) GenerateRequest(req KeyPairRequest) (KeyPair, error) {
	return s.Generate(req.KeySizeBits)
}

type generateResult struct {
	pair KeyPair
	err  error
}

// GenerateContext runs Generate and stops waiting once ctx is done.
// RSA generation cannot be interrupted, so a result arriving after that is dropped.
func (s *Service) GenerateContext(ctx context.Context, bits int) (KeyPair, error) {
	if err := ctx.Err(); err != nil {
		return KeyPair{}, err
	}

	// буферизованный канал, чтобы горутина не зависла после отмены
	done := make(chan generateResult, 1)
	go func() {
		pair, err := s.Generate(bits)
		done <- generateResult{pair: pair, err: err}
	}()

	select {
	case res := <-done:
		return res.pair, res.err
	case <-ctx.Done():
		return KeyPair{}, ctx.Err()
	}
}
