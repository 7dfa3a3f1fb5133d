package keypair

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// PEM block types of the PKCS#1 encoding.
const (
	PrivateKeyBlockType = "RSA PRIVATE KEY"
	PublicKeyBlockType  = "RSA PUBLIC KEY"
)

var (
	ErrNoPEMBlock     = errors.New("no PEM block found")
	ErrWrongBlockType = errors.New("unexpected PEM block type")
	ErrKeyMismatch    = errors.New("public key does not belong to private key")
)

// EncodePrivateKeyPEM encodes key as a PKCS#1 "RSA PRIVATE KEY" block.
func EncodePrivateKeyPEM(key *rsa.PrivateKey) (string, error) {
	var buf bytes.Buffer
	if err := pem.Encode(&buf, &pem.Block{
		Type:  PrivateKeyBlockType,
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}); err != nil {
		return "", fmt.Errorf("encode private key: %w", err)
	}
	return buf.String(), nil
}

// EncodePublicKeyPEM encodes key as a PKCS#1 "RSA PUBLIC KEY" block.
func EncodePublicKeyPEM(key *rsa.PublicKey) (string, error) {
	var buf bytes.Buffer
	if err := pem.Encode(&buf, &pem.Block{
		Type:  PublicKeyBlockType,
		Bytes: x509.MarshalPKCS1PublicKey(key),
	}); err != nil {
		return "", fmt.Errorf("encode public key: %w", err)
	}
	return buf.String(), nil
}

func decodeBlock(data string, blockType string) (*pem.Block, error) {
	block, _ := pem.Decode([]byte(data))
	if block == nil {
		return nil, ErrNoPEMBlock
	}
	if block.Type != blockType {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrWrongBlockType, block.Type, blockType)
	}
	return block, nil
}

// ParsePrivateKeyPEM decodes a PKCS#1 private key PEM.
func ParsePrivateKeyPEM(data string) (*rsa.PrivateKey, error) {
	block, err := decodeBlock(data, PrivateKeyBlockType)
	if err != nil {
		return nil, err
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}

// ParsePublicKeyPEM decodes a PKCS#1 public key PEM.
func ParsePublicKeyPEM(data string) (*rsa.PublicKey, error) {
	block, err := decodeBlock(data, PublicKeyBlockType)
	if err != nil {
		return nil, err
	}
	key, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return key, nil
}

// Validate checks that both PEMs parse and that the public key is the
// public half of the private key.
func (p KeyPair) Validate() error {
	priv, err := ParsePrivateKeyPEM(p.PrivateKeyPEM)
	if err != nil {
		return err
	}
	if err := priv.Validate(); err != nil {
		return fmt.Errorf("validate private key: %w", err)
	}
	pub, err := ParsePublicKeyPEM(p.PublicKeyPEM)
	if err != nil {
		return err
	}
	if !priv.PublicKey.Equal(pub) {
		return ErrKeyMismatch
	}
	return nil
}
