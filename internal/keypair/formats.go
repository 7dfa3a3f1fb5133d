package keypair

import (
	"fmt"
	"strings"

	"github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/ssh"
)

// KeyUseSignature is the "use" member of exported JWKs.
const KeyUseSignature = "sig"

func sshPublicKey(publicPEM string) (ssh.PublicKey, error) {
	pub, err := ParsePublicKeyPEM(publicPEM)
	if err != nil {
		return nil, err
	}
	sshKey, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("convert to ssh public key: %w", err)
	}
	return sshKey, nil
}

// Fingerprint returns the OpenSSH SHA256 fingerprint of a PKCS#1 public key PEM.
// It identifies a pair in logs without touching private material.
func Fingerprint(publicPEM string) (string, error) {
	sshKey, err := sshPublicKey(publicPEM)
	if err != nil {
		return "", err
	}
	return ssh.FingerprintSHA256(sshKey), nil
}

// AuthorizedKey returns the public key as an authorized_keys line without the trailing newline.
func AuthorizedKey(publicPEM string) (string, error) {
	sshKey, err := sshPublicKey(publicPEM)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(ssh.MarshalAuthorizedKey(sshKey)), "\n"), nil
}

// PublicJWK returns the public key as a JSON Web Key.
func PublicJWK(publicPEM string) ([]byte, error) {
	pub, err := ParsePublicKeyPEM(publicPEM)
	if err != nil {
		return nil, err
	}
	jwk := jose.JSONWebKey{
		Key:       pub,
		KeyID:     uuid.New().String(),
		Algorithm: string(jose.RS256),
		Use:       KeyUseSignature,
	}
	data, err := jwk.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal jwk: %w", err)
	}
	return data, nil
}
