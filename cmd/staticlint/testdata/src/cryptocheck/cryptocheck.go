package cryptocheck

import "crypto/rand"

func Nonce() ([]byte, error) {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	return b, err
}
