package keysdto

import "encoding/json"

//go:generate easyjson -all .

//easyjson:json
type KeyPairRequest struct {
	KeySize    uint `json:"key_size"`
	IncludeJWK bool `json:"include_jwk,omitempty"`
}

//easyjson:json
type KeyPairResponse struct {
	PrivateKeyPEM string          `json:"private_key_pem"`
	PublicKeyPEM  string          `json:"public_key_pem"`
	Fingerprint   string          `json:"fingerprint"`
	PublicJWK     json.RawMessage `json:"public_jwk,omitempty"`
}

//easyjson:json
type ErrorResponse struct {
	Error string `json:"error"`
}

// InvokeArgs are the arguments of make_rsa_keys as sent by the UI shell.
//
//easyjson:json
type InvokeArgs struct {
	KeySize uint `json:"keySize"`
}

// KeyPairTuple is the (private, public) result of make_rsa_keys.
//
//easyjson:json
type KeyPairTuple []string
