// Package signature authenticates invocations between the UI shell and the key
// service with an HMAC-SHA256 over the request and response bodies.
package signature

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"net/http"
	"strings"
)

// HeaderName carries the hex HMAC of the body.
const HeaderName = "HashSHA256"

// MaxBodyBytes caps how much of a signed request body is buffered for checking.
const MaxBodyBytes = 64 << 10

type ResponseHashWriter struct {
	inherit http.ResponseWriter
	mac     hash.Hash
	buffer  bytes.Buffer
	rCode   int
}

func NewResponseHashWriter(w http.ResponseWriter, key []byte) *ResponseHashWriter {
	return &ResponseHashWriter{
		inherit: w,
		mac:     hmac.New(sha256.New, key),
		buffer:  bytes.Buffer{},
		rCode:   http.StatusOK,
	}
}

func (rw *ResponseHashWriter) Header() http.Header  { return rw.inherit.Header() }
func (rw *ResponseHashWriter) WriteHeader(code int) { rw.rCode = code }
func (rw *ResponseHashWriter) Write(b []byte) (int, error) {
	return rw.buffer.Write(b)
}

// Sign returns the hex HMAC-SHA256 of payload.
func Sign(payload, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignatureCheck verifies header against the request body and restores the body.
// A body over MaxBodyBytes yields *http.MaxBytesError.
func SignatureCheck(w http.ResponseWriter, r *http.Request, secret []byte, header string) (bool, error) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return false, err
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(payload))

	return Verify(payload, secret, header), nil
}

// Verify reports whether header is the hex HMAC-SHA256 of payload.
func Verify(payload, secret []byte, header string) bool {
	got, err := hex.DecodeString(header)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hmac.Equal(got, mac.Sum(nil))
}

// Finalize signs the buffered body and flushes it to the wrapped writer.
func (rw *ResponseHashWriter) Finalize() (int, error) {
	if _, err := rw.mac.Write(rw.buffer.Bytes()); err != nil {
		return 0, fmt.Errorf("hash response body: %w", err)
	}
	rw.Header().Set(HeaderName, hex.EncodeToString(rw.mac.Sum(nil)))
	rw.inherit.WriteHeader(rw.rCode)
	return rw.inherit.Write(rw.buffer.Bytes())
}

// SignatureHandler rejects requests with a wrong signature and signs every response.
// When required is set, unsigned requests are rejected too.
func SignatureHandler(secret string, required bool) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(key) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			reqHeader := strings.TrimSpace(r.Header.Get(HeaderName))
			if reqHeader == "" {
				reqHeader = strings.TrimSpace(r.Header.Get("Hash"))
			}

			switch {
			case reqHeader != "" && !strings.EqualFold(reqHeader, "none"):
				ok, err := SignatureCheck(w, r, key, reqHeader)
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
					return
				}
				if err != nil || !ok {
					http.Error(w, "wrong key", http.StatusBadRequest)
					return
				}
			case required && r.Method != http.MethodGet:
				http.Error(w, "signature required", http.StatusUnauthorized)
				return
			}

			rw := NewResponseHashWriter(w, key)
			next.ServeHTTP(rw, r)
			if _, err := rw.Finalize(); err != nil {
				http.Error(w, "cannot write buffer to response", http.StatusInternalServerError)
			}
		})
	}
}
