package trustedsubnet

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	ipNet, err := Parse("")
	require.NoError(t, err)
	assert.Nil(t, ipNet)

	ipNet, err = Parse("127.0.0.0/8")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.0/8", ipNet.String())

	_, err = Parse("localhost")
	assert.Error(t, err)
}

func TestTrustedSubnetMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		subnet     string
		proxies    string
		remoteAddr string
		realIP     string
		want       int
	}{
		{name: "no restriction", subnet: "", remoteAddr: "203.0.113.7:5555", want: http.StatusOK},
		{name: "loopback peer", subnet: "127.0.0.0/8", remoteAddr: "127.0.0.1:40000", want: http.StatusOK},
		{name: "remote peer", subnet: "127.0.0.0/8", remoteAddr: "203.0.113.7:5555", want: http.StatusForbidden},
		{name: "spoofed real ip from remote peer", subnet: "127.0.0.0/8", remoteAddr: "203.0.113.5:40000", realIP: "127.0.0.1", want: http.StatusForbidden},
		{name: "real ip ignored without proxies", subnet: "192.168.1.0/24", remoteAddr: "10.0.0.1:1", realIP: "192.168.1.20", want: http.StatusForbidden},
		{name: "real ip from trusted proxy", subnet: "192.168.1.0/24", proxies: "10.0.0.0/8", remoteAddr: "10.0.0.1:1", realIP: "192.168.1.20", want: http.StatusOK},
		{name: "real ip outside via trusted proxy", subnet: "192.168.1.0/24", proxies: "10.0.0.0/8", remoteAddr: "10.0.0.1:1", realIP: "10.1.1.1", want: http.StatusForbidden},
		{name: "real ip from untrusted proxy", subnet: "192.168.1.0/24", proxies: "10.0.0.0/8", remoteAddr: "172.16.0.1:1", realIP: "192.168.1.20", want: http.StatusForbidden},
		{name: "garbage real ip via proxy", subnet: "127.0.0.0/8", proxies: "127.0.0.0/8", remoteAddr: "127.0.0.1:1", realIP: "not-an-ip", want: http.StatusForbidden},
		{name: "ipv6 loopback", subnet: "::1/128", remoteAddr: "[::1]:8080", want: http.StatusOK},
		{name: "broken config", subnet: "300.0.0.0/8", remoteAddr: "127.0.0.1:1", want: http.StatusInternalServerError},
		{name: "broken proxies config", subnet: "127.0.0.0/8", proxies: "nope", remoteAddr: "127.0.0.1:1", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/make_rsa_keys", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			rec := httptest.NewRecorder()

			TrustedSubnetMiddleware(tt.subnet, tt.proxies)(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestResolve(t *testing.T) {
	_, proxies, err := net.ParseCIDR("10.0.0.0/8")
	require.NoError(t, err)

	ip, raw := Resolve("203.0.113.5:40000", "127.0.0.1", nil)
	assert.Equal(t, "203.0.113.5", ip.String())
	assert.Equal(t, "203.0.113.5", raw)

	ip, _ = Resolve("10.2.3.4:1", "192.168.1.20", proxies)
	assert.Equal(t, "192.168.1.20", ip.String())

	ip, raw = Resolve("bufconn", "127.0.0.1", proxies)
	assert.Nil(t, ip)
	assert.Equal(t, "bufconn", raw)
}
