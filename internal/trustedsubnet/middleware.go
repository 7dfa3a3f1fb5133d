// Package trustedsubnet restricts key generation to callers from a trusted
// subnet (CIDR). The desktop shell runs on the same host, so the server
// defaults to the loopback network.
package trustedsubnet

import (
	"fmt"
	"net"
	"net/http"
)

// Parse parses a CIDR; an empty string yields nil, meaning no restriction.
func Parse(cidr string) (*net.IPNet, error) {
	if cidr == "" {
		return nil, nil
	}
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("parse trusted subnet %q: %w", cidr, err)
	}
	return ipNet, nil
}

// Resolve picks the caller address from the TCP peer address.
// realIP (X-Real-IP / x-real-ip) replaces it only when the peer itself is in
// proxies; otherwise any caller could claim a trusted address.
func Resolve(peerAddr, realIP string, proxies *net.IPNet) (net.IP, string) {
	host, _, err := net.SplitHostPort(peerAddr)
	if err != nil {
		host = peerAddr
	}
	peer := net.ParseIP(host)
	if realIP != "" && peer != nil && proxies != nil && proxies.Contains(peer) {
		return net.ParseIP(realIP), realIP
	}
	return peer, host
}

// ClientIP returns the caller address of r, see Resolve.
func ClientIP(r *http.Request, proxies *net.IPNet) (net.IP, string) {
	return Resolve(r.RemoteAddr, r.Header.Get("X-Real-IP"), proxies)
}

// TrustedSubnetMiddleware создаёт middleware для проверки IP-адреса клиента.
//
//   - пустой trustedSubnet пропускает все запросы
//   - IP берётся из RemoteAddr; X-Real-IP учитывается только от прокси из trustedProxies
//   - IP вне подсети получает 403 Forbidden
func TrustedSubnetMiddleware(trustedSubnet, trustedProxies string) func(http.Handler) http.Handler {
	ipNet, parseErr := Parse(trustedSubnet)
	proxies, proxiesErr := Parse(trustedProxies)
	if parseErr == nil {
		parseErr = proxiesErr
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if parseErr != nil {
				http.Error(w, "Internal server error: invalid trusted subnet configuration", http.StatusInternalServerError)
				return
			}
			if ipNet == nil {
				next.ServeHTTP(w, r)
				return
			}

			clientIP, raw := ClientIP(r, proxies)
			if clientIP == nil {
				http.Error(w, fmt.Sprintf("Forbidden: invalid client IP address: %s", raw), http.StatusForbidden)
				return
			}

			if !ipNet.Contains(clientIP) {
				http.Error(w, fmt.Sprintf("Forbidden: IP %s is not in trusted subnet", clientIP), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
