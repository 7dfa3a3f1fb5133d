// Package addr parses listen and dial endpoints in "host:port" form.
// Addr implements flag.Value and encoding.TextUnmarshaler so the same type
// can be filled from flags, the environment and JSON config files.
package addr

import (
	"errors"
	"net"
	"strconv"
	"strings"
)

// ErrNotCorrect is returned when an endpoint is not a valid "host:port".
var ErrNotCorrect = errors.New("wrong host:port")

// Addr is a network endpoint.
type Addr struct {
	Host string
	Port int
}

// UnmarshalText trims surrounding quotes and delegates to Set.
func (a *Addr) UnmarshalText(text []byte) error {
	return a.Set(strings.Trim(string(text), "\""))
}

// String joins host and port; IPv6 hosts get brackets.
func (a *Addr) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses "host:port". The port must be in 0..65535.
func (a *Addr) Set(flagValue string) error {
	host, portStr, err := net.SplitHostPort(flagValue)
	if err != nil {
		return ErrNotCorrect
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return ErrNotCorrect
	}
	a.Host = host
	a.Port = int(port)
	return nil
}

// IsLoopback reports whether the host resolves to a loopback literal or is "localhost".
// An empty host listens on every interface and is not loopback.
func (a *Addr) IsLoopback() bool {
	if a.Host == "localhost" {
		return true
	}
	ip := net.ParseIP(a.Host)
	return ip != nil && ip.IsLoopback()
}

// GetHost returns the host part.
func (a *Addr) GetHost() string {
	return a.Host
}

// GetPort returns the port part.
func (a *Addr) GetPort() int {
	return a.Port
}

// GetAddr is an alias for String.
func (a *Addr) GetAddr() string {
	return a.String()
}

// URL returns the base URL for an HTTP client dialing this endpoint.
func (a *Addr) URL() string {
	host := a.Host
	if host == "" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(a.Port))
}
