package grpcserver

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"rsakeygen/internal/command"
	"rsakeygen/internal/grpcclient"
	"rsakeygen/internal/keypair"
)

func startBufServer(t *testing.T, subnet string, opts ...command.Option) *bufconn.Listener {
	t.Helper()

	var ipNet *net.IPNet
	if subnet != "" {
		var err error
		_, ipNet, err = net.ParseCIDR(subnet)
		require.NoError(t, err)
	}

	lis := bufconn.Listen(1 << 20)
	srv := NewServer(NewKeyServer(command.New(keypair.NewService(), opts...), ipNet, nil, nil))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return lis
}

func newBufClient(t *testing.T, lis *bufconn.Listener, realIP string) *grpcclient.Client {
	t.Helper()

	c, err := grpcclient.NewClient("passthrough:///bufnet", realIP, time.Minute,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestKeyServer_MakeRSAKeys(t *testing.T) {
	lis := startBufServer(t, "")
	c := newBufClient(t, lis, "")

	resp, err := c.MakeRSAKeys(context.Background(), 2048, true)
	require.NoError(t, err)

	pair := keypair.KeyPair{PrivateKeyPEM: resp.PrivateKeyPEM, PublicKeyPEM: resp.PublicKeyPEM}
	require.NoError(t, pair.Validate())
	assert.True(t, strings.HasPrefix(resp.Fingerprint, "SHA256:"))
	assert.NotEmpty(t, resp.PublicJWK)
}

func TestKeyServer_MakeRSAKeysErrors(t *testing.T) {
	lis := startBufServer(t, "", command.WithMinKeySize(2048))
	c := newBufClient(t, lis, "")

	tests := []struct {
		name string
		bits uint
	}{
		{name: "zero", bits: 0},
		{name: "eight", bits: 8},
		{name: "below minimum", bits: 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.MakeRSAKeys(context.Background(), tt.bits, false)
			require.Error(t, err)

			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, codes.InvalidArgument, st.Code())
			assert.True(t, strings.HasPrefix(st.Message(), "Error generating keys: "))
		})
	}
}

func mustCIDR(t *testing.T, cidr string) *net.IPNet {
	t.Helper()
	if cidr == "" {
		return nil
	}
	_, ipNet, err := net.ParseCIDR(cidr)
	require.NoError(t, err)
	return ipNet
}

// startTCPServer поднимает сервер на loopback, чтобы peer был настоящим IP.
func startTCPServer(t *testing.T, subnet, proxies string) string {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ks := NewKeyServer(command.New(keypair.NewService()), mustCIDR(t, subnet), mustCIDR(t, proxies), nil)
	srv := NewServer(ks)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return lis.Addr().String()
}

func newTCPClient(t *testing.T, addr, realIP string) *grpcclient.Client {
	t.Helper()
	c, err := grpcclient.NewClient(addr, realIP, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestKeyServer_TrustedSubnet(t *testing.T) {
	tests := []struct {
		name    string
		subnet  string
		proxies string
		realIP  string
		want    codes.Code
	}{
		{name: "loopback peer", subnet: "127.0.0.0/8", want: codes.OK},
		{name: "peer outside", subnet: "10.0.0.0/8", want: codes.PermissionDenied},
		{name: "spoofed x-real-ip", subnet: "10.0.0.0/8", realIP: "10.1.2.3", want: codes.PermissionDenied},
		{name: "x-real-ip outside does not matter without proxies", subnet: "127.0.0.0/8", realIP: "198.51.100.4", want: codes.OK},
		{name: "x-real-ip via trusted proxy", subnet: "10.0.0.0/8", proxies: "127.0.0.0/8", realIP: "10.1.2.3", want: codes.OK},
		{name: "x-real-ip outside via trusted proxy", subnet: "10.0.0.0/8", proxies: "127.0.0.0/8", realIP: "198.51.100.4", want: codes.PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := startTCPServer(t, tt.subnet, tt.proxies)
			_, err := newTCPClient(t, addr, tt.realIP).MakeRSAKeys(context.Background(), 1024, false)
			assert.Equal(t, tt.want, status.Code(err))
		})
	}

	t.Run("no address", func(t *testing.T) {
		// у bufconn peer не IP
		lis := startBufServer(t, "127.0.0.0/8")
		_, err := newBufClient(t, lis, "127.0.0.1").MakeRSAKeys(context.Background(), 1024, false)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})
}

func TestKeyServer_Deadline(t *testing.T) {
	lis := startBufServer(t, "")
	c := newBufClient(t, lis, "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.MakeRSAKeys(ctx, 4096, false)
	require.Error(t, err)
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
}

func TestRun(t *testing.T) {
	srv, errCh, err := Run("127.0.0.1:0", NewKeyServer(command.New(keypair.NewService()), nil, nil, nil))
	require.NoError(t, err)

	// остановка может прийти раньше, чем Serve успел стартовать
	srv.GracefulStop()
	assert.NoError(t, <-errCh)

	_, _, err = Run("256.0.0.1:0", NewKeyServer(nil, nil, nil, nil))
	assert.Error(t, err)
}

func TestRun_StopAfterServe(t *testing.T) {
	for i := 0; i < 20; i++ {
		srv, errCh, err := Run("127.0.0.1:0", NewKeyServer(command.New(keypair.NewService()), nil, nil, nil))
		require.NoError(t, err)
		if i%2 == 1 {
			time.Sleep(time.Millisecond)
		}
		srv.Stop()
		require.NoError(t, <-errCh)
	}
}
