package grpcclient

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"rsakeygen/internal/api/keysdto"
	"rsakeygen/internal/api/keysrpc"
)

type Client struct {
	conn    *grpc.ClientConn
	client  *keysrpc.KeyPairServiceClient
	realIP  string
	timeout time.Duration
}

// NewClient dials addr. realIP, when set, is sent as x-real-ip metadata.
func NewClient(addr string, realIP string, timeout time.Duration, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		conn:    conn,
		client:  keysrpc.NewKeyPairServiceClient(conn),
		realIP:  realIP,
		timeout: timeout,
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// MakeRSAKeys requests a key pair of keySize bits.
func (c *Client) MakeRSAKeys(ctx context.Context, keySize uint, includeJWK bool) (*keysdto.KeyPairResponse, error) {
	if c.realIP != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "x-real-ip", c.realIP)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	return c.client.MakeRSAKeys(ctx, &keysdto.KeyPairRequest{
		KeySize:    keySize,
		IncludeJWK: includeJWK,
	})
}
