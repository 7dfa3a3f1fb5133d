// Package keysrpc describes the KeyPairService gRPC API. Messages are the
// easyjson DTOs from keysdto, carried with the "json" codec registered here.
package keysrpc

import (
	"context"
	"fmt"

	easyjson "github.com/mailru/easyjson"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"rsakeygen/internal/api/keysdto"
)

const (
	ServiceName           = "rsakeygen.KeyPairService"
	MakeRSAKeysFullMethod = "/" + ServiceName + "/MakeRSAKeys"

	// CodecName is the gRPC content subtype of KeyPairService calls.
	CodecName = "json"
)

func init() {
	encoding.RegisterCodec(codec{})
}

type codec struct{}

func (codec) Name() string { return CodecName }

func (codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(easyjson.Marshaler)
	if !ok {
		return nil, fmt.Errorf("keysrpc: cannot marshal %T", v)
	}
	return easyjson.Marshal(m)
}

func (codec) Unmarshal(data []byte, v any) error {
	u, ok := v.(easyjson.Unmarshaler)
	if !ok {
		return fmt.Errorf("keysrpc: cannot unmarshal into %T", v)
	}
	return easyjson.Unmarshal(data, u)
}

// KeyPairServiceServer is implemented by the gRPC server.
type KeyPairServiceServer interface {
	MakeRSAKeys(ctx context.Context, in *keysdto.KeyPairRequest) (*keysdto.KeyPairResponse, error)
}

func RegisterKeyPairServiceServer(s grpc.ServiceRegistrar, srv KeyPairServiceServer) {
	s.RegisterService(&KeyPairServiceDesc, srv)
}

func makeRSAKeysHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(keysdto.KeyPairRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KeyPairServiceServer).MakeRSAKeys(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: MakeRSAKeysFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(KeyPairServiceServer).MakeRSAKeys(ctx, req.(*keysdto.KeyPairRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var KeyPairServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*KeyPairServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "MakeRSAKeys",
			Handler:    makeRSAKeysHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "keysrpc",
}

// KeyPairServiceClient calls KeyPairService over conn.
type KeyPairServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewKeyPairServiceClient(cc grpc.ClientConnInterface) *KeyPairServiceClient {
	return &KeyPairServiceClient{cc: cc}
}

func (c *KeyPairServiceClient) MakeRSAKeys(ctx context.Context, in *keysdto.KeyPairRequest, opts ...grpc.CallOption) (*keysdto.KeyPairResponse, error) {
	out := new(keysdto.KeyPairResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MakeRSAKeysFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
