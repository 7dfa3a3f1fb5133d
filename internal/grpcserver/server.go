package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"rsakeygen/internal/api/keysdto"
	"rsakeygen/internal/api/keysrpc"
	"rsakeygen/internal/keypair"
	"rsakeygen/internal/logger"
	"rsakeygen/internal/trustedsubnet"
)

// Commands is the make_rsa_keys surface served over gRPC.
type Commands interface {
	MakeRSAKeysContext(ctx context.Context, keySize uint) (string, string, error)
}

type KeyServer struct {
	commands       Commands
	trustedSubnet  *net.IPNet
	trustedProxies *net.IPNet
	log            *logger.LoggerRequest
}

// NewKeyServer creates the service. x-real-ip metadata is honoured only from
// peers inside trustedProxies; nil subnets disable the respective check.
func NewKeyServer(commands Commands, trustedSubnet, trustedProxies *net.IPNet, log *logger.LoggerRequest) *KeyServer {
	if log == nil {
		log = logger.NewNop()
	}
	return &KeyServer{
		commands:       commands,
		trustedSubnet:  trustedSubnet,
		trustedProxies: trustedProxies,
		log:            log,
	}
}

// MakeRSAKeys генерирует пару ключей
func (s *KeyServer) MakeRSAKeys(ctx context.Context, req *keysdto.KeyPairRequest) (*keysdto.KeyPairResponse, error) {
	priv, pub, err := s.commands.MakeRSAKeysContext(ctx, req.KeySize)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, status.Error(codes.DeadlineExceeded, err.Error())
		case errors.Is(err, context.Canceled):
			return nil, status.Error(codes.Canceled, err.Error())
		default:
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}

	resp := &keysdto.KeyPairResponse{PrivateKeyPEM: priv, PublicKeyPEM: pub}
	if resp.Fingerprint, err = keypair.Fingerprint(pub); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	if req.IncludeJWK {
		if resp.PublicJWK, err = keypair.PublicJWK(pub); err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
	}
	return resp, nil
}

// UnaryTrustedSubnet rejects calls from outside the trusted subnet.
func (s *KeyServer) UnaryTrustedSubnet(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if err := s.checkTrustedSubnet(ctx); err != nil {
		s.log.Warnw("rejected grpc call", "method", info.FullMethod, "error", err)
		return nil, err
	}
	return handler(ctx, req)
}

// checkTrustedSubnet проверка адреса peer; x-real-ip только от доверенного прокси
func (s *KeyServer) checkTrustedSubnet(ctx context.Context) error {
	if s.trustedSubnet == nil {
		return nil
	}

	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return status.Error(codes.PermissionDenied, "unknown peer")
	}
	realIP := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get("x-real-ip"); len(v) > 0 {
			realIP = v[0]
		}
	}

	ip, raw := trustedsubnet.Resolve(p.Addr.String(), realIP, s.trustedProxies)
	if ip == nil {
		return status.Error(codes.PermissionDenied, fmt.Sprintf("invalid client IP %q", raw))
	}
	if !s.trustedSubnet.Contains(ip) {
		return status.Error(codes.PermissionDenied, fmt.Sprintf("IP %s not in trusted subnet", ip))
	}
	return nil
}

// NewServer builds a grpc.Server with KeyPairService registered.
func NewServer(ks *KeyServer) *grpc.Server {
	srv := grpc.NewServer(grpc.UnaryInterceptor(ks.UnaryTrustedSubnet))
	keysrpc.RegisterKeyPairServiceServer(srv, ks)
	return srv
}

// Run запускает gRPC сервер
func Run(addr string, ks *KeyServer) (*grpc.Server, <-chan error, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to listen: %w", err)
	}

	srv := NewServer(ks)
	errCh := make(chan error, 1)
	go func() {
		err := srv.Serve(lis)
		// Stop до старта Serve - обычное завершение, а не ошибка
		if errors.Is(err, grpc.ErrServerStopped) {
			err = nil
		}
		errCh <- err
	}()
	return srv, errCh, nil
}
