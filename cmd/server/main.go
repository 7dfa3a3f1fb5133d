// Package main is the entry point for the RSA key pair server.
// It wires configuration, logging, metrics and the HTTP and gRPC transports
// around the stateless key generation command.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof" // Import pprof for profiling
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"rsakeygen/configs"
	"rsakeygen/internal/command"
	myCompress "rsakeygen/internal/compress"
	"rsakeygen/internal/grpcserver"
	"rsakeygen/internal/handlers"
	"rsakeygen/internal/keypair"
	"rsakeygen/internal/logger"
	"rsakeygen/internal/metrics"
	"rsakeygen/internal/serverconfig"
	"rsakeygen/internal/signature"
	"rsakeygen/internal/trustedsubnet"
	_ "rsakeygen/swagger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/grpc"
)

// @title           RSA Key Pair API
// @version         1.0
// @description     Stateless RSA key pair generation (PKCS#1 PEM).

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host            localhost:8080
// @BasePath        /
func main() {
	fmt.Println(configs.BuildVerPrint())

	// 1. Initialize configuration
	f := serverconfig.InitialFlags()
	if err := f.ParseFlags(); err != nil {
		panic(fmt.Errorf("parse config: %w", err))
	}

	// 2. Initialize Logger
	newLogger, err := logger.CreateLoggerRequest()
	if err != nil {
		panic(fmt.Errorf("init request logger: %w", err))
	}
	defer newLogger.Sync()
	newLogger.Infow("starting rsakeygen server", configs.LogFields()...)

	ipNet, err := trustedsubnet.Parse(f.TrustedSubnet)
	if err != nil {
		panic(fmt.Errorf("TRUSTED_SUBNET: %w", err))
	}
	proxiesNet, err := trustedsubnet.Parse(f.TrustedProxies)
	if err != nil {
		panic(fmt.Errorf("TRUSTED_PROXIES: %w", err))
	}
	if ipNet == nil && !f.Addr.IsLoopback() {
		newLogger.Warnf("listening on %s without a trusted subnet: private keys are served to any caller", f.GetAddr())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Key generation command
	newMetrics := metrics.New()
	commands := command.New(
		keypair.NewService(),
		command.WithMinKeySize(f.MinKeySize),
		command.WithMaxKeySize(f.MaxKeySize),
		command.WithTimeout(f.GenerationTimeout),
		command.WithLogger(newLogger),
		command.WithObserver(newMetrics),
	)

	// 4. Setup HTTP Router & Middleware
	newMux := chi.NewMux()

	newMux.Use(trustedsubnet.TrustedSubnetMiddleware(f.TrustedSubnet, f.TrustedProxies))
	newMux.Use(newLogger.WithLogging)       // Logging middleware
	newMux.Use(myCompress.GzipHandleWriter) // Response compression

	if f.Key != "" && f.Key != "none" {
		newMux.Use(signature.SignatureHandler(f.Key, f.RequireSignature)) // HMAC Signature verification
	}

	newMux.Use(myCompress.GzipHandleReader) // Request decompression

	newMux.Mount("/swagger", httpSwagger.WrapHandler)
	newMux.Handle("/metrics", newMetrics.Handler())

	// Mount profiler for debugging
	newMux.Mount("/debug", middleware.Profiler())

	// 5. Initialize Handlers
	newHandler := handlers.NewHandlerService(commands, newMux)
	newHandler.CreateHandlers()
	r := newHandler.GetRouter()

	srv := &http.Server{
		Addr:              f.GetAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup

	// --- Task A: HTTP Server ---
	wg.Add(1)
	go func() {
		defer wg.Done()
		newLogger.Infoln("Starting HTTP server on", f.GetAddr())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			newLogger.Errorf("HTTP server error: %v", err)
			cancel() // Trigger emergency shutdown
		}
	}()

	// --- Task B: gRPC Server ---
	var grpcSrv *grpc.Server
	if f.GRPCAddr != "" {
		ks := grpcserver.NewKeyServer(commands, ipNet, proxiesNet, newLogger)
		var serveErr <-chan error
		grpcSrv, serveErr, err = grpcserver.Run(f.GRPCAddr, ks)
		if err != nil {
			panic(fmt.Errorf("start gRPC server: %w", err))
		}
		newLogger.Infoln("Starting gRPC server on", f.GRPCAddr)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err, ok := <-serveErr; ok && err != nil {
				newLogger.Errorf("gRPC server error: %v", err)
				cancel()
			}
		}()
	}

	// --- Task C: Wait for Shutdown Signal ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-quit:
		newLogger.Infof("Received signal %v, initiating graceful shutdown...", sig)
	case <-ctx.Done():
		newLogger.Info("Context cancelled, shutting down...")
	}

	// --- Shutdown Sequence ---
	newLogger.Info("Shutting down HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		newLogger.Errorf("HTTP server shutdown error: %v", err)
	} else {
		newLogger.Info("HTTP server stopped gracefully")
	}

	if grpcSrv != nil {
		newLogger.Info("Shutting down gRPC server...")
		grpcSrv.GracefulStop()
	}

	cancel()
	wg.Wait()

	newLogger.Info("Server exited successfully")
}
