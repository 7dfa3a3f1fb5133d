// Package logger wraps zap for the key service and its HTTP request logging.
// Request bodies and responses are never logged: they carry key material.
package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type (
	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}

	responseData struct {
		status int
		size   int
	}

	LoggerRequest struct {
		*zap.SugaredLogger
	}
)

// CreateLoggerRequest builds a development zap logger.
func CreateLoggerRequest() (*LoggerRequest, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &LoggerRequest{logger.Sugar()}, nil
}

// NewLoggerRequest wraps an existing zap logger.
func NewLoggerRequest(logger *zap.Logger) *LoggerRequest {
	return &LoggerRequest{logger.Sugar()}
}

// NewNop returns a logger that discards everything.
func NewNop() *LoggerRequest {
	return &LoggerRequest{zap.NewNop().Sugar()}
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// WithLogging logs uri, method, status, duration and response size of every request.
func (l *LoggerRequest) WithLogging(h http.Handler) http.Handler {
	logFn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		responseData := &responseData{
			status: 0,
			size:   0,
		}
		lw := loggingResponseWriter{
			ResponseWriter: w,
			responseData:   responseData,
		}
		h.ServeHTTP(&lw, r)

		duration := time.Since(start)
		l.Infoln(
			"uri", r.RequestURI,
			"method", r.Method,
			"status", lw.responseData.status,
			"duration", duration,
			"size", lw.responseData.size,
		)
	}
	return http.HandlerFunc(logFn)
}
