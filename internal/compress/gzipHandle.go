package compress

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

type gzipWriter struct {
	http.ResponseWriter
	Writer io.Writer
}

var gzPoolWriter = sync.Pool{
	New: func() any {
		w, err := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
		if err != nil {
			panic(err)
		}
		return w
	},
}

var gzPoolReader sync.Pool

func (w gzipWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w gzipWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(statusCode)
}

func acceptsGzip(r *http.Request) bool {
	for _, v := range r.Header.Values("Accept-Encoding") {
		for _, enc := range strings.Split(v, ",") {
			enc, _, _ = strings.Cut(strings.TrimSpace(enc), ";")
			if enc == "gzip" {
				return true
			}
		}
	}
	return false
}

// GzipHandleReader transparently decompresses gzip request bodies.
func GzipHandleReader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		var (
			gz  *gzip.Reader
			err error
		)
		if pooled, ok := gzPoolReader.Get().(*gzip.Reader); ok {
			gz = pooled
			err = gz.Reset(r.Body)
		} else {
			gz, err = gzip.NewReader(r.Body)
		}
		if err != nil {
			http.Error(w, "invalid gzip body", http.StatusBadRequest)
			return
		}
		defer gzPoolReader.Put(gz)

		defer r.Body.Close()
		r.Body = gz
		r.Header.Del("Content-Encoding")
		next.ServeHTTP(w, r)
	})
}

// GzipHandleWriter compresses responses for clients that accept gzip.
func GzipHandleWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !acceptsGzip(r) {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")

		gz := gzPoolWriter.Get().(*gzip.Writer)
		defer gzPoolWriter.Put(gz)

		gz.Reset(w)
		defer gz.Close()

		next.ServeHTTP(gzipWriter{ResponseWriter: w, Writer: gz}, r)
	})
}
