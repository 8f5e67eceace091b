package server

import (
	"net/http"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5/middleware"
	uuid "github.com/satori/go.uuid"
	"github.com/yext/hellod/common"
)

// LogRequests returns middleware writing one access log line per request to logger.
// Request headers are not logged.
func LogRequests(logger common.Logger) func(http.Handler) http.Handler {
	logger = common.MaskLogger(logger)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := uuid.NewV4()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Printf(
				"request id=%v method=%v path=%v remote=%v status=%d size=%v duration=%v\n",
				id,
				r.Method,
				r.URL.Path,
				r.RemoteAddr,
				status,
				humanize.Bytes(uint64(ww.BytesWritten())),
				time.Since(start),
			)
		})
	}
}
