package handler

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	log "github.com/sirupsen/logrus"
)

// accessLog logs one line per request once the response is written.
func (h *HTTPHandler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics := httpsnoop.CaptureMetrics(next, w, r)

		h.logger.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   metrics.Code,
			"bytes":    metrics.Written,
			"duration": metrics.Duration,
			"remote":   r.RemoteAddr,
		}).Info("request served")
	})
}
