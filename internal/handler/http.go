package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"helloeks/internal/config"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	greetingFormat  = "Hello from Flask on EKS via Helm! Env=%s\n"
)

type HTTPHandler struct {
	greeting []byte
	logger   log.FieldLogger
}

func NewHTTPHandler(cfg *config.Config, logger log.FieldLogger) *HTTPHandler {
	return &HTTPHandler{
		greeting: []byte(Greeting(cfg.EnvLabel)),
		logger:   logger.WithField("component", "http"),
	}
}

// Greeting renders the root response body for an env label.
func Greeting(envLabel string) string {
	return fmt.Sprintf(greetingFormat, envLabel)
}

func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.handleRoot).Methods(http.MethodGet, http.MethodHead)
}

// Router returns the routes wrapped in the access log.
func (h *HTTPHandler) Router() http.Handler {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	router.Use(h.accessLog)
	router.NotFoundHandler = h.accessLog(http.NotFoundHandler())
	router.MethodNotAllowedHandler = h.accessLog(methodNotAllowed(router))
	return router
}

func (h *HTTPHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contentTypeText)
	w.Header().Set("Content-Length", strconv.Itoa(len(h.greeting)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(h.greeting); err != nil {
		h.logger.WithError(err).Error("failed to write greeting response")
	}
}

func methodNotAllowed(router *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", strings.Join(allowedMethods(router, r.URL.Path), ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
}

// allowedMethods only compares static path templates.
func allowedMethods(router *mux.Router, path string) []string {
	var methods []string
	_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		tpl, err := route.GetPathTemplate()
		if err != nil || tpl != path {
			return nil
		}
		if routeMethods, err := route.GetMethods(); err == nil {
			methods = append(methods, routeMethods...)
		}
		return nil
	})
	return methods
}
