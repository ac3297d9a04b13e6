package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

// HealthChecker is satisfied by any backend that can report its own liveness; ldap.Backend
// implements it by round-tripping its connection pool. Only backends that implement it can be
// registered with MountHealth, and every registered one is probed.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}

// MountHealth registers HealthHandler(backends) at "/health" on router.
func MountHealth(router *httprouter.Router, backends map[string]HealthChecker) {
	router.GET("/health", HealthHandler(backends))
}

// HealthHandler reports the liveness of every named backend as a JSON map of name to "up"/"down",
// responding 200 when all are up and 503 otherwise. Grounded on cmd/api/handler.go's
// HealthHandler, generalized from a fixed Mongo+RabbitMQ pair to an arbitrary set of backends
// since this module may serve any number of resource types, each with its own Backend.
func HealthHandler(backends map[string]HealthChecker) httprouter.Handle {
	return func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := make(map[string]string, len(backends))
		up := true
		for name, checker := range backends {
			if err := checker.Healthy(ctx); err != nil {
				status[name] = "down"
				up = false
				continue
			}
			status[name] = "up"
		}

		if up {
			rw.WriteHeader(http.StatusOK)
		} else {
			rw.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(rw).Encode(status)
	}
}
