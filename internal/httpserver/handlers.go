package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/TunnelFront/server/internal/config"
	apierrors "github.com/TunnelFront/server/internal/errors"
	"github.com/TunnelFront/server/internal/logger"
	"github.com/TunnelFront/server/internal/metrics"
	"github.com/TunnelFront/server/pkg/responders"
)

var serverStartTime = time.Now()

type handlers struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

const rootPage = `<h1>Hello World</h1><p>tunnelfront - hardened edge service</p>`

// root serves the landing page. Requests arriving on a health.* host are
// answered with the health payload instead; tunnel operators point a
// dedicated hostname at the same origin for external health probes.
func (h *handlers) root(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Host, "health.") {
		log := logger.FromContext(r.Context())
		log.Debug().Str("host", r.Host).Msg("request.routed_to_health")
		h.health(w, r)
		return
	}
	responders.HTML(w, http.StatusOK, rootPage)
}

// health returns service liveness plus identity and uptime.
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	responders.JSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   config.ServiceName,
		"timestamp": now.Format(time.RFC3339),
		"uptime":    now.Sub(serverStartTime).Truncate(time.Second).String(),
	})
}

// notFound answers undefined routes with the standard error envelope.
// Security headers are still applied by the outer middleware.
func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	apierrors.WriteError(w, apierrors.ErrCodeRouteNotFound, "Route not found",
		map[string]interface{}{"path": r.URL.Path})
}

func (h *handlers) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	apierrors.WriteError(w, apierrors.ErrCodeMethodNotAllowed, "Method not allowed",
		map[string]interface{}{"method": r.Method})
}
