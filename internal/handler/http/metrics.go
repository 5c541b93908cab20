package http

import (
	"net/http"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/perfmon"
)

type MetricsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type metricsHandlerImpl struct {
	monitor *perfmon.Monitor
}

func NewMetricsHandler(monitor *perfmon.Monitor) MetricsHandler {
	return &metricsHandlerImpl{monitor: monitor}
}

// Get returns per-route request metrics since start or the last reset.
func (h *metricsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.monitor.Snapshot())
}

func (h *metricsHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	h.monitor.Reset()
	response.SuccessWithMessage(w, "Metrics reset", nil)
}
