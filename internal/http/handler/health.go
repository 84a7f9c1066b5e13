package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"clinicwa/internal/http/dto"
	"clinicwa/internal/infra/container"
	"clinicwa/pkg/logger"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	container *container.Container
	logger    logger.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container, logger logger.Logger) *HealthHandler {
	return &HealthHandler{
		container: container,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Health handles GET /health
// @Summary Health Check da aplicação
// @Description Verifica o status de saúde da aplicação e seus serviços dependentes
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} dto.HealthResponse "Aplicação saudável"
// @Failure 503 {object} dto.HealthResponse "Serviços indisponíveis"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	services := make(map[string]interface{})

	dbHealth := &dto.ServiceHealth{Status: "healthy"}
	if h.container != nil && h.container.DBConnection != nil {
		if err := h.container.Health(); err != nil {
			dbHealth.Status = "unhealthy"
			dbHealth.Message = err.Error()
		}
	} else {
		dbHealth.Status = "unhealthy"
		dbHealth.Message = "Database connection not initialized"
	}
	services["database"] = dbHealth

	coreHealth := &dto.ServiceHealth{Status: "healthy"}
	if h.container == nil || h.container.Orchestrator == nil {
		coreHealth.Status = "unhealthy"
		coreHealth.Message = "send orchestrator not initialized"
	}
	services["messaging"] = coreHealth

	overallStatus := "healthy"
	for _, service := range services {
		if serviceHealth, ok := service.(*dto.ServiceHealth); ok {
			if serviceHealth.Status != "healthy" {
				overallStatus = "unhealthy"
				break
			}
		}
	}

	response := &dto.HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(h.startTime).String(),
		Services:  services,
	}

	statusCode := http.StatusOK
	if overallStatus != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// Metrics handles GET /metrics
// @Summary Métricas da aplicação
// @Description Retorna métricas detalhadas da aplicação incluindo moderadores, mensagens e sistema
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} dto.MetricsResponse "Métricas da aplicação"
// @Failure 500 {object} dto.ErrorResponse "Erro interno"
// @Router /metrics [get]
func (h *HealthHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var moderatorMetrics dto.ModeratorMetrics
	if h.container != nil && h.container.ModeratorRepo != nil {
		_, total, err := h.container.ModeratorRepo.List(ctx, 1, 0)
		if err != nil {
			h.logger.WarnWithError("failed to load moderator total for metrics", err, nil)
		}
		active, err := h.container.ModeratorRepo.GetActiveCount(ctx)
		if err != nil {
			h.logger.WarnWithError("failed to load active moderator count for metrics", err, nil)
		}
		moderatorMetrics = dto.ModeratorMetrics{
			Total:    total,
			Active:   active,
			Inactive: total - active,
		}
	}

	response := &dto.MetricsResponse{
		Moderators: moderatorMetrics,
		Messaging:  dto.MessagingMetrics{},
		System: dto.SystemMetrics{
			Uptime:              time.Since(h.startTime).String(),
			MemoryUsage:         "N/A",
			CPUUsage:            "N/A",
			DatabaseStatus:      "healthy",
			DatabaseConnections: 0,
		},
		Timestamp: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
