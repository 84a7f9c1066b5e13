package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"clinicwa/internal/core/coordinator"
	"clinicwa/internal/domain/moderator"
	"clinicwa/internal/http/dto"
	messagingUC "clinicwa/internal/usecases/messaging"
	moderatorUC "clinicwa/internal/usecases/moderator"
	"clinicwa/pkg/errors"
	"clinicwa/pkg/logger"
	"clinicwa/pkg/validator"
)

// ModeratorHandler handles the moderator-registry CRUD surface plus the
// public send/validate façade and the advisory pause/resume tier.
type ModeratorHandler struct {
	createUC   *moderatorUC.CreateUseCase
	listUC     *moderatorUC.ListUseCase
	deleteUC   *moderatorUC.DeleteUseCase
	resolveUC  *moderatorUC.ResolveUseCase
	setProxyUC *moderatorUC.SetProxyUseCase

	sendMessageUC       *messagingUC.SendMessageUseCase
	checkNumberUC       *messagingUC.CheckNumberUseCase
	disposeSessionUC    *messagingUC.DisposeSessionUseCase
	checkConnectivityUC *messagingUC.CheckConnectivityUseCase

	coordinator *coordinator.Coordinator

	logger    logger.Logger
	validator validator.Validator
}

// NewModeratorHandler creates a new moderator handler.
func NewModeratorHandler(
	createUC *moderatorUC.CreateUseCase,
	listUC *moderatorUC.ListUseCase,
	deleteUC *moderatorUC.DeleteUseCase,
	resolveUC *moderatorUC.ResolveUseCase,
	setProxyUC *moderatorUC.SetProxyUseCase,
	sendMessageUC *messagingUC.SendMessageUseCase,
	checkNumberUC *messagingUC.CheckNumberUseCase,
	disposeSessionUC *messagingUC.DisposeSessionUseCase,
	checkConnectivityUC *messagingUC.CheckConnectivityUseCase,
	coord *coordinator.Coordinator,
	logger logger.Logger,
	validator validator.Validator,
) *ModeratorHandler {
	return &ModeratorHandler{
		createUC:            createUC,
		listUC:              listUC,
		deleteUC:            deleteUC,
		resolveUC:           resolveUC,
		setProxyUC:          setProxyUC,
		sendMessageUC:       sendMessageUC,
		checkNumberUC:       checkNumberUC,
		disposeSessionUC:    disposeSessionUC,
		checkConnectivityUC: checkConnectivityUC,
		coordinator:         coord,
		logger:              logger,
		validator:           validator,
	}
}

// CreateModerator handles POST /moderators
// @Summary Registrar novo moderador
// @Description Registra um novo moderador da clínica, com configuração opcional de proxy para o BrowserSession dedicado.
// @Tags Moderators
// @Accept json
// @Produce json
// @Param request body dto.CreateModeratorRequest true "Dados do moderador"
// @Success 201 {object} dto.SuccessResponse{data=dto.ModeratorResponse} "Moderador registrado com sucesso"
// @Failure 400 {object} dto.ErrorResponse "Dados inválidos"
// @Failure 409 {object} dto.ErrorResponse "Moderador com este nome já existe"
// @Failure 500 {object} dto.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /moderators [post]
func (h *ModeratorHandler) CreateModerator(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateModeratorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req.Normalize()

	if req.HasProxy() && !req.ProxyType.IsValid() {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid proxy type. Must be 'http' or 'socks5'", nil)
		return
	}

	ucReq := moderatorUC.CreateRequest{Name: req.Name}
	result, err := h.createUC.Execute(r.Context(), ucReq)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	if req.HasProxy() {
		setProxyReq := moderatorUC.SetProxyRequest{
			ModeratorID: result.Moderator.ID(),
			ProxyHost:   req.ProxyHost,
			ProxyPort:   req.ProxyPort,
			ProxyType:   req.ProxyType.String(),
			Username:    req.Username,
			Password:    req.Password,
		}

		if setProxyResult, err := h.setProxyUC.Execute(r.Context(), setProxyReq); err != nil {
			h.logger.ErrorWithError("failed to configure proxy during moderator creation", err, logger.Fields{
				"moderator_id": result.Moderator.ID().String(),
				"proxy_host":   req.ProxyHost,
			})
		} else {
			result.Moderator = setProxyResult.Moderator
		}
	}

	if h.coordinator != nil {
		if err := h.coordinator.EnsureSlot(r.Context(), result.Moderator.ID().String()); err != nil {
			h.logger.WarnWithFields("failed to create pause slot for new moderator", logger.Fields{
				"moderator_id": result.Moderator.ID().String(),
				"error":        err.Error(),
			})
		}
	}

	response := dto.ToModeratorResponse(result.Moderator)
	h.writeSuccessResponse(w, http.StatusCreated, "Moderator created successfully", response)
}

// ListModerators handles GET /moderators
// @Summary Listar moderadores
// @Description Lista os moderadores registrados, paginados.
// @Tags Moderators
// @Accept json
// @Produce json
// @Param limit query int false "Itens por página (1-100, padrão 10)"
// @Param offset query int false "Itens a pular"
// @Success 200 {object} dto.SuccessResponse{data=dto.ModeratorListResponse} "Lista de moderadores"
// @Failure 500 {object} dto.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /moderators [get]
func (h *ModeratorHandler) ListModerators(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	ucReq := moderatorUC.ListRequest{Limit: limit, Offset: offset}
	result, err := h.listUC.Execute(r.Context(), ucReq)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	response := dto.ToModeratorListResponse(result.Moderators, result.Total)
	h.writeSuccessResponse(w, http.StatusOK, "Moderators retrieved successfully", response)
}

// GetModerator handles GET /moderators/{id}
// @Summary Obter detalhes do moderador
// @Description Retorna os detalhes de um moderador por ID ou nome.
// @Tags Moderators
// @Accept json
// @Produce json
// @Param id path string true "ID (UUID) ou nome do moderador"
// @Success 200 {object} dto.SuccessResponse{data=dto.ModeratorResponse} "Detalhes do moderador"
// @Failure 404 {object} dto.ErrorResponse "Moderador não encontrado"
// @Security ApiKeyAuth
// @Router /moderators/{id} [get]
func (h *ModeratorHandler) GetModerator(w http.ResponseWriter, r *http.Request) {
	identifierStr := chi.URLParam(r, "id")

	m, err := h.resolveModeratorByIdentifier(r, identifierStr)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	response := dto.ToModeratorResponse(m)
	h.writeSuccessResponse(w, http.StatusOK, "Moderator retrieved successfully", response)
}

// DeleteModerator handles DELETE /moderators/{id}
// @Summary Remover moderador
// @Description Remove um moderador, encerrando seu BrowserSession antes da exclusão.
// @Tags Moderators
// @Produce json
// @Param id path string true "ID (UUID) ou nome do moderador"
// @Success 200 {object} dto.SuccessResponse{data=dto.DeleteModeratorResponse} "Moderador removido"
// @Failure 404 {object} dto.ErrorResponse "Moderador não encontrado"
// @Security ApiKeyAuth
// @Router /moderators/{id} [delete]
func (h *ModeratorHandler) DeleteModerator(w http.ResponseWriter, r *http.Request) {
	identifierStr := chi.URLParam(r, "id")

	m, err := h.resolveModeratorByIdentifier(r, identifierStr)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	ucReq := moderatorUC.DeleteRequest{ModeratorID: m.ID()}
	result, err := h.deleteUC.Execute(r.Context(), ucReq)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	response := dto.CreateDeleteModeratorResponse(result.ModeratorID.String(), result.Message)
	h.writeSuccessResponse(w, http.StatusOK, "Moderator deleted", response)
}

// SetProxy handles POST /moderators/{id}/proxy
// @Summary Configurar proxy do moderador
// @Description Configura ou remove o proxy pelo qual o BrowserSession do moderador deve rotear.
// @Tags Moderators
// @Accept json
// @Produce json
// @Param id path string true "ID (UUID) ou nome do moderador"
// @Param request body dto.ProxySetRequest true "Configuração do proxy"
// @Success 200 {object} dto.SuccessResponse{data=dto.ProxySetResponse} "Proxy configurado"
// @Failure 404 {object} dto.ErrorResponse "Moderador não encontrado"
// @Security ApiKeyAuth
// @Router /moderators/{id}/proxy [post]
func (h *ModeratorHandler) SetProxy(w http.ResponseWriter, r *http.Request) {
	identifierStr := chi.URLParam(r, "id")

	m, err := h.resolveModeratorByIdentifier(r, identifierStr)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	var req dto.ProxySetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.ProxyHost == "" {
		setProxyReq := moderatorUC.SetProxyRequest{ModeratorID: m.ID(), ProxyHost: ""}
		if _, err := h.setProxyUC.Execute(r.Context(), setProxyReq); err != nil {
			h.handleUseCaseError(w, err)
			return
		}

		response := dto.CreateProxySetResponse(m.ID().String(), "", true, "Proxy removed successfully")
		h.writeSuccessResponse(w, http.StatusOK, "Proxy removed", response)
		return
	}

	req.Normalize()

	setProxyReq := moderatorUC.SetProxyRequest{
		ModeratorID: m.ID(),
		ProxyHost:   req.ProxyHost,
		ProxyPort:   req.ProxyPort,
		ProxyType:   req.ProxyType.String(),
		Username:    req.Username,
		Password:    req.Password,
	}

	result, err := h.setProxyUC.Execute(r.Context(), setProxyReq)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	response := dto.CreateProxySetResponse(result.Moderator.ID().String(), result.Moderator.ProxyURL(), true, result.Message)
	h.writeSuccessResponse(w, http.StatusOK, "Proxy configured", response)
}

// SendMessage handles POST /moderators/{id}/send
// @Summary Enviar mensagem via WhatsApp
// @Description Envia uma mensagem de texto a um paciente através do BrowserSession do moderador. O resultado é tiered: success, failure, waiting, pending_qr ou pending_net.
// @Tags Messaging
// @Accept json
// @Produce json
// @Param id path string true "ID (UUID) ou nome do moderador"
// @Param request body dto.SendMessageRequest true "Destinatário e conteúdo"
// @Success 200 {object} dto.SuccessResponse{data=dto.SendMessageResponse} "Mensagem entregue"
// @Success 202 {object} dto.SuccessResponse{data=dto.SendMessageResponse} "Aguardando QR, rede, ou retry"
// @Failure 422 {object} dto.ErrorResponse "Número inválido ou não registrado no WhatsApp"
// @Failure 404 {object} dto.ErrorResponse "Moderador não encontrado"
// @Security ApiKeyAuth
// @Router /moderators/{id}/send [post]
func (h *ModeratorHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	identifierStr := chi.URLParam(r, "id")

	m, err := h.resolveModeratorByIdentifier(r, identifierStr)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ucReq := messagingUC.SendMessageRequest{
		ModeratorID: m.ID().String(),
		CountryCode: req.CountryCode,
		PhoneNumber: req.PhoneNumber,
		Message:     req.Message,
	}

	result, err := h.sendMessageUC.Execute(r.Context(), ucReq)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	response := &dto.SendMessageResponse{
		ModeratorID: result.ModeratorID,
		State:       result.State,
		IconKey:     result.IconKey,
		Message:     result.Message,
	}
	h.writeOperationResponse(w, result.State, response)
}

// CheckNumber handles POST /moderators/{id}/check
// @Summary Verificar número no WhatsApp
// @Description Verifica se um número de telefone está registrado no WhatsApp, sem enviar mensagem.
// @Tags Messaging
// @Accept json
// @Produce json
// @Param id path string true "ID (UUID) ou nome do moderador"
// @Param request body dto.CheckNumberRequest true "Número a verificar"
// @Success 200 {object} dto.SuccessResponse{data=dto.CheckNumberResponse} "Verificação concluída"
// @Success 202 {object} dto.SuccessResponse{data=dto.CheckNumberResponse} "Aguardando QR, rede, ou retry"
// @Failure 404 {object} dto.ErrorResponse "Moderador não encontrado"
// @Security ApiKeyAuth
// @Router /moderators/{id}/check [post]
func (h *ModeratorHandler) CheckNumber(w http.ResponseWriter, r *http.Request) {
	identifierStr := chi.URLParam(r, "id")

	m, err := h.resolveModeratorByIdentifier(r, identifierStr)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	var req dto.CheckNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ucReq := messagingUC.CheckNumberRequest{
		ModeratorID: m.ID().String(),
		CountryCode: req.CountryCode,
		PhoneNumber: req.PhoneNumber,
	}

	result, err := h.checkNumberUC.Execute(r.Context(), ucReq)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	response := &dto.CheckNumberResponse{
		ModeratorID: result.ModeratorID,
		State:       result.State,
		Reachable:   result.Reachable,
		Message:     result.Message,
	}
	h.writeOperationResponse(w, result.State, response)
}

// DisposeSession handles POST /moderators/{id}/dispose
// @Summary Encerrar BrowserSession do moderador
// @Description Encerra o BrowserSession ativo de um moderador, sem remover seu registro.
// @Tags Messaging
// @Produce json
// @Param id path string true "ID (UUID) ou nome do moderador"
// @Success 200 {object} dto.SuccessResponse "BrowserSession encerrado"
// @Failure 404 {object} dto.ErrorResponse "Moderador não encontrado"
// @Security ApiKeyAuth
// @Router /moderators/{id}/dispose [post]
func (h *ModeratorHandler) DisposeSession(w http.ResponseWriter, r *http.Request) {
	identifierStr := chi.URLParam(r, "id")

	m, err := h.resolveModeratorByIdentifier(r, identifierStr)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	if err := h.disposeSessionUC.Execute(r.Context(), messagingUC.DisposeSessionRequest{ModeratorID: m.ID().String()}); err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.writeSuccessResponse(w, http.StatusOK, "Browser session disposed", nil)
}

// CheckConnectivity handles GET /network/connectivity
// @Summary Verificar conectividade de rede
// @Description Verifica conectividade com a internet, independente de qualquer BrowserSession de moderador.
// @Tags Network
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=dto.ConnectivityResponse} "Internet acessível"
// @Success 202 {object} dto.SuccessResponse{data=dto.ConnectivityResponse} "Internet inacessível, camada de rede pausada"
// @Security ApiKeyAuth
// @Router /network/connectivity [get]
func (h *ModeratorHandler) CheckConnectivity(w http.ResponseWriter, r *http.Request) {
	result := h.checkConnectivityUC.Execute(r.Context())

	response := &dto.ConnectivityResponse{
		State:     result.State,
		Connected: result.Connected,
		Message:   result.Message,
	}
	h.writeOperationResponse(w, result.State, response)
}

// PauseModerator handles POST /moderators/{id}/pause
// @Summary Pausar operações de um moderador
// @Description Pausa todas as operações em andamento para um moderador, na camada consultiva do coordenador de operações.
// @Tags Moderators
// @Accept json
// @Produce json
// @Param id path string true "ID (UUID) ou nome do moderador"
// @Param request body dto.PauseModeratorRequest true "Motivo da pausa"
// @Success 200 {object} dto.SuccessResponse "Moderador pausado"
// @Failure 404 {object} dto.ErrorResponse "Moderador não encontrado ou sem slot de pausa"
// @Security ApiKeyAuth
// @Router /moderators/{id}/pause [post]
func (h *ModeratorHandler) PauseModerator(w http.ResponseWriter, r *http.Request) {
	identifierStr := chi.URLParam(r, "id")

	m, err := h.resolveModeratorByIdentifier(r, identifierStr)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	var req dto.PauseModeratorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	existed, err := h.coordinator.PauseAllOngoingTasks(r.Context(), m.ID().String(), req.UserID, req.Reason)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to pause moderator", err)
		return
	}
	if !existed {
		h.writeErrorResponse(w, http.StatusNotFound, "No pause slot for this moderator yet", nil)
		return
	}

	h.writeSuccessResponse(w, http.StatusOK, "Moderator paused", nil)
}

// ResumeModerator handles POST /moderators/{id}/resume
// @Summary Retomar operações de um moderador
// @Description Limpa a pausa de um moderador se o motivo informado bater exatamente com o motivo da pausa atual.
// @Tags Moderators
// @Accept json
// @Produce json
// @Param id path string true "ID (UUID) ou nome do moderador"
// @Param request body dto.ResumeModeratorRequest true "Motivo esperado da pausa"
// @Success 200 {object} dto.SuccessResponse "Moderador retomado"
// @Failure 409 {object} dto.ErrorResponse "Motivo não confere ou moderador não está pausado"
// @Security ApiKeyAuth
// @Router /moderators/{id}/resume [post]
func (h *ModeratorHandler) ResumeModerator(w http.ResponseWriter, r *http.Request) {
	identifierStr := chi.URLParam(r, "id")

	m, err := h.resolveModeratorByIdentifier(r, identifierStr)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	var req dto.ResumeModeratorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cleared, err := h.coordinator.ResumeTasksPausedForReason(r.Context(), m.ID().String(), req.Reason)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to resume moderator", err)
		return
	}
	if !cleared {
		h.writeErrorResponse(w, http.StatusConflict, "Reason does not match current pause, or moderator is not paused", nil)
		return
	}

	h.writeSuccessResponse(w, http.StatusOK, "Moderator resumed", nil)
}

// GetPauseStatus handles GET /moderators/{id}/pause
// @Summary Consultar estado de pausa do moderador
// @Tags Moderators
// @Produce json
// @Param id path string true "ID (UUID) ou nome do moderador"
// @Success 200 {object} dto.SuccessResponse{data=dto.PauseStatusResponse} "Estado de pausa"
// @Failure 404 {object} dto.ErrorResponse "Moderador não encontrado"
// @Security ApiKeyAuth
// @Router /moderators/{id}/pause [get]
func (h *ModeratorHandler) GetPauseStatus(w http.ResponseWriter, r *http.Request) {
	identifierStr := chi.URLParam(r, "id")

	m, err := h.resolveModeratorByIdentifier(r, identifierStr)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	state, _, err := h.coordinator.CurrentPause(r.Context(), m.ID().String())
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to read pause state", err)
		return
	}

	response := &dto.PauseStatusResponse{
		ModeratorID:  m.ID().String(),
		IsPaused:     state.IsPaused,
		PauseReason:  state.PauseReason,
		LastPausedBy: state.LastPausedBy,
	}
	h.writeSuccessResponse(w, http.StatusOK, "Pause status retrieved", response)
}

// Helper methods

// resolveModeratorByIdentifier resolves a moderator using the flexible identifier.
func (h *ModeratorHandler) resolveModeratorByIdentifier(r *http.Request, identifierStr string) (*moderator.Moderator, error) {
	if identifierStr == "" {
		h.logger.WarnWithFields("empty moderator identifier provided", logger.Fields{
			"request_path": r.URL.Path,
		})
		return nil, moderator.ErrInvalidModeratorIdentifier
	}

	identifier, err := moderator.NewModeratorIdentifier(identifierStr)
	if err != nil {
		h.logger.ErrorWithError("invalid moderator identifier format", err, logger.Fields{
			"identifier":   identifierStr,
			"request_path": r.URL.Path,
		})
		return nil, err
	}

	ucReq := moderatorUC.ResolveRequest{Identifier: identifier}
	result, err := h.resolveUC.Execute(r.Context(), ucReq)
	if err != nil {
		h.logger.ErrorWithError("failed to resolve moderator", err, logger.Fields{
			"identifier":      identifierStr,
			"identifier_type": identifier.Type().String(),
			"request_path":    r.URL.Path,
		})
		return nil, err
	}

	return result.Moderator, nil
}

func (h *ModeratorHandler) writeSuccessResponse(w http.ResponseWriter, statusCode int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := dto.NewSuccessResponse(message, data)
	json.NewEncoder(w).Encode(response)
}

func (h *ModeratorHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	var details string
	if err != nil {
		details = err.Error()
	}

	response := dto.NewErrorResponse(message, "", details)
	json.NewEncoder(w).Encode(response)

	h.logger.ErrorWithError("HTTP error response", err, logger.Fields{
		"status_code": statusCode,
		"message":     message,
	})
}

// writeOperationResponse maps a tiered OperationResult state to its HTTP
// status: Success to 200, Failure to 422 (invalid recipient, non-retryable
// fault), Waiting/PendingQR/PendingNET to 202 with a Retry-After hint
// since the caller should poll again once the blocking condition clears.
func (h *ModeratorHandler) writeOperationResponse(w http.ResponseWriter, state string, data any) {
	statusCode := http.StatusOK
	switch state {
	case "failure":
		statusCode = http.StatusUnprocessableEntity
	case "waiting", "pending_qr", "pending_net":
		statusCode = http.StatusAccepted
		w.Header().Set("Retry-After", "5")
	}

	h.writeSuccessResponse(w, statusCode, "Operation result: "+state, data)
}

func (h *ModeratorHandler) handleUseCaseError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		h.writeErrorResponse(w, appErr.GetHTTPStatus(), appErr.Message, err)
		return
	}

	switch err {
	case moderator.ErrModeratorNotFound:
		h.writeErrorResponse(w, http.StatusNotFound, "Moderator not found", err)
	case moderator.ErrModeratorAlreadyExists:
		h.writeErrorResponse(w, http.StatusConflict, "Moderator already exists", err)
	case moderator.ErrInvalidModeratorID, moderator.ErrInvalidModeratorIdentifier, moderator.ErrInvalidModeratorName:
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid moderator identifier", err)
	case moderator.ErrInvalidProxyURL, moderator.ErrUnsupportedProxyScheme, moderator.ErrInvalidProxyHost:
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid proxy configuration", err)
	default:
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", err)
	}
}
