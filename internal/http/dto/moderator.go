package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"clinicwa/internal/domain/moderator"
)

// ProxyType represents the type of proxy a moderator's BrowserSession
// routes through.
// @Description Tipo de proxy suportado
// @Enum http socks5
type ProxyType string

const (
	// ProxyTypeHTTP represents HTTP proxy
	ProxyTypeHTTP ProxyType = "http"
	// ProxyTypeSOCKS5 represents SOCKS5 proxy
	ProxyTypeSOCKS5 ProxyType = "socks5"
)

// String returns the string representation of ProxyType
func (pt ProxyType) String() string {
	return string(pt)
}

// IsValid returns true if the proxy type is valid
func (pt ProxyType) IsValid() bool {
	return pt == ProxyTypeHTTP || pt == ProxyTypeSOCKS5
}

// CreateModeratorRequest represents the HTTP request to register a new
// moderator.
// @Description Dados para registro de um novo moderador
type CreateModeratorRequest struct {
	Name      string    `json:"name" validate:"required,moderator_name" example:"recepcao-manha" description:"Nome único do moderador (3-50 caracteres, letras, números, espaços, hífens e underscores)"`
	ProxyHost string    `json:"proxy_host,omitempty" validate:"omitempty,ip|hostname" example:"78.24.204.134" description:"IP ou hostname do proxy (opcional, requerido se proxy_port for especificado)"`
	ProxyPort int       `json:"proxy_port,omitempty" validate:"omitempty,min=1,max=65535" example:"62122" description:"Porta do proxy (opcional, 1-65535, requerido se proxy_host for especificado)"`
	ProxyType ProxyType `json:"proxy_type,omitempty" validate:"omitempty,oneof=http socks5" example:"http" description:"Tipo do proxy (opcional, padrão: http se proxy configurado)"`
	Username  string    `json:"username,omitempty" validate:"omitempty,min=1,max=255" description:"Usuário para autenticação do proxy (opcional)"`
	Password  string    `json:"password,omitempty" validate:"omitempty,min=1,max=255" description:"Senha para autenticação do proxy (opcional, requerido se username for especificado)"`
}

// HasProxy returns true if proxy configuration is provided
func (req *CreateModeratorRequest) HasProxy() bool {
	return req.ProxyHost != "" && req.ProxyPort > 0
}

// HasProxyAuth returns true if proxy authentication is provided
func (req *CreateModeratorRequest) HasProxyAuth() bool {
	return req.Username != "" && req.Password != ""
}

// BuildProxyURL builds a proxy URL from the request data
func (req *CreateModeratorRequest) BuildProxyURL() (string, error) {
	if !req.HasProxy() {
		return "", nil
	}

	if !req.ProxyType.IsValid() {
		return "", fmt.Errorf("invalid proxy type: %s", req.ProxyType)
	}

	var userInfo *url.Userinfo
	if req.HasProxyAuth() {
		userInfo = url.UserPassword(req.Username, req.Password)
	}

	proxyURL := &url.URL{
		Scheme: req.ProxyType.String(),
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", req.ProxyHost, req.ProxyPort),
	}

	return proxyURL.String(), nil
}

// Normalize normalizes the request data
func (req *CreateModeratorRequest) Normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.ProxyHost = strings.TrimSpace(req.ProxyHost)
	req.Username = strings.TrimSpace(req.Username)

	if req.HasProxy() && req.ProxyType == "" {
		req.ProxyType = ProxyTypeHTTP
	}
}

// ProxyConfigResponse represents the proxy configuration in responses
// @Description Configuração do proxy
type ProxyConfigResponse struct {
	Host     string    `json:"host,omitempty" example:"78.24.204.134" description:"IP ou hostname do proxy"`
	Port     int       `json:"port,omitempty" example:"62122" description:"Porta do proxy"`
	Type     ProxyType `json:"type,omitempty" example:"http" description:"Tipo do proxy: http ou socks5"`
	Username string    `json:"username,omitempty" description:"Usuário do proxy"`
	Password string    `json:"password,omitempty" description:"Senha do proxy"`
}

// NewProxyConfigResponse creates a new proxy config response
func NewProxyConfigResponse(host string, port int, proxyType ProxyType, username, password string) *ProxyConfigResponse {
	return &ProxyConfigResponse{
		Host:     host,
		Port:     port,
		Type:     proxyType,
		Username: username,
		Password: password,
	}
}

// ModeratorResponse represents the HTTP response for a moderator.
// @Description Dados de um moderador registrado
type ModeratorResponse struct {
	ID          string               `json:"id" example:"550e8400-e29b-41d4-a716-446655440000" description:"ID único do moderador (UUID)"`
	Name        string               `json:"name" example:"recepcao-manha" description:"Nome do moderador"`
	ProxyConfig *ProxyConfigResponse `json:"proxy_config,omitempty" description:"Configuração do proxy"`
	IsActive    bool                 `json:"is_active" example:"true" description:"Indica se o moderador está ativo"`
	CreatedAt   time.Time            `json:"created_at" example:"2024-01-01T12:00:00Z" description:"Data de registro do moderador"`
	UpdatedAt   time.Time            `json:"updated_at" example:"2024-01-01T12:30:00Z" description:"Data da última atualização"`
}

// ModeratorListResponse represents the HTTP response for listing moderators.
// @Description Lista de moderadores registrados
type ModeratorListResponse struct {
	Moderators []*ModeratorResponse `json:"moderators" description:"Lista de moderadores"`
	Total      int                  `json:"total" example:"5" description:"Total de moderadores encontrados"`
}

// DeleteModeratorRequest represents the HTTP request to delete a moderator
type DeleteModeratorRequest struct {
	// No fields needed - moderator ID comes from URL
}

// DeleteModeratorResponse represents the HTTP response for deleting a moderator
type DeleteModeratorResponse struct {
	ModeratorID string `json:"moderator_id"`
	Message     string `json:"message"`
}

// ProxySetRequest represents the HTTP request to set a moderator's proxy
// configuration.
// @Description Configuração de proxy para o moderador
type ProxySetRequest struct {
	ProxyHost string    `json:"proxy_host" validate:"required" example:"78.24.204.134" description:"IP ou hostname do proxy"`
	ProxyPort int       `json:"proxy_port" validate:"required,min=1,max=65535" example:"62122" description:"Porta do proxy"`
	ProxyType ProxyType `json:"proxy_type" validate:"required,oneof=http socks5" example:"http" description:"Tipo do proxy: http ou socks5"`
	Username  string    `json:"username,omitempty" description:"Usuário do proxy (opcional)"`
	Password  string    `json:"password,omitempty" description:"Senha do proxy (opcional)"`
}

// HasProxy returns true if proxy configuration is provided
func (req *ProxySetRequest) HasProxy() bool {
	return req.ProxyHost != "" && req.ProxyPort > 0
}

// HasProxyAuth returns true if proxy authentication is provided
func (req *ProxySetRequest) HasProxyAuth() bool {
	return req.Username != "" && req.Password != ""
}

// Normalize normalizes the request data
func (req *ProxySetRequest) Normalize() {
	req.ProxyHost = strings.TrimSpace(req.ProxyHost)
	req.Username = strings.TrimSpace(req.Username)

	if req.HasProxy() && req.ProxyType == "" {
		req.ProxyType = ProxyTypeHTTP
	}
}

// ProxySetResponse represents the HTTP response for proxy configuration
// @Description Resposta da configuração de proxy
type ProxySetResponse struct {
	ModeratorID string `json:"moderator_id" example:"550e8400-e29b-41d4-a716-446655440000" description:"ID do moderador"`
	ProxyURL    string `json:"proxy_url" example:"http://proxy.example.com:8080" description:"URL do proxy configurado"`
	Success     bool   `json:"success" example:"true"`
	Message     string `json:"message"`
}

// SendMessageRequest represents the HTTP request to send a WhatsApp
// message through a moderator's BrowserSession.
// @Description Dados para envio de mensagem via WhatsApp
type SendMessageRequest struct {
	CountryCode string `json:"country_code" validate:"required" example:"55" description:"Código do país do destinatário"`
	PhoneNumber string `json:"phone_number" validate:"required" example:"11999999999" description:"Número do destinatário"`
	Message     string `json:"message" validate:"required,max=4096" example:"Sua consulta está próxima, por favor aguarde." description:"Conteúdo da mensagem"`
}

// SendMessageResponse represents the HTTP response for a send operation.
// @Description Resultado da tentativa de envio
type SendMessageResponse struct {
	ModeratorID string `json:"moderator_id"`
	State       string `json:"state" example:"success" description:"Resultado tiered: success, failure, waiting, pending_qr ou pending_net"`
	IconKey     string `json:"icon_key,omitempty" description:"Ícone de status a exibir na fila"`
	Message     string `json:"message"`
}

// CheckNumberRequest represents the HTTP request to validate a phone number
// against WhatsApp.
// @Description Dados para verificação de número no WhatsApp
type CheckNumberRequest struct {
	CountryCode string `json:"country_code" validate:"required" example:"55"`
	PhoneNumber string `json:"phone_number" validate:"required" example:"11999999999"`
}

// CheckNumberResponse represents the HTTP response for a check-number operation.
type CheckNumberResponse struct {
	ModeratorID string `json:"moderator_id"`
	State       string `json:"state"`
	Reachable   bool   `json:"reachable"`
	Message     string `json:"message"`
}

// PauseModeratorRequest represents the HTTP request to pause a moderator's
// in-flight operations at the advisory tier.
// @Description Dados para pausar as operações de um moderador
type PauseModeratorRequest struct {
	UserID string `json:"user_id" validate:"required" example:"clinic-admin" description:"Identificador de quem solicitou a pausa"`
	Reason string `json:"reason" validate:"required" example:"shift-ended" description:"Motivo da pausa"`
}

// ResumeModeratorRequest represents the HTTP request to resume a moderator's
// operations, clearing the pause only if the reason matches exactly.
// @Description Dados para retomar as operações de um moderador
type ResumeModeratorRequest struct {
	Reason string `json:"reason" validate:"required" example:"shift-ended" description:"Motivo esperado da pausa atual"`
}

// PauseStatusResponse represents the HTTP response for a pause-status query.
// @Description Estado de pausa persistido de um moderador
type PauseStatusResponse struct {
	ModeratorID  string `json:"moderator_id"`
	IsPaused     bool   `json:"is_paused"`
	PauseReason  string `json:"pause_reason,omitempty"`
	LastPausedBy string `json:"last_paused_by,omitempty"`
}

// ToModeratorResponse converts a domain moderator to an HTTP response.
func ToModeratorResponse(m *moderator.Moderator) *ModeratorResponse {
	return ConvertModerator(m)
}

// ToModeratorListResponse converts a list of domain moderators to an HTTP response.
func ToModeratorListResponse(moderators []*moderator.Moderator, total int) *ModeratorListResponse {
	return &ModeratorListResponse{
		Moderators: ConvertModerators(moderators),
		Total:      total,
	}
}

// parseProxyPort converts string port to int
func parseProxyPort(portStr string) int {
	if portStr == "" {
		return 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0
	}
	return port
}

// extractProxyAuth extracts username and password from proxy URL
func extractProxyAuth(proxyURL string) (string, string) {
	parsedURL, err := url.Parse(proxyURL)
	if err != nil || parsedURL.User == nil {
		return "", ""
	}

	username := parsedURL.User.Username()
	password, _ := parsedURL.User.Password()
	return username, password
}

// Factory Methods for Moderator DTOs

// CreateModeratorResponse creates a moderator response from a domain moderator
func CreateModeratorResponse(m *moderator.Moderator) *ModeratorResponse {
	return ToModeratorResponse(m)
}

// CreateModeratorListResponse creates a moderator list response
func CreateModeratorListResponse(moderators []*moderator.Moderator, total int) *ModeratorListResponse {
	return ToModeratorListResponse(moderators, total)
}

// CreateProxySetResponse creates a proxy set response
func CreateProxySetResponse(moderatorID, proxyURL string, success bool, message string) *ProxySetResponse {
	return &ProxySetResponse{
		ModeratorID: moderatorID,
		ProxyURL:    proxyURL,
		Success:     success,
		Message:     message,
	}
}

// CreateDeleteModeratorResponse creates a delete moderator response
func CreateDeleteModeratorResponse(moderatorID, message string) *DeleteModeratorResponse {
	return &DeleteModeratorResponse{
		ModeratorID: moderatorID,
		Message:     message,
	}
}
