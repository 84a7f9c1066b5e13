package moderator

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"clinicwa/internal/domain/moderator"
	"clinicwa/pkg/logger"
	"clinicwa/pkg/validator"
)

// SetProxyUseCase configures the proxy a moderator's BrowserSession routes
// through, e.g. when a clinic's outbound traffic must exit through a
// region-specific egress proxy.
type SetProxyUseCase struct {
	repo      moderator.Repository
	logger    logger.Logger
	validator validator.Validator
}

// NewSetProxyUseCase creates a new moderator proxy-configuration use case.
func NewSetProxyUseCase(repo moderator.Repository, logger logger.Logger, validator validator.Validator) *SetProxyUseCase {
	return &SetProxyUseCase{repo: repo, logger: logger, validator: validator}
}

// SetProxyRequest is the request to configure a moderator's proxy.
type SetProxyRequest struct {
	ModeratorID moderator.ModeratorID `json:"moderator_id" validate:"required"`
	ProxyHost   string                `json:"proxy_host"`
	ProxyPort   int                   `json:"proxy_port"`
	ProxyType   string                `json:"proxy_type"`
	Username    string                `json:"username,omitempty"`
	Password    string                `json:"password,omitempty"`
}

// SetProxyResponse carries the updated moderator.
type SetProxyResponse struct {
	Moderator *moderator.Moderator `json:"moderator"`
	Message   string               `json:"message"`
}

// Execute sets the proxy configuration for a moderator.
func (uc *SetProxyUseCase) Execute(ctx context.Context, req SetProxyRequest) (*SetProxyResponse, error) {
	if err := uc.validator.Validate(req); err != nil {
		uc.logger.ErrorWithError("validation failed for set proxy", err, logger.Fields{
			"moderator_id": req.ModeratorID.String(),
			"proxy_host":   req.ProxyHost,
		})
		return nil, err
	}

	m, err := uc.repo.GetByID(ctx, req.ModeratorID)
	if err != nil {
		uc.logger.ErrorWithError("failed to get moderator", err, logger.Fields{
			"moderator_id": req.ModeratorID.String(),
		})
		return nil, err
	}

	proxyURL := uc.buildProxyURL(req.ProxyHost, req.ProxyPort, req.ProxyType, req.Username, req.Password)

	if err := m.SetProxyURL(proxyURL); err != nil {
		uc.logger.ErrorWithError("invalid proxy URL", err, logger.Fields{
			"moderator_id": req.ModeratorID.String(),
			"proxy_url":    proxyURL,
		})
		return nil, err
	}

	if err := uc.repo.Update(ctx, m); err != nil {
		uc.logger.ErrorWithError("failed to update moderator with proxy", err, logger.Fields{
			"moderator_id": m.ID().String(),
			"proxy_url":    proxyURL,
		})
		return nil, err
	}

	uc.logger.InfoWithFields("proxy configured for moderator", logger.Fields{
		"moderator_id": m.ID().String(),
		"proxy_url":    proxyURL,
		"has_auth":     req.Username != "",
	})

	return &SetProxyResponse{Moderator: m, Message: "proxy configured successfully"}, nil
}

// buildProxyURL assembles a complete proxy URL with scheme and credentials
// from its separate host/port/type/username/password fields.
func (uc *SetProxyUseCase) buildProxyURL(proxyHost string, proxyPort int, proxyType, username, password string) string {
	if proxyHost == "" {
		return ""
	}

	switch proxyType {
	case "socks", "socks5":
		proxyType = "socks5"
	case "http", "https":
		proxyType = "http"
	default:
		proxyType = "http"
	}

	hostPort := proxyHost
	if proxyPort > 0 {
		hostPort = fmt.Sprintf("%s:%d", proxyHost, proxyPort)
	}

	if !strings.Contains(hostPort, "://") {
		hostPort = proxyType + "://" + hostPort
	}

	parsedURL, err := url.Parse(hostPort)
	if err != nil {
		return hostPort
	}

	if username != "" && password != "" {
		parsedURL.User = url.UserPassword(username, password)
	}

	return parsedURL.String()
}
