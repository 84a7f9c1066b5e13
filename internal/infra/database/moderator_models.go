package database

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"clinicwa/internal/domain/moderator"

	"github.com/uptrace/bun"
)

// ProxyConfig is the normalized, JSON-serialized form of a moderator's proxy URL.
type ProxyConfig struct {
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	Type     string `json:"type,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// ModeratorModel is the bun model backing the moderator registry.
type ModeratorModel struct {
	bun.BaseModel `bun:"table:clinicwa_moderators"`

	ID          string       `bun:"id,pk,type:varchar(36)" json:"id"`
	Name        string       `bun:"name,unique,notnull,type:varchar(50)" json:"name"`
	ProxyConfig *ProxyConfig `bun:"proxy_config,type:text" json:"proxy_config,omitempty"`
	IsActive    bool         `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt   time.Time    `bun:"created_at,notnull,default:current_timestamp,type:datetime" json:"created_at"`
	UpdatedAt   time.Time    `bun:"updated_at,notnull,default:current_timestamp,type:datetime" json:"updated_at"`
}

// ToModeratorModel converts a domain Moderator to its persisted form.
func ToModeratorModel(m *moderator.Moderator) *ModeratorModel {
	var proxyConfig *ProxyConfig
	if m.HasProxy() {
		proxyConfig = &ProxyConfig{
			Host: m.GetProxyHost(),
			Port: parseProxyPort(m.GetProxyPort()),
			Type: m.GetProxyType(),
		}

		if m.HasProxyAuth() {
			username, password := extractProxyAuth(m.ProxyURL())
			proxyConfig.Username = username
			proxyConfig.Password = password
		}
	}

	return &ModeratorModel{
		ID:          m.ID().String(),
		Name:        m.Name(),
		ProxyConfig: proxyConfig,
		IsActive:    m.IsActive(),
		CreatedAt:   m.CreatedAt(),
		UpdatedAt:   m.UpdatedAt(),
	}
}

// FromModeratorModel converts a persisted moderator row back to the domain entity.
func FromModeratorModel(model *ModeratorModel) (*moderator.Moderator, error) {
	id, err := moderator.ModeratorIDFromString(model.ID)
	if err != nil {
		return nil, err
	}

	proxyURL := ""
	if model.ProxyConfig != nil {
		proxyURL = buildProxyURL(model.ProxyConfig)
	}

	return moderator.RestoreModerator(
		id,
		model.Name,
		proxyURL,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

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

func extractProxyAuth(proxyURL string) (string, string) {
	parsedURL, err := url.Parse(proxyURL)
	if err != nil || parsedURL.User == nil {
		return "", ""
	}

	username := parsedURL.User.Username()
	password, _ := parsedURL.User.Password()
	return username, password
}

func buildProxyURL(config *ProxyConfig) string {
	if config.Host == "" || config.Port == 0 {
		return ""
	}

	proxyURL := fmt.Sprintf("%s://%s:%d", config.Type, config.Host, config.Port)

	if config.Username != "" && config.Password != "" {
		parsedURL, err := url.Parse(proxyURL)
		if err != nil {
			return proxyURL
		}
		parsedURL.User = url.UserPassword(config.Username, config.Password)
		return parsedURL.String()
	}

	return proxyURL
}
