package moderator

import (
	"net/url"
	"strings"
	"time"
)

// Moderator is a clinic staff member registered to send WhatsApp queue
// notifications through a dedicated BrowserSession. Registration is the
// ambient prerequisite for every send/check operation: the orchestrator
// resolves a moderator ID to a proxy configuration before it ever launches
// a browser.
type Moderator struct {
	id        ModeratorID
	name      string
	proxyURL  string
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

// NewModerator creates a new moderator registration with the given name.
func NewModerator(name string) *Moderator {
	if name == "" {
		panic("moderator name cannot be empty")
	}

	now := time.Now()
	return &Moderator{
		id:        NewModeratorID(),
		name:      name,
		proxyURL:  "",
		active:    true,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreModerator reconstructs a Moderator from persistence.
func RestoreModerator(id ModeratorID, name string, proxyURL string, active bool, createdAt, updatedAt time.Time) *Moderator {
	return &Moderator{
		id:        id,
		name:      name,
		proxyURL:  proxyURL,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Activate re-enables a moderator so new sends are accepted for them.
func (m *Moderator) Activate() {
	m.active = true
	m.updatedAt = time.Now()
}

// Deactivate disables a moderator; callers should dispose of any live
// BrowserSession before or after this call.
func (m *Moderator) Deactivate() {
	m.active = false
	m.updatedAt = time.Now()
}

// UpdateName changes the moderator's display name.
func (m *Moderator) UpdateName(name string) error {
	if name == "" {
		return ErrInvalidModeratorName
	}

	m.name = name
	m.updatedAt = time.Now()
	return nil
}

// SetProxyURL assigns the proxy this moderator's BrowserSession should route
// through (e.g. when clinics run outbound traffic through an egress proxy
// per region).
func (m *Moderator) SetProxyURL(proxyURL string) error {
	if proxyURL != "" {
		if err := m.validateProxyURL(proxyURL); err != nil {
			return err
		}
	}

	m.proxyURL = proxyURL
	m.updatedAt = time.Now()
	return nil
}

// ClearProxyURL removes the moderator's proxy configuration.
func (m *Moderator) ClearProxyURL() {
	m.proxyURL = ""
	m.updatedAt = time.Now()
}

// HasProxy returns true if the moderator has a proxy configured.
func (m *Moderator) HasProxy() bool {
	return m.proxyURL != ""
}

// GetProxyType returns the scheme of the configured proxy.
func (m *Moderator) GetProxyType() string {
	if !m.HasProxy() {
		return ""
	}

	switch {
	case strings.HasPrefix(m.proxyURL, "http://"):
		return "http"
	case strings.HasPrefix(m.proxyURL, "https://"):
		return "https"
	case strings.HasPrefix(m.proxyURL, "socks4://"):
		return "socks4"
	case strings.HasPrefix(m.proxyURL, "socks5://"):
		return "socks5"
	default:
		return "unknown"
	}
}

// GetProxyHost returns the host portion of the configured proxy.
func (m *Moderator) GetProxyHost() string {
	if !m.HasProxy() {
		return ""
	}

	parsed, err := url.Parse(m.proxyURL)
	if err != nil {
		return ""
	}

	return parsed.Hostname()
}

// GetProxyPort returns the port of the configured proxy, defaulting by scheme.
func (m *Moderator) GetProxyPort() string {
	if !m.HasProxy() {
		return ""
	}

	parsed, err := url.Parse(m.proxyURL)
	if err != nil {
		return ""
	}

	if port := parsed.Port(); port != "" {
		return port
	}

	switch parsed.Scheme {
	case "http", "https":
		return "8080"
	case "socks4", "socks5":
		return "1080"
	}

	return ""
}

// HasProxyAuth returns true if the configured proxy URL carries credentials.
func (m *Moderator) HasProxyAuth() bool {
	if !m.HasProxy() {
		return false
	}

	parsed, err := url.Parse(m.proxyURL)
	if err != nil {
		return false
	}

	return parsed.User != nil
}

func (m *Moderator) validateProxyURL(proxyURL string) error {
	if proxyURL == "" {
		return nil
	}

	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return ErrInvalidProxyURL
	}

	supportedSchemes := []string{"http", "https", "socks4", "socks5"}
	schemeSupported := false
	for _, scheme := range supportedSchemes {
		if parsed.Scheme == scheme {
			schemeSupported = true
			break
		}
	}

	if !schemeSupported {
		return ErrUnsupportedProxyScheme
	}

	if parsed.Hostname() == "" {
		return ErrInvalidProxyHost
	}

	return nil
}

// IsActive returns true if the moderator may currently send messages.
func (m *Moderator) IsActive() bool {
	return m.active
}

func (m *Moderator) ID() ModeratorID {
	return m.id
}

func (m *Moderator) Name() string {
	return m.name
}

func (m *Moderator) ProxyURL() string {
	return m.proxyURL
}

func (m *Moderator) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Moderator) UpdatedAt() time.Time {
	return m.updatedAt
}

// Validate checks the moderator entity's invariants.
func (m *Moderator) Validate() error {
	if m.name == "" {
		return ErrInvalidModeratorName
	}

	if len(m.name) < 3 || len(m.name) > 50 {
		return ErrInvalidModeratorName
	}

	return nil
}
