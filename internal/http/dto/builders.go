package dto

import (
	"time"

	"clinicwa/internal/domain/moderator"
)

// ModeratorResponseBuilder provides a fluent interface for building ModeratorResponse
type ModeratorResponseBuilder struct {
	response *ModeratorResponse
}

// NewModeratorResponseBuilder creates a new ModeratorResponseBuilder
func NewModeratorResponseBuilder() *ModeratorResponseBuilder {
	return &ModeratorResponseBuilder{
		response: &ModeratorResponse{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

// WithID sets the moderator ID
func (b *ModeratorResponseBuilder) WithID(id string) *ModeratorResponseBuilder {
	b.response.ID = id
	return b
}

// WithName sets the moderator name
func (b *ModeratorResponseBuilder) WithName(name string) *ModeratorResponseBuilder {
	b.response.Name = name
	return b
}

// WithProxyConfig sets the proxy configuration
func (b *ModeratorResponseBuilder) WithProxyConfig(config *ProxyConfigResponse) *ModeratorResponseBuilder {
	b.response.ProxyConfig = config
	return b
}

// WithProxy sets proxy configuration using individual parameters
func (b *ModeratorResponseBuilder) WithProxy(host string, port int, proxyType ProxyType, username, password string) *ModeratorResponseBuilder {
	b.response.ProxyConfig = NewProxyConfigResponse(host, port, proxyType, username, password)
	return b
}

// WithActive sets the active status
func (b *ModeratorResponseBuilder) WithActive(isActive bool) *ModeratorResponseBuilder {
	b.response.IsActive = isActive
	return b
}

// WithTimestamps sets creation and update timestamps
func (b *ModeratorResponseBuilder) WithTimestamps(createdAt, updatedAt time.Time) *ModeratorResponseBuilder {
	b.response.CreatedAt = createdAt
	b.response.UpdatedAt = updatedAt
	return b
}

// FromDomainModerator builds from a domain moderator entity
func (b *ModeratorResponseBuilder) FromDomainModerator(m *moderator.Moderator) *ModeratorResponseBuilder {
	b.response.ID = m.ID().String()
	b.response.Name = m.Name()
	b.response.IsActive = m.IsActive()
	b.response.CreatedAt = m.CreatedAt()
	b.response.UpdatedAt = m.UpdatedAt()

	if m.HasProxy() {
		proxyType := ProxyType(m.GetProxyType())
		if !proxyType.IsValid() {
			proxyType = ProxyTypeHTTP
		}

		b.response.ProxyConfig = &ProxyConfigResponse{
			Host: m.GetProxyHost(),
			Port: parseProxyPort(m.GetProxyPort()),
			Type: proxyType,
		}

		if m.HasProxyAuth() {
			username, password := extractProxyAuth(m.ProxyURL())
			b.response.ProxyConfig.Username = username
			b.response.ProxyConfig.Password = password
		}
	}

	return b
}

// Build returns the built ModeratorResponse
func (b *ModeratorResponseBuilder) Build() *ModeratorResponse {
	return b.response
}

// ErrorResponseBuilder provides a fluent interface for building ErrorResponse
type ErrorResponseBuilder struct {
	response *ErrorResponse
}

// NewErrorResponseBuilder creates a new ErrorResponseBuilder
func NewErrorResponseBuilder() *ErrorResponseBuilder {
	return &ErrorResponseBuilder{
		response: &ErrorResponse{
			Success: false,
			Context: make(map[string]interface{}),
		},
	}
}

// WithError sets the error message
func (b *ErrorResponseBuilder) WithError(error string) *ErrorResponseBuilder {
	b.response.Error = error
	return b
}

// WithCode sets the error code
func (b *ErrorResponseBuilder) WithCode(code string) *ErrorResponseBuilder {
	b.response.Code = code
	return b
}

// WithDetails sets the error details
func (b *ErrorResponseBuilder) WithDetails(details string) *ErrorResponseBuilder {
	b.response.Details = details
	return b
}

// WithContext sets the error context
func (b *ErrorResponseBuilder) WithContext(context map[string]interface{}) *ErrorResponseBuilder {
	b.response.Context = context
	return b
}

// AddContext adds a key-value pair to the error context
func (b *ErrorResponseBuilder) AddContext(key string, value interface{}) *ErrorResponseBuilder {
	if b.response.Context == nil {
		b.response.Context = make(map[string]interface{})
	}
	b.response.Context[key] = value
	return b
}

// Build returns the built ErrorResponse
func (b *ErrorResponseBuilder) Build() *ErrorResponse {
	return b.response
}

// ValidationErrorResponseBuilder provides a fluent interface for building ValidationErrorResponse
type ValidationErrorResponseBuilder struct {
	response *ValidationErrorResponse
}

// NewValidationErrorResponseBuilder creates a new ValidationErrorResponseBuilder
func NewValidationErrorResponseBuilder() *ValidationErrorResponseBuilder {
	return &ValidationErrorResponseBuilder{
		response: &ValidationErrorResponse{
			Success: false,
			Error:   "Validation failed",
			Code:    "VALIDATION_ERROR",
			Fields:  make([]ValidationFieldError, 0),
		},
	}
}

// WithError sets the error message
func (b *ValidationErrorResponseBuilder) WithError(error string) *ValidationErrorResponseBuilder {
	b.response.Error = error
	return b
}

// WithCode sets the error code
func (b *ValidationErrorResponseBuilder) WithCode(code string) *ValidationErrorResponseBuilder {
	b.response.Code = code
	return b
}

// AddField adds a validation field error
func (b *ValidationErrorResponseBuilder) AddField(field, tag, value, message string) *ValidationErrorResponseBuilder {
	b.response.Fields = append(b.response.Fields, ValidationFieldError{
		Field:   field,
		Tag:     tag,
		Value:   value,
		Message: message,
	})
	return b
}

// WithFields sets all validation field errors
func (b *ValidationErrorResponseBuilder) WithFields(fields []ValidationFieldError) *ValidationErrorResponseBuilder {
	b.response.Fields = fields
	return b
}

// Build returns the built ValidationErrorResponse
func (b *ValidationErrorResponseBuilder) Build() *ValidationErrorResponse {
	return b.response
}

// MetricsResponseBuilder provides a fluent interface for building MetricsResponse
type MetricsResponseBuilder struct {
	response *MetricsResponse
}

// NewMetricsResponseBuilder creates a new MetricsResponseBuilder
func NewMetricsResponseBuilder() *MetricsResponseBuilder {
	return &MetricsResponseBuilder{
		response: &MetricsResponse{
			Timestamp: time.Now(),
		},
	}
}

// WithModeratorMetrics sets the moderator registry metrics
func (b *MetricsResponseBuilder) WithModeratorMetrics(metrics ModeratorMetrics) *MetricsResponseBuilder {
	b.response.Moderators = metrics
	return b
}

// WithMessagingMetrics sets the messaging metrics
func (b *MetricsResponseBuilder) WithMessagingMetrics(metrics MessagingMetrics) *MetricsResponseBuilder {
	b.response.Messaging = metrics
	return b
}

// WithSystemMetrics sets the system metrics
func (b *MetricsResponseBuilder) WithSystemMetrics(metrics SystemMetrics) *MetricsResponseBuilder {
	b.response.System = metrics
	return b
}

// WithTimestamp sets the metrics timestamp
func (b *MetricsResponseBuilder) WithTimestamp(timestamp time.Time) *MetricsResponseBuilder {
	b.response.Timestamp = timestamp
	return b
}

// Build returns the built MetricsResponse
func (b *MetricsResponseBuilder) Build() *MetricsResponse {
	return b.response
}
