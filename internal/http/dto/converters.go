package dto

import (
	"clinicwa/internal/domain/moderator"
)

// ConvertModerator converts a single domain moderator into its HTTP response
// shape via the fluent builder. The moderator registry is clinic-staff
// scale (dozens of rows, not thousands), so this stays a plain synchronous
// conversion rather than the pooled/parallel/cached machinery a
// higher-volume registry might justify.
func ConvertModerator(m *moderator.Moderator) *ModeratorResponse {
	if m == nil {
		return nil
	}
	return NewModeratorResponseBuilder().FromDomainModerator(m).Build()
}

// ConvertModerators converts a slice of domain moderators into their HTTP
// response shape.
func ConvertModerators(moderators []*moderator.Moderator) []*ModeratorResponse {
	responses := make([]*ModeratorResponse, 0, len(moderators))
	for _, m := range moderators {
		responses = append(responses, ConvertModerator(m))
	}
	return responses
}
