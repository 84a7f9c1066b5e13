package moderator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ModeratorID is a unique identifier for a registered moderator.
type ModeratorID struct {
	value string
}

// NewModeratorID creates a new unique ModeratorID.
func NewModeratorID() ModeratorID {
	return ModeratorID{value: uuid.New().String()}
}

// ModeratorIDFromString parses a ModeratorID from its string form.
func ModeratorIDFromString(s string) (ModeratorID, error) {
	if s == "" {
		return ModeratorID{}, ErrInvalidModeratorID
	}

	if _, err := uuid.Parse(s); err != nil {
		return ModeratorID{}, ErrInvalidModeratorID
	}

	return ModeratorID{value: s}, nil
}

func (id ModeratorID) String() string {
	return id.value
}

// IsEmpty returns true if the ModeratorID is empty.
func (id ModeratorID) IsEmpty() bool {
	return id.value == ""
}

// Equals compares two ModeratorIDs for equality.
func (id ModeratorID) Equals(other ModeratorID) bool {
	return id.value == other.value
}

// ModeratorName is a validated, human-readable moderator name.
type ModeratorName struct {
	value string
}

// NewModeratorName validates and wraps a moderator name.
func NewModeratorName(name string) (ModeratorName, error) {
	if err := validateModeratorName(name); err != nil {
		return ModeratorName{}, err
	}

	return ModeratorName{value: name}, nil
}

func (n ModeratorName) String() string {
	return n.value
}

// IsEmpty returns true if the ModeratorName is empty.
func (n ModeratorName) IsEmpty() bool {
	return n.value == ""
}

func validateModeratorName(name string) error {
	if name == "" {
		return ErrInvalidModeratorName
	}

	if len(name) < 3 {
		return ErrModeratorNameTooShort
	}

	if len(name) > 50 {
		return ErrModeratorNameTooLong
	}

	for _, char := range name {
		if !isValidModeratorNameChar(char) {
			return ErrInvalidModeratorNameChars
		}
	}

	return nil
}

func isValidModeratorNameChar(char rune) bool {
	return (char >= 'a' && char <= 'z') ||
		(char >= 'A' && char <= 'Z') ||
		(char >= '0' && char <= '9') ||
		char == ' ' ||
		char == '-' ||
		char == '_'
}

// IdentifierType distinguishes whether a ModeratorIdentifier holds an ID or a name.
type IdentifierType int

const (
	// IdentifierTypeID indicates the identifier is a ModeratorID (UUID).
	IdentifierTypeID IdentifierType = iota
	// IdentifierTypeName indicates the identifier is a ModeratorName.
	IdentifierTypeName
)

func (t IdentifierType) String() string {
	switch t {
	case IdentifierTypeID:
		return "id"
	case IdentifierTypeName:
		return "name"
	default:
		return "unknown"
	}
}

// ModeratorIdentifier resolves either a UUID or a name to the same moderator,
// mirroring how clinic staff refer to moderators by name in conversation but
// the HTTP API addresses them by ID.
type ModeratorIdentifier struct {
	value          string
	identifierType IdentifierType
}

// NewModeratorIdentifier detects whether value is a UUID or a plain name.
func NewModeratorIdentifier(value string) (ModeratorIdentifier, error) {
	if value == "" {
		return ModeratorIdentifier{}, ErrInvalidModeratorIdentifier
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return ModeratorIdentifier{}, ErrInvalidModeratorIdentifier
	}

	if _, err := uuid.Parse(value); err == nil {
		return ModeratorIdentifier{value: value, identifierType: IdentifierTypeID}, nil
	}

	if err := validateModeratorName(value); err != nil {
		return ModeratorIdentifier{}, fmt.Errorf("invalid moderator identifier '%s': %w", value, err)
	}

	return ModeratorIdentifier{value: value, identifierType: IdentifierTypeName}, nil
}

// ModeratorIdentifierFromID wraps a ModeratorID as an identifier.
func ModeratorIdentifierFromID(id ModeratorID) ModeratorIdentifier {
	return ModeratorIdentifier{value: id.String(), identifierType: IdentifierTypeID}
}

// ModeratorIdentifierFromName wraps a ModeratorName as an identifier.
func ModeratorIdentifierFromName(name ModeratorName) ModeratorIdentifier {
	return ModeratorIdentifier{value: name.String(), identifierType: IdentifierTypeName}
}

func (mi ModeratorIdentifier) String() string {
	return mi.value
}

func (mi ModeratorIdentifier) Type() IdentifierType {
	return mi.identifierType
}

func (mi ModeratorIdentifier) IsID() bool {
	return mi.identifierType == IdentifierTypeID
}

func (mi ModeratorIdentifier) IsName() bool {
	return mi.identifierType == IdentifierTypeName
}

// ToModeratorID converts the identifier to a ModeratorID, if it holds one.
func (mi ModeratorIdentifier) ToModeratorID() (ModeratorID, error) {
	if !mi.IsID() {
		return ModeratorID{}, ErrInvalidModeratorID
	}
	return ModeratorIDFromString(mi.value)
}

// ToModeratorName converts the identifier to a ModeratorName, if it holds one.
func (mi ModeratorIdentifier) ToModeratorName() (ModeratorName, error) {
	if !mi.IsName() {
		return ModeratorName{}, ErrInvalidModeratorName
	}
	return NewModeratorName(mi.value)
}

// IsEmpty returns true if the ModeratorIdentifier is empty.
func (mi ModeratorIdentifier) IsEmpty() bool {
	return mi.value == ""
}

// Equals compares two ModeratorIdentifiers for equality.
func (mi ModeratorIdentifier) Equals(other ModeratorIdentifier) bool {
	return mi.value == other.value && mi.identifierType == other.identifierType
}

// Validate checks the identifier's contents match its detected type.
func (mi ModeratorIdentifier) Validate() error {
	if mi.IsEmpty() {
		return ErrInvalidModeratorIdentifier
	}

	if mi.IsID() {
		if _, err := uuid.Parse(mi.value); err != nil {
			return fmt.Errorf("invalid moderator ID format: %w", err)
		}
	} else if mi.IsName() {
		if err := validateModeratorName(mi.value); err != nil {
			return fmt.Errorf("invalid moderator name: %w", err)
		}
	} else {
		return fmt.Errorf("unknown identifier type: %s", mi.identifierType.String())
	}

	return nil
}
