package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SearchID     ID
	SelectionID  ID
	AttributeKey ID
)

// String conversions for domain IDs
func (id SearchID) String() string     { return ID(id).String() }
func (id SelectionID) String() string  { return ID(id).String() }
func (id AttributeKey) String() string { return ID(id).String() }

// ParseSearchID parses a string into SearchID
func ParseSearchID(s string) (SearchID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("search ID cannot be empty")
	}
	return SearchID(s), nil
}

// ParseAttributeKey parses a string into AttributeKey
func ParseAttributeKey(s string) (AttributeKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("attribute key cannot be empty")
	}
	return AttributeKey(s), nil
}
