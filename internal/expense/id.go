package expense

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ID identifies an expense. The store assigns it and its format is opaque:
// the dev server issues UUIDs, other stores may use integers.
type ID string

// NewID returns a fresh random id.
func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) IsZero() bool {
	return id == ""
}

func (id ID) String() string {
	return string(id)
}

// MarshalJSON writes numeric ids back as JSON numbers so a store that issued
// integers gets integers.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseUint(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}

	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON string or number. null leaves the id zero.
func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*id = ID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}

	*id = ID(n.String())

	return nil
}
