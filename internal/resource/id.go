package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const placeholderPrefix = "local-"

// ID is an opaque server-assigned identifier. Servers send it either as a
// JSON string or a JSON number; both decode to the same string form.
type ID string

// NewPlaceholderID returns a client-side id for an entity the server
// acknowledged without echoing it back.
func NewPlaceholderID() ID {
	return ID(placeholderPrefix + uuid.NewString())
}

// IsPlaceholder reports whether id was generated locally.
func (id ID) IsPlaceholder() bool {
	return strings.HasPrefix(string(id), placeholderPrefix)
}

func (id ID) String() string {
	return string(id)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}
