// Package exercise defines the identity and read shape shared by catalog and
// custom exercises.
package exercise

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is the normalized identity of an exercise. Catalog ids arrive as numbers
// and custom ids as strings; both are stored in their decimal/string form so
// comparisons never need type coercion.
type ID string

// NewID normalizes a raw identifier into an ID. Numbers are formatted the way
// a JavaScript String() call would render them (123, 1.5, never 1.0).
func NewID(raw any) ID {
	switch v := raw.(type) {
	case ID:
		return v
	case string:
		return ID(strings.TrimSpace(v))
	case int:
		return ID(strconv.Itoa(v))
	case int32:
		return ID(strconv.FormatInt(int64(v), 10))
	case int64:
		return ID(strconv.FormatInt(v, 10))
	case uint:
		return ID(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return ID(strconv.FormatUint(v, 10))
	case float32:
		return ID(strconv.FormatFloat(float64(v), 'f', -1, 32))
	case float64:
		return ID(strconv.FormatFloat(v, 'f', -1, 64))
	case json.Number:
		return numberID(v.String())
	case fmt.Stringer:
		return ID(strings.TrimSpace(v.String()))
	case nil:
		return ""
	default:
		return ID(fmt.Sprint(v))
	}
}

func numberID(lit string) ID {
	lit = strings.TrimSpace(lit)
	if _, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return ID(lit)
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		return ID(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return ID(lit)
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = NewID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = NewID(n)
	return nil
}

// Ref is an exercise as offered by the library, from either the catalog or
// the user's custom list.
type Ref struct {
	ID        ID     `json:"id" toml:"id"`
	Name      string `json:"name" toml:"name"`
	Target    string `json:"target" toml:"target"`
	BodyPart  string `json:"bodyPart" toml:"bodyPart"`
	Equipment string `json:"equipment,omitempty" toml:"equipment,omitempty"`
	IsCustom  bool   `json:"isCustom" toml:"isCustom"`
}

// Key distinguishes catalog and custom entries that happen to share an id.
func (r Ref) Key() string {
	if r.IsCustom {
		return "custom:" + string(r.ID)
	}
	return "catalog:" + string(r.ID)
}
