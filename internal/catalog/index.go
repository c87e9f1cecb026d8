package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/five82/lifter/internal/exercise"
)

// Index is the read-only catalog grouped by body-part category. Category
// order follows the source document.
type Index struct {
	keys       []string
	categories map[string][]exercise.Ref
	total      int
}

// Empty returns an index with no categories. It is what the library falls
// back to when the catalog cannot be loaded.
func Empty() *Index {
	return &Index{categories: map[string][]exercise.Ref{}}
}

type record struct {
	ID        exercise.ID `json:"id"`
	Name      string      `json:"name"`
	Target    string      `json:"target"`
	BodyPart  string      `json:"bodyPart"`
	Equipment string      `json:"equipment"`
}

// Parse decodes a catalog document: a JSON object mapping category names to
// arrays of exercise records.
func Parse(r io.Reader) (*Index, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("catalog must be a JSON object")
	}

	idx := Empty()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read category: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var records []record
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("decode category %q: %w", key, err)
		}
		idx.add(key, records)
	}
	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read catalog end: %w", err)
	}
	return idx, nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(doc []byte) (*Index, error) {
	return Parse(bytes.NewReader(doc))
}

func (idx *Index) add(key string, records []record) {
	if _, seen := idx.categories[key]; !seen {
		idx.keys = append(idx.keys, key)
	}
	refs := idx.categories[key]
	for _, rec := range records {
		bodyPart := strings.TrimSpace(rec.BodyPart)
		if bodyPart == "" {
			bodyPart = key
		}
		refs = append(refs, exercise.Ref{
			ID:        rec.ID,
			Name:      rec.Name,
			Target:    rec.Target,
			BodyPart:  bodyPart,
			Equipment: rec.Equipment,
		})
	}
	idx.total += len(records)
	idx.categories[key] = refs
}

// Keys returns the category keys in document order.
func (idx *Index) Keys() []string {
	if idx == nil {
		return nil
	}
	return append([]string(nil), idx.keys...)
}

// Category returns the entries filed under key, or nil for unknown keys.
func (idx *Index) Category(key string) []exercise.Ref {
	if idx == nil {
		return nil
	}
	refs := idx.categories[key]
	if len(refs) == 0 {
		return nil
	}
	return append([]exercise.Ref(nil), refs...)
}

// All flattens every category in document order.
func (idx *Index) All() []exercise.Ref {
	if idx == nil {
		return nil
	}
	out := make([]exercise.Ref, 0, idx.total)
	for _, key := range idx.keys {
		out = append(out, idx.categories[key]...)
	}
	return out
}

// Len returns the number of catalog entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return idx.total
}
