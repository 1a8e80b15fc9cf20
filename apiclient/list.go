package apiclient

import (
	"bytes"
	"encoding/json"
)

// List decodes either a bare JSON array or a paginated {"results": [...]} envelope.
// Anything else decodes as an empty list.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*l = List[T]{}
		return nil
	case trimmed[0] == '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = items
		return nil
	case trimmed[0] == '{':
		var page struct {
			Results []T `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return err
		}
		*l = List[T](page.Results)
		if *l == nil {
			*l = List[T]{}
		}
		return nil
	}
	*l = List[T]{}
	return nil
}
