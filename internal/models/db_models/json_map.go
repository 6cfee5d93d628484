package db_models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap maps a free-form component payload onto a jsonb column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported jsonb source type")
	}

	return json.Unmarshal(raw, m)
}

// Clone deep-copies one level of nesting via a marshal round trip, so
// duplicated components never share payload maps with their source.
func (m JSONMap) Clone() JSONMap {
	if m == nil {
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		out := make(JSONMap, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	}
	var out JSONMap
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
