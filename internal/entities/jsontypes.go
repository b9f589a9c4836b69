package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringMap is an open set of named string values persisted as a single
// JSON text column (e.g. equipment specs). Partial updates merge keys
// instead of replacing the whole map.
type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return jsonValue(m)
}

func (m *StringMap) Scan(src any) error { return jsonScan(m, src) }

// FloatMap is an open set of named numeric values persisted as a single
// JSON text column (e.g. ICP element concentrations keyed by symbol).
type FloatMap map[string]float64

func (m FloatMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return jsonValue(m)
}

func (m *FloatMap) Scan(src any) error { return jsonScan(m, src) }

// IntensityMap maps an hour of day ("0".."23") to per-channel intensity
// percentages for a lighting schedule.
type IntensityMap map[string][]int

func (m IntensityMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return jsonValue(m)
}

func (m *IntensityMap) Scan(src any) error { return jsonScan(m, src) }

// LightChannel describes one LED channel of a lighting schedule.
type LightChannel struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LightChannels is the ordered channel list, persisted as JSON text.
type LightChannels []LightChannel

func (c LightChannels) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return jsonValue(c)
}

func (c *LightChannels) Scan(src any) error { return jsonScan(c, src) }

// Recommendation is a single lab recommendation attached to an ICP test.
type Recommendation struct {
	Element string `json:"element"`
	Action  string `json:"action"` // raise, lower, watch
	Dosage  string `json:"dosage,omitempty"`
}

// Recommendations is persisted as one JSON text column.
type Recommendations []Recommendation

func (r Recommendations) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return jsonValue(r)
}

func (r *Recommendations) Scan(src any) error { return jsonScan(r, src) }

// HeaderMap holds the captured headers of a queued HTTP request.
type HeaderMap map[string]string

func (m HeaderMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return jsonValue(m)
}

func (m *HeaderMap) Scan(src any) error { return jsonScan(m, src) }

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(dest any, src any) error {
	if src == nil {
		return nil
	}
	switch s := src.(type) {
	case []byte:
		return json.Unmarshal(s, dest)
	case string:
		return json.Unmarshal([]byte(s), dest)
	default:
		return fmt.Errorf("cannot scan %T into JSON column", src)
	}
}
