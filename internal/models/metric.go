package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// Metric is a numeric snapshot field that is either computed or pending.
// The zero value is pending. A pending metric encodes as JSON null and is
// stored as SQL NULL, so it can never be mistaken for a real zero.
type Metric struct {
	value    float64
	computed bool
}

// Computed returns a metric holding v.
func Computed(v float64) Metric {
	return Metric{value: v, computed: true}
}

// Pending returns a metric whose value has not been computed.
func Pending() Metric {
	return Metric{}
}

// Get returns the value and whether it was computed.
func (m Metric) Get() (float64, bool) {
	return m.value, m.computed
}

func (m Metric) IsPending() bool {
	return !m.computed
}

func (m Metric) String() string {
	if !m.computed {
		return "pending"
	}
	return strconv.FormatFloat(m.value, 'f', 2, 64)
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.computed {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Pending()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Computed(v)
	return nil
}

// Value implements driver.Valuer.
func (m Metric) Value() (driver.Value, error) {
	if !m.computed {
		return nil, nil
	}
	return m.value, nil
}

// Scan implements sql.Scanner.
func (m *Metric) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = Pending()
	case float64:
		*m = Computed(v)
	case int64:
		*m = Computed(float64(v))
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return fmt.Errorf("scan metric: %w", err)
		}
		*m = Computed(f)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("scan metric: %w", err)
		}
		*m = Computed(f)
	default:
		return fmt.Errorf("scan metric: unsupported type %T", src)
	}
	return nil
}
