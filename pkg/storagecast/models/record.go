// Package models defines data structures for storage forecast projection.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Time field names carried by every time-bucketed query result row.
const (
	FieldBeginTimeSeconds = "beginTimeSeconds"
	FieldEndTimeSeconds   = "endTimeSeconds"
)

// Record is a single query result row.
//
// Metric values are addressed by name through Fields. Non-numeric and null
// values are not kept.
type Record struct {
	// BeginTimeSeconds is the bucket start as Unix seconds (0 for scalar results).
	BeginTimeSeconds int64 `json:"beginTimeSeconds,omitempty"`
	// EndTimeSeconds is the bucket end as Unix seconds (0 for scalar results).
	EndTimeSeconds int64 `json:"endTimeSeconds,omitempty"`
	// Fields maps metric field names to numeric values.
	Fields map[string]float64 `json:"-"`
}

// Value returns the named metric value and whether it is present.
func (r Record) Value(field string) (float64, bool) {
	v, ok := r.Fields[field]
	return v, ok
}

// UnmarshalJSON decodes a flat result object. Time fields go to the
// dedicated struct fields, every other numeric member goes to Fields.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	rec := Record{Fields: make(map[string]float64, len(raw))}
	for key, value := range raw {
		num, ok := value.(json.Number)
		if !ok {
			continue
		}
		switch key {
		case FieldBeginTimeSeconds, FieldEndTimeSeconds:
			secs, err := parseSeconds(num)
			if err != nil {
				return fmt.Errorf("field %s: %w", key, err)
			}
			if key == FieldBeginTimeSeconds {
				rec.BeginTimeSeconds = secs
			} else {
				rec.EndTimeSeconds = secs
			}
		default:
			f, err := num.Float64()
			if err != nil {
				return fmt.Errorf("field %s: %w", key, err)
			}
			rec.Fields[key] = f
		}
	}

	*r = rec
	return nil
}

// MarshalJSON encodes the record back into the flat result object shape.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Fields)+2)
	for k, v := range r.Fields {
		out[k] = v
	}
	if r.BeginTimeSeconds != 0 || r.EndTimeSeconds != 0 {
		out[FieldBeginTimeSeconds] = r.BeginTimeSeconds
		out[FieldEndTimeSeconds] = r.EndTimeSeconds
	}
	return json.Marshal(out)
}

func parseSeconds(num json.Number) (int64, error) {
	if i, err := num.Int64(); err == nil {
		return i, nil
	}
	f, err := num.Float64()
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
