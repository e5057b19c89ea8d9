package recmerge

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hkloudou/recmerge/internal/keypath"
	"github.com/hkloudou/recmerge/internal/merge"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Record is a JSON object held as raw bytes.
// Like json.RawMessage it encodes as itself.
type Record []byte

// NewRecord marshals v, which must encode as a JSON object.
func NewRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	r := Record(data)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustRecord is like NewRecord but panics on error. Intended for literals.
func MustRecord(v any) Record {
	r, err := NewRecord(v)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate returns ErrNotObject unless r is a well-formed JSON object.
func (r Record) Validate() error {
	if !merge.IsObject(r) {
		return ErrNotObject
	}
	return nil
}

// Clone returns a copy of r that shares no memory with it.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return bytes.Clone(r)
}

// Get returns the value at path. Slash paths ("/user/id") and
// gjson paths ("user.id") are both accepted.
func (r Record) Get(path string) gjson.Result {
	return gjson.GetBytes(r, keypath.ToGjson(path))
}

// Set returns a copy of r with v stored at path.
func (r Record) Set(path string, v any) (Record, error) {
	out, err := sjson.SetBytes(r.Clone(), keypath.ToGjson(path), v)
	if err != nil {
		return nil, fmt.Errorf("failed to set %s: %w", path, err)
	}
	return out, nil
}

// SetRaw returns a copy of r with the raw JSON value stored at path.
func (r Record) SetRaw(path string, raw []byte) (Record, error) {
	out, err := sjson.SetRawBytes(r.Clone(), keypath.ToGjson(path), raw)
	if err != nil {
		return nil, fmt.Errorf("failed to set %s: %w", path, err)
	}
	return out, nil
}

// String returns the record's JSON text.
func (r Record) String() string {
	return string(r)
}

// MarshalJSON returns r as the JSON encoding of r.
func (r Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores a copy of data.
func (r *Record) UnmarshalJSON(data []byte) error {
	if r == nil {
		return fmt.Errorf("recmerge.Record: UnmarshalJSON on nil pointer")
	}
	*r = append((*r)[0:0], data...)
	return nil
}

// ParseRecords splits a JSON array of objects into records.
func ParseRecords(data []byte) ([]Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrNotArray
	}
	arr := gjson.ParseBytes(data)
	if !arr.IsArray() {
		return nil, ErrNotArray
	}

	records := make([]Record, 0)
	var err error
	arr.ForEach(func(_, v gjson.Result) bool {
		r := Record(v.Raw)
		if verr := r.Validate(); verr != nil {
			err = fmt.Errorf("record %d: %w", len(records), verr)
			return false
		}
		records = append(records, r)
		return true
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// EncodeRecords joins records into a JSON array.
func EncodeRecords(records []Record) ([]byte, error) {
	out := []byte("[]")
	for i, r := range records {
		var err error
		out, err = sjson.SetRawBytes(out, "-1", r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return out, nil
}

// validateAll checks every record before any merging starts.
func validateAll(records []Record) error {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
