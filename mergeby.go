package recmerge

import "fmt"

// MergeBy folds every record sharing a key value into one record.
//
// Groups appear in the order their key was first seen. Within a group each
// later record overwrites the members it carries; members it lacks keep their
// earlier value. A record whose key is absent forms a group of its own.
//
// The input is not modified and the result shares no memory with it.
// An error is returned if any record is not a JSON object.
func MergeBy(records []Record, key KeyResolver) ([]Record, error) {
	if err := validateAll(records); err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(records))
	// leaders[i] is the key of out[i]; merging never changes it
	leaders := make([]Value, 0, len(records))
	for i, current := range records {
		k := key.Resolve(current)
		g := indexOf(leaders, k)
		if g < 0 {
			out = append(out, current.Clone())
			leaders = append(leaders, k)
			continue
		}

		merged, err := Assign(out[g], current)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out[g] = merged
	}
	return out, nil
}

func indexOf(leaders []Value, k Value) int {
	if !k.Present() {
		return -1
	}
	for i, leader := range leaders {
		if leader.Equal(k) {
			return i
		}
	}
	return -1
}
