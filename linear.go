package recmerge

import "fmt"

// LinearMerge folds runs of adjacent records sharing a key value.
//
// Each maximal run yields one record, in input order; equal keys that are not
// adjacent stay separate. Within a run the record built so far is passed to
// the merge function as earlier and the next record as later; the next record
// then takes every member of the result. The merged record's key is what gets
// compared with the record after it.
//
// The default merge function is KeepEarlier. Use WithMergeFunc to change it.
// The input is not modified and the result shares no memory with it.
func LinearMerge(records []Record, key KeyResolver, opts ...func(*Option)) ([]Record, error) {
	if err := validateAll(records); err != nil {
		return nil, err
	}
	option := newOption(opts)

	out := make([]Record, 0, len(records))
	var carried Record
	for i := range records {
		if carried == nil {
			carried = records[i].Clone()
		}
		if i+1 < len(records) && sameKey(key, carried, records[i+1]) {
			next, err := fold(option.MergeFunc, records[i+1], carried)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i+1, err)
			}
			carried = next
			continue
		}
		out = append(out, carried)
		carried = nil
	}
	return out, nil
}

// fold merges earlier into next and returns next carrying the result.
func fold(fn MergeFunc, next, earlier Record) (Record, error) {
	merged, err := fn(next.Clone(), earlier.Clone())
	if err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("merge function result: %w", err)
	}
	return Assign(next, merged)
}
