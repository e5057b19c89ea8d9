package merge

import (
	"bytes"
	"fmt"

	"github.com/hkloudou/recmerge/internal/keypath"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// AssignMerger copies every top-level member of src onto dst.
// Members present on both take src's value and keep dst's position;
// members only on dst survive; members only on src are appended.
type AssignMerger struct{}

// NewAssignMerger creates a new assign merger
func NewAssignMerger() *AssignMerger {
	return &AssignMerger{}
}

// Merge returns dst with src's members set on it.
// dst is copied first, so neither input is modified.
func (m *AssignMerger) Merge(dst, src []byte) ([]byte, error) {
	if !IsObject(dst) || !IsObject(src) {
		return nil, ErrNotObject
	}

	out := bytes.Clone(dst)
	var err error
	gjson.ParseBytes(src).ForEach(func(k, v gjson.Result) bool {
		out, err = sjson.SetRawBytes(out, keypath.Escape(k.Str), []byte(v.Raw))
		if err != nil {
			err = fmt.Errorf("failed to set member %q: %w", k.Str, err)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
