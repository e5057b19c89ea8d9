package recmerge

import "github.com/hkloudou/recmerge/internal/merge"

// MergeFunc combines two adjacent records sharing a key.
// It receives private copies and may modify them freely.
type MergeFunc func(later, earlier Record) (Record, error)

// Assign returns a copy of dst with every top-level member of src copied onto it.
// Members on both take src's value; members on either side alone survive.
func Assign(dst, src Record) (Record, error) {
	out, err := merge.Assign.Merge(dst, src)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// KeepEarlier resolves conflicts in favor of the earlier record.
// It is the default MergeFunc of LinearMerge.
func KeepEarlier(later, earlier Record) (Record, error) {
	return Assign(later, earlier)
}

// KeepLater resolves conflicts in favor of the later record,
// the rule MergeBy applies to whole groups.
func KeepLater(later, earlier Record) (Record, error) {
	return Assign(earlier, later)
}

// MergePatch applies later to earlier as an RFC 7396 JSON Merge Patch:
// nested objects merge recursively and null members of later delete.
func MergePatch(later, earlier Record) (Record, error) {
	out, err := merge.RFC7396.Merge(earlier, later)
	if err != nil {
		return nil, err
	}
	return out, nil
}
