// Package recmerge deduplicates sequences of JSON object records that share a key.
//
// Two strategies are provided. MergeBy folds every record sharing a key value
// into one, wherever it appears; the group keeps the position of its first
// record and later records overwrite its members. LinearMerge folds only
// adjacent records sharing a key value, through a pluggable MergeFunc.
//
// Keys are resolved by a KeyResolver: Field looks up one top-level member,
// Path walks a nested path. A record whose key is absent never merges with
// another record, including another record missing the same key.
//
// Neither operation modifies its input; every returned record is newly allocated.
package recmerge
