package module

import "hash/maphash"

// stringHasher implements immutable.Hasher[string] for the persistent
// resolution map in module.go. The library accepts a nil hasher for a
// handful of built-in key types in some versions; an explicit hasher keeps
// this code correct regardless of exactly which benbjohnson/immutable
// release is vendored.
type stringHasher struct{ seed maphash.Seed }

func newStringHasher() stringHasher { return stringHasher{seed: maphash.MakeSeed()} }

func (h stringHasher) Hash(key string) uint32 {
	var mh maphash.Hash
	mh.SetSeed(h.seed)
	_, _ = mh.WriteString(key)
	return uint32(mh.Sum64())
}

func (h stringHasher) Equal(a, b string) bool { return a == b }
