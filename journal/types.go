package journal

// Change records a single write: the Path/Key addressed (see the cache
// package for what these mean) and the value involved. In the forward
// journal Value is the value written; in the backward journal it is the
// value that write replaced (nil if the key had no prior value).
type Change struct {
	Path  string
	Key   string
	Value any
}
