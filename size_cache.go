package virtual

// sizeCache holds sizes measured from rendered elements, keyed by item key.
// Entries override the estimator on every later measurement pass.
//
// The revision changes on every write and clear. The measurement memo depends
// on it in place of the map itself, so a write invalidates the measurements
// and nothing else does.
type sizeCache struct {
	sizes map[Key]float64
	rev   uint64
}

func newSizeCache() *sizeCache {
	return &sizeCache{sizes: make(map[Key]float64)}
}

// Get returns the measured size for key, if any.
func (c *sizeCache) Get(key Key) (float64, bool) {
	size, ok := c.sizes[key]
	return size, ok
}

// Set records a measured size for key.
func (c *sizeCache) Set(key Key, size float64) {
	c.sizes[key] = size
	c.rev++
}

// Clear drops every measured size.
func (c *sizeCache) Clear() {
	c.sizes = make(map[Key]float64)
	c.rev++
}

// Len returns the number of measured items.
func (c *sizeCache) Len() int {
	return len(c.sizes)
}

// Revision identifies the current contents.
func (c *sizeCache) Revision() uint64 {
	return c.rev
}
