package body

// skipper is implemented by sinks that can account for bytes without
// receiving them. Encoders use it to size binary parts without reading them.
type skipper interface {
	Skip(n int64)
}

// Counter is an io.Writer that discards its input and counts bytes.
// The zero value is ready to use.
type Counter struct {
	n int64
}

func (c *Counter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

// Skip advances the count by n without any bytes being written.
func (c *Counter) Skip(n int64) {
	c.n += n
}

// N returns the number of bytes counted so far.
func (c *Counter) N() int64 {
	return c.n
}
