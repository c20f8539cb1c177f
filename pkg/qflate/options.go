// pkg/qflate/options.go
package qflate

// Mode selects how Decompress executes.
type Mode int

const (
	// ModeSynchronous tries the hardware path and blocks until the result is
	// available, falling back to software on any failure. This is the default
	// and the mode every Flush resets to.
	ModeSynchronous Mode = iota

	// ModeAsynchronous submits hardware jobs without waiting; destination
	// buffers are valid only after Flush returns. A call whose submission
	// fails degrades to a blocking software decompress for that call only.
	ModeAsynchronous

	// ModeSoftwareFallback skips the hardware path entirely.
	ModeSoftwareFallback
)

// LeakPolicy decides what Close does when asynchronous decompress jobs were
// submitted but never flushed. Leaking them is a caller-discipline violation
// either way; the policy only chooses between failing loudly and limping on.
type LeakPolicy int

const (
	// LeakPolicyReclaim logs a warning and force-releases the leaked slots.
	LeakPolicyReclaim LeakPolicy = iota

	// LeakPolicyPanic treats leaked jobs as a programming error.
	LeakPolicyPanic
)

// Option configures a Codec.
type Option func(*Codec)

// WithPool makes the codec use the given job pool instead of the shared
// DefaultPool. Any number of codecs may share one pool.
func WithPool(p *JobPool) Option {
	return func(c *Codec) { c.pool = p }
}

// WithLeakPolicy sets the teardown policy for unflushed asynchronous jobs.
func WithLeakPolicy(p LeakPolicy) Option {
	return func(c *Codec) { c.leak = p }
}
