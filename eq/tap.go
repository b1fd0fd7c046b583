package eq

// Tap is the stable connection point downstream of the last filter
// stage. Consumers attach once and receive every processed block; the
// tap survives all gain and enable mutations, and a destroyed chain
// simply stops publishing to it.
//
// Attached consumers run synchronously on the processing goroutine and
// must not retain the block slice past the call.
type Tap struct {
	consumers []func(block []float64)
}

// Attach registers a consumer for processed audio blocks.
func (t *Tap) Attach(fn func(block []float64)) {
	if fn == nil {
		return
	}

	t.consumers = append(t.consumers, fn)
}

func (t *Tap) publish(block []float64) {
	for _, fn := range t.consumers {
		fn(block)
	}
}

func (t *Tap) detachAll() {
	t.consumers = nil
}
