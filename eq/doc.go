// Package eq maintains a live, mutable N-band equalizer chain over one
// audio stream.
//
// A Chain owns an ordered series of filter stages allocated from an
// injected Environment. Gain and enable changes touch only the live gain
// parameter of the already-allocated stages; the series wiring is never
// rebuilt during steady-state operation, so a chain's topology and
// latency are invariant across all mutations. Disabling a chain sets
// every stage to 0 dB instead of removing it, which keeps the toggle
// click-free.
//
// Chains are exclusively owned by their creator and are not safe for
// concurrent mutation: all control and processing calls are expected to
// happen on the same goroutine, matching the single-mutator model of an
// interactive audio pipeline. Persistence of the chain state is
// fire-and-forget through an injected Persister and never blocks the
// audio path.
package eq
