package eq

// State is the mutable configuration of a chain: the enable flag and one
// gain per band. It is the only chain data that crosses the persistence
// boundary.
type State struct {
	Enabled bool
	GainsDB []float64
}

// DefaultState returns an enabled, flat state for bandCount bands.
func DefaultState(bandCount int) State {
	return State{
		Enabled: true,
		GainsDB: make([]float64, bandCount),
	}
}

// Clone returns a deep copy; mutating the copy never affects the
// original.
func (s State) Clone() State {
	out := State{Enabled: s.Enabled}
	if s.GainsDB != nil {
		out.GainsDB = append([]float64(nil), s.GainsDB...)
	}

	return out
}

// sized returns a copy of s with GainsDB padded or truncated to
// bandCount entries. Missing entries default to 0 dB.
func (s State) sized(bandCount int) State {
	out := State{
		Enabled: s.Enabled,
		GainsDB: make([]float64, bandCount),
	}
	copy(out.GainsDB, s.GainsDB)

	return out
}

// Persister receives chain state snapshots for durable storage. The call
// must return immediately and perform I/O off the caller's control flow;
// write failures are the persister's concern and never surface here.
type Persister interface {
	SaveStateAsync(State)
}
