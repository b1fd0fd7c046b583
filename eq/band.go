package eq

// FilterKind selects the frequency-response shape of a band.
type FilterKind int

const (
	// KindLowShelf boosts or cuts everything below the band frequency.
	KindLowShelf FilterKind = iota
	// KindPeaking boosts or cuts a band around the center frequency with
	// a width set by Q.
	KindPeaking
	// KindHighShelf boosts or cuts everything above the band frequency.
	KindHighShelf
)

// String returns the kind name used in presets and logs.
func (k FilterKind) String() string {
	switch k {
	case KindLowShelf:
		return "lowshelf"
	case KindPeaking:
		return "peaking"
	case KindHighShelf:
		return "highshelf"
	default:
		return "unknown"
	}
}

// BandSpec describes one band of a chain's fixed layout. It is set at
// construction time and never changes for the life of the chain.
type BandSpec struct {
	Kind        FilterKind
	FrequencyHz float64
	// Q is the peaking bandwidth. Zero selects the default slope; it is
	// ignored for shelving kinds, which always use the default shelf
	// slope.
	Q float64
}

// FiveBandLayout returns the classic 60/230/910/3600/14000 Hz layout:
// a low shelf, three peaking bands and a high shelf.
func FiveBandLayout() []BandSpec {
	return []BandSpec{
		{Kind: KindLowShelf, FrequencyHz: 60},
		{Kind: KindPeaking, FrequencyHz: 230, Q: 1.0},
		{Kind: KindPeaking, FrequencyHz: 910, Q: 1.0},
		{Kind: KindPeaking, FrequencyHz: 3600, Q: 1.0},
		{Kind: KindHighShelf, FrequencyHz: 14000},
	}
}

// SixBandLayout returns a six-band layout with four peaking bands.
func SixBandLayout() []BandSpec {
	return []BandSpec{
		{Kind: KindLowShelf, FrequencyHz: 60},
		{Kind: KindPeaking, FrequencyHz: 230, Q: 1.0},
		{Kind: KindPeaking, FrequencyHz: 910, Q: 1.0},
		{Kind: KindPeaking, FrequencyHz: 3600, Q: 1.0},
		{Kind: KindPeaking, FrequencyHz: 9000, Q: 1.0},
		{Kind: KindHighShelf, FrequencyHz: 16000},
	}
}

// EightBandLayout returns an eight-band layout with six peaking bands.
func EightBandLayout() []BandSpec {
	return []BandSpec{
		{Kind: KindLowShelf, FrequencyHz: 60},
		{Kind: KindPeaking, FrequencyHz: 150, Q: 1.0},
		{Kind: KindPeaking, FrequencyHz: 400, Q: 1.0},
		{Kind: KindPeaking, FrequencyHz: 1000, Q: 1.0},
		{Kind: KindPeaking, FrequencyHz: 2400, Q: 1.0},
		{Kind: KindPeaking, FrequencyHz: 6000, Q: 1.0},
		{Kind: KindPeaking, FrequencyHz: 12000, Q: 1.0},
		{Kind: KindHighShelf, FrequencyHz: 16000},
	}
}
