package settings

import "encoding/json"

// Settings is the persisted record. Extra carries co-located feature
// settings (translation, speech, UI preferences) that the store
// preserves byte-for-byte but never interprets.
type Settings struct {
	Enabled  bool                       `json:"enabled"`
	GainsDB  []float64                  `json:"gains_db"`
	MasterDB float64                    `json:"master_db"`
	Extra    map[string]json.RawMessage `json:"extra,omitempty"`
}

// Default returns the record used when nothing has been stored yet:
// enabled with flat gains sized to bandCount.
func Default(bandCount int) Settings {
	return Settings{
		Enabled: true,
		GainsDB: make([]float64, bandCount),
	}
}

// sizedGains pads or truncates GainsDB to bandCount entries. Missing
// entries default to 0 dB.
func (s *Settings) sizedGains(bandCount int) {
	gains := make([]float64, bandCount)
	copy(gains, s.GainsDB)
	s.GainsDB = gains
}

// Partial is a sparse update. Nil fields are left untouched by Save;
// Extra entries are merged per key, replacing only the keys present.
type Partial struct {
	Enabled  *bool
	GainsDB  []float64
	MasterDB *float64
	Extra    map[string]json.RawMessage
}

// mergeInto applies the partial to dst, shallow at the top-level key set.
func (p Partial) mergeInto(dst *Settings) {
	if p.Enabled != nil {
		dst.Enabled = *p.Enabled
	}

	if p.GainsDB != nil {
		dst.GainsDB = append([]float64(nil), p.GainsDB...)
	}

	if p.MasterDB != nil {
		dst.MasterDB = *p.MasterDB
	}

	if len(p.Extra) > 0 {
		if dst.Extra == nil {
			dst.Extra = make(map[string]json.RawMessage, len(p.Extra))
		}

		for k, v := range p.Extra {
			dst.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
}

// Bool returns a pointer suitable for Partial.Enabled.
func Bool(v bool) *bool { return &v }

// Float returns a pointer suitable for Partial.MasterDB.
func Float(v float64) *float64 { return &v }
