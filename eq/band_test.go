package eq

import "testing"

func TestStandardLayouts(t *testing.T) {
	layouts := map[string][]BandSpec{
		"five":  FiveBandLayout(),
		"six":   SixBandLayout(),
		"eight": EightBandLayout(),
	}

	for name, specs := range layouts {
		t.Run(name, func(t *testing.T) {
			if len(specs) == 0 {
				t.Fatal("empty layout")
			}

			if specs[0].Kind != KindLowShelf {
				t.Errorf("first band: got %s, want lowshelf", specs[0].Kind)
			}

			if specs[len(specs)-1].Kind != KindHighShelf {
				t.Errorf("last band: got %s, want highshelf", specs[len(specs)-1].Kind)
			}

			for i := 1; i < len(specs); i++ {
				if specs[i].FrequencyHz <= specs[i-1].FrequencyHz {
					t.Errorf("band %d: frequency %v not above band %d (%v)",
						i, specs[i].FrequencyHz, i-1, specs[i-1].FrequencyHz)
				}

				if i < len(specs)-1 && specs[i].Kind != KindPeaking {
					t.Errorf("interior band %d: got %s, want peaking", i, specs[i].Kind)
				}
			}
		})
	}
}

func TestFilterKind_String(t *testing.T) {
	cases := map[FilterKind]string{
		KindLowShelf:   "lowshelf",
		KindPeaking:    "peaking",
		KindHighShelf:  "highshelf",
		FilterKind(42): "unknown",
	}

	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%d: got %q, want %q", kind, got, want)
		}
	}
}
