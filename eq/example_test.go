package eq_test

import (
	"fmt"

	"github.com/tabaudio/tabeq/eq"
)

func ExampleNew() {
	chain, err := eq.New(eq.FiveBandLayout(), eq.DefaultState(5),
		eq.WithSampleRate(44100))
	if err != nil {
		fmt.Println("create:", err)
		return
	}
	defer chain.Destroy()

	_ = chain.SetBandGain(0, 6)
	_ = chain.SetBandGain(4, -3)

	state, _ := chain.State()
	fmt.Println("enabled:", state.Enabled)
	fmt.Println("gains:", state.GainsDB)

	// Output:
	// enabled: true
	// gains: [6 0 0 0 -3]
}

func ExampleChain_SetEnabled() {
	chain, _ := eq.New(eq.FiveBandLayout(), eq.State{
		Enabled: true,
		GainsDB: []float64{6, 0, 0, 0, 0},
	})
	defer chain.Destroy()

	_ = chain.SetEnabled(false)

	live, _ := chain.LiveBandGainDB(0)
	state, _ := chain.State()
	fmt.Println("live gain:", live)
	fmt.Println("configured gain:", state.GainsDB[0])

	// Output:
	// live gain: 0
	// configured gain: 6
}
