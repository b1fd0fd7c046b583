// Command tabeq runs a multi-band equalizer between the default audio
// input and output. Band gains persist across runs; stop with Ctrl-C.
//
// Usage:
//
//	tabeq [flags]
//
// Examples:
//
//	tabeq
//	tabeq -bands 8 -preset rock
//	tabeq -gains 6,0,0,0,-4.5
//	tabeq -presets my-presets.yaml -preset warm
//	tabeq -db settings.db -master -3
//	tabeq -list-presets
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/tabaudio/tabeq/eq"
	"github.com/tabaudio/tabeq/eq/preset"
	"github.com/tabaudio/tabeq/settings"
	"github.com/tabaudio/tabeq/source"
	"github.com/tabaudio/tabeq/tap"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	level   = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
)

func main() {
	bands := flag.Int("bands", 5, "number of bands (5, 6 or 8)")
	sampleRate := flag.Float64("samplerate", 48000, "stream sample rate in Hz")
	bufferSize := flag.Int("buffer", 1024, "block size in samples")
	presetName := flag.String("preset", "", "apply a named preset before starting")
	presetFile := flag.String("presets", "", "YAML file with additional presets")
	gains := flag.String("gains", "", "comma-separated band gains in dB, lowest band first")
	master := flag.Float64("master", 0, "master gain in dB")
	disabled := flag.Bool("disabled", false, "start with the equalizer bypassed")
	settingsDir := flag.String("settings", "", "directory for file-based settings (default: in-memory)")
	dbPath := flag.String("db", "", "SQLite database for settings (overrides -settings)")
	listPresets := flag.Bool("list-presets", false, "list preset names and exit")
	mock := flag.Bool("mock", false, "use the generated test tone instead of audio hardware")
	flag.Parse()

	masterSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "master" {
			masterSet = true
		}
	})

	if *listPresets {
		for _, name := range preset.Names() {
			fmt.Println(name)
		}

		return
	}

	if err := run(config{
		bands:       *bands,
		sampleRate:  *sampleRate,
		bufferSize:  *bufferSize,
		presetName:  *presetName,
		presetFile:  *presetFile,
		gains:       *gains,
		master:      *master,
		masterSet:   masterSet,
		disabled:    *disabled,
		settingsDir: *settingsDir,
		dbPath:      *dbPath,
		mock:        *mock,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	bands       int
	sampleRate  float64
	bufferSize  int
	presetName  string
	presetFile  string
	gains       string
	master      float64
	masterSet   bool
	disabled    bool
	settingsDir string
	dbPath      string
	mock        bool
}

func run(cfg config) error {
	layout, err := bandLayout(cfg.bands)
	if err != nil {
		return err
	}

	store, cleanup, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	rec := store.Load(cfg.bands)

	state := eq.State{Enabled: rec.Enabled && !cfg.disabled, GainsDB: rec.GainsDB}

	// An explicit -master wins over the stored value and is persisted.
	masterDB := rec.MasterDB
	if cfg.masterSet {
		masterDB = cfg.master

		store.Save(settings.Partial{MasterDB: settings.Float(masterDB)})
	}

	chain, err := eq.New(layout, state,
		eq.WithSampleRate(cfg.sampleRate),
		eq.WithPersister(store),
		eq.WithMasterGainDB(masterDB))
	if err != nil {
		return err
	}
	defer chain.Destroy()

	if err := applyGains(chain, cfg); err != nil {
		return err
	}

	meter := tap.NewMeter(0.9)

	analyzer, err := tap.NewAnalyzer(2048, cfg.sampleRate)
	if err != nil {
		return err
	}

	t, err := chain.OutputTap()
	if err != nil {
		return err
	}

	t.Attach(meter.Feed)
	t.Attach(analyzer.Feed)

	printBands(chain)

	var backend source.Backend
	if cfg.mock {
		backend = source.NewMockBackend(440)
	} else {
		backend = source.NewPortAudioBackend()
	}

	pump := source.NewPump(backend, chain,
		source.WithSampleRate(cfg.sampleRate),
		source.WithBufferSize(cfg.bufferSize))

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = pump.Run(ctx)

	printLevels(meter)
	store.Flush()

	if err != nil && ctx.Err() == nil {
		return err
	}

	return nil
}

func bandLayout(n int) ([]eq.BandSpec, error) {
	switch n {
	case 5:
		return eq.FiveBandLayout(), nil
	case 6:
		return eq.SixBandLayout(), nil
	case 8:
		return eq.EightBandLayout(), nil
	default:
		return nil, fmt.Errorf("unsupported band count %d (want 5, 6 or 8)", n)
	}
}

func openStore(cfg config) (*settings.Store, func(), error) {
	nop := func() {}

	switch {
	case cfg.dbPath != "":
		backend, err := settings.NewSQLiteBackend(cfg.dbPath)
		if err != nil {
			return nil, nop, err
		}

		return settings.NewStore(settings.WithBackend(backend)),
			func() { backend.Close() }, nil

	case cfg.settingsDir != "":
		backend, err := settings.NewFileBackend(cfg.settingsDir)
		if err != nil {
			return nil, nop, err
		}

		return settings.NewStore(settings.WithBackend(backend)), nop, nil

	default:
		warn.Fprintln(os.Stderr, "no -settings or -db given, settings will not persist")

		return settings.NewStore(), nop, nil
	}
}

// applyGains applies, in order of precedence: explicit -gains, then a
// named preset, then whatever the settings store restored.
func applyGains(chain *eq.Chain, cfg config) error {
	if cfg.gains != "" {
		parsed, err := parseGains(cfg.gains, chain.NumBands())
		if err != nil {
			return err
		}

		for i, g := range parsed {
			if err := chain.SetBandGain(i, g); err != nil {
				return err
			}
		}

		return nil
	}

	if cfg.presetName == "" {
		return nil
	}

	p, ok := preset.Lookup(cfg.presetName)

	if !ok && cfg.presetFile != "" {
		loaded, err := preset.Load(cfg.presetFile)
		if err != nil {
			return err
		}

		for _, lp := range loaded {
			if lp.Name == cfg.presetName {
				p, ok = lp, true

				break
			}
		}
	}

	if !ok {
		return fmt.Errorf("unknown preset %q (use -list-presets)", cfg.presetName)
	}

	return preset.Apply(chain, p)
}

func parseGains(s string, bandCount int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != bandCount {
		return nil, fmt.Errorf("-gains has %d values, chain has %d bands", len(parts), bandCount)
	}

	gains := make([]float64, len(parts))

	for i, part := range parts {
		g, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad gain %q: %w", part, err)
		}

		gains[i] = g
	}

	return gains, nil
}

func printBands(chain *eq.Chain) {
	heading.Println("equalizer")

	st, err := chain.State()
	if err != nil {
		return
	}

	for i, spec := range chain.Bands() {
		fmt.Printf("  %-9s %7.0f Hz  %+5.1f dB\n",
			spec.Kind, spec.FrequencyHz, st.GainsDB[i])
	}

	if !st.Enabled {
		warn.Println("  bypassed")
	}
}

func printLevels(m *tap.Meter) {
	heading.Println("output levels")
	level.Printf("  peak %6.1f dBFS   rms %6.1f dBFS\n", m.PeakDB(), m.RMSDB())
}
