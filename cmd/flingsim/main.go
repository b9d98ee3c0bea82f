// Command flingsim prints how a fling decays over time under the demo's
// exponential model, for tuning decay constants without driving the UI.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"flick/app"
	"flick/flickui/motion"
)

func main() {
	var (
		v0      = flag.Float64("v0", 720, "Initial velocity, deg/s.")
		rate    = flag.Float64("rate", 0, "Decay rate 1/s (0 = config value).")
		minV    = flag.Float64("min-v", 0, "Settle threshold, deg/s (0 = config value).")
		maxMS   = flag.Uint64("max-ms", 0, "Hard stop, ms (0 = config value).")
		dt      = flag.Uint64("dt", 16, "Simulation step, ms.")
		every   = flag.Uint64("every", 250, "Print a row every N simulated ms.")
		cfgPath = flag.String("config", "", "TOML config file for defaults.")
	)
	flag.Parse()

	if *dt == 0 {
		fatalf("dt must be positive")
	}

	cfg, err := app.LoadConfig(*cfgPath)
	if err != nil {
		fatalf("config: %v", err)
	}

	d := motion.Decay{
		Rate:        float32(cfg.Decay.Rate),
		MinVelocity: float32(cfg.Decay.MinVelocity),
		MaxMillis:   cfg.Decay.MaxMillis,
	}
	if *rate > 0 {
		d.Rate = float32(*rate)
	}
	if *minV > 0 {
		d.MinVelocity = float32(*minV)
	}
	if *maxMS > 0 {
		d.MaxMillis = uint32(*maxMS)
	}

	st := motion.NewRotationState(d)
	st.StartDecay(float32(*v0))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(w, "t ms\tv deg/s\tangle deg\t")
	_, _ = fmt.Fprintf(w, "%d\t%.1f\t%.1f\t\n", 0, st.Velocity(), st.Current())

	var t, next uint64
	next = *every
	for st.Decaying() {
		st.Advance(uint32(*dt))
		t += *dt
		if t >= next {
			_, _ = fmt.Fprintf(w, "%d\t%.1f\t%.1f\t\n", t, st.Velocity(), st.Current())
			next += *every
		}
	}
	_ = w.Flush()

	fmt.Printf("ideal total %.1f deg, settled at %.1f deg after %d ms (settle estimate %d ms)\n",
		d.Total(float32(*v0)), st.Current(), t, d.SettleMillis(float32(*v0)))
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
