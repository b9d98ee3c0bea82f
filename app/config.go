package app

import (
	"github.com/BurntSushi/toml"

	"flick/flickui/motion"
	"flick/flickui/proto"
)

// Config tunes the demo. All motion constants live here so the panels can
// be retuned without recompiling.
type Config struct {
	// InitialPanel is the panel shown at boot: spin, pinch, tilt or console.
	InitialPanel string `toml:"initial_panel"`

	Decay   DecayConfig   `toml:"decay"`
	Spring  SpringConfig  `toml:"spring"`
	Gesture GestureConfig `toml:"gesture"`
}

// DecayConfig is the fling model for the spin panel.
type DecayConfig struct {
	Rate        float64 `toml:"rate"`         // 1/s
	MinVelocity float64 `toml:"min_velocity"` // deg/s
	MaxMillis   uint32  `toml:"max_millis"`
}

// SpringConfig is the tilt panel's spring.
type SpringConfig struct {
	Frequency  float64 `toml:"frequency"`
	Damping    float64 `toml:"damping"`
	MaxTiltDeg float64 `toml:"max_tilt_deg"`
}

// GestureConfig is the shared tap budget.
type GestureConfig struct {
	TapMaxMillis uint32  `toml:"tap_max_millis"`
	TapSlopPx    float64 `toml:"tap_slop_px"`
}

func DefaultConfig() Config {
	d := motion.DefaultDecay()
	return Config{
		InitialPanel: "spin",
		Decay: DecayConfig{
			Rate:        float64(d.Rate),
			MinVelocity: float64(d.MinVelocity),
			MaxMillis:   d.MaxMillis,
		},
		Spring: SpringConfig{
			Frequency:  6,
			Damping:    0.5,
			MaxTiltDeg: 22,
		},
		Gesture: GestureConfig{
			TapMaxMillis: 250,
			TapSlopPx:    12,
		},
	}
}

// LoadConfig reads a TOML file over the defaults. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) decay() motion.Decay {
	return motion.Decay{
		Rate:        float32(c.Decay.Rate),
		MinVelocity: float32(c.Decay.MinVelocity),
		MaxMillis:   c.Decay.MaxMillis,
	}
}

func (c Config) initialPanel() proto.PanelID {
	switch c.InitialPanel {
	case "pinch":
		return proto.PanelPinch
	case "tilt":
		return proto.PanelTilt
	case "console":
		return proto.PanelConsole
	default:
		return proto.PanelSpin
	}
}
