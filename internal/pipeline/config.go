package pipeline

import (
	"fmt"

	"docprep/internal/stages"
)

// DeskewMode controls whether rotational correction runs. An incorrect
// angle estimate degrades a correctly oriented page more than it helps a
// mildly skewed one, so Auto behaves like ForceOff.
type DeskewMode int

const (
	DeskewAuto DeskewMode = iota
	DeskewForceOn
	DeskewForceOff
)

func (m DeskewMode) String() string {
	switch m {
	case DeskewForceOn:
		return "on"
	case DeskewForceOff:
		return "off"
	default:
		return "auto"
	}
}

// ParseDeskewMode maps a configuration string onto a DeskewMode.
func ParseDeskewMode(s string) (DeskewMode, error) {
	switch s {
	case "auto", "":
		return DeskewAuto, nil
	case "on", "force-on":
		return DeskewForceOn, nil
	case "off", "force-off":
		return DeskewForceOff, nil
	default:
		return DeskewAuto, fmt.Errorf("unknown deskew mode %q", s)
	}
}

// DefaultTargetDPI is the resolution narrow images are resampled toward.
const DefaultTargetDPI = 300

// Config is passed by value into each invocation; the pipeline never holds
// configuration state across calls.
type Config struct {
	Deskew       DeskewMode
	TargetDPI    int
	DebugCapture bool
	TrimBorder   bool
	BorderMargin int
}

// DefaultConfig returns the conservative defaults: no deskew, 300 DPI
// target, no debug capture, no border trim.
func DefaultConfig() Config {
	return Config{
		Deskew:       DeskewAuto,
		TargetDPI:    DefaultTargetDPI,
		BorderMargin: stages.DefaultBorderMargin,
	}
}

func (c Config) normalized() Config {
	if c.TargetDPI <= 0 {
		c.TargetDPI = DefaultTargetDPI
	}
	if c.BorderMargin <= 0 {
		c.BorderMargin = stages.DefaultBorderMargin
	}
	return c
}
