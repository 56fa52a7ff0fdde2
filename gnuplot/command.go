package gnuplot

import (
	"runtime"
	"strconv"
	"strings"

	"gplot/internal/platform"
)

// fmtFloat renders v the way gnuplot expects numbers on its command
// line: shortest representation that round-trips.
func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ── titles and labels ────────────────────────────────────────────────

// SetTitle sets the plot title.  An empty string clears it.
func (s *Session) SetTitle(title string) error {
	return s.Cmdf("set title \"%s\"", title)
}

// SetXLabel labels the x axis.
func (s *Session) SetXLabel(label string) error {
	return s.Cmdf("set xlabel \"%s\"", label)
}

// SetYLabel labels the y axis.
func (s *Session) SetYLabel(label string) error {
	return s.Cmdf("set ylabel \"%s\"", label)
}

// SetZLabel labels the z axis.
func (s *Session) SetZLabel(label string) error {
	return s.Cmdf("set zlabel \"%s\"", label)
}

// ── ranges ───────────────────────────────────────────────────────────

func (s *Session) setRange(axis string, from, to float64) error {
	return s.Cmdf("set %srange[%s:%s]", axis, fmtFloat(from), fmtFloat(to))
}

// SetXRange fixes the x axis to [from, to].
func (s *Session) SetXRange(from, to float64) error { return s.setRange("x", from, to) }

// SetYRange fixes the y axis to [from, to].
func (s *Session) SetYRange(from, to float64) error { return s.setRange("y", from, to) }

// SetZRange fixes the z axis to [from, to].
func (s *Session) SetZRange(from, to float64) error { return s.setRange("z", from, to) }

// SetCBRange fixes the colorbox range to [from, to].
func (s *Session) SetCBRange(from, to float64) error { return s.setRange("cb", from, to) }

// SetAutoscale restores the axis range and re-enables autoscaling.
func (s *Session) SetAutoscale(axis string) error {
	if err := s.Cmdf("set %srange restore", axis); err != nil {
		return err
	}
	return s.Cmdf("set autoscale %s", axis)
}

// ── log scales ───────────────────────────────────────────────────────

// SetLogscale switches the axis to a logarithmic scale.  A base of 0
// means the usual base 10.
func (s *Session) SetLogscale(axis string, base float64) error {
	if base == 0 {
		base = 10
	}
	return s.Cmdf("set logscale %s %s", axis, fmtFloat(base))
}

// UnsetLogscale returns the axis to a linear scale.
func (s *Session) UnsetLogscale(axis string) error {
	return s.Cmdf("unset logscale %s", axis)
}

// ── toggles ──────────────────────────────────────────────────────────

// SetGrid draws a grid.
func (s *Session) SetGrid() error { return s.Cmd("set grid") }

// UnsetGrid removes the grid.
func (s *Session) UnsetGrid() error { return s.Cmd("unset grid") }

// SetMultiplot enables several plots on one page.
func (s *Session) SetMultiplot() error { return s.Cmd("set multiplot") }

// UnsetMultiplot disables multiplot mode.
func (s *Session) UnsetMultiplot() error { return s.Cmd("unset multiplot") }

// SetHidden3D enables hidden-line removal for surfaces.
func (s *Session) SetHidden3D() error { return s.Cmd("set hidden3d") }

// UnsetHidden3D disables hidden-line removal.
func (s *Session) UnsetHidden3D() error { return s.Cmd("unset hidden3d") }

// SetSurface draws surfaces in 3-D plots.
func (s *Session) SetSurface() error { return s.Cmd("set surface") }

// UnsetSurface suppresses surfaces in 3-D plots.
func (s *Session) UnsetSurface() error { return s.Cmd("unset surface") }

// SetLegend positions the key; an empty position means gnuplot's
// default placement.
func (s *Session) SetLegend(position string) error {
	if position == "" {
		position = "default"
	}
	return s.Cmdf("set key %s", position)
}

// UnsetLegend removes the key.
func (s *Session) UnsetLegend() error { return s.Cmd("unset key") }

// ── sampling and appearance ──────────────────────────────────────────

// SetPointSize scales plotted points.
func (s *Session) SetPointSize(size float64) error {
	return s.Cmdf("set pointsize %s", fmtFloat(size))
}

// SetSamples sets the sampling rate for function plots.
func (s *Session) SetSamples(n int) error {
	return s.Cmdf("set samples %d", n)
}

// SetIsoSamples sets the isoline density for surface plots.
func (s *Session) SetIsoSamples(n int) error {
	return s.Cmdf("set isosamples %d", n)
}

// SetContour draws contour lines at the given position (base, surface
// or both).  Anything else is coerced to base.
func (s *Session) SetContour(position string) error {
	switch {
	case strings.Contains(position, "base"),
		strings.Contains(position, "surface"),
		strings.Contains(position, "both"):
		return s.Cmdf("set contour %s", position)
	default:
		return s.Cmd("set contour base")
	}
}

// ── style and smoothing (in-session state, nothing emitted) ──────────

// SetStyle records the style used by subsequent plot emitters.  Empty
// or unchanged input is ignored.
func (s *Session) SetStyle(style string) {
	if style != "" && style != s.style {
		s.style = style
	}
}

// smoothTokens are the modes gnuplot's smooth option understands.
var smoothTokens = []string{"unique", "frequency", "csplines", "bezier"}

// SetSmooth records the smoothing mode used by subsequent 2-D plot
// emitters.  Input that names none of the known modes switches
// smoothing off.
func (s *Session) SetSmooth(mode string) {
	for _, tok := range smoothTokens {
		if strings.Contains(mode, tok) {
			s.smooth = mode
			return
		}
	}
	s.smooth = ""
}

// UnsetSmooth switches smoothing off.
func (s *Session) UnsetSmooth() {
	s.smooth = ""
}

// ── terminals and output ─────────────────────────────────────────────

// SetTerminalStd records the screen terminal used by ShowOnScreen.
// Selecting an x11 terminal without a reachable display fails.
func (s *Session) SetTerminalStd(terminal string) error {
	if runtime.GOOS != "windows" && strings.Contains(terminal, "x11") {
		if err := platform.CheckDisplay(); err != nil {
			return err
		}
	}
	s.terminal = terminal
	return nil
}

// ShowOnScreen routes output back to the screen terminal.
func (s *Session) ShowOnScreen() error {
	if err := s.Cmd("set output"); err != nil {
		return err
	}
	return s.Cmdf("set terminal %s", s.terminal)
}

// SaveToFigure routes output into a file.  An empty terminal means
// postscript.
func (s *Session) SaveToFigure(filename, terminal string) error {
	if terminal == "" {
		terminal = "ps"
	}
	if err := s.Cmdf("set terminal %s", terminal); err != nil {
		return err
	}
	return s.Cmdf("set output \"%s\"", filename)
}

// Terminal returns the screen terminal ShowOnScreen will issue.
func (s *Session) Terminal() string { return s.terminal }
