package gnuplot

import "testing"

func TestOptions_Defaults(t *testing.T) {
	var opts Options
	if opts.style() != "points" {
		t.Errorf("default style = %q, want points", opts.style())
	}
	x, y, z := opts.labels()
	if x != "x" || y != "y" || z != "z" {
		t.Errorf("default labels = %q/%q/%q", x, y, z)
	}

	opts = Options{Style: "lines", XLabel: "t", YLabel: "v", ZLabel: "w"}
	if opts.style() != "lines" {
		t.Errorf("style = %q", opts.style())
	}
	x, y, z = opts.labels()
	if x != "t" || y != "v" || z != "w" {
		t.Errorf("labels = %q/%q/%q", x, y, z)
	}
}

func TestPlotSetup(t *testing.T) {
	s, r := newTestSession(t)

	opts := Options{Style: "lines", XLabel: "time", YLabel: "volts"}
	if err := s.plotSetup(opts, false); err != nil {
		t.Fatalf("plotSetup: %v", err)
	}

	if s.Style() != "lines" {
		t.Errorf("style = %q", s.Style())
	}
	n := len(r.lines)
	if r.lines[n-2] != `set xlabel "time"` || r.lines[n-1] != `set ylabel "volts"` {
		t.Errorf("plotSetup wrote %q", r.lines[n-2:])
	}
}

func TestPlotSetup_ThreeDim(t *testing.T) {
	s, r := newTestSession(t)

	if err := s.plotSetup(Options{}, true); err != nil {
		t.Fatalf("plotSetup: %v", err)
	}
	if got := r.lastLine(); got != `set zlabel "z"` {
		t.Errorf("last line = %q, want zlabel", got)
	}
}
