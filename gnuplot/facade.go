package gnuplot

import (
	"context"

	"gplot/config"
	"gplot/util"
)

// Options configures the convenience constructors.  Zero values fall
// back to the classic defaults: points style, axes labelled x, y, z.
type Options struct {
	Title  string
	Style  string
	XLabel string
	YLabel string
	ZLabel string
}

func (o Options) style() string {
	if o.Style == "" {
		return config.DefaultStyle
	}
	return o.Style
}

func (o Options) labels() (x, y, z string) {
	x, y, z = o.XLabel, o.YLabel, o.ZLabel
	if x == "" {
		x = "x"
	}
	if y == "" {
		y = "y"
	}
	if z == "" {
		z = "z"
	}
	return x, y, z
}

// SessionWithX opens a session and immediately plots one series.  On
// any failure the half-built session is torn down.
func SessionWithX(ctx context.Context, cfg *config.Config, logger *util.Logger, x []float64, opts Options) (*Session, error) {
	s, err := New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := s.plotSetup(opts, false); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.PlotX(x, opts.Title); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// SessionWithXY opens a session and immediately plots y against x.
func SessionWithXY(ctx context.Context, cfg *config.Config, logger *util.Logger, x, y []float64, opts Options) (*Session, error) {
	s, err := New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := s.plotSetup(opts, false); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.PlotXY(x, y, opts.Title); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// SessionWithXYZ opens a session and immediately plots a 3-D point
// set.
func SessionWithXYZ(ctx context.Context, cfg *config.Config, logger *util.Logger, x, y, z []float64, opts Options) (*Session, error) {
	s, err := New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := s.plotSetup(opts, true); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.PlotXYZ(x, y, z, opts.Title); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// plotSetup applies style and axis labels for the convenience
// constructors.
func (s *Session) plotSetup(opts Options, threeDim bool) error {
	s.SetStyle(opts.style())

	xl, yl, zl := opts.labels()
	if err := s.SetXLabel(xl); err != nil {
		return err
	}
	if err := s.SetYLabel(yl); err != nil {
		return err
	}
	if threeDim {
		return s.SetZLabel(zl)
	}
	return nil
}
