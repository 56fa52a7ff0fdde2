// Package gnuplot drives a gnuplot process over its standard input.
// A Session owns the child (or remote) plotter, streams newline
// terminated directives to it, and materialises in-memory series as
// scratch data files the plotter reads back.
//
// A Session is a single-writer resource.  It is not safe for
// concurrent use: every command is a write-then-state-update pair.
package gnuplot

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"gplot/config"
	gperr "gplot/internal/errors"
	"gplot/internal/metrics"
	"gplot/internal/platform"
	"gplot/internal/transport"
	"gplot/util"
)

// Session is one live connection to a plotter process.
type Session struct {
	cfg    *config.Config
	logger *util.Logger
	stats  *metrics.Collector

	tr   transport.Transport
	pipe io.WriteCloser

	valid  bool
	closed bool

	style    string // current plot style, default "points"
	smooth   string // current smoothing mode, empty when off
	terminal string // screen terminal issued by ShowOnScreen

	nplots int  // plots issued since the last reset
	twoDim bool // dimensionality of the most recent plot

	tmpFiles []string // data files this session owns, append-only
}

// New spawns a plotter according to cfg and returns a valid session.
// A nil cfg means platform defaults; a nil logger is quiet.
func New(ctx context.Context, cfg *config.Config, logger *util.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = util.NewLogger(0)
	}
	return NewWithTransport(ctx, cfg, logger, transport.Build(cfg, logger))
}

// NewWithTransport builds a session on an externally constructed
// transport.  Tests inject recording transports through here.
func NewWithTransport(ctx context.Context, cfg *config.Config, logger *util.Logger, tr transport.Transport) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = util.NewLogger(0)
	}

	pipe, err := tr.Start(ctx)
	if err != nil {
		// A failed spawn can leave the transport half-built (an SSH
		// transport may already hold a live connection).
		if cerr := tr.Close(); cerr != nil {
			logger.Warn("closing plotter: %v", cerr)
		}
		return nil, err
	}

	s := &Session{
		cfg:      cfg,
		logger:   logger,
		stats:    metrics.New(),
		tr:       tr,
		pipe:     pipe,
		valid:    true,
		style:    cfg.Style,
		terminal: cfg.Terminal,
	}
	if s.style == "" {
		s.style = config.DefaultStyle
	}
	if s.terminal == "" {
		s.terminal = config.DefaultTerminal()
	}

	if err := s.ShowOnScreen(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// SetPlotterDir validates dir as the plotter location and records it
// in cfg.  On a miss the configured directory is blanked so the next
// construction falls back to the PATH scan.
func SetPlotterDir(cfg *config.Config, dir string) bool {
	ok, err := platform.FileExists(filepath.Join(dir, cfg.PlotterName), platform.ModeExists)
	if err != nil || !ok {
		cfg.PlotterDir = ""
		return false
	}
	cfg.PlotterDir = dir
	return true
}

// Cmd writes one directive down the pipe.  It is pure transport: the
// text is sent verbatim with a trailing newline and plot-mode state is
// never touched.  Emitters that issue plot verbs record their own
// state through plotCmd.
func (s *Session) Cmd(text string) error {
	if !s.valid {
		return gperr.ErrClosed
	}

	n, err := s.pipe.Write(append([]byte(text), '\n'))
	if err != nil {
		s.stats.RecordError(err.Error())
		return fmt.Errorf("writing command: %w", err)
	}

	s.stats.CommandSent(n)
	s.logger.Debug("gnuplot> %s", text)
	return nil
}

// Cmdf formats a directive and submits it via Cmd.
func (s *Session) Cmdf(format string, args ...interface{}) error {
	return s.Cmd(fmt.Sprintf(format, args...))
}

// plotCmd submits a plot-emitting directive and, on success, records
// the new dimensionality.
func (s *Session) plotCmd(text string, twoDim bool) error {
	if err := s.Cmd(text); err != nil {
		return err
	}
	s.nplots++
	s.twoDim = twoDim
	s.stats.PlotIssued()
	return nil
}

// plotVerb picks the verb for the next plot of the given
// dimensionality: replot when it extends the current picture, a fresh
// plot or splot otherwise.
func (s *Session) plotVerb(twoDim bool) string {
	if s.nplots > 0 && s.twoDim == twoDim {
		return "replot"
	}
	if twoDim {
		return "plot"
	}
	return "splot"
}

// Replot redraws the current picture.  A no-op before the first plot.
func (s *Session) Replot() error {
	if s.nplots == 0 {
		return nil
	}
	return s.Cmd("replot")
}

// ResetPlot forgets the issued plots so the next emitter starts a
// fresh picture.  Owned data files stay on disk.
func (s *Session) ResetPlot() {
	s.nplots = 0
}

// ResetAll returns the session to its initial state: plot count
// zeroed, plotter state reset, style back to points, smoothing off,
// screen terminal re-issued.
func (s *Session) ResetAll() error {
	s.nplots = 0
	if err := s.Cmd("reset"); err != nil {
		return err
	}
	if err := s.Cmd("clear"); err != nil {
		return err
	}
	s.style = config.DefaultStyle
	s.smooth = ""
	return s.ShowOnScreen()
}

// RemoveTempFiles unlinks every data file this session owns.  It
// stops at the first failure, leaving later files in place.
func (s *Session) RemoveTempFiles() error {
	store := s.tr.Files()
	for i, name := range s.tmpFiles {
		if err := store.Remove(name); err != nil {
			s.tmpFiles = s.tmpFiles[i:]
			s.stats.TempFilesRemoved(i)
			return err
		}
	}
	s.stats.TempFilesRemoved(len(s.tmpFiles))
	s.tmpFiles = nil
	return nil
}

// Close tears the session down: the pipe is closed (which ends the
// plotter), and owned data files are removed unless the configuration
// retains them.  Teardown failures are logged, not returned; Close is
// idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.valid = false

	// Files go first: a remote store needs the connection that
	// closing the transport tears down.
	if !s.cfg.RetainTempFiles {
		if err := s.RemoveTempFiles(); err != nil {
			s.logger.Warn("removing temp files: %v", err)
		}
	}
	if err := s.tr.Close(); err != nil {
		s.logger.Warn("closing plotter: %v", err)
	}
	return nil
}

// ── accessors ────────────────────────────────────────────────────────

// Valid reports whether the session can still accept commands.
func (s *Session) Valid() bool { return s.valid }

// Plots returns the number of plots issued since the last reset.
func (s *Session) Plots() int { return s.nplots }

// TwoDim reports the dimensionality of the most recent plot.  Only
// meaningful while Plots() > 0.
func (s *Session) TwoDim() bool { return s.twoDim }

// Style returns the current plot style.
func (s *Session) Style() string { return s.style }

// Smooth returns the current smoothing mode, empty when off.
func (s *Session) Smooth() string { return s.smooth }

// TempFiles returns a copy of the paths of the data files this
// session owns.
func (s *Session) TempFiles() []string {
	out := make([]string, len(s.tmpFiles))
	copy(out, s.tmpFiles)
	return out
}

// Metrics returns the session's metrics collector.
func (s *Session) Metrics() *metrics.Collector { return s.stats }
