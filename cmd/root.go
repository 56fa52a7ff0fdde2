// Package cmd wires up the CLI flags and dispatches to the gnuplot
// session.
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"gplot/config"
	"gplot/gnuplot"
	"gplot/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X gplot/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// options collects the per-invocation plot settings that are not part
// of the session configuration.
type options struct {
	title  string
	xlabel string
	ylabel string
	zlabel string

	xrange string
	yrange string
	zrange string

	logAxes []string
	grid    bool

	threeDim   bool
	equation   string
	equation3d string
	slope      string
	smooth     string

	terminal string
	output   string
	pause    float64
	stats    bool

	datafile string
}

// Execute parses args and runs one plotting session.
func Execute(ctx context.Context, args []string) error {
	cfg := config.Default()
	config.LoadFromEnv(cfg)

	var opt options
	fs := flag.NewFlagSet("gplot", flag.ContinueOnError)

	// ── plot ─────────────────────────────────────────────────────
	fs.StringVarP(&cfg.Style, "style", "s", cfg.Style, "Plot style (points, lines, …)")
	fs.StringVarP(&opt.title, "title", "t", "", "Plot title")
	fs.StringVar(&opt.xlabel, "xlabel", "", "Label for the x axis")
	fs.StringVar(&opt.ylabel, "ylabel", "", "Label for the y axis")
	fs.StringVar(&opt.zlabel, "zlabel", "", "Label for the z axis")
	fs.StringVar(&opt.xrange, "xrange", "", "x range as from:to")
	fs.StringVar(&opt.yrange, "yrange", "", "y range as from:to")
	fs.StringVar(&opt.zrange, "zrange", "", "z range as from:to")
	fs.StringArrayVar(&opt.logAxes, "logscale", nil, "Axis to draw logarithmically (repeatable)")
	fs.BoolVarP(&opt.grid, "grid", "g", false, "Draw a grid")
	fs.BoolVarP(&opt.threeDim, "3d", "3", false, "Treat three-column data as a surface")
	fs.StringVarP(&opt.equation, "equation", "e", "", "Plot an expression in x")
	fs.StringVar(&opt.equation3d, "equation3d", "", "Plot an expression in x and y")
	fs.StringVar(&opt.slope, "slope", "", "Plot the line a:b meaning a*x + b")
	fs.StringVar(&opt.smooth, "smooth", "", "Smoothing mode (unique, frequency, csplines, bezier)")

	// ── output ───────────────────────────────────────────────────
	fs.StringVarP(&opt.terminal, "terminal", "T", "", "Terminal for file output (default ps)")
	fs.StringVarP(&opt.output, "output", "o", "", "Write the figure to this file")
	fs.Float64Var(&opt.pause, "pause", 0, "Keep the plotter alive for this many seconds")
	fs.BoolVar(&opt.stats, "stats", false, "Print session metrics on exit")

	// ── plotter ──────────────────────────────────────────────────
	fs.StringVar(&cfg.PlotterDir, "gnuplot-dir", cfg.PlotterDir, "Directory containing the gnuplot executable")
	fs.StringVar(&cfg.PlotterName, "gnuplot-bin", cfg.PlotterName, "Gnuplot executable name")
	fs.StringVar(&cfg.TempDir, "tmp-dir", cfg.TempDir, "Scratch directory for data files")
	fs.IntVar(&cfg.MaxTempFiles, "max-tmp", cfg.MaxTempFiles, "Cap on outstanding data files")
	fs.BoolVar(&cfg.RetainTempFiles, "keep-tmp", cfg.RetainTempFiles, "Leave data files on disk at exit")

	// ── remote plotter ───────────────────────────────────────────
	fs.StringVarP(&cfg.SSHSpec, "ssh", "S", cfg.SSHSpec, "Run gnuplot on [user@]host[:port] over SSH")
	fs.StringVar(&cfg.SSHKeyPath, "ssh-key", cfg.SSHKeyPath, "SSH private key file")
	fs.BoolVar(&cfg.SSHPassword, "ssh-password", false, "Prompt for SSH password")
	fs.BoolVar(&cfg.UseSSHAgent, "ssh-agent", false, "Use SSH agent")
	fs.BoolVar(&cfg.StrictHostKey, "strict-hostkey", false, "Verify SSH host keys")
	fs.StringVar(&cfg.KnownHostsPath, "known-hosts", "", "Custom known_hosts path")
	fs.StringVar(&cfg.RemoteCommand, "remote-cmd", cfg.RemoteCommand, "Plotter command on the remote host")
	fs.StringVar(&cfg.RemoteTempDir, "remote-tmp-dir", cfg.RemoteTempDir, "Scratch directory on the remote host")

	// ── output verbosity ─────────────────────────────────────────
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}
	if showHelp || len(args) == 0 {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("gplot %s\n", version)
		return nil
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		opt.datafile = rest[0]
	default:
		return fmt.Errorf("at most one data file may be given")
	}

	if opt.datafile == "" && opt.equation == "" && opt.equation3d == "" && opt.slope == "" {
		return fmt.Errorf("nothing to plot (use --help for usage)")
	}

	// ── ssh spec ─────────────────────────────────────────────────
	if cfg.SSHSpec != "" {
		user, host, port, err := config.ParseSSHSpec(cfg.SSHSpec)
		if err != nil {
			return fmt.Errorf("ssh: %w", err)
		}
		cfg.SSHEnabled = true
		cfg.SSHUser = user
		cfg.SSHHost = host
		cfg.SSHPort = port
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := util.NewLogger(cfg.Verbose)
	return run(ctx, cfg, &opt, logger)
}

// run opens the session, applies the plot settings, and issues the
// requested plots.
func run(ctx context.Context, cfg *config.Config, opt *options, logger *util.Logger) error {
	s, err := gnuplot.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := applySettings(s, opt); err != nil {
		return err
	}
	if err := issuePlots(s, opt); err != nil {
		return err
	}

	if opt.pause > 0 {
		logger.Info("holding plot for %gs", opt.pause)
		select {
		case <-time.After(time.Duration(opt.pause * float64(time.Second))):
		case <-ctx.Done():
		}
	}
	if opt.stats {
		fmt.Println(s.Metrics().JSON())
	}
	return nil
}

// applySettings translates the CLI options into session commands.
func applySettings(s *gnuplot.Session, opt *options) error {
	if opt.output != "" {
		if err := s.SaveToFigure(opt.output, opt.terminal); err != nil {
			return err
		}
	}
	if opt.title != "" {
		if err := s.SetTitle(opt.title); err != nil {
			return err
		}
	}
	for _, l := range []struct {
		val string
		set func(string) error
	}{
		{opt.xlabel, s.SetXLabel},
		{opt.ylabel, s.SetYLabel},
		{opt.zlabel, s.SetZLabel},
	} {
		if l.val == "" {
			continue
		}
		if err := l.set(l.val); err != nil {
			return err
		}
	}
	for _, r := range []struct {
		spec string
		set  func(from, to float64) error
	}{
		{opt.xrange, s.SetXRange},
		{opt.yrange, s.SetYRange},
		{opt.zrange, s.SetZRange},
	} {
		if r.spec == "" {
			continue
		}
		from, to, err := config.ParseRange(r.spec)
		if err != nil {
			return err
		}
		if err := r.set(from, to); err != nil {
			return err
		}
	}
	for _, axis := range opt.logAxes {
		if err := s.SetLogscale(axis, 0); err != nil {
			return err
		}
	}
	if opt.grid {
		if err := s.SetGrid(); err != nil {
			return err
		}
	}
	if opt.smooth != "" {
		s.SetSmooth(opt.smooth)
	}
	return nil
}

// issuePlots emits the requested plots: expressions first, then the
// data file, so mixed invocations layer onto one picture.
func issuePlots(s *gnuplot.Session, opt *options) error {
	if opt.slope != "" {
		a, b, err := config.ParseRange(opt.slope)
		if err != nil {
			return fmt.Errorf("slope: %w", err)
		}
		if err := s.PlotSlope(a, b, opt.title); err != nil {
			return err
		}
	}
	if opt.equation != "" {
		if err := s.PlotEquation(opt.equation, opt.title); err != nil {
			return err
		}
	}
	if opt.equation3d != "" {
		if err := s.PlotEquation3D(opt.equation3d, opt.title); err != nil {
			return err
		}
	}
	if opt.datafile == "" {
		return nil
	}
	if opt.datafile == "-" {
		return plotStdin(s, opt)
	}
	return plotFile(s, opt)
}

// plotFile plots a file already on disk, choosing columns by the
// 3-D flag.
func plotFile(s *gnuplot.Session, opt *options) error {
	if opt.threeDim {
		return s.PlotFileXYZ(opt.datafile, 1, 2, 3, opt.title)
	}
	return s.PlotFileXY(opt.datafile, 1, 2, opt.title)
}

// plotStdin materialises whitespace- or comma-separated rows read
// from standard input.
func plotStdin(s *gnuplot.Session, opt *options) error {
	cols, err := readSeries(os.Stdin)
	if err != nil {
		return err
	}
	switch len(cols) {
	case 1:
		return s.PlotX(cols[0], opt.title)
	case 2:
		return s.PlotXY(cols[0], cols[1], opt.title)
	case 3:
		if opt.threeDim {
			return s.PlotXYZ(cols[0], cols[1], cols[2], opt.title)
		}
		return s.PlotXYErr(cols[0], cols[1], cols[2], opt.title)
	default:
		return fmt.Errorf("stdin rows must have 1-3 columns, got %d", len(cols))
	}
}

// readSeries parses numeric rows into columns.  Every row must have
// the same number of fields; commas count as separators.
func readSeries(r io.Reader) ([][]float64, error) {
	var cols [][]float64

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(strings.ReplaceAll(sc.Text(), ",", " "))
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if cols == nil {
			if len(fields) > 3 {
				return nil, fmt.Errorf("line %d: rows must have 1-3 columns, got %d", line, len(fields))
			}
			cols = make([][]float64, len(fields))
		}
		if len(fields) != len(cols) {
			return nil, fmt.Errorf("line %d: %d fields, want %d", line, len(fields), len(cols))
		}
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q is not a number", line, f)
			}
			cols[i] = append(cols[i], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if cols == nil {
		return nil, fmt.Errorf("no data rows on stdin")
	}
	return cols, nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `gplot – gnuplot session driver v%s

Streams commands and data to a local or remote gnuplot process.

Usage:
  gplot [options] <datafile>                  Plot a data file
  gplot [options] -                           Plot rows from stdin
  gplot -e <expr> [options]                   Plot an expression
  gplot -S user@host [options] -              Plot on a remote host

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  gplot -s lines -t "signal" data.dat         Lines plot with a title
  seq 1 100 | gplot -g -                      Quick indexed plot
  gplot -e "sin(x)/x" --xrange=-10:10         Function plot
  gplot -3 --equation3d "x*y" --pause 5       Surface, held 5 seconds
  gplot -o fig.ps -s lines data.dat           Save as postscript
`)
}
