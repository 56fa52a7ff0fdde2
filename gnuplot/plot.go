package gnuplot

import (
	"fmt"
	"strings"
)

// ── file-plot emitters ───────────────────────────────────────────────
//
// All of these verify that the plotter can read the referenced file
// before emitting the command, and record the plot-mode transition on
// success.

// PlotFileX plots one column of a data file against its row index.
func (s *Session) PlotFileX(filename string, column int, title string) error {
	if err := s.tr.Files().Available(filename); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s \"%s\" using %d", s.plotVerb(true), filename, column)
	appendTitle(&b, title)
	s.appendStyle(&b)
	return s.plotCmd(b.String(), true)
}

// PlotFileXY plots column coly against column colx of a data file.
func (s *Session) PlotFileXY(filename string, colx, coly int, title string) error {
	if err := s.tr.Files().Available(filename); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s \"%s\" using %d:%d", s.plotVerb(true), filename, colx, coly)
	appendTitle(&b, title)
	s.appendStyle(&b)
	return s.plotCmd(b.String(), true)
}

// PlotFileXYErr plots x/y points with error bars taken from a third
// column.  The errorbars style always wins over style and smoothing.
func (s *Session) PlotFileXYErr(filename string, colx, coly, coldy int, title string) error {
	if err := s.tr.Files().Available(filename); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s \"%s\" using %d:%d:%d with errorbars",
		s.plotVerb(true), filename, colx, coly, coldy)
	appendTitle(&b, title)
	return s.plotCmd(b.String(), true)
}

// PlotFileXYZ plots three columns of a data file as a 3-D surface.
func (s *Session) PlotFileXYZ(filename string, colx, coly, colz int, title string) error {
	if err := s.tr.Files().Available(filename); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s \"%s\" using %d:%d:%d", s.plotVerb(false), filename, colx, coly, colz)
	appendTitle(&b, title)
	fmt.Fprintf(&b, " with %s", s.style)
	return s.plotCmd(b.String(), false)
}

// ── function emitters ────────────────────────────────────────────────

// PlotSlope plots the line a*x + b.  An empty title becomes the
// line's own equation.
func (s *Session) PlotSlope(a, b float64, title string) error {
	if title == "" {
		title = fmt.Sprintf("f(x) = %s * x + %s", fmtFloat(a), fmtFloat(b))
	}
	cmd := fmt.Sprintf("%s %s * x + %s title \"%s\" with %s",
		s.plotVerb(true), fmtFloat(a), fmtFloat(b), title, s.style)
	return s.plotCmd(cmd, true)
}

// PlotEquation plots a 2-D expression in x, forwarded to gnuplot
// verbatim.
func (s *Session) PlotEquation(equation, title string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", s.plotVerb(true), equation)
	appendTitle(&b, title)
	fmt.Fprintf(&b, " with %s", s.style)
	return s.plotCmd(b.String(), true)
}

// PlotEquation3D plots an expression in x and y as a surface.  An
// empty title becomes the expression itself.
func (s *Session) PlotEquation3D(equation, title string) error {
	if title == "" {
		title = fmt.Sprintf("f(x,y) = %s", equation)
	}
	cmd := fmt.Sprintf("%s %s title \"%s\" with %s",
		s.plotVerb(false), equation, title, s.style)
	return s.plotCmd(cmd, false)
}

// ── shared fragments ─────────────────────────────────────────────────

// appendTitle writes the title clause: quoted when present, notitle
// otherwise.
func appendTitle(b *strings.Builder, title string) {
	if title == "" {
		b.WriteString(" notitle")
	} else {
		fmt.Fprintf(b, " title \"%s\"", title)
	}
}

// appendStyle writes the rendering clause for 2-D data plots: the
// smoothing mode when one is set, the plain style otherwise.
func (s *Session) appendStyle(b *strings.Builder) {
	if s.smooth != "" {
		fmt.Fprintf(b, " smooth %s", s.smooth)
	} else {
		fmt.Fprintf(b, " with %s", s.style)
	}
}
