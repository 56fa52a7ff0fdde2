package gnuplot

import (
	"bufio"
	"fmt"
	"strconv"

	gperr "gplot/internal/errors"
	"gplot/util"
)

// ── data materialiser ────────────────────────────────────────────────
//
// In-memory series become whitespace-separated numeric columns in a
// freshly allocated scratch file.  The file is flushed and closed
// before the plot command that references it is written, so the
// plotter always reads complete data.

// writeDataFile validates the series, allocates a scratch file, and
// streams the columns row by row.  The returned name is already
// recorded on the session's owned-file list.
func (s *Session) writeDataFile(cols ...[]float64) (string, error) {
	n := len(cols[0])
	if n == 0 {
		return "", gperr.ErrEmptyData
	}
	for _, col := range cols[1:] {
		if len(col) != n {
			return "", fmt.Errorf("%w: %d vs %d", gperr.ErrLengthMismatch, n, len(col))
		}
	}

	name, w, err := s.tr.Files().Create()
	if err != nil {
		return "", err
	}
	s.tmpFiles = append(s.tmpFiles, name)
	s.stats.TempFileCreated()

	bw := bufio.NewWriter(w)
	buf := util.GetBuf()
	defer util.PutBuf(buf)

	var written int64
	for i := 0; i < n; i++ {
		row := (*buf)[:0]
		for j, col := range cols {
			if j > 0 {
				row = append(row, ' ')
			}
			row = strconv.AppendFloat(row, col[i], 'g', -1, 64)
		}
		row = append(row, '\n')
		*buf = row
		if _, err := bw.Write(row); err != nil {
			w.Close()
			return "", gperr.WrapFile("write", name, err)
		}
		written += int64(len(row))
	}

	if err := bw.Flush(); err != nil {
		w.Close()
		return "", gperr.WrapFile("write", name, err)
	}
	if err := w.Close(); err != nil {
		return "", gperr.WrapFile("write", name, err)
	}

	s.stats.DataWritten(written)
	s.logger.Verbose("materialised %d rows into %s", n, name)
	return name, nil
}

// PlotX plots one series against its index.
func (s *Session) PlotX(x []float64, title string) error {
	name, err := s.writeDataFile(x)
	if err != nil {
		return err
	}
	return s.PlotFileX(name, 1, title)
}

// PlotXY plots y against x.
func (s *Session) PlotXY(x, y []float64, title string) error {
	name, err := s.writeDataFile(x, y)
	if err != nil {
		return err
	}
	return s.PlotFileXY(name, 1, 2, title)
}

// PlotXYErr plots y against x with error bars dy.
func (s *Session) PlotXYErr(x, y, dy []float64, title string) error {
	name, err := s.writeDataFile(x, y, dy)
	if err != nil {
		return err
	}
	return s.PlotFileXYErr(name, 1, 2, 3, title)
}

// PlotXYZ plots a 3-D point set.
func (s *Session) PlotXYZ(x, y, z []float64, title string) error {
	name, err := s.writeDataFile(x, y, z)
	if err != nil {
		return err
	}
	return s.PlotFileXYZ(name, 1, 2, 3, title)
}

// PlotImage renders a width×height byte buffer, row-major, as an
// image plot.  Each row of the data file is "column row intensity".
func (s *Session) PlotImage(img []byte, width, height int, title string) error {
	if width <= 0 || height <= 0 || len(img) != width*height {
		return fmt.Errorf("image buffer is %d bytes, want %d×%d = %d",
			len(img), width, height, width*height)
	}

	name, w, err := s.tr.Files().Create()
	if err != nil {
		return err
	}
	s.tmpFiles = append(s.tmpFiles, name)
	s.stats.TempFileCreated()

	bw := bufio.NewWriter(w)
	buf := util.GetBuf()
	defer util.PutBuf(buf)

	var written int64
	for i, v := range img {
		row := (*buf)[:0]
		row = strconv.AppendInt(row, int64(i%width), 10)
		row = append(row, ' ')
		row = strconv.AppendInt(row, int64(i/width), 10)
		row = append(row, ' ')
		row = strconv.AppendFloat(row, float64(v), 'g', -1, 64)
		row = append(row, '\n')
		*buf = row
		if _, err := bw.Write(row); err != nil {
			w.Close()
			return gperr.WrapFile("write", name, err)
		}
		written += int64(len(row))
	}

	if err := bw.Flush(); err != nil {
		w.Close()
		return gperr.WrapFile("write", name, err)
	}
	if err := w.Close(); err != nil {
		return gperr.WrapFile("write", name, err)
	}
	s.stats.DataWritten(written)

	if title == "" {
		return s.plotCmd(fmt.Sprintf("%s \"%s\" with image", s.plotVerb(true), name), true)
	}
	return s.plotCmd(fmt.Sprintf("%s \"%s\" title \"%s\" with image",
		s.plotVerb(true), name, title), true)
}
