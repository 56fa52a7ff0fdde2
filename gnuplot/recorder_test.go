package gnuplot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"gplot/config"
	gperr "gplot/internal/errors"
	"gplot/internal/transport"
	"gplot/util"
)

// recorder is an in-memory transport.  The pipe captures every line
// written; the file store keeps data files in a map.  It stands in
// for a live gnuplot process in every test below.
type recorder struct {
	lines   []string
	partial bytes.Buffer

	files   map[string][]byte
	nextID  int
	removed []string

	createErr error // when set, Create fails with it
	closed    bool
}

func newRecorder() *recorder {
	return &recorder{files: make(map[string][]byte)}
}

func (r *recorder) Start(ctx context.Context) (io.WriteCloser, error) {
	return (*recorderPipe)(r), nil
}

func (r *recorder) Files() transport.FileStore { return r }

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

// lastLine returns the most recent complete line on the pipe.
func (r *recorder) lastLine() string {
	if len(r.lines) == 0 {
		return ""
	}
	return r.lines[len(r.lines)-1]
}

// ── pipe ─────────────────────────────────────────────────────────────

type recorderPipe recorder

func (p *recorderPipe) Write(b []byte) (int, error) {
	p.partial.Write(b)
	for {
		s := p.partial.String()
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			break
		}
		p.lines = append(p.lines, s[:i])
		p.partial.Reset()
		p.partial.WriteString(s[i+1:])
	}
	return len(b), nil
}

func (p *recorderPipe) Close() error { return nil }

// ── file store ───────────────────────────────────────────────────────

type memFile struct {
	name string
	buf  bytes.Buffer
	r    *recorder
}

func (f *memFile) Write(b []byte) (int, error) { return f.buf.Write(b) }

func (f *memFile) Close() error {
	f.r.files[f.name] = f.buf.Bytes()
	return nil
}

func (r *recorder) Create() (string, io.WriteCloser, error) {
	if r.createErr != nil {
		return "", nil, r.createErr
	}
	r.nextID++
	name := fmt.Sprintf("/tmp/gnuploti%06d", r.nextID)
	return name, &memFile{name: name, r: r}, nil
}

func (r *recorder) Remove(name string) error {
	if _, ok := r.files[name]; !ok {
		return gperr.WrapFile("remove", name, os.ErrNotExist)
	}
	delete(r.files, name)
	r.removed = append(r.removed, name)
	return nil
}

func (r *recorder) Available(name string) error {
	if _, ok := r.files[name]; !ok {
		return gperr.WrapFile("read", name, os.ErrNotExist)
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────

func newTestSession(t *testing.T) (*Session, *recorder) {
	t.Helper()
	return newTestSessionCfg(t, config.Default())
}

func newTestSessionCfg(t *testing.T, cfg *config.Config) (*Session, *recorder) {
	t.Helper()

	r := newRecorder()
	s, err := NewWithTransport(context.Background(), cfg, util.NewLogger(0), r)
	if err != nil {
		t.Fatalf("NewWithTransport: %v", err)
	}
	return s, r
}
