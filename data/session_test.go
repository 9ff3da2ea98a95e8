package data

import (
	"context"
	"io"
	"time"

	"github.com/gaojiangqi/proftpd/collab"
)

// fakeNetIO is an in-memory collab.NetIO double: Read drains a fixed byte
// slice in whatever chunk sizes the caller asks for (so ASCII translation
// can be exercised across multiple short reads), Write appends to a
// buffer the test can inspect afterward.
type fakeNetIO struct {
	readData []byte
	readPos  int
	written  []byte
	aborted  bool
}

func (f *fakeNetIO) Read(ctx context.Context, p []byte) (int, error) {
	if f.readPos >= len(f.readData) {
		return 0, io.EOF
	}
	n := copy(p, f.readData[f.readPos:])
	f.readPos += n
	return n, nil
}

func (f *fakeNetIO) Write(ctx context.Context, p []byte) (int, error) {
	f.written = append(f.written, p...)
	return len(p), nil
}

func (f *fakeNetIO) PostOpen() error                  { return nil }
func (f *fakeNetIO) Abort()                           { f.aborted = true }
func (f *fakeNetIO) SetPollInterval(d time.Duration)  {}
func (f *fakeNetIO) LingerClose(d time.Duration) error { return nil }

// fakeResponse records every reply sent, so tests can assert on the FTP
// reply code a Session emitted without a real control connection.
type fakeResponse struct {
	codes []int
	texts []string
}

func (r *fakeResponse) Send(code int, format string, args ...any) error {
	r.codes = append(r.codes, code)
	r.texts = append(r.texts, format)
	return nil
}
func (r *fakeResponse) Add(code int, format string, args ...any) error    { return r.Send(code, format, args...) }
func (r *fakeResponse) AddErr(code int, format string, args ...any) error { return r.Send(code, format, args...) }

// fakeTimer is a no-op collab.Timer; Xfer/onIO call Reset on every
// successful chunk, which this double just counts.
type fakeTimer struct {
	resets int
}

func (t *fakeTimer) Add(kind collab.TimerKind, d time.Duration, fn func()) {}
func (t *fakeTimer) Reset(kind collab.TimerKind)                          { t.resets++ }
func (t *fakeTimer) Remove(kind collab.TimerKind)                         {}

func newTestSession(conn collab.NetIO) (*Session, *fakeResponse, *fakeTimer) {
	resp := &fakeResponse{}
	timer := &fakeTimer{}
	s := NewSession(resp, nil, timer)
	s.DataConn = conn
	return s, resp, timer
}
