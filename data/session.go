// Package data implements the Data Connection Engine (DCE) from spec.md
// §4.8–§4.10: PORT/PASV data-connection lifecycle, the bidirectional
// ASCII-aware transfer loop, and the zero-copy sendfile dispatch, built
// atop the collab package's NetIO/Inet/Response/Timer/Auth seams so it
// can be driven and tested without a real control connection. Grounded in
// the teacher's fs/accounting (per-transfer byte counters and stall
// detection) and backend/ftp's connection-setup idiom.
package data

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gaojiangqi/proftpd/collab"
	"github.com/gaojiangqi/proftpd/internal/metrics"
)

// Direction is the data connection's transfer direction.
type Direction int

const (
	DirectionRead Direction = iota
	DirectionWrite
)

// Flags mirrors session.flags from spec.md §3: a small set of named
// booleans rather than a bitmask, since Go has no cheap equivalent of C's
// bitfield-in-an-int idiom worth fighting for here.
type Flags struct {
	ASCII         bool
	ASCIIOverride bool
	Passive       bool
	Xfer          bool
	Abort         bool
	PostAbort     bool
}

// transfer is the Transfer scratch struct from spec.md §3: per-transfer
// state reset at Init and reclaimed wholesale at Cleanup.
type transfer struct {
	filename   string
	direction  Direction
	startTime  time.Time
	totalBytes int64

	// buf is the ASCII translation arena. One leading byte of headroom is
	// reserved (bufStart), matching the source's buffer layout; the write
	// path's asciiWriteTranslate builds its output in a fresh slice and
	// does not use that byte. carry is the read path's held-back trailing
	// CR state.
	buf      []byte
	bufStart int
	carry    int
}

// stream is the process-local slot the abort-signal-equivalent goroutine
// reads: the one deliberate package-level global, exactly as spec.md §9
// calls out. It tracks the NetIO currently blocked in a Read/Write so
// Abort() can be called on it from outside the transfer goroutine.
type stream struct {
	io collab.NetIO
}

var currentStream atomic.Pointer[stream]

// Session replaces the C session globals: one struct threaded through
// every DCE call, holding the control/data collaborators, flags, cwd, and
// the current transfer's scratch state.
type Session struct {
	mu sync.Mutex

	Flags Flags
	CWD   string
	VWD   string

	Control collab.Response
	Inet    collab.Inet
	Timer   collab.Timer

	DataConn collab.NetIO

	TotalBytes int64

	xfer transfer

	abortSignal chan struct{}
	abortOnce   sync.Once

	// Metrics is optional; nil disables instrumentation.
	Metrics *metrics.Metrics
}

// NewSession constructs a Session bound to the given control-reply,
// connection-setup, and timer collaborators.
func NewSession(control collab.Response, inet collab.Inet, timer collab.Timer) *Session {
	return &Session{
		Control:     control,
		Inet:        inet,
		Timer:       timer,
		abortSignal: make(chan struct{}, 1),
	}
}

// Cleanup drops the transfer arena and any still-armed abort wiring,
// mirroring the source's "free the transfer pool" at the end of a
// command, relying on the garbage collector instead of an explicit pool
// free.
func (s *Session) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.xfer = transfer{}
	currentStream.Store(nil)
}

// Reset clears per-transfer flags so the Session can be reused for the
// next command on the same control connection without reallocating.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Flags.Xfer = false
	s.Flags.Abort = false
	s.Flags.PostAbort = false
	s.Flags.ASCIIOverride = false
}

// tunableBufferSize is the Go rendering of TUNABLE_BUFFER_SIZE. It is an
// unexported package var: nothing outside package data can set it, and
// internal/serverconf's BufferSize value is not applied to it.
var tunableBufferSize = 16 * 1024

// requestAbort is called by the OOB-signal-equivalent goroutine
// (cmd/proftpd-datad wires an os/signal.Notify channel to it). It flips
// Flags.Abort and, if a stream is currently transferring, forces its
// NetIO to unblock — the Go analogue of SIGURG interrupting a blocked
// read(2)/write(2). It must stay allocation-free and must never touch the
// router, exactly as spec.md §5 requires of the signal handler.
func (s *Session) requestAbort() {
	s.Flags.Abort = true
	if st := currentStream.Load(); st != nil {
		st.io.Abort()
	}
}

// RequestAbort is the exported entry point a SIGURG-equivalent signal
// goroutine calls; requestAbort itself stays unexported so ordinary
// command-handler code can't accidentally invoke it outside that one
// intended caller.
func (s *Session) RequestAbort() {
	s.requestAbort()
}
