package data

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/gaojiangqi/proftpd/collab"
)

// Init lazily creates the transfer arena and records the filename and
// direction for the upcoming Open, mirroring the source's pr_data_init:
// the translation buffer is sized at tunableBufferSize+1 bytes with the
// start pointer advanced by one, reserving headroom for a write-path
// leading CR.
func (s *Session) Init(filename string, dir Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.xfer = transfer{
		filename:  filename,
		direction: dir,
		buf:       make([]byte, tunableBufferSize+1),
		bufStart:  1,
	}
}

// OpenOptions bundles the connection-setup parameters Open needs, a Go
// rendering of the scattered globals (local_port, data_addr, rcvbuf
// tunables, the PASV listener) the C source reads directly off the
// session.
type OpenOptions struct {
	Listener       net.Listener // the accepted-from listener for passive mode
	LocalAddr      string
	LocalPort      int
	RemoteAddr     string
	RemotePort     int
	BufferSize     int
	MSS            int
	StalledTimeout time.Duration
	StoreUnique    bool
}

// timeNow is a var so tests can stub it; spec.md explicitly forbids a
// genuine wall-clock read inside resolver/router code, but the DCE's
// transfer-start timestamp is the one place the source itself calls
// time(2), so it's fine here — just indirected for testability.
var timeNow = time.Now

// Open negotiates the data connection (PASV accept or active connect),
// arms the stalled timer, applies direction-appropriate socket options,
// sends the 150 reply (or the STOU 150 FILE: form when opts.StoreUnique),
// and flips Flags.Xfer on.
func (s *Session) Open(ctx context.Context, reason string, dir Direction, size int64, opts OpenOptions) error {
	conn, err := s.establish(ctx, opts)
	if err != nil {
		s.Control.Send(425, "Unable to build data connection: %v", err)
		return err
	}

	rw, _, err := s.Inet.OpenRW(conn)
	if err != nil {
		s.Control.Send(425, "Unable to build data connection: %v", err)
		return err
	}
	s.DataConn = rw
	currentStream.Store(&stream{io: rw})

	if opts.StalledTimeout > 0 {
		s.Timer.Add(collab.TimerStalled, opts.StalledTimeout, s.requestAbort)
	}

	rcvbuf, sndbuf := 0, 0
	if dir == DirectionRead {
		rcvbuf = opts.BufferSize
	} else {
		sndbuf = opts.BufferSize
	}
	_ = s.Inet.SetSocketOpts(conn, rcvbuf, sndbuf)
	_ = s.Inet.SetProtoOpts(conn, opts.MSS)

	mode := "ASCII"
	if !s.Flags.ASCII {
		mode = "BINARY"
	}

	switch {
	case opts.StoreUnique:
		s.Control.Send(150, "FILE: %s", s.xfer.filename)
	case size > 0:
		s.Control.Send(150, "Opening %s mode data connection for %s (%d bytes)", mode, reason, size)
	default:
		s.Control.Send(150, "Opening %s mode data connection for %s", mode, reason)
	}

	s.xfer.startTime = timeNow()
	s.Flags.Xfer = true
	if s.Metrics != nil {
		s.Metrics.TransfersOpened.Inc()
		s.Metrics.ActiveTransfers.Inc()
	}
	return nil
}

func (s *Session) establish(ctx context.Context, opts OpenOptions) (net.Conn, error) {
	if s.Flags.Passive {
		return s.Inet.Accept(ctx, opts.Listener)
	}
	conn, err := s.Inet.CreateConnection(ctx, opts.LocalAddr, opts.LocalPort-1)
	if err != nil {
		return nil, err
	}
	if err := s.Inet.Connect(ctx, conn, opts.RemoteAddr, opts.RemotePort); err != nil {
		return nil, err
	}
	return conn, nil
}

// Close lingers the data connection closed, cancels timers, clears the
// transfer flags, and (unless quiet) emits 226.
func (s *Session) Close(quiet bool) {
	s.teardown()
	if s.Metrics != nil {
		s.Metrics.TransfersClosed.Inc()
		s.Metrics.ActiveTransfers.Dec()
	}
	if !quiet {
		s.Control.Send(226, "Transfer complete.")
	}
}

// Abort performs the same teardown as Close but classifies err into the
// 4xx/5xx reply from spec.md §4.8's table and sets Flags.PostAbort.
func (s *Session) Abort(err error, quiet bool) {
	s.teardown()
	s.Flags.PostAbort = true
	reply := classifyAbort(err)
	if s.Metrics != nil {
		s.Metrics.TransfersAborted.WithLabelValues(fmt.Sprint(reply.code)).Inc()
		s.Metrics.ActiveTransfers.Dec()
	}
	if !quiet {
		s.Control.Send(reply.code, "%s", reply.text)
	}
}

func (s *Session) teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DataConn != nil {
		_ = s.DataConn.LingerClose(2 * time.Second)
		s.DataConn = nil
	}
	currentStream.Store(nil)

	s.Timer.Remove(collab.TimerStalled)
	s.Timer.Remove(collab.TimerNoXfer)

	s.Flags.Passive = false
	s.Flags.Abort = false
	s.Flags.Xfer = false
	s.Flags.ASCIIOverride = false
}
