package collab

import (
	"context"
	"net"
	"syscall"
	"time"

	pkgerrors "github.com/pkg/errors"
)

// connIO is the default NetIO: a plain net.Conn with context-aware
// Read/Write (deadline-based cancellation, since net.Conn predates
// context) and an Abort that forces the connection's deadline into the
// past, unblocking whichever goroutine is mid-Read/Write the same way the
// source's SIGURG handler forces netio's underlying fd read/write to
// return early.
type connIO struct {
	conn net.Conn
}

// NewNetIO wraps an already-established net.Conn as a NetIO.
func NewNetIO(conn net.Conn) NetIO {
	return &connIO{conn: conn}
}

func (c *connIO) Read(ctx context.Context, p []byte) (int, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = c.conn.SetReadDeadline(dl)
	}
	n, err := c.conn.Read(p)
	return n, pkgerrors.Wrap(err, "collab: netio read")
}

func (c *connIO) Write(ctx context.Context, p []byte) (int, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(dl)
	}
	n, err := c.conn.Write(p)
	return n, pkgerrors.Wrap(err, "collab: netio write")
}

func (c *connIO) PostOpen() error { return nil }

func (c *connIO) Abort() {
	// A deadline already in the past fails any in-flight or future I/O
	// immediately, standing in for SIGURG's interruption of a blocking
	// read(2)/write(2).
	past := time.Unix(0, 0)
	_ = c.conn.SetDeadline(past)
}

func (c *connIO) SetPollInterval(d time.Duration) {}

// RawConn exposes the underlying socket's syscall.RawConn, letting
// data.Session's zero-copy sendfile path reach the real file descriptor.
// It only succeeds when conn is a type that implements SyscallConn
// (*net.TCPConn does); anything else (a TLS-wrapped conn, a pipe used in
// tests) reports ok=false and the caller falls back to a copy loop.
func (c *connIO) RawConn() (syscall.RawConn, bool) {
	sc, ok := c.conn.(interface {
		SyscallConn() (syscall.RawConn, error)
	})
	if !ok {
		return nil, false
	}
	rc, err := sc.SyscallConn()
	if err != nil {
		return nil, false
	}
	return rc, true
}

func (c *connIO) LingerClose(d time.Duration) error {
	if tc, ok := c.conn.(*net.TCPConn); ok {
		_ = tc.SetLinger(int(d.Seconds()))
	}
	return c.conn.Close()
}

// stdInet is the default Inet: plain TCP dial/accept, using the standard
// library's net package directly since the data connection protocol
// (PORT negotiation, passive listener management) is control-protocol
// territory explicitly out of scope for the DCE/FSR per spec.md.
type stdInet struct {
	reverseDNS bool
}

// NewInet returns the default net-package-backed Inet implementation.
func NewInet(reverseDNS bool) Inet {
	return &stdInet{reverseDNS: reverseDNS}
}

func (i *stdInet) CreateConnection(ctx context.Context, localAddr string, localPort int) (net.Conn, error) {
	d := net.Dialer{
		LocalAddr: &net.TCPAddr{IP: net.ParseIP(localAddr), Port: localPort},
	}
	return d.DialContext(ctx, "tcp", "")
}

func (i *stdInet) Accept(ctx context.Context, l net.Listener) (net.Conn, error) {
	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		conn, err := l.Accept()
		ch <- result{conn, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.conn, r.err
	}
}

func (i *stdInet) Connect(ctx context.Context, c net.Conn, addr string, port int) error {
	// For a plain net.Conn obtained via Dial, connection already happened;
	// this hook exists for drivers that need a post-accept handshake.
	return nil
}

func (i *stdInet) OpenRW(c net.Conn) (NetIO, NetIO, error) {
	rw := NewNetIO(c)
	return rw, rw, nil
}

func (i *stdInet) ReverseDNS(enabled bool) bool {
	i.reverseDNS = enabled
	return i.reverseDNS
}

func (i *stdInet) SetSocketOpts(c net.Conn, rcvbuf, sndbuf int) error {
	return nil
}

func (i *stdInet) SetProtoOpts(c net.Conn, mss int) error {
	return nil
}

func (i *stdInet) SetNonblock(c net.Conn) error {
	return nil
}
