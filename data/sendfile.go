package data

import (
	"context"
	"errors"
	"os"
)

// ErrSendfileUnsupported is returned when Sendfile is asked to run in
// ASCII mode or for an upload; the source only offers the zero-copy path
// for a binary download, per spec.md §4.10.
var ErrSendfileUnsupported = errors.New("data: sendfile only supports binary-mode downloads")

// Sendfile drives the platform zero-copy primitive (Linux sendfile(2) or
// BSD/Darwin sendfile(2)) to move count bytes of f starting at offset
// directly to the data connection without a userspace copy; when no raw
// socket descriptor is available it uses sendfileFallback's read/write
// loop instead. It loops on EINTR, resuming with
// the primitive's updated offset/count, and touches the stall/idle timers
// on every successful chunk. On error it returns how many bytes actually
// landed; offset itself is left at its pre-call value on error, matching
// the BSD/Linux offset-semantics normalization spec.md §4.10 calls for.
func (s *Session) Sendfile(ctx context.Context, f *os.File, offset, count int64) (int64, error) {
	if s.Flags.ASCII || s.xfer.direction != DirectionWrite {
		return 0, ErrSendfileUnsupported
	}

	conn, ok := s.rawConn()
	if !ok {
		if s.Metrics != nil {
			s.Metrics.SendfileFallbacks.Inc()
		}
		return s.sendfileFallback(ctx, f, offset, count)
	}

	var total int64
	for count > 0 {
		n, err := platformSendfile(conn, f, &offset, count)
		if n > 0 {
			total += n
			count -= n
			s.onIO(int(n))
		}
		if err != nil {
			if errors.Is(err, errEINTR) {
				continue
			}
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

// sendfileFallback is used whenever rawConn reports ok=false (platforms
// with no zero-copy primitive wired up, or a NetIO with no raw socket): a
// plain read/write loop through the same NetIO the translated path uses.
func (s *Session) sendfileFallback(ctx context.Context, f *os.File, offset, count int64) (int64, error) {
	buf := make([]byte, tunableBufferSize)
	var total int64
	for count > 0 {
		chunkLen := int64(len(buf))
		if count < chunkLen {
			chunkLen = count
		}
		n, err := f.ReadAt(buf[:chunkLen], offset)
		if n > 0 {
			wn, werr := s.DataConn.Write(ctx, buf[:n])
			if wn > 0 {
				s.onIO(wn)
				total += int64(wn)
				offset += int64(wn)
				count -= int64(wn)
			}
			if werr != nil {
				return total, werr
			}
		}
		if err != nil {
			break
		}
	}
	return total, nil
}
