package data

import (
	"context"
	"errors"
	"io"

	"github.com/gaojiangqi/proftpd/collab"
)

// Xfer moves one chunk of the current transfer through the data
// connection into or out of clientBuf, exactly as spec.md §4.9 describes.
// It returns the number of bytes landed in clientBuf (read direction) or
// consumed from it (write direction), 0 on clean EOF, and a non-nil error
// otherwise. Every successful read/write resets the stall and idle
// timers and accumulates transfer/session byte totals (write-direction
// accounting excludes inserted CRs, per the ASCII writer's expand count).
func (s *Session) Xfer(ctx context.Context, clientBuf []byte) (int, error) {
	if s.xfer.direction == DirectionRead {
		return s.xferRead(ctx, clientBuf)
	}
	return s.xferWrite(ctx, clientBuf)
}

func (s *Session) xferRead(ctx context.Context, clientBuf []byte) (int, error) {
	if !s.Flags.ASCII {
		n, err := s.DataConn.Read(ctx, clientBuf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, nil
			}
			return 0, err
		}
		s.onIO(n)
		return n, nil
	}

	for {
		raw := s.xfer.buf[s.xfer.bufStart:]
		n, err := s.DataConn.Read(ctx, raw)
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
		if n == 0 && errors.Is(err, io.EOF) {
			if s.xfer.carry == 1 {
				// A lone trailing CR from the previous call is still
				// owed to the client even though the stream is done.
				clientBuf[0] = '\r'
				s.xfer.carry = 0
				s.onIO(1)
				return 1, nil
			}
			return 0, nil
		}

		out, newCarry := asciiReadTranslate(raw[:n], s.xfer.carry)
		s.xfer.carry = newCarry
		if len(out) == 0 {
			// The reader consumed bytes but emitted nothing (e.g. a lone
			// CR just went to carry); loop for more input.
			continue
		}

		copied := copy(clientBuf, out)
		s.onIO(copied)
		return copied, nil
	}
}

func (s *Session) xferWrite(ctx context.Context, clientBuf []byte) (int, error) {
	total := 0
	for total < len(clientBuf) {
		end := total + tunableBufferSize
		if end > len(clientBuf) {
			end = len(clientBuf)
		}
		chunk := clientBuf[total:end]

		if !s.Flags.ASCII {
			n, err := s.DataConn.Write(ctx, chunk)
			if err != nil {
				return total, err
			}
			s.onIO(n)
			total += n
			continue
		}

		copy(s.xfer.buf[s.xfer.bufStart:], chunk)
		translated, expand := asciiWriteTranslate(s.xfer.buf[:s.xfer.bufStart+len(chunk)], s.xfer.bufStart)
		n, err := s.DataConn.Write(ctx, translated)
		if err != nil {
			return total, err
		}
		billed := n - expand
		if billed < 0 {
			billed = 0
		}
		s.onIO(billed)
		total += len(chunk)
	}
	return total, nil
}

// onIO resets the timers and accumulates byte counters after a successful
// transfer chunk, matching the source's "every successful read/write
// resets idle and stall timers" rule.
func (s *Session) onIO(n int) {
	s.xfer.totalBytes += int64(n)
	s.TotalBytes += int64(n)
	if s.Metrics != nil {
		dir := "read"
		if s.xfer.direction == DirectionWrite {
			dir = "write"
		}
		s.Metrics.BytesTransferred.WithLabelValues(dir).Add(float64(n))
	}
	s.Timer.Reset(collab.TimerStalled)
	s.Timer.Reset(collab.TimerIdle)
}
