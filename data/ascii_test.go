package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsciiReadTranslateCollapsesCRLF(t *testing.T) {
	out, carry := asciiReadTranslate([]byte("a\r\nb\r\nc"), 0)
	assert.Equal(t, "a\nb\nc", string(out))
	assert.Equal(t, 0, carry)
}

func TestAsciiReadTranslateHoldsBackTrailingCR(t *testing.T) {
	out, carry := asciiReadTranslate([]byte("abc\r"), 0)
	assert.Equal(t, "abc", string(out))
	assert.Equal(t, 1, carry, "a CR at the very end of the buffer must be carried, not emitted")
}

func TestAsciiReadTranslateResolvesCarryAcrossCalls(t *testing.T) {
	out1, carry1 := asciiReadTranslate([]byte("abc\r"), 0)
	assert.Equal(t, "abc", string(out1))
	assert.Equal(t, 1, carry1)

	out2, carry2 := asciiReadTranslate([]byte("\ndef"), carry1)
	assert.Equal(t, "\ndef", string(out2), "the carried CR plus a leading LF next call forms one collapsed newline")
	assert.Equal(t, 0, carry2)
}

func TestAsciiReadTranslateCarriedCRNotFollowedByLF(t *testing.T) {
	out, carry := asciiReadTranslate([]byte("xyz"), 1)
	assert.Equal(t, "\rxyz", string(out), "a carried CR not followed by LF must be emitted literally")
	assert.Equal(t, 0, carry)
}

func TestAsciiReadTranslateBareCRInMiddlePassesThrough(t *testing.T) {
	out, carry := asciiReadTranslate([]byte("a\rb"), 0)
	assert.Equal(t, "a\rb", string(out))
	assert.Equal(t, 0, carry)
}

func TestAsciiWriteTranslateInsertsCRBeforeBareLF(t *testing.T) {
	out, expand := asciiWriteTranslate([]byte("a\nb\nc"), 0)
	assert.Equal(t, "a\r\nb\r\nc", string(out))
	assert.Equal(t, 2, expand)
}

func TestAsciiWriteTranslateLeadingLFGetsCR(t *testing.T) {
	out, expand := asciiWriteTranslate([]byte("\nabc"), 0)
	assert.Equal(t, "\r\nabc", string(out))
	assert.Equal(t, 1, expand)
}

func TestAsciiWriteTranslateExistingCRLFNotDoubled(t *testing.T) {
	out, expand := asciiWriteTranslate([]byte("a\r\nb"), 0)
	assert.Equal(t, "a\r\nb", string(out))
	assert.Equal(t, 0, expand, "an LF already preceded by a CR must not be expanded again")
}

func TestAsciiWriteTranslateRespectsStartOffset(t *testing.T) {
	out, expand := asciiWriteTranslate([]byte("XX\nY"), 2)
	assert.Equal(t, "\r\nY", string(out))
	assert.Equal(t, 1, expand)
}
