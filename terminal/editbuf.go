package terminal

import "unicode/utf8"

// DefaultBufferSize is the capacity of the command line, terminating NUL
// included.
const DefaultBufferSize = 1024

// EditBuffer is the fixed-capacity byte buffer backing the command line.
// The backing array is allocated once; Len never exceeds Cap()-1 and the
// byte at Len is always NUL. The cursor is kept within [0, Len].
//
// Every mutation goes through the methods below so that the invariants are
// enforced in one place; inserts that do not fit are truncated on a rune
// boundary.
type EditBuffer struct {
	data   []byte
	used   int
	cursor int
}

// NewEditBuffer allocates a buffer of size bytes (DefaultBufferSize when
// size < 2).
func NewEditBuffer(size int) *EditBuffer {
	if size < 2 {
		size = DefaultBufferSize
	}
	return &EditBuffer{data: make([]byte, size)}
}

// Cap is the capacity including the terminating NUL.
func (b *EditBuffer) Cap() int { return len(b.data) }

// MaxLen is the longest text the buffer accepts.
func (b *EditBuffer) MaxLen() int { return len(b.data) - 1 }

// Len is the used length.
func (b *EditBuffer) Len() int { return b.used }

// Bytes aliases the used part of the buffer. It is only valid until the next
// mutation.
func (b *EditBuffer) Bytes() []byte { return b.data[:b.used] }

func (b *EditBuffer) String() string { return string(b.data[:b.used]) }

// Cursor is the byte offset of the caret.
func (b *EditBuffer) Cursor() int { return b.cursor }

// SetCursor moves the caret, clamped to [0, Len] and moved back onto a rune
// boundary.
func (b *EditBuffer) SetCursor(pos int) {
	b.cursor = b.boundary(pos)
}

// boundary clamps pos to [0, Len] and moves it back to the start of the rune
// it falls in.
func (b *EditBuffer) boundary(pos int) int {
	pos = clampInt(pos, 0, b.used)
	for pos > 0 && pos < b.used && !utf8.RuneStart(b.data[pos]) {
		pos--
	}
	return pos
}

// Free is the number of bytes that can still be inserted.
func (b *EditBuffer) Free() int { return b.MaxLen() - b.used }

// Insert puts s at pos and returns how many bytes were accepted. The cursor
// shifts when it sits at or after pos.
func (b *EditBuffer) Insert(pos int, s string) int {
	pos = b.boundary(pos)
	s = fitRunes(s, b.Free())
	n := len(s)
	if n == 0 {
		return 0
	}
	copy(b.data[pos+n:], b.data[pos:b.used])
	copy(b.data[pos:], s)
	b.used += n
	b.data[b.used] = 0
	if b.cursor >= pos {
		b.cursor += n
	}
	return n
}

// InsertAtCursor inserts s at the caret.
func (b *EditBuffer) InsertAtCursor(s string) int {
	return b.Insert(b.cursor, s)
}

// Delete removes up to n bytes starting at pos and returns how many were
// removed.
func (b *EditBuffer) Delete(pos, n int) int {
	pos = b.boundary(pos)
	n = b.boundary(pos+clampInt(n, 0, b.used-pos)) - pos
	if n == 0 {
		return 0
	}
	copy(b.data[pos:], b.data[pos+n:b.used])
	b.used -= n
	b.data[b.used] = 0
	switch {
	case b.cursor >= pos+n:
		b.cursor -= n
	case b.cursor > pos:
		b.cursor = pos
	}
	return n
}

// Replace swaps the bytes in [start,end) for s and returns how many bytes of
// s were accepted.
func (b *EditBuffer) Replace(start, end int, s string) int {
	start = b.boundary(start)
	end = b.boundary(clampInt(end, start, b.used))
	cursor := b.cursor
	b.Delete(start, end-start)
	n := b.Insert(start, s)
	switch {
	case cursor >= end:
		b.SetCursor(cursor - (end - start) + n)
	case cursor > start:
		b.SetCursor(start + n)
	default:
		b.SetCursor(cursor)
	}
	return n
}

// Set replaces the whole content and moves the cursor to the end.
func (b *EditBuffer) Set(s string) int {
	b.used = 0
	b.cursor = 0
	b.data[0] = 0
	n := b.Insert(0, s)
	b.cursor = b.used
	return n
}

// Clear empties the buffer.
func (b *EditBuffer) Clear() {
	b.Set("")
}

// DeleteBackward removes the rune before the cursor.
func (b *EditBuffer) DeleteBackward() bool {
	if b.cursor == 0 {
		return false
	}
	_, size := utf8.DecodeLastRune(b.data[:b.cursor])
	return b.Delete(b.cursor-size, size) > 0
}

// DeleteForward removes the rune under the cursor.
func (b *EditBuffer) DeleteForward() bool {
	if b.cursor >= b.used {
		return false
	}
	_, size := utf8.DecodeRune(b.data[b.cursor:b.used])
	return b.Delete(b.cursor, size) > 0
}

// DeleteWordBackward removes the word before the cursor along with the
// blanks that follow it.
func (b *EditBuffer) DeleteWordBackward() bool {
	i := b.cursor
	for i > 0 && isBlank(b.data[i-1]) {
		i--
	}
	for i > 0 && !isBlank(b.data[i-1]) {
		i--
	}
	return b.Delete(i, b.cursor-i) > 0
}

// MoveLeft moves the cursor one rune to the left.
func (b *EditBuffer) MoveLeft() {
	if b.cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRune(b.data[:b.cursor])
	b.cursor -= size
}

// MoveRight moves the cursor one rune to the right.
func (b *EditBuffer) MoveRight() {
	if b.cursor >= b.used {
		return
	}
	_, size := utf8.DecodeRune(b.data[b.cursor:b.used])
	b.cursor += size
}

// fitRunes truncates s to at most max bytes without splitting a rune.
func fitRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 0 {
		return ""
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
