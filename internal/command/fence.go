package command

import "strings"

// FenceState tracks whether a line scan is inside a fenced code block.
type FenceState struct {
	InFence  bool
	FenceCh  byte
	FenceLen int
}

// parseFenceMarker reports whether line (ignoring up to three leading spaces
// and blockquote prefixes) opens or closes a ``` or ~~~ fence.
func parseFenceMarker(line string) (ch byte, n int, ok bool) {
	s := strings.TrimLeft(line, " \t")
	for strings.HasPrefix(s, ">") {
		s = strings.TrimLeft(strings.TrimPrefix(s, ">"), " \t")
	}
	if len(s) < 3 || (s[0] != '`' && s[0] != '~') {
		return 0, 0, false
	}
	ch = s[0]
	for n < len(s) && s[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, false
	}
	return ch, n, true
}

// UpdateFenceState advances the state by one line.
// Returns true if the line opened or closed a fence.
func (fs *FenceState) UpdateFenceState(line string) bool {
	ch, n, ok := parseFenceMarker(line)
	if !ok {
		return false
	}

	if !fs.InFence {
		fs.InFence = true
		fs.FenceCh = ch
		fs.FenceLen = n
		return true
	}

	if fs.FenceCh == ch && n >= fs.FenceLen {
		*fs = FenceState{}
		return true
	}
	return false
}
