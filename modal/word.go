// Copyright © 2015, The T Authors.

package modal

import "github.com/8l/edit/edit"

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isBigWordRune(r rune) bool {
	return r != ' ' && r != '\t' && r != '\n'
}

func isBlank(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }

// nextWord advances pos to the start of the next run classified by
// isWordRune,
// skipping any remainder of the current run and the blank run that
// follows it. If end is true, it instead lands on the last rune of
// that next run (vim's 'e').
func nextWord(b *edit.EBuf, pos int64, end bool) int64 {
	return mvnext(b, pos, isWordRune, end)
}

func nextBigWord(b *edit.EBuf, pos int64, end bool) int64 {
	return mvnext(b, pos, isBigWordRune, end)
}

func mvnext(b *edit.EBuf, pos int64, in func(rune) bool, end bool) int64 {
	size := b.Size()
	if pos >= size {
		return pos
	}
	p := pos
	if !end {
		start := in(b.Get(p))
		for p < size && in(b.Get(p)) == start {
			p++
		}
		for p < size && isBlank(b.Get(p)) {
			p++
		}
		return p
	}

	p++
	for p < size && isBlank(b.Get(p)) {
		p++
	}
	if p >= size {
		return size - 1
	}
	cls := in(b.Get(p))
	for p+1 < size && in(b.Get(p+1)) == cls && !isBlank(b.Get(p+1)) {
		p++
	}
	return p
}

// prevWord retreats pos to the start of the run classified by in that
// precedes it, skipping any blank run immediately before pos.
func prevWord(b *edit.EBuf, pos int64, in func(rune) bool) int64 {
	p := pos
	for p > 0 && isBlank(b.Get(p-1)) {
		p--
	}
	if p == 0 {
		return 0
	}
	cls := in(b.Get(p - 1))
	for p > 0 && !isBlank(b.Get(p-1)) && in(b.Get(p-1)) == cls {
		p--
	}
	return p
}
