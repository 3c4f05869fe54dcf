package slug

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Revised Romanization of Korean, per jamo. Syllables are decomposed with
// NFKD, which also maps compatibility jamo (ㄱ, ㅏ) onto conjoining jamo.
var (
	leadingJamo = [...]string{
		"g", "kk", "n", "d", "tt", "r", "m", "b", "pp", "s",
		"ss", "", "j", "jj", "ch", "k", "t", "p", "h",
	}
	vowelJamo = [...]string{
		"a", "ae", "ya", "yae", "eo", "e", "yeo", "ye", "o", "wa",
		"wae", "oe", "yo", "u", "wo", "we", "wi", "yu", "eu", "ui", "i",
	}
	trailingJamo = [...]string{
		"k", "k", "k", "n", "n", "n", "t", "l", "k", "m",
		"l", "l", "l", "p", "l", "m", "p", "p", "t", "t",
		"ng", "t", "t", "k", "t", "p", "h",
	}
)

const (
	leadingBase   = 0x1100
	leadingRieul  = 0x1105
	vowelBase     = 0x1161
	trailingBase  = 0x11A8
	trailingLast  = 0x11C2
	trailingRieul = 0x11AF
)

// isHangul matches syllables, conjoining jamo and compatibility jamo
func isHangul(r rune) bool {
	return (r >= 0xAC00 && r <= 0xD7AF) ||
		(r >= 0x1100 && r <= 0x11FF) ||
		(r >= 0x3130 && r <= 0x318F)
}

// Romanize converts a run of Hangul to lowercase Latin letters. Only the
// ㄹㄹ -> "ll" assimilation is applied; other sound changes are ignored so
// the output depends on spelling alone.
func Romanize(s string) string {
	var b strings.Builder
	prevTrailing := rune(0)

	for _, r := range norm.NFKD.String(s) {
		switch {
		case r >= leadingBase && r < leadingBase+rune(len(leadingJamo)):
			if r == leadingRieul && prevTrailing == trailingRieul {
				b.WriteString("l")
			} else {
				b.WriteString(leadingJamo[r-leadingBase])
			}
			prevTrailing = 0
		case r >= vowelBase && r < vowelBase+rune(len(vowelJamo)):
			b.WriteString(vowelJamo[r-vowelBase])
			prevTrailing = 0
		case r >= trailingBase && r <= trailingLast:
			b.WriteString(trailingJamo[r-trailingBase])
			prevTrailing = r
		default:
			prevTrailing = 0
		}
	}
	return b.String()
}
