package slug

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	parenthetical = regexp.MustCompile(`\(.*?\)`)
	dashes        = regexp.MustCompile(`-+`)
)

// koreanSlugSuffixes are endings that already read as a place name
var koreanSlugSuffixes = []string{"터미널", "역", "공항", "정류장", "정류소"}

// Normalize drops parenthesised qualifiers and all whitespace:
// "센트럴시티 (서울)" -> "센트럴시티"
func Normalize(name string) string {
	name = parenthetical.ReplaceAllString(name, "")
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Slugify builds an ASCII slug: Hangul runs are romanized, alphanumeric runs
// lowercased, everything else dropped, runs joined by "-".
// "인천공항T1" -> "incheongonghang-t1"
func Slugify(name string) string {
	var parts []string
	var current []rune
	currentIsHangul := false

	flush := func() {
		if len(current) == 0 {
			return
		}
		if currentIsHangul {
			parts = append(parts, Romanize(string(current)))
		} else {
			parts = append(parts, strings.ToLower(string(current)))
		}
		current = current[:0]
	}

	for _, r := range Normalize(name) {
		switch {
		case isHangul(r):
			if !currentIsHangul {
				flush()
			}
			currentIsHangul = true
			current = append(current, r)
		case isASCIIAlnum(r):
			if currentIsHangul {
				flush()
			}
			currentIsHangul = false
			current = append(current, r)
		}
	}
	flush()

	s := dashes.ReplaceAllString(strings.Join(parts, "-"), "-")
	return strings.Trim(s, "-")
}

// KoreanSlug keeps the Korean name as the slug, suffixed with 터미널 unless
// it already ends like a place name. "서울경부" -> "서울경부터미널"
func KoreanSlug(name string) string {
	s := koreanName(name)
	for _, suffix := range koreanSlugSuffixes {
		if strings.HasSuffix(s, suffix) {
			return s
		}
	}
	return s + "터미널"
}

func koreanName(name string) string {
	return strings.Map(func(r rune) rune {
		if isHangul(r) || isASCIIAlnum(r) {
			return r
		}
		return -1
	}, Normalize(name))
}

// KoreanRouteSlug joins the cleaned Korean names of both terminals
func KoreanRouteSlug(depName, arrName string) string {
	return koreanName(depName) + "-" + koreanName(arrName)
}
