package terminal

import (
	"strings"

	"github.com/leeks92/bus-mustarddata/internal/model"
)

// defaultStripWords are removed from full terminal names before the reverse
// containment check
var defaultStripWords = []string{"터미널", "종합", "고속"}

// IdentityResolver maps a short-code express terminal to a full terminal id.
// It returns "" when it cannot decide.
type IdentityResolver interface {
	Resolve(short model.ShortTerminal, full []model.Terminal) string
}

// NameMatchResolver is a best-effort resolver: the first full terminal whose
// name contains the short name, or whose stripped name is contained in the
// short name, wins. Ambiguous prefixes can resolve to the wrong terminal.
type NameMatchResolver struct {
	StripWords []string
}

func (r NameMatchResolver) Resolve(short model.ShortTerminal, full []model.Terminal) string {
	if short.Name == "" {
		return ""
	}

	strip := r.StripWords
	if strip == nil {
		strip = defaultStripWords
	}

	for _, t := range full {
		if strings.Contains(t.Name, short.Name) {
			return t.ID
		}
		stripped := stripWords(t.Name, strip)
		if stripped != "" && strings.Contains(short.Name, stripped) {
			return t.ID
		}
	}
	return ""
}

func stripWords(name string, words []string) string {
	for _, w := range words {
		name = strings.ReplaceAll(name, w, "")
	}
	return name
}

// ExactResolver resolves from an explicit short code -> full id table
type ExactResolver map[string]string

func (r ExactResolver) Resolve(short model.ShortTerminal, _ []model.Terminal) string {
	return r[short.Code]
}

// ChainResolver tries each resolver in order
type ChainResolver []IdentityResolver

func (c ChainResolver) Resolve(short model.ShortTerminal, full []model.Terminal) string {
	for _, r := range c {
		if id := r.Resolve(short, full); id != "" {
			return id
		}
	}
	return ""
}

// NewResolver returns the resolver for a run: the pinned table first when one
// is given, then name matching
func NewResolver(pinned map[string]string) IdentityResolver {
	if len(pinned) == 0 {
		return NameMatchResolver{}
	}
	return ChainResolver{ExactResolver(pinned), NameMatchResolver{}}
}

// FallbackFullID is the id assumed for a short code no resolver could place
func FallbackFullID(code string) string {
	return "NAEK" + code
}
