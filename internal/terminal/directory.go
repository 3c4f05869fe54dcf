package terminal

import (
	"github.com/leeks92/bus-mustarddata/internal/model"
)

// ExpressDirectory holds both express namespaces and the identity map
// between them
type ExpressDirectory struct {
	Short []model.ShortTerminal
	Full  []model.Terminal
	IDMap map[string]string // short code -> full id

	known map[string]bool // full ids
}

// NewExpressDirectory resolves every short code against the full list.
// Unresolved codes map to FallbackFullID.
func NewExpressDirectory(short []model.ShortTerminal, full []model.Terminal, resolver IdentityResolver) *ExpressDirectory {
	d := &ExpressDirectory{
		Short: short,
		Full:  full,
		IDMap: make(map[string]string, len(short)),
		known: make(map[string]bool, len(full)),
	}
	for _, t := range full {
		d.known[t.ID] = true
	}
	for _, s := range short {
		id := resolver.Resolve(s, full)
		if id == "" {
			id = FallbackFullID(s.Code)
		}
		d.IDMap[s.Code] = id
	}
	return d
}

// FullID returns the full id of a short code
func (d *ExpressDirectory) FullID(code string) string {
	if id, ok := d.IDMap[code]; ok {
		return id
	}
	return FallbackFullID(code)
}

// Canonical accepts either a short code or a full id and returns the full id
func (d *ExpressDirectory) Canonical(id string) string {
	if d.known[id] {
		return id
	}
	if full, ok := d.IDMap[id]; ok {
		return full
	}
	if isShortCode(id) {
		return FallbackFullID(id)
	}
	return id
}

// Resolved counts short codes mapped to a terminal present in the full list
func (d *ExpressDirectory) Resolved() int {
	n := 0
	for _, id := range d.IDMap {
		if d.known[id] {
			n++
		}
	}
	return n
}

func isShortCode(s string) bool {
	if s == "" || len(s) > 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
