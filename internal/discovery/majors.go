package discovery

import (
	"strings"

	"github.com/leeks92/bus-mustarddata/internal/model"
)

// MajorSelector picks the terminals worth probing exhaustively
type MajorSelector struct {
	IDs          []string
	NamePatterns []string
}

// Select returns allow-listed terminals first, then terminals whose name
// contains any pattern, each in list order and deduplicated by id
func (s MajorSelector) Select(all []model.Terminal) []model.Terminal {
	allowed := make(map[string]bool, len(s.IDs))
	for _, id := range s.IDs {
		allowed[id] = true
	}

	picked := make(map[string]bool)
	var majors []model.Terminal

	for _, t := range all {
		if allowed[t.ID] && !picked[t.ID] {
			picked[t.ID] = true
			majors = append(majors, t)
		}
	}
	for _, t := range all {
		if picked[t.ID] {
			continue
		}
		if s.matchesName(t.Name) {
			picked[t.ID] = true
			majors = append(majors, t)
		}
	}
	return majors
}

func (s MajorSelector) matchesName(name string) bool {
	for _, p := range s.NamePatterns {
		if p != "" && strings.Contains(name, p) {
			return true
		}
	}
	return false
}
