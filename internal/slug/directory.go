package slug

import (
	"strconv"
	"strings"

	"github.com/leeks92/bus-mustarddata/internal/model"
)

// Suffix lengths appended to colliding slugs
const (
	ExpressSuffixLen   = 3
	IntercitySuffixLen = 4
)

// Directory is a bijection between terminal ids and slugs
type Directory struct {
	slugToID map[string]string
	idToSlug map[string]string
}

// NewDirectory builds romanized slugs for a bus type's terminals
func NewDirectory(terminals []model.Terminal, bus model.BusType) *Directory {
	n := ExpressSuffixLen
	if bus == model.Intercity {
		n = IntercitySuffixLen
	}
	return NewDirectoryWith(terminals, n, Slugify)
}

// NewDirectoryWith builds a directory with a custom slug function. The
// first terminal with a given slug keeps it; later ones get "-" plus the
// last suffixLen characters of their id, then the full id, then a counter,
// until the slug is unique. Output depends only on the input order.
func NewDirectoryWith(terminals []model.Terminal, suffixLen int, slugFn func(string) string) *Directory {
	d := &Directory{
		slugToID: make(map[string]string, len(terminals)),
		idToSlug: make(map[string]string, len(terminals)),
	}

	for _, t := range terminals {
		if _, dup := d.idToSlug[t.ID]; dup {
			continue
		}

		base := slugFn(t.Name)
		candidates := []string{
			base,
			base + "-" + strings.ToLower(lastN(t.ID, suffixLen)),
			base + "-" + strings.ToLower(t.ID),
		}

		s := ""
		for _, c := range candidates {
			if _, used := d.slugToID[c]; !used {
				s = c
				break
			}
		}
		for i := 2; s == ""; i++ {
			c := base + "-" + strings.ToLower(t.ID) + "-" + strconv.Itoa(i)
			if _, used := d.slugToID[c]; !used {
				s = c
			}
		}

		d.slugToID[s] = t.ID
		d.idToSlug[t.ID] = s
	}
	return d
}

func lastN(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

// SlugFor returns the slug of a terminal id
func (d *Directory) SlugFor(id string) (string, bool) {
	s, ok := d.idToSlug[id]
	return s, ok
}

// IDFor returns the terminal id of a slug
func (d *Directory) IDFor(slug string) (string, bool) {
	id, ok := d.slugToID[slug]
	return id, ok
}

// RouteSlugFor builds the route slug of a terminal id pair
func (d *Directory) RouteSlugFor(depID, arrID string) (string, bool) {
	dep, ok := d.idToSlug[depID]
	if !ok {
		return "", false
	}
	arr, ok := d.idToSlug[arrID]
	if !ok {
		return "", false
	}
	return dep + "-" + arr, true
}

// RouteSplit is one reading of a route slug as departure and arrival slugs
type RouteSplit struct {
	Dep string
	Arr string
}

// RouteSplits returns every split of a route slug at a "-" where both halves
// are known terminal slugs, leftmost first. Slugs contain dashes themselves,
// so one route slug can have several readings.
func (d *Directory) RouteSplits(routeSlug string) []RouteSplit {
	var splits []RouteSplit
	for i := 0; i < len(routeSlug); i++ {
		if routeSlug[i] != '-' {
			continue
		}
		dep, arr := routeSlug[:i], routeSlug[i+1:]
		if dep == "" || arr == "" {
			continue
		}
		if _, known := d.slugToID[dep]; !known {
			continue
		}
		if _, known := d.slugToID[arr]; !known {
			continue
		}
		splits = append(splits, RouteSplit{Dep: dep, Arr: arr})
	}
	return splits
}
