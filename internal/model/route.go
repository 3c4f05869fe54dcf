package model

import (
	"github.com/dustin/go-humanize"
)

const (
	// DefaultGrade is used when the provider omits the fare class
	DefaultGrade = "일반"

	// UnknownCharge is rendered for a charge of 0 or less, which means
	// "fare not provided", never "free".
	UnknownCharge = "요금 미제공"
)

// Schedule is a single scheduled departure on a route
type Schedule struct {
	DepTime string `json:"depTime"` // HH:MM
	ArrTime string `json:"arrTime"` // HH:MM
	Grade   string `json:"grade"`
	Charge  int    `json:"charge"` // 0 = unknown
}

// Route is a directed departure -> arrival terminal pair with its schedules.
// dep->arr and arr->dep are distinct routes.
type Route struct {
	DepTerminalID   string     `json:"depTerminalId"`
	DepTerminalName string     `json:"depTerminalName"`
	ArrTerminalID   string     `json:"arrTerminalId"`
	ArrTerminalName string     `json:"arrTerminalName"`
	Schedules       []Schedule `json:"schedules"`
}

// Key returns the ordered merge key of the route
func (r Route) Key() string {
	return RouteKey(r.DepTerminalID, r.ArrTerminalID)
}

// RouteKey builds the "dep-arr" key used for dedup and merge
func RouteKey(depID, arrID string) string {
	return depID + "-" + arrID
}

// FormatTime extracts HH:MM from a provider timestamp (YYYYMMDDHHMM...).
// Strings shorter than 12 characters yield "".
func FormatTime(ts string) string {
	if len(ts) < 12 {
		return ""
	}
	return ts[8:10] + ":" + ts[10:12]
}

// FormatCharge renders a fare in won, e.g. "35,000원"
func FormatCharge(charge int) string {
	if charge <= 0 {
		return UnknownCharge
	}
	return humanize.Comma(int64(charge)) + "원"
}

// FareRange returns the lowest and highest known fare. Unknown (<= 0)
// charges are ignored; ok is false when no schedule has a known fare.
func FareRange(schedules []Schedule) (min, max int, ok bool) {
	for _, s := range schedules {
		if s.Charge <= 0 {
			continue
		}
		if !ok || s.Charge < min {
			min = s.Charge
		}
		if !ok || s.Charge > max {
			max = s.Charge
		}
		ok = true
	}
	return min, max, ok
}
