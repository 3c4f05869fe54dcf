package model

// BusType identifies the provider family a dataset belongs to
type BusType string

const (
	Express   BusType = "express"
	Intercity BusType = "intercity"
	Airport   BusType = "airport"
)

// Valid reports whether b is one of the known bus types
func (b BusType) Valid() bool {
	switch b {
	case Express, Intercity, Airport:
		return true
	}
	return false
}

// Terminal is a bus terminal in the full-ID scheme (e.g. NAEK010, NAI0511601).
// Names may carry qualifiers in parentheses, e.g. "센트럴시티(서울)".
type Terminal struct {
	ID       string `json:"terminalId"`
	Name     string `json:"terminalNm"`
	CityName string `json:"cityName,omitempty"`
}

// ShortTerminal is an express terminal in the 3-digit code scheme used by
// the arrival-info service.
type ShortTerminal struct {
	Code string `json:"tmnCd"`
	Name string `json:"tmnNm"`
}

// ArrivalTerminal is a destination reachable from a short-code departure.
type ArrivalTerminal struct {
	Code string `json:"arrTmnCd"`
	Name string `json:"arrTmnNm"`
}
