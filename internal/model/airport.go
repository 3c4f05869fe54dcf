package model

import "strings"

// TerminalSchedule holds one airport terminal's (T1/T2) timetable for a bus
type TerminalSchedule struct {
	WeekdayTimes   []string `json:"weekdayTimes"`
	WeekendTimes   []string `json:"weekendTimes"`
	ToAirportFirst string   `json:"toAirportFirst"`
	ToAirportLast  string   `json:"toAirportLast"`
	ToDestFirst    string   `json:"toDestFirst"`
	ToDestLast     string   `json:"toDestLast"`
	Boarding       string   `json:"boarding"`
}

// AirportBus is one numbered Incheon airport limousine line
type AirportBus struct {
	BusNumber string           `json:"busNumber"`
	Area      string           `json:"area"`
	AreaName  string           `json:"areaName"`
	BusClass  string           `json:"busClass"`
	AdultFare int              `json:"adultFare"`
	Company   string           `json:"company"`
	RouteInfo string           `json:"routeInfo"` // comma-delimited stop list
	T1        TerminalSchedule `json:"t1"`
	T2        TerminalSchedule `json:"t2"`
}

// Stops splits RouteInfo into its ordered stop names
func (b AirportBus) Stops() []string {
	var stops []string
	for _, s := range strings.Split(b.RouteInfo, ",") {
		if s = strings.TrimSpace(s); s != "" {
			stops = append(stops, s)
		}
	}
	return stops
}
