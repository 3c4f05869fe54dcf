package airport

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/leeks92/bus-mustarddata/internal/model"
	"github.com/leeks92/bus-mustarddata/internal/tago"
)

// Areas are the service's region codes, in request order
var Areas = []int{1, 2, 3, 4, 5, 6, 7}

var areaNames = map[string]string{
	"1": "서울",
	"2": "경기",
	"3": "인천",
	"4": "강원",
	"5": "충청",
	"6": "경상",
	"7": "전라",
}

// AreaName returns the region name of an area code, "지역<code>" if unknown
func AreaName(code string) string {
	if name, ok := areaNames[code]; ok {
		return name
	}
	return "지역" + code
}

// Transform converts a provider item. area is used when the item does not
// carry its own area code.
func Transform(raw tago.AirportBusItem, area int) model.AirportBus {
	areaCode := raw.Area.String()
	if areaCode == "" {
		areaCode = strconv.Itoa(area)
	}

	busClass := raw.BusClass.String()
	if busClass == "" {
		busClass = model.DefaultGrade
	}

	fare := int(raw.AdultFare)
	if fare < 0 {
		fare = 0
	}

	return model.AirportBus{
		BusNumber: raw.BusNumber.String(),
		Area:      areaCode,
		AreaName:  AreaName(areaCode),
		BusClass:  busClass,
		AdultFare: fare,
		Company:   raw.CpName.String(),
		RouteInfo: raw.RouteInfo.String(),
		T1: model.TerminalSchedule{
			WeekdayTimes:   ParseTimes(raw.T1WdayT.String()),
			WeekendTimes:   ParseTimes(raw.T1Wt.String()),
			ToAirportFirst: FormatClock(raw.ToAwFirst.String()),
			ToAirportLast:  FormatClock(raw.ToAwLast.String()),
			ToDestFirst:    FormatClock(raw.T1EndFirst.String()),
			ToDestLast:     FormatClock(raw.T1EndLast.String()),
			Boarding:       raw.T1RideLo.String(),
		},
		T2: model.TerminalSchedule{
			WeekdayTimes:   ParseTimes(raw.T2WdayT.String()),
			WeekendTimes:   ParseTimes(raw.T2Wt.String()),
			ToAirportFirst: FormatClock(raw.ToAwFirst.String()),
			ToAirportLast:  FormatClock(raw.ToAwLast.String()),
			ToDestFirst:    FormatClock(raw.T2EndFirst.String()),
			ToDestLast:     FormatClock(raw.T2EndLast.String()),
			Boarding:       raw.T2RideLo.String(),
		},
	}
}

// FormatClock pads an HHMM or HMM time: "835" -> "08:35". Empty stays empty.
func FormatClock(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) < 4 {
		s = strings.Repeat("0", 4-len(s)) + s
	}
	return s[0:2] + ":" + s[2:4]
}

// ParseTimes splits a comma-delimited time list and formats each entry
func ParseTimes(s string) []string {
	times := []string{}
	for _, part := range strings.Split(s, ",") {
		if t := FormatClock(part); t != "" {
			times = append(times, t)
		}
	}
	return times
}

// SortByBusNumber orders buses by number with Korean collation, comparing
// digit runs numerically ("6002" before "6010", "M6117" after them)
func SortByBusNumber(buses []model.AirportBus) {
	c := collate.New(language.Korean, collate.Numeric)
	sort.SliceStable(buses, func(i, j int) bool {
		return c.CompareString(buses[i].BusNumber, buses[j].BusNumber) < 0
	})
}
