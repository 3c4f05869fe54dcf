package tago

import "fmt"

// Endpoints holds provider base URLs and service keys. Keys are inserted
// as given; data.go.kr issues them already URL-encoded.
type Endpoints struct {
	ExpressInfoURL string
	ExpressArrURL  string
	IntercityURL   string
	AirportURL     string
	ServiceKey     string
	ArrServiceKey  string
}

func (e Endpoints) arrKey() string {
	if e.ArrServiceKey != "" {
		return e.ArrServiceKey
	}
	return e.ServiceKey
}

// ExpressShortTerminalsURL lists express terminals in the 3-digit scheme
func (e Endpoints) ExpressShortTerminalsURL() string {
	return fmt.Sprintf("%s/getExpBusTmnList?serviceKey=%s&numOfRows=500&pageNo=1&_type=json",
		e.ExpressArrURL, e.arrKey())
}

// ExpressArrivalsURL lists destinations reachable from a short-code departure
func (e Endpoints) ExpressArrivalsURL(depCode string) string {
	return fmt.Sprintf("%s/getArrTmnFromDepTmn?serviceKey=%s&depTmnCd=%s&numOfRows=500&pageNo=1&_type=json",
		e.ExpressArrURL, e.arrKey(), depCode)
}

// ExpressTerminalsURL lists express terminals in the NAEK scheme
func (e Endpoints) ExpressTerminalsURL() string {
	return fmt.Sprintf("%s/getExpBusTrminlList?serviceKey=%s&numOfRows=500&pageNo=1&_type=json",
		e.ExpressInfoURL, e.ServiceKey)
}

// ExpressSchedulesURL queries schedules for one full-ID pair on a YYYYMMDD date
func (e Endpoints) ExpressSchedulesURL(depID, arrID, date string) string {
	return fmt.Sprintf("%s/getStrtpntAlocFndExpbusInfo?serviceKey=%s&depTerminalId=%s&arrTerminalId=%s&depPlandTime=%s&numOfRows=100&pageNo=1&_type=json",
		e.ExpressInfoURL, e.ServiceKey, depID, arrID, date)
}

func (e Endpoints) IntercityTerminalsURL() string {
	return fmt.Sprintf("%s/getSuberbsBusTrminlList?serviceKey=%s&numOfRows=1000&pageNo=1&_type=json",
		e.IntercityURL, e.ServiceKey)
}

func (e Endpoints) IntercitySchedulesURL(depID, arrID, date string) string {
	return fmt.Sprintf("%s/getStrtpntAlocFndSuberbsBusInfo?serviceKey=%s&depTerminalId=%s&arrTerminalId=%s&depPlandTime=%s&numOfRows=100&pageNo=1&_type=json",
		e.IntercityURL, e.ServiceKey, depID, arrID, date)
}

// AirportBusesURL lists Incheon airport buses serving an area code (1-7)
func (e Endpoints) AirportBusesURL(area int) string {
	return fmt.Sprintf("%s/getBusInfo?serviceKey=%s&numOfRows=100&pageNo=1&area=%d&type=json",
		e.AirportURL, e.ServiceKey, area)
}
