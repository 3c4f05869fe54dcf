package tago

import (
	"context"

	"github.com/leeks92/bus-mustarddata/internal/model"
)

type terminalItem struct {
	TerminalID FlexString `json:"terminalId"`
	TerminalNm FlexString `json:"terminalNm"`
	CityName   FlexString `json:"cityName"`
}

type shortTerminalItem struct {
	TmnCd FlexString `json:"tmnCd"`
	TmnNm FlexString `json:"tmnNm"`
}

type arrivalItem struct {
	ArrTmnCd FlexString `json:"arrTmnCd"`
	ArrTmnNm FlexString `json:"arrTmnNm"`
}

// ScheduleItem is one schedule entry as returned by the provider
type ScheduleItem struct {
	RouteID      FlexString `json:"routeId"`
	DepPlandTime FlexString `json:"depPlandTime"`
	ArrPlandTime FlexString `json:"arrPlandTime"`
	DepPlaceNm   FlexString `json:"depPlaceNm"`
	ArrPlaceNm   FlexString `json:"arrPlaceNm"`
	GradeNm      FlexString `json:"gradeNm"`
	Charge       FlexInt    `json:"charge"`
}

// AirportBusItem is one airport bus line as returned by the provider
type AirportBusItem struct {
	Area       FlexString `json:"area"`
	BusNumber  FlexString `json:"busnumber"`
	ToAwFirst  FlexString `json:"toawfirst"`
	ToAwLast   FlexString `json:"toawlast"`
	T1EndFirst FlexString `json:"t1endfirst"`
	T2EndFirst FlexString `json:"t2endfirst"`
	T1EndLast  FlexString `json:"t1endlast"`
	T2EndLast  FlexString `json:"t2endlast"`
	AdultFare  FlexInt    `json:"adultfare"`
	BusClass   FlexString `json:"busclass"`
	CpName     FlexString `json:"cpname"`
	T1WdayT    FlexString `json:"t1wdayt"`
	T1Wt       FlexString `json:"t1wt"`
	T2WdayT    FlexString `json:"t2wdayt"`
	T2Wt       FlexString `json:"t2wt"`
	RouteInfo  FlexString `json:"routeinfo"`
	T1RideLo   FlexString `json:"t1ridelo"`
	T2RideLo   FlexString `json:"t2ridelo"`
}

// API exposes the typed provider operations used by the collectors
type API struct {
	client    *Client
	endpoints Endpoints
}

func NewAPI(client *Client, endpoints Endpoints) *API {
	return &API{client: client, endpoints: endpoints}
}

// Express returns the express (고속) operations
func (a *API) Express() *ExpressService {
	return &ExpressService{api: a}
}

// Intercity returns the intercity (시외) operations
func (a *API) Intercity() *IntercityService {
	return &IntercityService{api: a}
}

// Airport returns the airport bus operations
func (a *API) Airport() *AirportService {
	return &AirportService{api: a}
}

type ExpressService struct {
	api *API
}

// ShortTerminals lists terminals in the 3-digit code scheme
func (s *ExpressService) ShortTerminals(ctx context.Context) ([]model.ShortTerminal, error) {
	items, err := FetchInto[shortTerminalItem](ctx, s.api.client, s.api.endpoints.ExpressShortTerminalsURL(), false)
	if err != nil {
		return nil, err
	}

	terminals := make([]model.ShortTerminal, 0, len(items))
	for _, it := range items {
		if it.TmnCd.String() == "" {
			continue
		}
		terminals = append(terminals, model.ShortTerminal{Code: it.TmnCd.String(), Name: it.TmnNm.String()})
	}
	return terminals, nil
}

// Terminals lists terminals in the NAEK full-ID scheme
func (s *ExpressService) Terminals(ctx context.Context) ([]model.Terminal, error) {
	return fetchTerminals(ctx, s.api.client, s.api.endpoints.ExpressTerminalsURL())
}

// Destinations lists arrival terminals reachable from a short-code departure
func (s *ExpressService) Destinations(ctx context.Context, depCode string) ([]model.ArrivalTerminal, error) {
	items, err := FetchInto[arrivalItem](ctx, s.api.client, s.api.endpoints.ExpressArrivalsURL(depCode), true)
	if err != nil {
		return nil, err
	}

	arrivals := make([]model.ArrivalTerminal, 0, len(items))
	for _, it := range items {
		if it.ArrTmnCd.String() == "" {
			continue
		}
		arrivals = append(arrivals, model.ArrivalTerminal{Code: it.ArrTmnCd.String(), Name: it.ArrTmnNm.String()})
	}
	return arrivals, nil
}

// Schedules returns today's departures for a full-ID pair
func (s *ExpressService) Schedules(ctx context.Context, depID, arrID, date string) ([]ScheduleItem, error) {
	return FetchInto[ScheduleItem](ctx, s.api.client, s.api.endpoints.ExpressSchedulesURL(depID, arrID, date), true)
}

type IntercityService struct {
	api *API
}

func (s *IntercityService) Terminals(ctx context.Context) ([]model.Terminal, error) {
	return fetchTerminals(ctx, s.api.client, s.api.endpoints.IntercityTerminalsURL())
}

// Schedules returns departures for a pair. The provider only serves the
// current day.
func (s *IntercityService) Schedules(ctx context.Context, depID, arrID, date string) ([]ScheduleItem, error) {
	return FetchInto[ScheduleItem](ctx, s.api.client, s.api.endpoints.IntercitySchedulesURL(depID, arrID, date), true)
}

type AirportService struct {
	api *API
}

// Buses lists the airport buses of one area
func (s *AirportService) Buses(ctx context.Context, area int) ([]AirportBusItem, error) {
	raw, err := s.api.client.FetchAirport(ctx, s.api.endpoints.AirportBusesURL(area), false)
	if err != nil {
		return nil, err
	}
	return decodeItems[AirportBusItem](raw), nil
}

func fetchTerminals(ctx context.Context, c *Client, rawURL string) ([]model.Terminal, error) {
	items, err := FetchInto[terminalItem](ctx, c, rawURL, false)
	if err != nil {
		return nil, err
	}

	terminals := make([]model.Terminal, 0, len(items))
	for _, it := range items {
		if it.TerminalID.String() == "" {
			continue
		}
		terminals = append(terminals, model.Terminal{
			ID:       it.TerminalID.String(),
			Name:     it.TerminalNm.String(),
			CityName: it.CityName.String(),
		})
	}
	return terminals, nil
}
