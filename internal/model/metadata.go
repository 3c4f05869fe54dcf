package model

// Metadata describes the most recent collection runs
type Metadata struct {
	LastUpdated            string `json:"lastUpdated"` // RFC3339
	ExpressTerminalCount   int    `json:"expressTerminalCount"`
	IntercityTerminalCount int    `json:"intercityTerminalCount"`
	ExpressRouteCount      int    `json:"expressRouteCount"`
	IntercityRouteCount    int    `json:"intercityRouteCount"`
	AirportBusCount        int    `json:"airportBusCount,omitempty"`
	RunID                  string `json:"runId,omitempty"`
}

// MetadataUpdate is a partial metadata write. Nil fields are left untouched.
type MetadataUpdate struct {
	ExpressTerminalCount   *int
	IntercityTerminalCount *int
	ExpressRouteCount      *int
	IntercityRouteCount    *int
	AirportBusCount        *int
	RunID                  *string
}

// Apply overlays the non-nil fields of u onto m
func (m Metadata) Apply(u MetadataUpdate) Metadata {
	if u.ExpressTerminalCount != nil {
		m.ExpressTerminalCount = *u.ExpressTerminalCount
	}
	if u.IntercityTerminalCount != nil {
		m.IntercityTerminalCount = *u.IntercityTerminalCount
	}
	if u.ExpressRouteCount != nil {
		m.ExpressRouteCount = *u.ExpressRouteCount
	}
	if u.IntercityRouteCount != nil {
		m.IntercityRouteCount = *u.IntercityRouteCount
	}
	if u.AirportBusCount != nil {
		m.AirportBusCount = *u.AirportBusCount
	}
	if u.RunID != nil {
		m.RunID = *u.RunID
	}
	return m
}

// Count is a helper for building MetadataUpdate literals
func Count(n int) *int {
	return &n
}
