package airport

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/leeks92/bus-mustarddata/internal/model"
	"github.com/leeks92/bus-mustarddata/internal/ratelimit"
	"github.com/leeks92/bus-mustarddata/internal/tago"
)

// Source lists the airport buses of one area
type Source interface {
	Buses(ctx context.Context, area int) ([]tago.AirportBusItem, error)
}

// Collector gathers airport buses across all areas
type Collector struct {
	src     Source
	limiter *ratelimit.Limiter
	logger  *zap.SugaredLogger
}

func NewCollector(src Source, limiter *ratelimit.Limiter, logger *zap.SugaredLogger) *Collector {
	return &Collector{src: src, limiter: limiter, logger: logger}
}

// Collect fetches every area, drops items without a bus number and returns
// the buses sorted by number
func (c *Collector) Collect(ctx context.Context) ([]model.AirportBus, error) {
	var buses []model.AirportBus

	for _, area := range Areas {
		if err := c.limiter.Wait(ctx, ratelimit.ClassAirport); err != nil {
			return nil, err
		}

		items, err := c.src.Buses(ctx, area)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch airport buses for area %d: %w", area, err)
		}

		kept := 0
		for _, item := range items {
			if item.BusNumber.String() == "" {
				continue
			}
			buses = append(buses, Transform(item, area))
			kept++
		}
		c.logger.Infow("Airport: area collected",
			"area", AreaName(fmt.Sprint(area)),
			"buses", kept,
			"raw", len(items),
		)
	}

	SortByBusNumber(buses)
	return buses, nil
}

// CountByArea tallies buses per area name
func CountByArea(buses []model.AirportBus) map[string]int {
	counts := make(map[string]int)
	for _, b := range buses {
		counts[b.AreaName]++
	}
	return counts
}
