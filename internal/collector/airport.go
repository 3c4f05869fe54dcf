package collector

import (
	"context"
	"fmt"

	"github.com/leeks92/bus-mustarddata/internal/airport"
	"github.com/leeks92/bus-mustarddata/internal/model"
	"github.com/leeks92/bus-mustarddata/internal/notify"
	"github.com/leeks92/bus-mustarddata/internal/store"
)

// Airport collects Incheon airport limousine lines
type Airport struct {
	*Deps
}

func NewAirport(d *Deps) *Airport {
	return &Airport{Deps: d}
}

func (a *Airport) Run(ctx context.Context) error {
	a.Logger.Infow("Airport: collection started", "runId", a.RunID)

	buses, err := airport.NewCollector(a.API.Airport(), a.Limiter, a.Logger).Collect(ctx)
	if err != nil {
		return err
	}

	if err := a.Store.SaveAirportBuses(ctx, buses); err != nil {
		return fmt.Errorf("failed to save airport buses: %w", err)
	}

	a.checkYield(ctx, model.Airport, len(buses))

	if _, err := a.Metadata.Update(ctx, model.MetadataUpdate{
		AirportBusCount: model.Count(len(buses)),
	}); err != nil {
		return err
	}

	a.publish(ctx, notify.Event{Dataset: store.DatasetAirportBuses, BusType: model.Airport, Count: len(buses)})
	a.Logger.Infow("Airport: collection finished", "buses", len(buses), "byArea", airport.CountByArea(buses))
	return nil
}
