package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leeks92/bus-mustarddata/internal/model"
)

// ErrNotFound is returned by a Backend when a dataset was never written
var ErrNotFound = errors.New("dataset not found")

// Backend persists whole snapshot documents by dataset name. Writes replace
// the previous document.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	// UpdatedAt returns when a dataset was last written, ErrNotFound if never
	UpdatedAt(ctx context.Context, name string) (time.Time, error)
	Close() error
}

// Dataset names
const (
	DatasetExpressTerminals   = "express-terminals"
	DatasetIntercityTerminals = "intercity-terminals"
	DatasetExpressRoutes      = "express-routes"
	DatasetIntercityRoutes    = "intercity-routes"
	DatasetMetadata           = "metadata"
	DatasetAirportBuses       = "airport-buses"
	DatasetBaselines          = "run-baselines"
)

// TerminalsDataset returns the terminal dataset of a bus type
func TerminalsDataset(bus model.BusType) (string, error) {
	switch bus {
	case model.Express:
		return DatasetExpressTerminals, nil
	case model.Intercity:
		return DatasetIntercityTerminals, nil
	}
	return "", fmt.Errorf("no terminal dataset for bus type %q", bus)
}

// RoutesDataset returns the route dataset of a bus type
func RoutesDataset(bus model.BusType) (string, error) {
	switch bus {
	case model.Express:
		return DatasetExpressRoutes, nil
	case model.Intercity:
		return DatasetIntercityRoutes, nil
	}
	return "", fmt.Errorf("no route dataset for bus type %q", bus)
}
