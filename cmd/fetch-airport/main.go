// fetch-airport collects Incheon airport limousine lines for every area.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/leeks92/bus-mustarddata/internal/collector"
	"github.com/leeks92/bus-mustarddata/internal/logging"
)

func main() {
	logger := logging.Get()
	defer logging.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Warn("Shutting down, stopping after the current request...")
		cancel()
	}()

	collector.Main(ctx, func(d *collector.Deps) collector.RunFunc {
		return collector.NewAirport(d).Run
	}, func(code int) {
		logging.Sync()
		os.Exit(code)
	}, logger)
}
