package terminal

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/leeks92/bus-mustarddata/internal/model"
	"github.com/leeks92/bus-mustarddata/internal/ratelimit"
)

// ErrNoTerminals means the primary terminal list came back empty, which
// almost always points at a bad service key
var ErrNoTerminals = errors.New("no terminals returned")

// ExpressSource lists express terminals in both namespaces
type ExpressSource interface {
	ShortTerminals(ctx context.Context) ([]model.ShortTerminal, error)
	Terminals(ctx context.Context) ([]model.Terminal, error)
}

// Source lists terminals in a single namespace
type Source interface {
	Terminals(ctx context.Context) ([]model.Terminal, error)
}

// Builder fetches terminal lists and builds directories from them
type Builder struct {
	limiter  *ratelimit.Limiter
	resolver IdentityResolver
	logger   *zap.SugaredLogger
}

// NewBuilder creates a builder. A nil resolver uses NameMatchResolver.
func NewBuilder(limiter *ratelimit.Limiter, resolver IdentityResolver, logger *zap.SugaredLogger) *Builder {
	if resolver == nil {
		resolver = NameMatchResolver{}
	}
	return &Builder{limiter: limiter, resolver: resolver, logger: logger}
}

// BuildExpress fetches the short-code list, then the full-ID list, and
// resolves one against the other
func (b *Builder) BuildExpress(ctx context.Context, src ExpressSource) (*ExpressDirectory, error) {
	if err := b.limiter.Wait(ctx, ratelimit.ClassTerminalList); err != nil {
		return nil, err
	}
	short, err := src.ShortTerminals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list express short-code terminals: %w", err)
	}
	b.logger.Infow("Terminals: express short-code list", "count", len(short))
	if len(short) == 0 {
		return nil, fmt.Errorf("express short-code list: %w", ErrNoTerminals)
	}

	if err := b.limiter.Wait(ctx, ratelimit.ClassTerminalList); err != nil {
		return nil, err
	}
	full, err := src.Terminals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list express terminals: %w", err)
	}
	b.logger.Infow("Terminals: express full-id list", "count", len(full))

	dir := NewExpressDirectory(short, full, b.resolver)
	b.logger.Infow("Terminals: identity map built",
		"codes", len(dir.IDMap),
		"resolved", dir.Resolved(),
	)
	return dir, nil
}

// BuildIntercity fetches the intercity terminal list
func (b *Builder) BuildIntercity(ctx context.Context, src Source) ([]model.Terminal, error) {
	terminals, err := b.List(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to list intercity terminals: %w", err)
	}
	b.logger.Infow("Terminals: intercity list", "count", len(terminals))
	if len(terminals) == 0 {
		return nil, fmt.Errorf("intercity list: %w", ErrNoTerminals)
	}
	return terminals, nil
}

// List fetches a terminal list without the emptiness check
func (b *Builder) List(ctx context.Context, src Source) ([]model.Terminal, error) {
	if err := b.limiter.Wait(ctx, ratelimit.ClassTerminalList); err != nil {
		return nil, err
	}
	return src.Terminals(ctx)
}
