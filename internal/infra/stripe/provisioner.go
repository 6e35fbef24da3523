package stripe

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"jaac-backend/internal/domain/plan"

	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"golang.org/x/sync/singleflight"
)

// Provisioner resolves the processor price of each plan. Configured price ids
// are used as is. Placeholder ids are resolved through the plan's lookup key,
// creating the product and price on first use when provisioning is enabled.
type Provisioner struct {
	api     *client.API
	enabled bool
	logger  *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	cache map[plan.ID]string
}

func NewProvisioner(api *client.API, enabled bool, logger *slog.Logger) *Provisioner {
	return &Provisioner{
		api:     api,
		enabled: enabled,
		logger:  logger,
		cache:   make(map[plan.ID]string),
	}
}

func (p *Provisioner) ResolvePrice(ctx context.Context, pl plan.Plan) (string, error) {
	if !pl.HasPlaceholderPrice() {
		return pl.PriceID, nil
	}
	if !p.enabled || !pl.Provisionable() {
		return "", plan.ErrPriceUnavailable
	}
	if id, ok := p.cached(pl.ID); ok {
		return id, nil
	}

	// Shared by every waiting caller, so one cancelled request must not fail the rest.
	shared := context.WithoutCancel(ctx)
	v, err, _ := p.group.Do(string(pl.ID), func() (any, error) {
		if id, ok := p.cached(pl.ID); ok {
			return id, nil
		}
		id, err := p.findOrCreate(shared, pl)
		if err != nil {
			return "", err
		}
		p.mu.Lock()
		p.cache[pl.ID] = id
		p.mu.Unlock()
		return id, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (p *Provisioner) cached(id plan.ID) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.cache[id]
	return v, ok
}

func (p *Provisioner) lookup(ctx context.Context, key string) (string, bool, error) {
	lp := &stripeapi.PriceListParams{
		LookupKeys: stripeapi.StringSlice([]string{key}),
		Active:     stripeapi.Bool(true),
	}
	lp.Context = ctx
	it := p.api.Prices.List(lp)
	for it.Next() {
		if pr := it.Price(); pr != nil && pr.ID != "" {
			return pr.ID, true, nil
		}
	}
	if err := it.Err(); err != nil {
		return "", false, wrapStripeErr(p.logger, err, "failed to look up plan price", slog.String("lookup_key", key))
	}
	return "", false, nil
}

func (p *Provisioner) findOrCreate(ctx context.Context, pl plan.Plan) (string, error) {
	key := pl.LookupKey()

	id, found, err := p.lookup(ctx, key)
	if err != nil {
		return "", err
	}
	if found {
		p.logger.Info("Resolved plan price by lookup key",
			slog.String("plan", string(pl.ID)), slog.String("price_id", id))
		return id, nil
	}

	prodParams := &stripeapi.ProductParams{
		Name:        stripeapi.String(pl.Name),
		Description: stripeapi.String(pl.Description),
	}
	prodParams.Context = ctx
	prodParams.AddMetadata("planId", string(pl.ID))
	prod, err := p.api.Products.New(prodParams)
	if err != nil {
		return "", wrapStripeErr(p.logger, err, "failed to create plan product", slog.String("plan", string(pl.ID)))
	}

	priceParams := &stripeapi.PriceParams{
		Product:    stripeapi.String(prod.ID),
		UnitAmount: stripeapi.Int64(pl.UnitAmount),
		Currency:   stripeapi.String(pl.Currency),
		LookupKey:  stripeapi.String(key),
	}
	if pl.Mode() == plan.ModeSubscription {
		priceParams.Recurring = &stripeapi.PriceRecurringParams{
			Interval: stripeapi.String(string(pl.Interval)),
		}
	}
	priceParams.Context = ctx
	price, err := p.api.Prices.New(priceParams)
	if err != nil {
		return p.recoverLostRace(ctx, pl, prod.ID, err)
	}

	p.logger.Info("Provisioned plan price",
		slog.String("plan", string(pl.ID)),
		slog.String("product_id", prod.ID),
		slog.String("price_id", price.ID),
	)
	return price.ID, nil
}

// recoverLostRace handles another process creating the price between our
// lookup and create: Stripe rejects the duplicate lookup key, and the winner's
// price is found by searching again. The product created here is archived.
func (p *Provisioner) recoverLostRace(ctx context.Context, pl plan.Plan, productID string, createErr error) (string, error) {
	var serr *stripeapi.Error
	if !errors.As(createErr, &serr) || serr.Type != stripeapi.ErrorTypeInvalidRequest {
		return "", wrapStripeErr(p.logger, createErr, "failed to create plan price", slog.String("plan", string(pl.ID)))
	}

	id, found, err := p.lookup(ctx, pl.LookupKey())
	if err != nil {
		return "", err
	}
	if !found {
		return "", wrapStripeErr(p.logger, createErr, "failed to create plan price", slog.String("plan", string(pl.ID)))
	}

	archive := &stripeapi.ProductParams{Active: stripeapi.Bool(false)}
	archive.Context = ctx
	if _, err := p.api.Products.Update(productID, archive); err != nil {
		p.logger.Warn("Failed to archive unused plan product",
			slog.String("product_id", productID), slog.String("error", err.Error()))
	}

	p.logger.Info("Plan price created concurrently elsewhere, reusing it",
		slog.String("plan", string(pl.ID)), slog.String("price_id", id))
	return id, nil
}
