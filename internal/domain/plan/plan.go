package plan

import (
	"errors"
	"strings"
)

var ErrUnknownPlan = errors.New("unknown plan")

type ID string

const (
	Individual ID = "individual"
	CoupDeMain ID = "coupdemain"
	Enterprise ID = "enterprise"
)

type Mode string

const (
	ModePayment      Mode = "payment"
	ModeSubscription Mode = "subscription"
)

type Interval string

const (
	IntervalMonth   Interval = "month"
	IntervalSession Interval = "session"
	IntervalCustom  Interval = "custom"
)

const placeholderSuffix = "_TEST_ID"

// Plan is a pricing tier. UnitAmount is in minor units; zero means the price
// is negotiated offline.
type Plan struct {
	ID          ID
	Name        string
	Description string
	UnitAmount  int64
	Currency    string
	Interval    Interval
	PriceID     string
}

// Mode is one-time payment for the single-session product, recurring otherwise.
func (p Plan) Mode() Mode {
	if p.Interval == IntervalSession {
		return ModePayment
	}
	return ModeSubscription
}

func (p Plan) HasPlaceholderPrice() bool {
	return p.PriceID == "" || strings.HasSuffix(p.PriceID, placeholderSuffix)
}

// Provisionable reports whether a processor price can be created from the
// catalog data alone.
func (p Plan) Provisionable() bool {
	return p.UnitAmount > 0 && p.Interval != IntervalCustom
}

// LookupKey identifies the provisioned price on the processor side so that
// every process resolves the same price.
func (p Plan) LookupKey() string {
	return "jaac_" + string(p.ID) + "_v1"
}

type Catalog struct {
	plans map[ID]Plan
	order []ID
}

// NewCatalog builds the catalog with the processor price ids from configuration.
func NewCatalog(priceIDs map[ID]string) *Catalog {
	plans := []Plan{
		{
			ID:          Individual,
			Name:        "Plan Individuel",
			Description: "Plan mensuel de soutien psychologique",
			UnitAmount:  4900,
			Currency:    "cad",
			Interval:    IntervalMonth,
		},
		{
			ID:          CoupDeMain,
			Name:        "Coup de Pouce",
			Description: "Intervention rapide de 30 minutes",
			UnitAmount:  2900,
			Currency:    "cad",
			Interval:    IntervalSession,
		},
		{
			ID:          Enterprise,
			Name:        "Plan Entreprise",
			Description: "Accompagnement sur mesure pour les organisations",
			Currency:    "cad",
			Interval:    IntervalCustom,
		},
	}

	c := &Catalog{plans: make(map[ID]Plan, len(plans))}
	for _, p := range plans {
		p.PriceID = priceIDs[p.ID]
		c.plans[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c
}

func (c *Catalog) Get(id string) (Plan, error) {
	p, ok := c.plans[ID(strings.TrimSpace(id))]
	if !ok {
		return Plan{}, ErrUnknownPlan
	}
	return p, nil
}

func (c *Catalog) All() []Plan {
	out := make([]Plan, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.plans[id])
	}
	return out
}

// ErrPriceUnavailable means the plan has no processor price and none can be provisioned.
var ErrPriceUnavailable = errors.New("no processor price for plan")
