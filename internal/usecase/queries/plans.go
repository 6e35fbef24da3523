package queries

//go:generate mockgen -source=plans.go -destination=../../../tests/mock/queries/plans.go -package=queriesmock

import (
	"jaac-backend/internal/domain/payment"
	"jaac-backend/internal/domain/plan"
)

type PlanView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       *string `json:"price"`
	Currency    string  `json:"currency"`
	Interval    string  `json:"interval"`
	Mode        string  `json:"mode"`
}

type PlanQueries interface {
	ListPlans() []PlanView
}

type planQueriesImpl struct {
	catalog *plan.Catalog
}

func NewPlanQueries(catalog *plan.Catalog) PlanQueries {
	return &planQueriesImpl{catalog: catalog}
}

func (q *planQueriesImpl) ListPlans() []PlanView {
	plans := q.catalog.All()
	out := make([]PlanView, 0, len(plans))
	for _, p := range plans {
		v := PlanView{
			ID:          string(p.ID),
			Name:        p.Name,
			Description: p.Description,
			Currency:    payment.FormatCurrency(p.Currency),
			Interval:    string(p.Interval),
			Mode:        string(p.Mode()),
		}
		// Negotiated plans have no list price.
		if p.UnitAmount > 0 {
			price := payment.FormatAmount(p.UnitAmount)
			v.Price = &price
		}
		out = append(out, v)
	}
	return out
}
