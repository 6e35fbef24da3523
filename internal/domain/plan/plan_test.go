//go:build unit

package plan_test

import (
	"testing"

	"jaac-backend/internal/domain/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog() *plan.Catalog {
	return plan.NewCatalog(map[plan.ID]string{
		plan.Individual: "price_123",
		plan.CoupDeMain: "price_COUPDEMAIN_TEST_ID",
	})
}

func TestCatalog_Get(t *testing.T) {
	c := newCatalog()

	t.Run("known plans resolve with their price ids", func(t *testing.T) {
		p, err := c.Get("individual")
		require.NoError(t, err)
		assert.Equal(t, "price_123", p.PriceID)
		assert.Equal(t, "Plan Individuel", p.Name)
		assert.Equal(t, int64(4900), p.UnitAmount)
	})

	t.Run("unknown plan", func(t *testing.T) {
		_, err := c.Get("premium")
		assert.ErrorIs(t, err, plan.ErrUnknownPlan)
	})

	t.Run("empty plan id", func(t *testing.T) {
		_, err := c.Get("")
		assert.ErrorIs(t, err, plan.ErrUnknownPlan)
	})
}

func TestPlan_Mode(t *testing.T) {
	c := newCatalog()
	testCases := []struct {
		id   string
		mode plan.Mode
	}{
		{id: "individual", mode: plan.ModeSubscription},
		{id: "coupdemain", mode: plan.ModePayment},
		{id: "enterprise", mode: plan.ModeSubscription},
	}
	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			p, err := c.Get(tc.id)
			require.NoError(t, err)
			assert.Equal(t, tc.mode, p.Mode())
		})
	}
}

func TestPlan_Placeholders(t *testing.T) {
	c := newCatalog()

	individual, _ := c.Get("individual")
	coupdemain, _ := c.Get("coupdemain")
	enterprise, _ := c.Get("enterprise")

	assert.False(t, individual.HasPlaceholderPrice())
	assert.True(t, coupdemain.HasPlaceholderPrice())
	assert.True(t, enterprise.HasPlaceholderPrice())

	assert.True(t, coupdemain.Provisionable())
	assert.False(t, enterprise.Provisionable())
	assert.Equal(t, "jaac_coupdemain_v1", coupdemain.LookupKey())
}

func TestCatalog_All(t *testing.T) {
	all := newCatalog().All()
	require.Len(t, all, 3)
	assert.Equal(t, plan.Individual, all[0].ID)
	assert.Equal(t, plan.CoupDeMain, all[1].ID)
	assert.Equal(t, plan.Enterprise, all[2].ID)
}
