package purchase

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/oylsister/buycmd/internal/game/catalog"
	"github.com/oylsister/buycmd/internal/game/session"
	"github.com/oylsister/buycmd/internal/testutil"
)

// Rejections never mutate money, inventory, purchase counts, or cooldown.
func TestPropertyRejectedPurchaseMutatesNothing(t *testing.T) {
	cat := testCatalog()
	keys := cat.Keys()

	rapid.Check(t, func(rt *rapid.T) {
		settings := catalog.Settings{
			Cooldown: rapid.Float64Range(0, 10).Draw(rt, "cooldown"),
		}
		h := testutil.NewFakeHost()
		sessions := session.NewManager()
		e := NewEngine(cat, settings, sessions, h, zap.NewNop())

		p := testutil.NewFakePlayer("p1", rapid.IntRange(0, 6000).Draw(rt, "money"))
		p.Alive = rapid.Bool().Draw(rt, "alive")
		_, err := sessions.Connect(p.ID())
		require.NoError(rt, err)

		if rapid.Bool().Draw(rt, "pre_cooldown") {
			_, err := sessions.ArmCooldown(p.ID())
			require.NoError(rt, err)
		}

		key := rapid.SampledFrom(keys).Draw(rt, "weapon")

		moneyBefore := p.Balance
		coolingBefore, err := sessions.OnCooldown(p.ID())
		require.NoError(rt, err)
		countBefore, err := sessions.BoughtCount(p.ID(), key)
		require.NoError(rt, err)

		res, err := e.AttemptPurchase(p, key)
		require.NoError(rt, err)

		if res.Outcome == OutcomePurchased {
			return
		}

		if p.Balance != moneyBefore {
			rt.Fatalf("outcome %v changed money %d -> %d", res.Outcome, moneyBefore, p.Balance)
		}
		if len(p.Given) != 0 || len(p.Removed) != 0 {
			rt.Fatalf("outcome %v touched inventory: given %v removed %v", res.Outcome, p.Given, p.Removed)
		}
		countAfter, err := sessions.BoughtCount(p.ID(), key)
		require.NoError(rt, err)
		if countAfter != countBefore {
			rt.Fatalf("outcome %v changed count %d -> %d", res.Outcome, countBefore, countAfter)
		}
		coolingAfter, err := sessions.OnCooldown(p.ID())
		require.NoError(rt, err)
		if coolingAfter != coolingBefore {
			rt.Fatalf("outcome %v changed cooldown %v -> %v", res.Outcome, coolingBefore, coolingAfter)
		}
		if len(h.Timers) != 0 {
			rt.Fatalf("outcome %v scheduled a timer", res.Outcome)
		}
	})
}

// A restricted rule rejects regardless of money, alive, and cooldown state.
func TestPropertyRestrictedAlwaysRejected(t *testing.T) {
	cat := testCatalog()

	rapid.Check(t, func(rt *rapid.T) {
		h := testutil.NewFakeHost()
		sessions := session.NewManager()
		settings := catalog.Settings{Cooldown: rapid.Float64Range(0, 10).Draw(rt, "cooldown")}
		e := NewEngine(cat, settings, sessions, h, zap.NewNop())

		p := testutil.NewFakePlayer("p1", rapid.IntRange(0, 100000).Draw(rt, "money"))
		_, err := sessions.Connect(p.ID())
		require.NoError(rt, err)

		res, err := e.AttemptPurchase(p, "awp")
		require.NoError(rt, err)
		if res.Outcome != OutcomeRestricted {
			rt.Fatalf("expected restricted, got %v", res.Outcome)
		}
	})
}
