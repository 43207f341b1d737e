package purchase

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/oylsister/buycmd/internal/game/catalog"
	"github.com/oylsister/buycmd/internal/game/session"
	"github.com/oylsister/buycmd/internal/host"
)

// Engine validates and executes weapon purchases against the catalog and
// the per-player session state.
type Engine struct {
	log      *zap.Logger
	catalog  *catalog.Catalog
	settings catalog.Settings
	sessions *session.Manager
	host     host.Host
}

// NewEngine creates a purchase Engine.
//
// Precondition: all arguments must be non-nil (settings is a value).
func NewEngine(cat *catalog.Catalog, settings catalog.Settings, sessions *session.Manager, h host.Host, log *zap.Logger) *Engine {
	return &Engine{
		log:      log,
		catalog:  cat,
		settings: settings,
		sessions: sessions,
		host:     h,
	}
}

// AttemptPurchase runs the eligibility chain for the player and weapon key
// and, on success, performs the purchase: increments the per-life count,
// strips at most one held item sharing the rule's slot, grants the new
// item, deducts the price, and arms the cooldown with a deferred clear.
//
// The checks run in a fixed order and the first failure short-circuits with
// a distinct outcome. No failure path mutates any state.
//
// Precondition: p must be non-nil.
// Postcondition: Returns a non-nil error only for invariant violations
// (e.g. no session state for the player); rejections are outcomes, not errors.
func (e *Engine) AttemptPurchase(p host.Player, weaponKey string) (Result, error) {
	rule, ok := e.catalog.Rule(weaponKey)
	if !ok {
		return Result{Outcome: OutcomeUnknownWeapon, WeaponKey: weaponKey}, nil
	}

	res := Result{WeaponKey: rule.Key, Limit: rule.MaxPurchase}

	if !e.sessions.Connected(p.ID()) {
		return Result{}, fmt.Errorf("purchase %q by player %q: %w", rule.Key, p.ID(), session.ErrNotConnected)
	}

	if !p.IsAlive() {
		res.Outcome = OutcomeNotAlive
		return res, nil
	}

	if rule.Restricted {
		res.Outcome = OutcomeRestricted
		return res, nil
	}

	if e.settings.CooldownEnabled() {
		cooling, err := e.sessions.OnCooldown(p.ID())
		if err != nil {
			return Result{}, err
		}
		if cooling {
			res.Outcome = OutcomeOnCooldown
			return res, nil
		}
	}

	money := p.Money()
	if money < rule.Price {
		res.Outcome = OutcomeInsufficientFunds
		return res, nil
	}

	if rule.MaxPurchase > 0 {
		bought, err := e.sessions.BoughtCount(p.ID(), rule.Key)
		if err != nil {
			return Result{}, err
		}
		if bought >= rule.MaxPurchase {
			res.Outcome = OutcomeLimitReached
			res.Purchased = bought
			return res, nil
		}

		res.Purchased, err = e.sessions.RecordPurchase(p.ID(), rule.Key)
		if err != nil {
			return Result{}, err
		}
	}

	e.replaceSlotItem(p, rule)
	p.GiveItem(rule.ItemID)
	p.SetMoney(money - rule.Price)

	if e.settings.CooldownEnabled() {
		if err := e.armCooldown(p.ID()); err != nil {
			return Result{}, err
		}
	}

	e.log.Debug("weapon purchased",
		zap.String("player", p.ID()),
		zap.String("weapon", rule.Key),
		zap.Int("price", rule.Price),
		zap.Int("balance", money-rule.Price),
	)

	res.Outcome = OutcomePurchased
	return res, nil
}

// replaceSlotItem strips the first held item whose identifier belongs to
// any rule sharing the purchased rule's slot. At most one item is removed;
// the new weapon replaces whatever occupied its slot.
func (e *Engine) replaceSlotItem(p host.Player, rule *catalog.Rule) {
	slotItems := e.catalog.SlotItems(rule.Slot)
	if len(slotItems) == 0 {
		return
	}

	inSlot := make(map[string]bool, len(slotItems))
	for _, id := range slotItems {
		inSlot[id] = true
	}

	for _, item := range p.HeldItems() {
		if inSlot[item.Identifier()] {
			item.Remove()
			return
		}
	}
}

// armCooldown sets the player's cooldown flag and schedules the deferred
// clear. The timer captures the session token, not the live player handle,
// so it becomes a no-op if the player disconnects or reconnects before it
// fires.
func (e *Engine) armCooldown(playerID string) error {
	token, err := e.sessions.ArmCooldown(playerID)
	if err != nil {
		return err
	}

	e.host.ScheduleAfter(e.settings.CooldownDuration(), func() {
		if !e.sessions.ClearCooldown(playerID, token) {
			e.log.Debug("cooldown clear skipped for stale session",
				zap.String("player", playerID),
			)
		}
	})
	return nil
}
