// Package purchase implements the weapon purchase decision and mutation
// engine: eligibility checks, economy and inventory side effects, and the
// deferred cooldown clear.
package purchase

// Outcome classifies the result of a purchase attempt. The six rejection
// outcomes and Purchased are the complete output alphabet; every rejection
// leaves player money, inventory, and purchase counts untouched.
type Outcome int

const (
	// OutcomePurchased means the purchase succeeded and all side effects ran.
	OutcomePurchased Outcome = iota
	// OutcomeUnknownWeapon means the requested key is not in the catalog.
	OutcomeUnknownWeapon
	// OutcomeNotAlive means the player is not in an alive state.
	OutcomeNotAlive
	// OutcomeRestricted means the weapon's rule forbids purchase.
	OutcomeRestricted
	// OutcomeOnCooldown means the player's purchase cooldown is armed.
	OutcomeOnCooldown
	// OutcomeInsufficientFunds means the player cannot afford the price.
	OutcomeInsufficientFunds
	// OutcomeLimitReached means the per-life purchase limit is exhausted.
	OutcomeLimitReached
)

// String returns the snake_case name of the outcome (used as a metric label).
func (o Outcome) String() string {
	switch o {
	case OutcomePurchased:
		return "purchased"
	case OutcomeUnknownWeapon:
		return "unknown_weapon"
	case OutcomeNotAlive:
		return "not_alive"
	case OutcomeRestricted:
		return "restricted"
	case OutcomeOnCooldown:
		return "on_cooldown"
	case OutcomeInsufficientFunds:
		return "insufficient_funds"
	case OutcomeLimitReached:
		return "limit_reached"
	default:
		return "unknown"
	}
}

// Result carries the outcome of a purchase attempt plus the data needed to
// render a user-facing message.
type Result struct {
	// Outcome classifies the attempt.
	Outcome Outcome
	// WeaponKey is the catalog key the attempt resolved to (the raw
	// requested key for OutcomeUnknownWeapon).
	WeaponKey string
	// Purchased is the player's purchase count for this weapon after the
	// attempt. Only meaningful when Limit > 0.
	Purchased int
	// Limit is the rule's per-life purchase limit; 0 means unlimited.
	Limit int
}
