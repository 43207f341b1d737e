// Package catalog holds the immutable weapon purchase rule set and the
// global purchase settings. A Catalog is built once at load time and is
// never mutated by any purchase path.
package catalog

import (
	"sort"
	"time"
)

// Rule describes one purchasable weapon.
type Rule struct {
	// Key is the unique catalog identifier for this rule.
	Key string
	// Commands are the chat/console trigger aliases that invoke this rule.
	Commands []string
	// ItemID is the engine entity name granted on purchase.
	ItemID string
	// Slot is the equipment slot; rules sharing a slot are mutually
	// exclusive at purchase time.
	Slot int
	// Price is the non-negative purchase cost.
	Price int
	// MaxPurchase bounds purchases per life; 0 means unlimited.
	MaxPurchase int
	// Restricted blocks purchase of this weapon entirely.
	Restricted bool
}

// Settings holds global purchase tuning.
type Settings struct {
	// Cooldown is the post-purchase lockout in seconds; 0 disables it.
	Cooldown float64
}

// CooldownEnabled reports whether the purchase cooldown is active.
func (s Settings) CooldownEnabled() bool {
	return s.Cooldown > 0
}

// CooldownDuration returns the cooldown as a time.Duration.
//
// Postcondition: Returns 0 when the cooldown is disabled.
func (s Settings) CooldownDuration() time.Duration {
	if !s.CooldownEnabled() {
		return 0
	}
	return time.Duration(s.Cooldown * float64(time.Second))
}

// AliasCollision records a trigger alias claimed by more than one rule.
type AliasCollision struct {
	// Alias is the colliding trigger token.
	Alias string
	// Keys are the rule keys claiming the alias, in catalog order.
	// The first entry wins resolution.
	Keys []string
}

// Catalog is the immutable rule set, iterated in sorted key order.
type Catalog struct {
	rules map[string]*Rule
	keys  []string
}

// New builds a Catalog from the given rules. Each Rule's Key field is set
// from its map key.
//
// Precondition: rules may be nil or empty (an empty catalog is valid).
// Postcondition: Keys() returns the rule keys in sorted order.
func New(rules map[string]Rule) *Catalog {
	c := &Catalog{
		rules: make(map[string]*Rule, len(rules)),
		keys:  make([]string, 0, len(rules)),
	}
	for key, rule := range rules {
		rule.Key = key
		r := rule
		c.rules[key] = &r
		c.keys = append(c.keys, key)
	}
	sort.Strings(c.keys)
	return c
}

// Rule returns the rule for the given weapon key.
//
// Postcondition: Returns (rule, true) if found, or (nil, false). The
// returned rule must be treated as read-only.
func (c *Catalog) Rule(key string) (*Rule, bool) {
	r, ok := c.rules[key]
	return r, ok
}

// Keys returns all rule keys in sorted order.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of rules.
func (c *Catalog) Len() int {
	return len(c.rules)
}

// Empty reports whether the catalog has no rules.
func (c *Catalog) Empty() bool {
	return len(c.rules) == 0
}

// SlotItems returns the item identifiers of every rule occupying the given
// slot, in sorted key order. The purchase engine uses this set to strip a
// held item when a new weapon claims the slot.
func (c *Catalog) SlotItems(slot int) []string {
	var items []string
	for _, key := range c.keys {
		if r := c.rules[key]; r.Slot == slot {
			items = append(items, r.ItemID)
		}
	}
	return items
}

// AliasCollisions returns every trigger alias claimed by more than one
// rule. The source format does not forbid duplicates; resolution is
// deterministic (first rule in sorted key order wins) and callers are
// expected to surface collisions as load-time warnings.
//
// Postcondition: Collisions are sorted by alias; Keys within each
// collision follow sorted rule-key order.
func (c *Catalog) AliasCollisions() []AliasCollision {
	owners := make(map[string][]string)
	for _, key := range c.keys {
		for _, alias := range c.rules[key].Commands {
			owners[alias] = append(owners[alias], key)
		}
	}

	var collisions []AliasCollision
	for alias, keys := range owners {
		if len(keys) > 1 {
			collisions = append(collisions, AliasCollision{Alias: alias, Keys: keys})
		}
	}
	sort.Slice(collisions, func(i, j int) bool {
		return collisions[i].Alias < collisions[j].Alias
	})
	return collisions
}
