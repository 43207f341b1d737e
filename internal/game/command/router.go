// Package command routes chat/console trigger tokens to catalog weapon
// keys and registers those triggers with the host engine.
package command

import (
	"sync"

	"go.uber.org/zap"

	"github.com/oylsister/buycmd/internal/game/catalog"
	"github.com/oylsister/buycmd/internal/host"
)

// Router maps trigger aliases to weapon keys.
type Router struct {
	log     *zap.Logger
	aliases map[string]string // trigger → weapon key
	order   []string          // triggers in deterministic registration order

	mu         sync.Mutex
	registered bool
}

// NewRouter builds a Router from the catalog. Rules are walked in sorted
// key order, so resolution is deterministic even when two rules claim the
// same alias: the first rule wins and the collision is logged, not fixed.
//
// Precondition: cat and log must be non-nil.
func NewRouter(cat *catalog.Catalog, log *zap.Logger) *Router {
	r := &Router{
		log:     log,
		aliases: make(map[string]string),
	}

	for _, key := range cat.Keys() {
		rule, _ := cat.Rule(key)
		for _, alias := range rule.Commands {
			if owner, taken := r.aliases[alias]; taken {
				log.Warn("duplicate trigger alias",
					zap.String("alias", alias),
					zap.String("owner", owner),
					zap.String("ignored", key),
				)
				continue
			}
			r.aliases[alias] = key
			r.order = append(r.order, alias)
		}
	}

	return r
}

// Resolve returns the weapon key owning the trigger token.
//
// Postcondition: Returns (key, true) if a rule claims the trigger, or ("", false).
func (r *Router) Resolve(trigger string) (string, bool) {
	key, ok := r.aliases[trigger]
	return key, ok
}

// Triggers returns every registered trigger in registration order.
func (r *Router) Triggers() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Register binds every trigger to handler via the host, once per process.
// Calling it again is a no-op: commands registered with the host cannot be
// rebound, so a reload keeps the original registrations.
//
// Precondition: h and handler must be non-nil.
// Postcondition: Each trigger is registered with the host at most once.
func (r *Router) Register(h host.Host, handler host.CommandHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.registered {
		r.log.Warn("purchase triggers already registered; skipping")
		return
	}

	for _, trigger := range r.order {
		h.RegisterCommand(trigger, handler)
	}
	r.registered = true

	r.log.Info("purchase triggers registered",
		zap.Int("count", len(r.order)),
	)
}
