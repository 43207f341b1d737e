// Package plugin wires the catalog, session manager, purchase engine, and
// command router into the host engine: it owns the load path, the
// once-per-process command registration, and the player lifecycle event
// handlers.
package plugin

import (
	"sync"

	"go.uber.org/zap"

	"github.com/oylsister/buycmd/internal/game/catalog"
	"github.com/oylsister/buycmd/internal/game/chat"
	"github.com/oylsister/buycmd/internal/game/command"
	"github.com/oylsister/buycmd/internal/game/purchase"
	"github.com/oylsister/buycmd/internal/game/session"
	"github.com/oylsister/buycmd/internal/host"
	"github.com/oylsister/buycmd/internal/observability"
)

// Plugin is the purchase command subsystem as attached to a host engine.
type Plugin struct {
	log      *zap.Logger
	host     host.Host
	sessions *session.Manager

	mu         sync.Mutex
	catalog    *catalog.Catalog
	settings   catalog.Settings
	engine     *purchase.Engine
	router     *command.Router
	registered bool
}

// New creates a Plugin with an empty catalog. Nothing is purchasable until
// a load succeeds.
//
// Precondition: h and log must be non-nil.
func New(h host.Host, log *zap.Logger) *Plugin {
	p := &Plugin{
		log:      log,
		host:     h,
		sessions: session.NewManager(),
	}
	p.install(catalog.New(nil), catalog.Settings{})
	return p
}

// LoadFile loads the catalog document at path. A missing or malformed file
// is not fatal: the plugin keeps an empty catalog, no trigger ever fires,
// and the error is logged as a warning.
//
// Postcondition: Returns true if the catalog was loaded and installed.
func (p *Plugin) LoadFile(path string) bool {
	cat, settings, err := catalog.LoadFromFile(path)
	if err != nil {
		p.log.Warn("catalog load failed; no weapons are purchasable",
			zap.String("path", path),
			zap.Error(err),
		)
		return false
	}
	p.installAndRegister(cat, settings)
	p.log.Info("catalog loaded",
		zap.String("path", path),
		zap.Int("weapons", cat.Len()),
		zap.Float64("cooldown_seconds", settings.Cooldown),
	)
	return true
}

// LoadBytes loads a JSON catalog document from memory, with the same
// fail-open behavior as LoadFile.
func (p *Plugin) LoadBytes(data []byte) bool {
	cat, settings, err := catalog.LoadFromBytes(data)
	if err != nil {
		p.log.Warn("catalog load failed; no weapons are purchasable",
			zap.Error(err),
		)
		return false
	}
	p.installAndRegister(cat, settings)
	return true
}

// install swaps the active catalog and rebuilds the engine and router.
func (p *Plugin) install(cat *catalog.Catalog, settings catalog.Settings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.catalog = cat
	p.settings = settings
	p.engine = purchase.NewEngine(cat, settings, p.sessions, p.host, p.log)
	p.router = command.NewRouter(cat, p.log)
	for _, col := range cat.AliasCollisions() {
		p.log.Warn("trigger alias claimed by multiple weapons",
			zap.String("alias", col.Alias),
			zap.Strings("weapons", col.Keys),
		)
	}
}

// installAndRegister installs the catalog and, on the first load only,
// registers the triggers with the host. Registration happens at most once
// per process; a reload replaces resolution but cannot bind new triggers.
func (p *Plugin) installAndRegister(cat *catalog.Catalog, settings catalog.Settings) {
	p.install(cat, settings)

	p.mu.Lock()
	alreadyRegistered := p.registered
	router := p.router
	p.mu.Unlock()

	if alreadyRegistered {
		p.log.Warn("catalog reloaded after command registration; new triggers will not be bound")
		return
	}
	if cat.Empty() {
		return
	}

	router.Register(p.host, p.HandleTrigger)

	p.mu.Lock()
	p.registered = true
	p.mu.Unlock()
}

// HandleTrigger is the command callback bound to every trigger alias. It
// resolves the trigger against the current catalog, runs the purchase
// engine, records the outcome metric, and sends the outcome message.
func (p *Plugin) HandleTrigger(pl host.Player, trigger string) {
	p.mu.Lock()
	router := p.router
	engine := p.engine
	p.mu.Unlock()

	weaponKey, ok := router.Resolve(trigger)
	if !ok {
		return
	}

	res, err := engine.AttemptPurchase(pl, weaponKey)
	if err != nil {
		p.log.Error("purchase invariant violated",
			zap.String("player", pl.ID()),
			zap.String("trigger", trigger),
			zap.Error(err),
		)
		return
	}

	observability.PurchaseOutcomes.WithLabelValues(res.Outcome.String(), res.WeaponKey).Inc()
	pl.SendMessage(chat.Render(res))
}

// OnPlayerConnect creates purchase state for a newly connected player.
// A duplicate connect is an event ordering bug and is logged loudly.
func (p *Plugin) OnPlayerConnect(pl host.Player) {
	if _, err := p.sessions.Connect(pl.ID()); err != nil {
		p.log.Error("player connect with existing purchase state",
			zap.String("player", pl.ID()),
			zap.Error(err),
		)
		return
	}
	observability.ConnectedPlayers.Inc()
	p.log.Debug("purchase state created", zap.String("player", pl.ID()))
}

// OnPlayerSpawn clears the player's purchase history for the new life.
// The cooldown flag is left armed; only its timer clears it.
func (p *Plugin) OnPlayerSpawn(pl host.Player) {
	if err := p.sessions.ClearHistory(pl.ID()); err != nil {
		p.log.Error("spawn for player without purchase state",
			zap.String("player", pl.ID()),
			zap.Error(err),
		)
	}
}

// OnPlayerDisconnect discards the player's purchase state. Unpaired
// disconnects are tolerated.
func (p *Plugin) OnPlayerDisconnect(pl host.Player) {
	if p.sessions.Disconnect(pl.ID()) {
		observability.ConnectedPlayers.Dec()
		p.log.Debug("purchase state removed", zap.String("player", pl.ID()))
	}
}

// Sessions exposes the session manager (for the console host and tests).
func (p *Plugin) Sessions() *session.Manager {
	return p.sessions
}

// Catalog returns the active catalog.
func (p *Plugin) Catalog() *catalog.Catalog {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.catalog
}

// Settings returns the active purchase settings.
func (p *Plugin) Settings() catalog.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}
