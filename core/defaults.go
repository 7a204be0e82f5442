package core

import "sync"

const DefaultDeniedRoute = "/"

// Defaults is the process-wide mutable engine state: default permissions,
// the global override strategy, the default access policy and the fallback
// denial target. A single instance is shared by reference across the
// resolver, decision and gate services.
type Defaults struct {
	mu          sync.RWMutex
	permissions Document
	override    OverrideFunc
	access      bool
	deniedRoute string
	debug       bool
}

func NewDefaults() *Defaults {
	return &Defaults{
		deniedRoute: DefaultDeniedRoute,
	}
}

// Permissions returns the default permissions value, which may be a static
// document, a source identifier, or nil when unset.
func (d *Defaults) Permissions() Document {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.permissions
}

func (d *Defaults) SetPermissions(doc Document) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.permissions = doc
}

// Override returns the global override strategy, or ErrorOverrideNotSet
// when none is configured.
func (d *Defaults) Override() (OverrideFunc, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.override == nil {
		return nil, NewErrorOverrideNotSet()
	}
	return d.override, nil
}

// SetOverride installs the global override strategy. Passing nil clears it.
func (d *Defaults) SetOverride(fn OverrideFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.override = fn
}

// Access returns the default access policy consulted when no query, no
// override and no structural match apply.
func (d *Defaults) Access() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.access
}

func (d *Defaults) SetAccess(allow bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.access = allow
}

// DeniedRoute returns the fallback denial target used when a denied route
// carries no target of its own.
func (d *Defaults) DeniedRoute() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.deniedRoute
}

func (d *Defaults) SetDeniedRoute(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if path == "" {
		path = DefaultDeniedRoute
	}
	d.deniedRoute = path
}

func (d *Defaults) Debug() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.debug
}

func (d *Defaults) SetDebug(enable bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.debug = enable
}
