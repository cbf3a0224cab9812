package features

import (
	"log/slog"
	"sync"
)

// Layer names the resolution layer that supplied a flag's current value.
type Layer uint8

const (
	LayerDefault Layer = iota
	LayerEnv
	LayerPersisted
	LayerRuntime
)

func (l Layer) String() string {
	switch l {
	case LayerDefault:
		return "default"
	case LayerEnv:
		return "env"
	case LayerPersisted:
		return "stored"
	case LayerRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Listener is called after a flag changes value.
type Listener func(k Key, enabled bool)

// Options configures NewContext.
type Options struct {
	// Env supplies environment overrides. The zero value reads the process
	// environment with DefaultEnvPrefix.
	Env EnvResolver
	// Store supplies persisted overrides and receives every mutation.
	// Nil disables persistence.
	Store  *Store
	Logger *slog.Logger
}

// Context owns the effective flag map for a session. Reads and mutations
// are safe for concurrent use; consumers never touch the map directly.
type Context struct {
	mu      sync.RWMutex
	saveMu  sync.Mutex
	flags   Map
	source  [numKeys]Layer
	env     Partial
	store   *Store
	logger  *slog.Logger
	saveErr error

	subs   map[int]subscription
	nextID int
}

type subscription struct {
	key Key
	all bool
	fn  Listener
}

// NewContext resolves defaults, then environment overrides, then persisted
// overrides, and returns a Context holding the result. It never fails:
// unreadable storage is logged and treated as holding no overrides.
func NewContext(opts Options) *Context {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	resolver := opts.Env
	if resolver.Prefix == "" {
		resolver.Prefix = DefaultEnvPrefix
	}

	c := &Context{
		env:    resolver.Resolve(),
		store:  opts.Store,
		logger: logger,
		subs:   make(map[int]subscription),
	}
	c.flags, c.source = c.resolve(c.loadPersisted())
	logger.Debug("feature flags resolved", "flags", c.flags.String())
	return c
}

// loadPersisted applies the fail-soft policy to Store.Load.
func (c *Context) loadPersisted() Partial {
	if c.store == nil {
		return Partial{}
	}
	res := c.store.Load()
	if !res.OK() {
		c.logger.Warn("ignoring persisted feature flags", "err", res.Err)
		return Partial{}
	}
	if len(res.Unknown) > 0 {
		c.logger.Debug("dropping unknown persisted feature flags", "names", res.Unknown)
	}
	return res.Flags
}

func (c *Context) resolve(persisted Partial) (Map, [numKeys]Layer) {
	var source [numKeys]Layer
	for k := range c.env {
		source[k] = LayerEnv
	}
	for k := range persisted {
		if k.Valid() {
			source[k] = LayerPersisted
		}
	}
	return Resolve(Defaults(), c.env, persisted), source
}

// IsEnabled reports whether k is currently on. An invalid key reads as off.
func (c *Context) IsEnabled(k Key) bool {
	if !k.Valid() {
		c.logger.Error("feature flag lookup with invalid key", "key", uint8(k))
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.flags[k]
}

// Enable turns k on.
func (c *Context) Enable(k Key) {
	c.set(k, func(bool) bool { return true })
}

// Disable turns k off.
func (c *Context) Disable(k Key) {
	c.set(k, func(bool) bool { return false })
}

// Toggle flips k and returns its new value.
func (c *Context) Toggle(k Key) bool {
	return c.set(k, func(v bool) bool { return !v })
}

// Set turns k on or off.
func (c *Context) Set(k Key, enabled bool) {
	c.set(k, func(bool) bool { return enabled })
}

// set updates k, notifies listeners, then writes the whole map through to
// the store.
func (c *Context) set(k Key, next func(bool) bool) bool {
	if !k.Valid() {
		c.logger.Error("feature flag mutation with invalid key", "key", uint8(k))
		return false
	}

	c.mu.Lock()
	old := c.flags[k]
	v := next(old)
	c.flags[k] = v
	c.source[k] = LayerRuntime
	listeners := c.listenersLocked(k)
	c.mu.Unlock()

	if v != old {
		for _, fn := range listeners {
			fn(k, v)
		}
	}
	c.persist()
	return v
}

// persist writes the current map. Writes are serialized and each one reads
// the map afresh, so the last write always holds the latest state.
func (c *Context) persist() {
	if c.store == nil {
		return
	}
	c.saveMu.Lock()
	defer c.saveMu.Unlock()
	err := c.store.Save(c.Snapshot())
	if err != nil {
		c.logger.Warn("feature flags not persisted", "err", err)
	}
	c.mu.Lock()
	c.saveErr = err
	c.mu.Unlock()
}

func (c *Context) listenersLocked(k Key) []Listener {
	var fns []Listener
	for id := 0; id < c.nextID; id++ {
		s, ok := c.subs[id]
		if ok && (s.all || s.key == k) {
			fns = append(fns, s.fn)
		}
	}
	return fns
}

// Snapshot returns a copy of the effective map.
func (c *Context) Snapshot() Map {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.flags
}

// Source returns the layer that supplied k's current value.
func (c *Context) Source(k Key) Layer {
	if !k.Valid() {
		return LayerDefault
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source[k]
}

// EnvOverrides returns the environment layer computed at construction.
func (c *Context) EnvOverrides() Partial {
	out := make(Partial, len(c.env))
	for k, v := range c.env {
		out[k] = v
	}
	return out
}

// LastSaveError returns the error from the most recent write-through, or
// nil if it succeeded or nothing has been written yet.
func (c *Context) LastSaveError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.saveErr
}

// Reset discards persisted overrides and runtime changes, returning every
// flag to its default or environment value.
func (c *Context) Reset() {
	var clearErr error
	if c.store != nil {
		c.saveMu.Lock()
		clearErr = c.store.Clear()
		c.saveMu.Unlock()
		if clearErr != nil {
			c.logger.Warn("feature flag reset not persisted", "err", clearErr)
		}
	}

	c.mu.Lock()
	if c.store != nil {
		c.saveErr = clearErr
	}
	old := c.flags
	c.flags, c.source = c.resolve(nil)
	var changed []Key
	for i := range c.flags {
		if c.flags[i] != old[i] {
			changed = append(changed, Key(i))
		}
	}
	type notice struct {
		key Key
		v   bool
		fns []Listener
	}
	notices := make([]notice, 0, len(changed))
	for _, k := range changed {
		notices = append(notices, notice{key: k, v: c.flags[k], fns: c.listenersLocked(k)})
	}
	c.mu.Unlock()

	for _, n := range notices {
		for _, fn := range n.fns {
			fn(n.key, n.v)
		}
	}
}

// Subscribe registers fn to run after k changes. The returned function
// removes the subscription.
func (c *Context) Subscribe(k Key, fn Listener) func() {
	return c.subscribe(subscription{key: k, fn: fn})
}

// SubscribeAll registers fn to run after any flag changes.
func (c *Context) SubscribeAll(fn Listener) func() {
	return c.subscribe(subscription{all: true, fn: fn})
}

func (c *Context) subscribe(s subscription) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = s
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}
