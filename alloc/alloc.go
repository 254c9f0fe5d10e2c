// Package alloc implements the static resource allocation managers used
// during profile lowering. A manager assigns stable, dense integer addresses
// to logical resource handles in first-use order over a single scan of a
// compilation unit.
package alloc

import (
	"github.com/qadapt-io/qadapt/errz"
)

// Handle identifies a logical resource as first observed in the instruction
// stream. Handles have value semantics; any comparable key works, typically
// the allocating instruction's identity or an interned name.
type Handle any

// Manager maps logical resource handles to dense zero-based addresses.
// Addresses are append-only for the lifetime of a compilation unit: once
// assigned, a handle's address never changes and is never reused.
type Manager struct {
	kind      string
	addresses map[Handle]int64
	next      int64
	limit     int64 // 0 means unbounded
}

// Option configures a Manager.
type Option func(*Manager)

// WithLimit imposes an upper bound on the number of addresses the manager
// may issue, reflecting a profile's static resource bound. Zero means
// unbounded.
func WithLimit(n int64) Option {
	return func(m *Manager) {
		m.limit = n
	}
}

// New creates a Manager for the named resource kind ("qubit", "result").
// The kind appears in resource exhaustion diagnostics.
func New(kind string, opts ...Option) *Manager {
	m := &Manager{
		kind:      kind,
		addresses: map[Handle]int64{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Allocate returns the address for the given handle, assigning the next
// unused address on first use. Calling Allocate twice with the same handle
// returns the same address.
func (m *Manager) Allocate(h Handle) (int64, error) {
	if addr, ok := m.addresses[h]; ok {
		return addr, nil
	}
	if m.limit > 0 && m.next >= m.limit {
		return 0, errz.Newf(errz.ErrResourceExhausted, errz.SourceLocation{},
			"static %s limit of %d exceeded", m.kind, m.limit)
	}
	addr := m.next
	m.addresses[h] = addr
	m.next++
	return addr, nil
}

// Lookup returns the address previously assigned to the handle, without
// allocating.
func (m *Manager) Lookup(h Handle) (int64, bool) {
	addr, ok := m.addresses[h]
	return addr, ok
}

// Count returns one plus the highest address issued, i.e. the number of
// static resources the lowered program requires.
func (m *Manager) Count() int64 {
	return m.next
}

// Kind returns the resource kind the manager was created for.
func (m *Manager) Kind() string {
	return m.kind
}

// Limit returns the configured upper bound, zero meaning unbounded.
func (m *Manager) Limit() int64 {
	return m.limit
}
