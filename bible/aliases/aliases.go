// Package aliases maps the many spellings of a book name (abbreviations,
// full names, localized forms) to a single canonical key, and back.
//
// A Resolver is assembled with a Builder during startup and is read-only
// afterwards, so it can be shared between goroutines without locking.
package aliases

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Resolve for an alias that was never added.
	ErrNotFound = errors.New("alias not found")
	// ErrUnknownCanonicalKey is returned by AddAlias when the target key
	// was never registered with RegisterCanonical.
	ErrUnknownCanonicalKey = errors.New("unknown canonical key")
	// ErrAliasConflict is returned by AddAlias when the alias already
	// resolves to a different canonical key.
	ErrAliasConflict = errors.New("alias already points at another key")
)

// Builder collects canonical keys and aliases. The zero value is not usable;
// call NewBuilder.
type Builder struct {
	forward map[string]string   // alias -> canonical key
	reverse map[string][]string // canonical key -> aliases, insertion order
	built   bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		forward: make(map[string]string),
		reverse: make(map[string][]string),
	}
}

// RegisterCanonical adds key as an alias of itself. Registering the same key
// twice is a no-op.
func (b *Builder) RegisterCanonical(key string) {
	if b.built {
		panic("aliases: RegisterCanonical called after Build")
	}
	if _, ok := b.reverse[key]; ok {
		return
	}
	b.forward[key] = key
	b.reverse[key] = nil
}

// AddAlias records that alias resolves to key. The alias is stored exactly
// as given; callers normalize case before calling Resolve.
func (b *Builder) AddAlias(alias, key string) error {
	if b.built {
		panic("aliases: AddAlias called after Build")
	}
	if _, ok := b.reverse[key]; !ok {
		return fmt.Errorf("adding alias %q: %w: %q", alias, ErrUnknownCanonicalKey, key)
	}
	if existing, ok := b.forward[alias]; ok {
		if existing == key {
			return nil
		}
		return fmt.Errorf("adding alias %q for %q: %w (%q)", alias, key, ErrAliasConflict, existing)
	}
	b.forward[alias] = key
	b.reverse[key] = append(b.reverse[key], alias)
	return nil
}

// Build freezes the Builder and returns the Resolver. The Builder can't be
// modified afterwards.
func (b *Builder) Build() *Resolver {
	b.built = true
	return &Resolver{forward: b.forward, reverse: b.reverse}
}

// Resolver answers alias lookups. It is immutable.
type Resolver struct {
	forward map[string]string
	reverse map[string][]string
}

// Resolve returns the canonical key for alias. The lookup is exact and
// case-sensitive.
func (r *Resolver) Resolve(alias string) (string, error) {
	key, ok := r.forward[alias]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, alias)
	}
	return key, nil
}

// Contains reports whether alias resolves to any key.
func (r *Resolver) Contains(alias string) bool {
	_, ok := r.forward[alias]
	return ok
}

// AliasesOf returns every alias added for key, in the order they were added.
// The identity entry created by RegisterCanonical is not included. The
// returned slice is a copy.
func (r *Resolver) AliasesOf(key string) []string {
	list := r.reverse[key]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Keys returns the number of canonical keys known to the resolver.
func (r *Resolver) Keys() int {
	return len(r.reverse)
}
