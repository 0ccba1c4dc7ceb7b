package aliases

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveIdentityAndAlias(t *testing.T) {
	b := NewBuilder()
	b.RegisterCanonical("gen")
	if err := b.AddAlias("Gen", "gen"); err != nil {
		t.Fatalf("AddAlias() error = %v", err)
	}
	r := b.Build()

	for _, alias := range []string{"Gen", "gen"} {
		key, err := r.Resolve(alias)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", alias, err)
		}
		if key != "gen" {
			t.Errorf("Resolve(%q) = %q, want %q", alias, key, "gen")
		}
	}

	for _, a := range r.AliasesOf("gen") {
		if a == "gen" {
			t.Errorf("AliasesOf(gen) contains the identity entry: %v", r.AliasesOf("gen"))
		}
	}
}

func TestResolveIsCaseSensitive(t *testing.T) {
	b := NewBuilder()
	b.RegisterCanonical("gen")
	r := b.Build()
	if _, err := r.Resolve("GEN"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Resolve(GEN) error = %v, want ErrNotFound", err)
	}
	if r.Contains("GEN") {
		t.Error("Contains(GEN) = true, want false")
	}
	if !r.Contains("gen") {
		t.Error("Contains(gen) = false, want true")
	}
}

func TestAliasesOfKeepsInsertionOrder(t *testing.T) {
	b := NewBuilder()
	b.RegisterCanonical("jhn")
	for _, a := range []string{"Jana", "jana", "J", "j", "Ewangelia Jana"} {
		if err := b.AddAlias(a, "jhn"); err != nil {
			t.Fatalf("AddAlias(%q) error = %v", a, err)
		}
	}
	// repeating a pair is a no-op
	if err := b.AddAlias("J", "jhn"); err != nil {
		t.Fatalf("AddAlias(J) second time error = %v", err)
	}
	r := b.Build()
	want := []string{"Jana", "jana", "J", "j", "Ewangelia Jana"}
	if got := r.AliasesOf("jhn"); !reflect.DeepEqual(got, want) {
		t.Errorf("AliasesOf(jhn) = %v, want %v", got, want)
	}
	if got := r.AliasesOf("nope"); len(got) != 0 {
		t.Errorf("AliasesOf(nope) = %v, want empty", got)
	}
}

func TestAliasesOfReturnsCopy(t *testing.T) {
	b := NewBuilder()
	b.RegisterCanonical("rom")
	_ = b.AddAlias("Rz", "rom")
	r := b.Build()
	got := r.AliasesOf("rom")
	got[0] = "mutated"
	if r.AliasesOf("rom")[0] != "Rz" {
		t.Error("AliasesOf exposed internal state")
	}
}

func TestAddAliasErrors(t *testing.T) {
	b := NewBuilder()
	b.RegisterCanonical("gen")
	b.RegisterCanonical("exo")

	if err := b.AddAlias("Gen", "nope"); !errors.Is(err, ErrUnknownCanonicalKey) {
		t.Errorf("AddAlias to unregistered key error = %v, want ErrUnknownCanonicalKey", err)
	}
	if err := b.AddAlias("rdz", "gen"); err != nil {
		t.Fatalf("AddAlias(rdz) error = %v", err)
	}
	if err := b.AddAlias("rdz", "exo"); !errors.Is(err, ErrAliasConflict) {
		t.Errorf("AddAlias conflicting error = %v, want ErrAliasConflict", err)
	}
	// identity entries can't be re-pointed either
	if err := b.AddAlias("gen", "exo"); !errors.Is(err, ErrAliasConflict) {
		t.Errorf("AddAlias(gen -> exo) error = %v, want ErrAliasConflict", err)
	}
}

func TestRegisterCanonicalIdempotent(t *testing.T) {
	b := NewBuilder()
	b.RegisterCanonical("gen")
	_ = b.AddAlias("Rdz", "gen")
	b.RegisterCanonical("gen")
	r := b.Build()
	if got := r.AliasesOf("gen"); len(got) != 1 {
		t.Errorf("second RegisterCanonical reset aliases: %v", got)
	}
	if r.Keys() != 1 {
		t.Errorf("Keys() = %d, want 1", r.Keys())
	}
}

func TestBuilderFrozenAfterBuild(t *testing.T) {
	b := NewBuilder()
	b.RegisterCanonical("gen")
	b.Build()
	defer func() {
		if recover() == nil {
			t.Error("AddAlias after Build did not panic")
		}
	}()
	_ = b.AddAlias("Gen", "gen")
}
