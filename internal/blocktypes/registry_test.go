package blocktypes

import "testing"

func TestNewRegistry_LoadsEmbeddedKinds(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	known := []string{
		TypeParagraph, TypeHeading1, TypeHeading2, TypeHeading3,
		TypeBulletList, TypeNumberedList, TypeTodo,
	}
	for _, typ := range known {
		if !registry.Valid(typ) {
			t.Errorf("Valid(%q) = false, want true", typ)
		}
	}
	if registry.Valid("callout") {
		t.Error("Valid(callout) = true, want false")
	}
	if registry.Valid("") {
		t.Error("Valid(\"\") = true, want false")
	}
	if got := len(registry.Types()); got != len(known) {
		t.Errorf("Types() has %d kinds, want %d", got, len(known))
	}
}

func TestRegistry_TodoInterpretsChecked(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}

	if !registry.HasProperty(TypeTodo, PropChecked) {
		t.Error("todo should interpret the checked property")
	}
	if registry.HasProperty(TypeParagraph, PropChecked) {
		t.Error("paragraph should not interpret checked")
	}

	kind, ok := registry.Kind(TypeTodo)
	if !ok {
		t.Fatal("Kind(todo) not found")
	}
	if kind.Properties[PropChecked] != "bool" {
		t.Errorf("checked value kind = %q, want bool", kind.Properties[PropChecked])
	}
}
