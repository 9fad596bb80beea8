package ldoc

import "testing"

func TestObjectPreservesInsertionOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("b", String("1"))
	obj.Set("a", String("2"))
	obj.Set("c", String("3"))

	got := obj.Keys()
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
	}
}

func TestObjectRedefinitionKeepsPosition(t *testing.T) {
	obj := NewObject()
	obj.Set("a", String("1"))
	obj.Set("b", String("2"))
	obj.Set("a", String("3"))

	got := obj.Keys()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b]", got)
	}
	v, _ := obj.Get("a")
	if v != String("3") {
		t.Fatalf("Get(a) = %v, want 3", v)
	}
}

func TestObjectDelete(t *testing.T) {
	obj := NewObject()
	obj.Set("a", String("1"))
	obj.Set("b", String("2"))
	obj.Delete("a")

	if obj.Has("a") {
		t.Fatal("expected a to be deleted")
	}
	if obj.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", obj.Len())
	}
	if got := obj.Keys(); len(got) != 1 || got[0] != "b" {
		t.Fatalf("Keys() = %v, want [b]", got)
	}
}

func TestObjectCloneIsIndependent(t *testing.T) {
	obj := NewObject()
	obj.Set("a", String("1"))
	clone := obj.Clone()
	clone.Set("b", String("2"))

	if obj.Has("b") {
		t.Fatal("mutating the clone should not affect the original")
	}
	if !clone.Has("a") || !clone.Has("b") {
		t.Fatal("clone should carry the original keys plus its own additions")
	}
}

func TestIsNull(t *testing.T) {
	cases := []struct {
		name string
		node Node
		want bool
	}{
		{"nil interface", nil, true},
		{"Null value", Null{}, true},
		{"empty string", String(""), false},
		{"zero number", Number(0), false},
		{"false bool", Bool(false), false},
	}
	for _, c := range cases {
		if got := IsNull(c.node); got != c.want {
			t.Errorf("%s: IsNull() = %v, want %v", c.name, got, c.want)
		}
	}
}
