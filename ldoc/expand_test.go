package ldoc

import (
	"errors"
	"testing"
)

func ctxFrom(terms map[string]TermDefinition) ActiveContext {
	return ActiveContext{Terms: terms}
}

func mustExpand(t *testing.T, node Node, ctx ActiveContext) Node {
	t.Helper()
	got, err := Expand(node, ctx, "")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	return got
}

func objGet(t *testing.T, n Node, key string) Node {
	t.Helper()
	obj, ok := n.(*Object)
	if !ok {
		t.Fatalf("expected *Object, got %T (%v)", n, n)
	}
	v, ok := obj.Get(key)
	if !ok {
		t.Fatalf("expected key %q in %v", key, obj.Keys())
	}
	return v
}

// S1: IRI expansion via term.
func TestExpandTermToIRI(t *testing.T) {
	ctx := ctxFrom(map[string]TermDefinition{"name": {ID: "http://schema.org/name"}})
	input := NewObject().Set("name", String("A"))

	got := mustExpand(t, input, ctx)
	arr, ok := objGet(t, got, "http://schema.org/name").(Array)
	if !ok || len(arr) != 1 {
		t.Fatalf("http://schema.org/name = %v, want a one-element array", got)
	}
	val := objGet(t, arr[0], keyValue)
	if val != String("A") {
		t.Fatalf("@value = %v, want A", val)
	}
}

// S2: typed literal.
func TestExpandTypedLiteral(t *testing.T) {
	ctx := ctxFrom(map[string]TermDefinition{
		"age": {ID: "http://e/age", Type: "http://w/int"},
		"ex":  {ID: "http://e/"},
		"xsd": {ID: "http://w/"},
	})
	input := NewObject().Set("age", Number(30))

	got := mustExpand(t, input, ctx)
	arr := objGet(t, got, "http://e/age").(Array)
	if len(arr) != 1 {
		t.Fatalf("expected one element, got %v", arr)
	}
	valObj := arr[0].(*Object)
	if v, _ := valObj.Get(keyValue); v != Number(30) {
		t.Fatalf("@value = %v, want 30", v)
	}
	if ty, _ := valObj.Get(keyType); ty != String("http://w/int") {
		t.Fatalf("@type = %v, want http://w/int", ty)
	}
}

// S3: identifier coercion.
func TestExpandIdentifierCoercion(t *testing.T) {
	ctx := ctxFrom(map[string]TermDefinition{
		"knows": {ID: "http://e/knows", Type: TypeIdentifier},
		"ex":    {ID: "http://e/"},
	})
	input := NewObject().Set("knows", String("http://p/bob"))

	got := mustExpand(t, input, ctx)
	arr := objGet(t, got, "http://e/knows").(Array)
	idObj := arr[0].(*Object)
	if id, _ := idObj.Get(keyID); id != String("http://p/bob") {
		t.Fatalf("@id = %v, want http://p/bob", id)
	}
	if idObj.Len() != 1 {
		t.Fatalf("identifier object should carry only @id, got %v", idObj.Keys())
	}
}

// S4: list container.
func TestExpandListContainer(t *testing.T) {
	ctx := ctxFrom(map[string]TermDefinition{
		"tags": {ID: "http://e/tags", Container: "list"},
		"ex":   {ID: "http://e/"},
	})
	input := NewObject().Set("tags", Array{String("x"), String("y")})

	got := mustExpand(t, input, ctx)
	arr := objGet(t, got, "http://e/tags").(Array)
	if len(arr) != 1 {
		t.Fatalf("expected the tags array wrapped as a single list object, got %v", arr)
	}
	listObj := arr[0].(*Object)
	listVal, ok := listObj.Get(keyList)
	if !ok {
		t.Fatalf("expected @list, got %v", listObj.Keys())
	}
	items := listVal.(Array)
	if len(items) != 2 {
		t.Fatalf("expected 2 list items, got %d", len(items))
	}
	v0 := items[0].(*Object)
	if val, _ := v0.Get(keyValue); val != String("x") {
		t.Fatalf("list[0].@value = %v, want x", val)
	}
}

func TestExpandUnmappedTermIsDropped(t *testing.T) {
	ctx := ctxFrom(map[string]TermDefinition{})
	input := NewObject().Set("unmapped", String("v"))

	got := mustExpand(t, input, ctx)
	obj, ok := got.(*Object)
	if !ok {
		t.Fatalf("expected *Object, got %T", got)
	}
	if obj.Len() != 0 {
		t.Fatalf("expected the unmapped term to be dropped, got %v", obj.Keys())
	}
}

func TestExpandShapeInvariant(t *testing.T) {
	ctx := ctxFrom(map[string]TermDefinition{"name": {ID: "http://schema.org/name"}})
	input := NewObject().Set("name", String("A")).Set("other", String("dropped"))

	got := mustExpand(t, input, ctx).(*Object)
	for _, k := range got.Keys() {
		if !isReserved(k) && !contains(k, ":") {
			t.Errorf("unexpected non-IRI, non-reserved key %q in expanded output", k)
		}
	}
}

// A term aliased directly to the "@id" keyword, used alongside the
// literal "@id" key, triggers the duplicate-reserved-key check even
// though the two source keys are spelled differently.
func TestExpandDuplicateIDViaAliasIsSyntaxError(t *testing.T) {
	ctx := ctxFrom(map[string]TermDefinition{"id": {ID: "@id"}})
	obj := NewObject().
		Set(keyID, String("http://e/1")).
		Set("id", String("http://e/2"))

	_, err := Expand(obj, ctx, "")
	if err == nil {
		t.Fatal("expected a syntax error for an aliased duplicate @id")
	}
	var target *Error
	if !errors.As(err, &target) || target.Kind != SyntaxKind {
		t.Fatalf("expected a SyntaxKind *Error, got %v", err)
	}
}

func TestExpandValueObjectDisallowsExtraKeys(t *testing.T) {
	obj := NewObject().Set(keyValue, String("v")).Set("http://e/extra", String("nope"))
	_, err := Expand(obj, ActiveContext{Terms: map[string]TermDefinition{}}, "")
	if err == nil {
		t.Fatal("expected a syntax error for a value object with an extra key")
	}
	var target *Error
	if !errors.As(err, &target) || target.Kind != SyntaxKind {
		t.Fatalf("expected a SyntaxKind *Error, got %v", err)
	}
}

func TestExpandValueObjectCollapsesToScalar(t *testing.T) {
	obj := NewObject().Set(keyValue, String("v"))
	got, err := Expand(obj, ActiveContext{Terms: map[string]TermDefinition{}}, "")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != String("v") {
		t.Fatalf("got %v, want the bare scalar v", got)
	}
}

func TestExpandValueObjectNullValueCollapsesToNull(t *testing.T) {
	obj := NewObject().Set(keyValue, Null{})
	got, err := Expand(obj, ActiveContext{Terms: map[string]TermDefinition{}}, "")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !IsNull(got) {
		t.Fatalf("got %v, want Null", got)
	}
}

func TestExpandLoneLanguageCollapsesToNull(t *testing.T) {
	obj := NewObject().Set(keyLanguage, String("en"))
	got, err := Expand(obj, ActiveContext{Terms: map[string]TermDefinition{}}, "")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !IsNull(got) {
		t.Fatalf("got %v, want Null for an object with only @language", got)
	}
}

func TestExpandListOfListsRejected(t *testing.T) {
	innerList := NewObject().Set(keyList, Array{String("x")})
	obj := NewObject().Set(keyList, Array{innerList})
	_, err := Expand(obj, ActiveContext{Terms: map[string]TermDefinition{}}, "")
	if err == nil {
		t.Fatal("expected a syntax error for a list nested directly in a list")
	}
}

func TestExpandSetOnlyObjectCollapsesToArray(t *testing.T) {
	obj := NewObject().Set(keySet, Array{String("x"), String("y")})
	got, err := Expand(obj, ActiveContext{Terms: map[string]TermDefinition{}}, "")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	arr, ok := got.(Array)
	if !ok || len(arr) != 2 {
		t.Fatalf("got %v, want a 2-element array", got)
	}
}

func TestExpandTypeNormalizedToArray(t *testing.T) {
	ctx := ctxFrom(map[string]TermDefinition{"ex": {ID: "http://e/"}})
	obj := NewObject().Set(keyID, String("http://e/1")).Set(keyType, String("ex:Thing"))
	got, err := Expand(obj, ctx, "")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	typeVal := objGet(t, got, keyType)
	arr, ok := typeVal.(Array)
	if !ok || len(arr) != 1 || arr[0] != String("http://e/Thing") {
		t.Fatalf("@type = %v, want [http://e/Thing]", typeVal)
	}
}
