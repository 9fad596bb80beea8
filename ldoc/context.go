package ldoc

import (
	"fmt"
	"strings"
)

// TypeIdentifier is the sentinel Type value marking a term whose string
// values are coerced to identifier-objects rather than value-objects.
const TypeIdentifier = "@id"

// TermDefinition is a term's entry in an ActiveContext.
type TermDefinition struct {
	// ID is the absolute IRI the term maps to.
	ID string
	// Type is either TypeIdentifier or an absolute datatype IRI. Empty
	// means the term carries no type coercion.
	Type string
	// Language is the term-bound language tag. Only meaningful when
	// HasLanguage is true and Type is empty.
	Language    string
	HasLanguage bool
	// Container is "list", "set", or "" (none).
	Container string
}

// ActiveContext is the mapping from term to TermDefinition under which
// expansion and compaction run, plus an optional default language.
type ActiveContext struct {
	Terms              map[string]TermDefinition
	DefaultLanguage    string
	HasDefaultLanguage bool
}

func (c ActiveContext) clone() ActiveContext {
	terms := make(map[string]TermDefinition, len(c.Terms))
	for k, v := range c.Terms {
		terms[k] = v
	}
	return ActiveContext{Terms: terms, DefaultLanguage: c.DefaultLanguage, HasDefaultLanguage: c.HasDefaultLanguage}
}

// ProcessContext folds localContext into active, returning the updated
// active context. localContext must be Null, an Object, or an Array of
// such, evaluated left to right (§4.A).
func ProcessContext(localContext Node, active ActiveContext) (ActiveContext, error) {
	if localContext == nil || IsNull(localContext) {
		return ActiveContext{Terms: map[string]TermDefinition{}}, nil
	}
	switch v := localContext.(type) {
	case Array:
		next := active
		for _, elem := range v {
			updated, err := ProcessContext(elem, next)
			if err != nil {
				return active, err
			}
			next = updated
		}
		return next, nil
	case *Object:
		return processContextObject(v, active)
	case String:
		return active, newProcessError(fmt.Sprintf("remote context references are not supported: %s", string(v)))
	default:
		return active, newProcessError("local context must be null, an object, or an array of objects")
	}
}

func processContextObject(obj *Object, active ActiveContext) (ActiveContext, error) {
	next := active.clone()
	for _, key := range obj.Keys() {
		val, _ := obj.Get(key)
		if isReserved(key) {
			continue
		}
		if IsNull(val) {
			delete(next.Terms, key)
			continue
		}
		switch v := val.(type) {
		case String:
			resolved, err := resolvePrefix(string(v), obj, next, nil)
			if err != nil {
				return active, err
			}
			next.Terms[key] = TermDefinition{ID: resolved}
		case *Object:
			def, err := buildTermDefinition(v, obj, next)
			if err != nil {
				return active, err
			}
			next.Terms[key] = def
		default:
			return active, newProcessError(fmt.Sprintf("invalid term definition for %q", key))
		}
	}
	return next, nil
}

func buildTermDefinition(def *Object, local *Object, active ActiveContext) (TermDefinition, error) {
	var out TermDefinition
	if idVal, ok := def.Get(keyID); ok {
		idStr, ok := idVal.(String)
		if !ok {
			return out, newProcessError("@id must be a string")
		}
		resolved, err := resolvePrefix(string(idStr), local, active, nil)
		if err != nil {
			return out, err
		}
		out.ID = resolved
	}
	if typeVal, ok := def.Get(keyType); ok {
		typeStr, ok := typeVal.(String)
		if !ok {
			return out, newProcessError("@type must be a string")
		}
		if string(typeStr) == TypeIdentifier {
			out.Type = TypeIdentifier
		} else {
			resolved, err := resolvePrefix(string(typeStr), local, active, nil)
			if err != nil {
				return out, err
			}
			out.Type = resolved
		}
	}
	if out.Type == "" {
		if langVal, ok := def.Get(keyLanguage); ok {
			langStr, ok := langVal.(String)
			if !ok {
				return out, newProcessError("@language must be a string")
			}
			out.Language = string(langStr)
			out.HasLanguage = true
		}
	}
	if contVal, ok := def.Get(keyContainer); ok {
		contStr, ok := contVal.(String)
		if !ok {
			return out, newProcessError("@container must be a string")
		}
		switch string(contStr) {
		case keyList:
			out.Container = "list"
		case keySet:
			out.Container = "set"
		default:
			return out, newProcessError("@container must be @list or @set")
		}
	}
	return out, nil
}

// resolvePrefix resolves a compact-IRI-shaped string s against the local
// context being processed and the active context already accumulated,
// detecting cycles among prefix references (§4.A).
func resolvePrefix(s string, local *Object, active ActiveContext, path []string) (string, error) {
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return s, nil
	}
	prefix, suffix := s[:idx], s[idx+1:]
	for _, p := range path {
		if p == prefix {
			return "", newProcessError(fmt.Sprintf("cyclical context reference: %s -> %s", strings.Join(path, " -> "), prefix))
		}
	}
	path = append(path, prefix)
	if localVal, ok := local.Get(prefix); ok {
		if localStr, ok := localVal.(String); ok {
			base, err := resolvePrefix(string(localStr), local, active, path)
			if err != nil {
				return "", err
			}
			return base + suffix, nil
		}
	}
	if def, ok := active.Terms[prefix]; ok && def.ID != "" {
		return def.ID + suffix, nil
	}
	return s, nil
}
