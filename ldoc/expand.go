package ldoc

import "strings"

// ExpandOption configures Expand.
type ExpandOption func(*expandConfig)

type expandConfig struct {
	baseIRI string
}

// WithBaseIRI sets the base IRI used by expandIri when relative
// resolution is permitted (§4.B, §9: naive string concatenation, not
// RFC 3986 reference resolution — a known, intentionally preserved gap).
func WithBaseIRI(base string) ExpandOption {
	return func(c *expandConfig) { c.baseIRI = base }
}

// Expand rewrites node into canonical expanded form using active, per
// §4.B. activeProperty selects the term whose container/type/language
// coercion applies to node's top-level value; pass "" at the document
// root.
func Expand(node Node, active ActiveContext, activeProperty string, opts ...ExpandOption) (Node, error) {
	cfg := expandConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	return expandNode(node, active, activeProperty, cfg.baseIRI)
}

func expandNode(node Node, ctx ActiveContext, activeProperty string, base string) (Node, error) {
	if node == nil {
		return Null{}, nil
	}
	switch n := node.(type) {
	case Array:
		return expandArray(n, ctx, activeProperty, base)
	case *Object:
		return expandObject(n, ctx, activeProperty, base)
	default:
		return expandValue(n, activeProperty, ctx, base)
	}
}

func expandArray(arr Array, ctx ActiveContext, activeProperty string, base string) (Node, error) {
	listContainer := hasListContainer(activeProperty, ctx)
	out := Array{}
	for _, elem := range arr {
		res, err := expandNode(elem, ctx, activeProperty, base)
		if err != nil {
			return nil, err
		}
		if IsNull(res) {
			continue
		}
		if sub, ok := res.(Array); ok && !listContainer {
			out = append(out, sub...)
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func expandValue(v Node, activeProperty string, ctx ActiveContext, base string) (Node, error) {
	if IsNull(v) {
		return Null{}, nil
	}
	if def, ok := ctx.Terms[activeProperty]; ok && def.Type != "" {
		if def.Type == TypeIdentifier {
			s, ok := v.(String)
			if !ok {
				return nil, newSyntaxError("identifier-coerced term requires a string value", v)
			}
			return NewObject().Set(keyID, String(expandIri(string(s), ctx, true, base))), nil
		}
		return NewObject().Set(keyValue, v).Set(keyType, String(def.Type)), nil
	}
	if _, ok := v.(String); ok {
		if lang, has := propertyLanguage(activeProperty, ctx); has {
			return NewObject().Set(keyValue, v).Set(keyLanguage, String(lang)), nil
		}
	}
	return NewObject().Set(keyValue, v), nil
}

func propertyLanguage(activeProperty string, ctx ActiveContext) (string, bool) {
	if def, ok := ctx.Terms[activeProperty]; ok && def.HasLanguage {
		return def.Language, true
	}
	if ctx.HasDefaultLanguage {
		return ctx.DefaultLanguage, true
	}
	return "", false
}

// expandIri expands a term or compact IRI to an absolute IRI (§4.B).
func expandIri(s string, ctx ActiveContext, allowRelative bool, base string) string {
	if def, ok := ctx.Terms[s]; ok && def.ID != "" {
		return def.ID
	}
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		if idx+3 <= len(s) && s[idx:idx+3] == "://" {
			return s
		}
		prefix := s[:idx]
		if prefix == "_" {
			return s
		}
		if def, ok := ctx.Terms[prefix]; ok && def.ID != "" {
			return def.ID + s[idx+1:]
		}
	}
	if allowRelative {
		return base + s
	}
	return s
}

func hasListContainer(activeProperty string, ctx ActiveContext) bool {
	def, ok := ctx.Terms[activeProperty]
	return ok && def.Container == "list"
}

func isCompoundNode(n Node) bool {
	return n.Kind() == KindObject || n.Kind() == KindArray
}

func isListObject(n Node) bool {
	obj, ok := n.(*Object)
	return ok && obj.Has(keyList)
}

func toNodeSlice(n Node) []Node {
	if arr, ok := n.(Array); ok {
		return []Node(arr)
	}
	return []Node{n}
}

func expandObject(obj *Object, ctx ActiveContext, activeProperty string, base string) (Node, error) {
	localCtx := ctx
	if ctxVal, ok := obj.Get(keyContext); ok {
		updated, err := ProcessContext(ctxVal, ctx)
		if err != nil {
			return nil, err
		}
		localCtx = updated
	}

	result := NewObject()
	var sawID, sawType, sawValue, sawLanguage, sawList, sawSet bool

	for _, k := range obj.Keys() {
		if k == keyContext {
			continue
		}
		v, _ := obj.Get(k)
		K := expandIri(k, localCtx, false, base)

		if IsNull(v) && K != keyValue {
			continue
		}
		if !isReserved(K) && !strings.Contains(K, ":") {
			continue
		}

		switch K {
		case keyID:
			if sawID {
				return nil, newSyntaxError("duplicate @id", obj)
			}
			sawID = true
			s, ok := v.(String)
			if !ok {
				return nil, newSyntaxError("@id must be a string", v)
			}
			result.Set(keyID, String(expandIri(string(s), localCtx, true, base)))

		case keyType:
			if sawType {
				return nil, newSyntaxError("duplicate @type", obj)
			}
			sawType = true
			switch tv := v.(type) {
			case String:
				result.Set(keyType, String(expandIri(string(tv), localCtx, false, base)))
			case Array:
				types := Array{}
				for _, item := range tv {
					s, ok := item.(String)
					if !ok {
						return nil, newSyntaxError("@type array elements must be strings", item)
					}
					resolved := expandIri(string(s), localCtx, false, base)
					if resolved == "" {
						continue
					}
					types = append(types, String(resolved))
				}
				result.Set(keyType, types)
			default:
				return nil, newSyntaxError("@type must be a string or array of strings", v)
			}

		case keyValue:
			if sawValue {
				return nil, newSyntaxError("duplicate @value", obj)
			}
			sawValue = true
			if isCompoundNode(v) {
				return nil, newSyntaxError("@value must be a scalar", v)
			}
			result.Set(keyValue, v)

		case keyLanguage:
			if sawLanguage {
				return nil, newSyntaxError("duplicate @language", obj)
			}
			sawLanguage = true
			if isCompoundNode(v) {
				return nil, newSyntaxError("@language must be a scalar", v)
			}
			result.Set(keyLanguage, v)

		case keyList, keySet:
			if K == keyList {
				if sawList {
					return nil, newSyntaxError("duplicate @list", obj)
				}
				sawList = true
			} else {
				if sawSet {
					return nil, newSyntaxError("duplicate @set", obj)
				}
				sawSet = true
			}
			expanded := Array{}
			for _, item := range toNodeSlice(v) {
				res, err := expandNode(item, localCtx, activeProperty, base)
				if err != nil {
					return nil, err
				}
				if IsNull(res) {
					continue
				}
				if isListObject(res) {
					return nil, newSyntaxError("a list must not contain another list", res)
				}
				expanded = append(expanded, res)
			}
			result.Set(K, expanded)

		default:
			var res Node
			var err error
			if isCompoundNode(v) {
				res, err = expandNode(v, localCtx, k, base)
			} else {
				res, err = expandValue(v, k, localCtx, base)
			}
			if err != nil {
				return nil, err
			}
			if IsNull(res) {
				continue
			}
			if hasListContainer(k, localCtx) {
				already := false
				if o, ok := res.(*Object); ok && o.Has(keyList) {
					already = true
				}
				if !already {
					items := toNodeSlice(res)
					for _, it := range items {
						if isListObject(it) {
							return nil, newSyntaxError("list of lists is not allowed", it)
						}
					}
					res = Array{NewObject().Set(keyList, Array(items))}
				}
			}
			mergeIntoProperty(result, K, res)
		}
	}

	return finishExpandedObject(result)
}

func mergeIntoProperty(result *Object, key string, val Node) {
	var arr Array
	if existing, ok := result.Get(key); ok {
		arr = existing.(Array)
	}
	if items, ok := val.(Array); ok {
		arr = append(arr, items...)
	} else {
		arr = append(arr, val)
	}
	result.Set(key, arr)
}

func finishExpandedObject(result *Object) (Node, error) {
	if valVal, hasValue := result.Get(keyValue); hasValue {
		if typeVal, hasType := result.Get(keyType); hasType {
			if _, ok := typeVal.(String); !ok {
				return nil, newSyntaxError("@type in a value object must be a single string", typeVal)
			}
		}
		for _, k := range result.Keys() {
			if k != keyValue && k != keyType && k != keyLanguage {
				return nil, newSyntaxError("value object has disallowed key "+k, result)
			}
		}
		if _, hasType := result.Get(keyType); hasType {
			if _, hasLang := result.Get(keyLanguage); hasLang {
				return nil, newSyntaxError("value object cannot have both @type and @language", result)
			}
		}
		if result.Len() == 1 {
			return valVal, nil
		}
		if IsNull(valVal) {
			return Null{}, nil
		}
		return result, nil
	}

	if _, hasLang := result.Get(keyLanguage); hasLang {
		if result.Len() == 1 {
			return Null{}, nil
		}
		result.Delete(keyLanguage)
	}

	if typeVal, hasType := result.Get(keyType); hasType {
		if s, ok := typeVal.(String); ok {
			result.Set(keyType, Array{s})
		}
	}

	_, hasList := result.Get(keyList)
	_, hasSet := result.Get(keySet)
	if (hasList || hasSet) && result.Len() > 1 {
		return nil, newSyntaxError("@list or @set object must not carry other keys", result)
	}
	if hasSet && result.Len() == 1 {
		setVal, _ := result.Get(keySet)
		return setVal, nil
	}

	return result, nil
}
