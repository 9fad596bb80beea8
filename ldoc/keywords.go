package ldoc

// Reserved keys carry semantics; every other string key is a user term
// or an IRI. This set is deliberately narrower than the full JSON-LD
// keyword table (no @graph, @base, @vocab, @reverse, @index, ...): a key
// that merely looks like a keyword but is not in this set is an ordinary
// unmapped term, per §3/§4.B of the specification this package implements.
const (
	keyContext   = "@context"
	keyID        = "@id"
	keyValue     = "@value"
	keyLanguage  = "@language"
	keyType      = "@type"
	keyContainer = "@container"
	keyList      = "@list"
	keySet       = "@set"
)

func isReserved(key string) bool {
	switch key {
	case keyContext, keyID, keyValue, keyLanguage, keyType, keyContainer, keyList, keySet:
		return true
	default:
		return false
	}
}
