package ldoc

// DefaultMaxDepth is the nesting limit parse applies when no ParseOption
// overrides it.
const DefaultMaxDepth = 512

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	maxDepth int
}

// WithMaxDepth overrides the nesting depth parse accepts before failing
// with ParseKind.
func WithMaxDepth(depth int) ParseOption {
	return func(c *parseConfig) { c.maxDepth = depth }
}

func defaultParseConfig() parseConfig {
	return parseConfig{maxDepth: DefaultMaxDepth}
}
