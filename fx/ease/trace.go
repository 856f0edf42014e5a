package ease

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'domfx.fx'.
func tracer() tracing.Trace {
	return tracing.Select("domfx.fx")
}
