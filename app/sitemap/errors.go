package sitemap

import "fmt"

// ConfigurationError reports a configuration that cannot produce any output,
// such as origin-relative locations without a base URL.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Msg
}

// ValidationError reports malformed input: out-of-domain metadata, slug and
// parameter mismatches, or a broken slug source. Route or Loc identifies the
// offending input where known.
type ValidationError struct {
	Route string
	Loc   string
	Msg   string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Route != "":
		return fmt.Sprintf("validation error for route %q: %s", e.Route, e.Msg)
	case e.Loc != "":
		return fmt.Sprintf("validation error for %q: %s", e.Loc, e.Msg)
	default:
		return "validation error: " + e.Msg
	}
}

func validationErrf(route, loc, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Route: route, Loc: loc, Msg: fmt.Sprintf(format, args...)}
}
