package errors

import "regexp"

// maxGraphNameLength bounds the DOT graph name accepted from user input.
const maxGraphNameLength = 256

// graphNameRegex matches an unquoted DOT identifier.
var graphNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateGraphName validates a graph name supplied on the command line or
// through the API. The exporter writes the name unquoted after "digraph", so
// it must be a plain DOT identifier.
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGraphName, "graph name cannot be empty")
	}
	if len(name) > maxGraphNameLength {
		return New(ErrCodeInvalidGraphName, "graph name too long (max %d characters)", maxGraphNameLength)
	}
	if !graphNameRegex.MatchString(name) {
		return New(ErrCodeInvalidGraphName, "invalid graph name %q: must match [A-Za-z_][A-Za-z0-9_]*", name)
	}
	return nil
}
