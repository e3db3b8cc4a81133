package nodelink

import (
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/depdot/pkg/errors"
)

// Verify parses dot with Graphviz and reports INVALID_FORMAT if it is not a
// well-formed graph. Nothing is rendered.
func Verify(dot []byte) error {
	gv, err := graphviz.New(context.Background())
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()
	return nil
}
