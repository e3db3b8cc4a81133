package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depdot/pkg/errors"
	"github.com/matzehuels/depdot/pkg/pipeline"
)

// errCheckFailed is returned when check finds problems; the details have
// already been printed.
var errCheckFailed = errors.New(errors.ErrCodeInvalidInput, "check failed")

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <graph.json|graph.toml>",
		Short: "Report unresolved atoms and dangling references",
		Long: `Report unresolved atoms, references to unknown packages, and (with
--strict) atoms that do not parse.

Unresolved atoms are reported but do not fail the check.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), cmd.OutOrStdout(), args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "also parse every atom")

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, w io.Writer, path string, strict bool) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, err := runner.Load(ctx, path)
	if err != nil {
		return err
	}
	rep := pipeline.Check(g, strict)
	out := newPrinter(w)

	out.keyValue("atoms", fmt.Sprint(g.AtomCount()))
	out.keyValue("pkgs", fmt.Sprint(g.PkgCount()))

	for _, a := range rep.Unresolved {
		out.warn("unresolved: %s", a)
	}
	for _, d := range rep.Dangling {
		out.errorf("dangling: %s", d)
	}
	for _, m := range rep.Malformed {
		out.errorf("malformed: %s", m.Reason)
	}

	if !rep.OK() {
		return errCheckFailed
	}
	out.success("Graph OK")
	return nil
}
