package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depdot/pkg/errors"
	"github.com/matzehuels/depdot/pkg/pipeline"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output  string // output file path (stdout if empty)
	name    string // DOT graph name
	verify  bool   // parse-check the DOT with graphviz
	noCache bool   // disable the result cache
	refresh bool   // skip the cache lookup but store the result
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <graph.json|graph.toml>",
		Short: "Export a dependency graph as Graphviz DOT",
		Long: `Export a dependency graph as Graphviz DOT.

Atoms become labelled edges from each parent to each matching package.
Atoms with no match are drawn as boxes; packages as circles.

Examples:
  depdot export graph.json                   # DOT to stdout
  depdot export graph.toml -o deps.dot       # DOT to a file
  depdot export graph.json --name deps --verify`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name") {
				opts.name = c.Config.GraphName
			}
			if !cmd.Flags().Changed("verify") {
				opts.verify = c.Config.Verify
			}
			return c.runExport(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", pipeline.DefaultGraphName, "DOT graph name")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "check the output parses with graphviz")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache lookup")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, stdout, stderr io.Writer, path string, opts exportOpts) error {
	logger := loggerFromContext(ctx)
	out := newPrinter(stdout)

	if opts.output != "" {
		if fi, err := os.Stat(opts.output); err == nil && fi.IsDir() {
			return errors.New(errors.ErrCodeInvalidPath, "output %s is a directory", opts.output)
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)

	// No spinner when DOT goes to stdout.
	var spin *spinner
	if opts.output != "" {
		spin = newSpinner(ctx, stderr, "Loading "+path).start()
		defer spin.stop()
	}

	g, err := runner.Load(ctx, path)
	if err != nil {
		return err
	}
	if spin != nil {
		spin.update("Exporting " + path)
	}
	res, err := runner.Export(ctx, g, pipeline.Options{
		GraphName: opts.name,
		Verify:    opts.verify,
		Refresh:   opts.refresh,
	})
	if spin != nil {
		spin.stop()
	}
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := stdout.Write(res.DOT)
		return err
	}

	if err := os.WriteFile(opts.output, res.DOT, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", opts.output)
	}
	prog.done("Exported graph", "output", opts.output, "cached", res.CacheHit)
	out.stats(res.Stats.AtomCount, res.Stats.PkgCount, res.CacheHit)
	out.file(opts.output)
	if res.Stats.UnresolvedCount > 0 {
		out.warn("%d unresolved atoms", res.Stats.UnresolvedCount)
	}
	return nil
}
