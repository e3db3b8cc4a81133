package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depdot/pkg/errors"
	"github.com/matzehuels/depdot/pkg/xmltree"
)

// xmlCommand creates the xml command and its subcommands.
func (c *CLI) xmlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xml",
		Short: "Inspect the XML backend and escape or reformat XML",
	}

	cmd.AddCommand(c.xmlBackendsCommand())
	cmd.AddCommand(c.xmlEscapeCommand())
	cmd.AddCommand(c.xmlFmtCommand())

	return cmd
}

// xmlBackendsCommand creates the "xml backends" subcommand.
func (c *CLI) xmlBackendsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List registered XML backends and the one in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(cmd.OutOrStdout())
			bound := xmltree.Default()
			for _, b := range xmltree.Backends() {
				line := fmt.Sprintf("%-10s %s", b.Name(), StyleDim.Render(b.Tier().String()))
				if b.Name() == bound.Name() {
					out.success("%s %s", line, StyleHighlight.Render("(bound)"))
					continue
				}
				out.info("%s", line)
			}
			return nil
		},
	}
}

// xmlEscapeCommand creates the "xml escape" subcommand.
func (c *CLI) xmlEscapeCommand() *cobra.Command {
	var attr bool

	cmd := &cobra.Command{
		Use:   "escape <text>...",
		Short: "Escape text for XML character data",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			escape := xmltree.Escape
			if attr {
				escape = xmltree.EscapeAttr
			}
			for _, s := range args {
				fmt.Fprintln(cmd.OutOrStdout(), escape(s))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&attr, "attr", false, "also escape double quotes")

	return cmd
}

// xmlFmtCommand creates the "xml fmt" subcommand.
func (c *CLI) xmlFmtCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <file.xml>",
		Short: "Parse a document with the bound backend and write it back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			f, err := os.Open(args[0])
			if err != nil {
				if os.IsNotExist(err) {
					return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", args[0])
				}
				return errors.Wrap(errors.ErrCodeIO, err, "open %s", args[0])
			}
			defer f.Close()

			backend := xmltree.Default()
			logger.Debug("parsing xml", "file", args[0], "backend", backend.Name())
			root, err := backend.Parse(f)
			if err != nil {
				return err
			}
			if err := backend.Serialize(cmd.OutOrStdout(), root); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
