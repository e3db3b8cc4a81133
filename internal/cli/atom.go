package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depdot/pkg/atom"
	"github.com/matzehuels/depdot/pkg/errors"
)

// atomCommand creates the atom command.
func (c *CLI) atomCommand() *cobra.Command {
	var eapi int

	cmd := &cobra.Command{
		Use:   "atom <atom>...",
		Short: "Parse package atoms and print their parts",
		Long: `Parse package atoms and print their parts.

Examples:
  depdot atom '>=dev-lang/python-3.11:3.11[sqlite]'
  depdot atom --eapi 1 'dev-libs/openssl:0'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(cmd.OutOrStdout())
			failed := 0
			for i, s := range args {
				if i > 0 {
					out.blank()
				}
				a, err := atom.Parse(s, atom.WithEAPI(eapi))
				if err != nil {
					out.errorf("%s", errors.UserMessage(err))
					failed++
					continue
				}
				printAtom(out, a)
			}
			if failed > 0 {
				return errors.New(errors.ErrCodeMalformedAtom, "%d of %d atoms failed to parse", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&eapi, "eapi", atom.Unrestricted, "EAPI to validate against (-1 for unrestricted)")

	return cmd
}

func printAtom(out *printer, a *atom.Atom) {
	out.info("%s", StyleTitle.Render(a.String()))
	out.keyValue("key", a.Key())
	if a.Op != atom.OpNone {
		out.keyValue("op", a.Op.String())
		out.keyValue("version", a.Fullver())
	}
	if a.Blocks {
		blocker := "weak"
		if a.BlocksStrongly {
			blocker = "strong"
		}
		out.keyValue("blocker", blocker)
	}
	if len(a.Slots) > 0 {
		out.keyValue("slots", strings.Join(a.Slots, ", "))
	}
	if a.Repo != "" {
		out.keyValue("repo", a.Repo)
	}
	if len(a.Use) > 0 {
		out.keyValue("use", strings.Join(a.Use, ", "))
		if a.Transitive {
			out.detail("conditional use deps")
		}
	}
}
