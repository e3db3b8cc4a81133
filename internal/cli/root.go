package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depdot/pkg/buildinfo"
	"github.com/matzehuels/depdot/pkg/errors"
	"github.com/matzehuels/depdot/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Its PersistentPreRunE loads the config file (--config, else the XDG
// location), sets the log level, installs logging hooks and attaches the
// logger to the command context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "depdot dumps resolver dependency graphs as Graphviz DOT",
		Long:          `depdot converts a resolved dependency graph (atoms and the packages that satisfy them) into a Graphviz DOT document, and ships helpers for atom parsing and XML handling.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			if err := c.applyLogLevel(); err != nil {
				return err
			}
			observability.Install(observability.NewLogHooks(c.Logger))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/depdot/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.atomCommand())
	root.AddCommand(c.xmlCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	path := c.configFile
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
	} else {
		p, err := configPath()
		if err != nil {
			return nil
		}
		path = p
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}
