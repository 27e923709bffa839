package cli

import (
	"fmt"

	"github.com/rjkroege/imgembed/config"
	"github.com/spf13/cobra"
)

func newConfigCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage settings",
		Long: `Manage imgembed settings.

Settings file: ~/.imgembed/config.yaml

Subcommands:
  show    print the settings in effect
  init    write a settings file holding the defaults
  path    print the settings file path`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the settings in effect",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := o.loader()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if exists(loader.ConfigPath()) {
				fmt.Fprintf(out, "# settings file: %s\n", loader.ConfigPath())
			} else {
				fmt.Fprintln(out, "# settings file: (defaults)")
			}
			data, err := config.Marshal(o.settings)
			if err != nil {
				return fmt.Errorf("can't print settings: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file holding the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := o.loader()
			if err != nil {
				return err
			}
			if exists(loader.ConfigPath()) && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", loader.ConfigPath())
			}
			if err := loader.Save(config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", loader.ConfigPath())
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing settings file")

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := o.loader()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
			return nil
		},
	}

	cmd.AddCommand(show, initCmd, path)
	return cmd
}
