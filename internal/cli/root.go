// Package cli implements the imgembed command line.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rjkroege/imgembed/config"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// options are shared by every subcommand.
type options struct {
	configPath string
	debug      bool

	settings *config.Settings
	logger   *log.Logger
}

// NewRootCommand returns the imgembed command with all subcommands added.
func NewRootCommand() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "imgembed",
		Short: "Resize, select and delete ![[image]] embeds in markdown",
		Long: `imgembed edits the ![[path|W]] image embeds of a markdown document.

The view subcommand opens a preview window in which images can be
resized by dragging the corner handle, selected by clicking, and
removed with Delete or Backspace. Each change is written back to the
markdown source. The other subcommands make the same edits from the
shell or from inside an acme window.

Settings are read from ~/.imgembed/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "settings file (default ~/.imgembed/config.yaml)")
	root.PersistentFlags().BoolVarP(&o.debug, "debug", "d", false, "set for verbose debugging")

	root.AddCommand(
		newListCommand(o),
		newResizeCommand(o),
		newDeleteCommand(o),
		newViewCommand(o),
		newConfigCommand(o),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line.
func Execute() error {
	return NewRootCommand().Execute()
}

func (o *options) setup(cmd *cobra.Command) error {
	out := cmd.ErrOrStderr()
	if !o.debug {
		out = io.Discard
	}
	o.logger = log.New(out, "imgembed: ", log.LstdFlags|log.Lmicroseconds)

	loader, err := o.loader()
	if err != nil {
		return err
	}
	o.settings, err = loader.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	o.logger.Printf("settings from %s: %+v", loader.ConfigPath(), *o.settings)
	return nil
}

func (o *options) loader() (*config.Loader, error) {
	if o.configPath != "" {
		return config.NewLoaderWithPath(o.configPath), nil
	}
	return config.NewLoader()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "imgembed %s\n", version)
		},
	}
}

// stdoutNotifier prints notices on the command's output.
func stdoutNotifier(cmd *cobra.Command) func(string) {
	return func(msg string) {
		fmt.Fprintln(cmd.OutOrStdout(), msg)
	}
}

// exists reports whether path names an existing file.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
