package cli

import (
	"fmt"
	"path/filepath"

	"github.com/rjkroege/imgembed/embed"
	"github.com/rjkroege/imgembed/imgctl"
	"github.com/rjkroege/imgembed/markdown"
	"github.com/spf13/cobra"
)

func newListCommand(o *options) *cobra.Command {
	var (
		inAcme   bool
		rendered bool
	)
	cmd := &cobra.Command{
		Use:   "list [file]",
		Short: "List the image embeds of a document",
		Long: `List prints one line per ![[path]] embed: its 1-based line number and
its text. With --rendered only the embeds that render as images are
listed, with the width and height they render at and their resolved
source URL. Embeds inside code are not rendered.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := o.open(cmd, inAcme, args)
			if err != nil {
				return err
			}
			defer doc.close()

			out := cmd.OutOrStdout()
			text := doc.view.Text()
			if !rendered {
				for _, loc := range embed.List(text) {
					fmt.Fprintf(out, "%d\t%s\n", loc.Line+1, loc.Directive)
				}
				return nil
			}
			resolve := markdown.FileResolver(filepath.Dir(doc.name))
			for _, im := range markdown.Images([]byte(text), resolve) {
				fmt.Fprintf(out, "%d\t%s\t%dx%d\t%s\n", im.Line+1, im.Path, im.Width, im.Height, im.Src)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&inAcme, "acme", false, "read the acme window instead of the file")
	cmd.Flags().BoolVar(&rendered, "rendered", false, "list only embeds that render as images")
	return cmd
}

// targetFlags names the image an edit applies to.
type targetFlags struct {
	alt string
	src string
}

func (tf *targetFlags) add(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&tf.alt, "image", "i", "", "image path or alt text to match")
	cmd.Flags().StringVar(&tf.src, "src", "", "resolved image source URL to match")
}

func (tf *targetFlags) target() (embed.Target, error) {
	if tf.alt == "" && tf.src == "" {
		return embed.Target{}, fmt.Errorf("one of --image or --src is required")
	}
	return embed.Target{Alt: tf.alt, Src: tf.src}, nil
}

func newResizeCommand(o *options) *cobra.Command {
	var (
		inAcme bool
		width  int
		tf     targetFlags
	)
	cmd := &cobra.Command{
		Use:   "resize [file]",
		Short: "Set the width of an image embed",
		Long: `Resize rewrites the first embed matching the image to ![[path|W]].
Any earlier width or height annotation is replaced. Widths below the
configured min_width are raised to it.

Examples:
  imgembed resize notes.md --image cat.png --width 300
  imgembed resize --acme --image cat.png --width 300`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tf.target()
			if err != nil {
				return err
			}
			if width < 1 {
				return fmt.Errorf("--width must be positive, got %d", width)
			}
			if width < o.settings.MinWidth {
				o.logger.Printf("width %d raised to %d", width, o.settings.MinWidth)
				width = o.settings.MinWidth
			}

			doc, err := o.open(cmd, inAcme, args)
			if err != nil {
				return err
			}
			defer doc.close()

			if err := imgctl.ResizeEmbed(doc.view, t, width); err != nil {
				return err
			}
			doc.notifier.Notify(fmt.Sprintf("Image resized to %dpx", width))
			return nil
		},
	}
	tf.add(cmd)
	cmd.Flags().IntVarP(&width, "width", "w", 0, "new width in pixels")
	cmd.Flags().BoolVar(&inAcme, "acme", false, "edit the acme window instead of the file")
	return cmd
}

func newDeleteCommand(o *options) *cobra.Command {
	var (
		inAcme bool
		tf     targetFlags
	)
	cmd := &cobra.Command{
		Use:   "delete [file]",
		Short: "Remove an image embed",
		Long: `Delete removes the text of the first embed matching the image. The
rest of its line is kept.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tf.target()
			if err != nil {
				return err
			}
			if !o.settings.SelectEnabled {
				return fmt.Errorf("image removal is disabled by select_enabled: false")
			}

			doc, err := o.open(cmd, inAcme, args)
			if err != nil {
				return err
			}
			defer doc.close()

			if err := imgctl.RemoveEmbed(doc.view, t); err != nil {
				return err
			}
			doc.notifier.Notify("Image removed")
			return nil
		},
	}
	tf.add(cmd)
	cmd.Flags().BoolVar(&inAcme, "acme", false, "edit the acme window instead of the file")
	return cmd
}
