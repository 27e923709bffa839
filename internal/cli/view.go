package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rjkroege/imgembed/draw"
	"github.com/rjkroege/imgembed/fsys"
	"github.com/rjkroege/imgembed/host"
	"github.com/rjkroege/imgembed/imgctl"
	"github.com/rjkroege/imgembed/overlay"
	"github.com/rjkroege/imgembed/rich"
	"github.com/rjkroege/imgembed/theme"
	"github.com/rjkroege/imgembed/viewer"
	"github.com/rjkroege/imgembed/wind"
	"github.com/spf13/cobra"
)

// echoWorkspace tells obs about every SetText made through its views.
// An acme window does not report its own changes back to us.
type echoWorkspace struct {
	host.Workspace
	obs host.BufferObserver
}

func (e *echoWorkspace) ActiveView() (host.View, bool) {
	v, ok := e.Workspace.ActiveView()
	if !ok {
		return nil, false
	}
	return &echoView{View: v, ws: e}, true
}

type echoView struct {
	host.View
	ws *echoWorkspace
}

func (e *echoView) SetText(text string) {
	old := e.View.Text()
	e.View.SetText(text)
	if e.ws.obs != nil {
		e.ws.obs.Replaced(old, text)
	}
}

func newViewCommand(o *options) *cobra.Command {
	var (
		inAcme    bool
		fontname  string
		winsize   string
		cacheSize int
		post      string
	)
	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Open an interactive preview of a document's images",
		Long: `View shows every image of the document in a column. Hovering over an
image shows a handle at its bottom-right corner. Drag the handle to
resize the image; the new width is saved when the button is released.
Click an image to select it, then press Delete or Backspace to remove
its embed, or Escape to deselect. Type q with nothing selected to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := o.open(cmd, inAcme, args)
			if err != nil {
				return err
			}
			defer doc.close()
			return o.runView(cmd, doc, viewFlags{fontname, winsize, cacheSize, post})
		},
	}
	cmd.Flags().BoolVar(&inAcme, "acme", false, "edit the acme window instead of the file")
	cmd.Flags().StringVarP(&fontname, "font", "f", os.Getenv("font"), "font for placeholder labels")
	cmd.Flags().StringVar(&winsize, "geometry", "640x800", "window size")
	cmd.Flags().IntVar(&cacheSize, "cache", 64, "number of decoded images to keep")
	cmd.Flags().StringVar(&post, "post", "", "serve ctl, images and text files over 9P as this service")
	return cmd
}

type viewFlags struct {
	fontname  string
	winsize   string
	cacheSize int
	post      string
}

func (o *options) runView(cmd *cobra.Command, doc *document, vf viewFlags) error {
	s := o.settings
	fontname := vf.fontname
	theme.SetDarkMode(s.DarkMode)

	errch := make(chan error, 1)
	display, err := draw.NewDisplay(errch, fontname, "imgembed "+filepath.Base(doc.name), vf.winsize)
	if err != nil {
		return fmt.Errorf("can't open display: %w", err)
	}

	// Buffers report their own changes. Acme windows need echoing.
	ws := &echoWorkspace{Workspace: doc.ws}
	var target host.Workspace = ws
	buf, isBuffer := doc.view.(*host.Buffer)
	if isBuffer {
		target = doc.ws
	}

	bus := wind.NewBus()
	painter := overlay.New(display.ScreenImage())
	defer painter.Free()
	ctl := imgctl.New(bus, target, doc.notifier,
		imgctl.WithMinWidth(s.MinWidth),
		imgctl.WithSelection(s.SelectEnabled),
		imgctl.WithHandleSize(s.HandleSize),
		imgctl.WithPainter(painter),
		imgctl.WithLogger(o.logger),
	)
	ctl.Initialize()
	defer ctl.Dispose()

	vopts := []viewer.Option{
		viewer.WithDir(filepath.Dir(doc.name)),
		viewer.WithCache(rich.NewImageCache(vf.cacheSize)),
		viewer.WithLogger(o.logger),
	}
	if fontname != "" {
		f, err := display.OpenFont(fontname)
		if err != nil {
			o.logger.Printf("can't open font %q: %v", fontname, err)
		} else {
			vopts = append(vopts, viewer.WithFont(f))
		}
	}
	v := viewer.New(display, bus, ctl, painter, vopts...)
	if isBuffer {
		buf.AddObserver(v)
		defer buf.DelObserver(v)
	} else {
		ws.obs = v
	}
	v.Reload(doc.view.Text())

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	if vf.post != "" {
		h := &control{ctx: ctx, v: v, ws: target, notifier: doc.notifier, settings: s}
		addr, closer, err := fsys.Post(vf.post, fsys.New(controlFiles, h, fsys.WithLogger(o.logger)))
		if err != nil {
			return err
		}
		defer closer.Close()
		fmt.Fprintf(cmd.ErrOrStderr(), "imgembed: serving %s\n", addr)
	}
	go func() {
		select {
		case err := <-errch:
			o.logger.Printf("display: %v", err)
			cancel()
		case <-ctx.Done():
		}
	}()

	err = v.Run(ctx, display.InitMouse(), display.InitKeyboard())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
