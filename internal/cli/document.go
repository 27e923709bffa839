package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rjkroege/imgembed/host"
	"github.com/rjkroege/imgembed/host/acmehost"
	"github.com/spf13/cobra"
)

// document is a markdown text opened either from disk or from an acme
// window.
type document struct {
	name     string // absolute file name
	ws       host.Workspace
	view     host.View
	notifier host.Notifier
	close    func()
}

// openFile loads path into a Buffer that writes itself back to path on
// every change.
func (o *options) openFile(cmd *cobra.Command, path string) (*document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("can't abs %q: %w", path, err)
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	buf := host.NewBuffer(string(b))
	buf.AddObserver(&host.FileSaver{Path: abs, Logger: o.logger})
	return &document{
		name:     abs,
		ws:       host.NewMemory(abs, buf),
		view:     buf,
		notifier: host.NotifierFunc(stdoutNotifier(cmd)),
		close:    func() {},
	}, nil
}

// openWindow attaches to the acme window showing path or, when path is
// empty, to the window the command was run from.
func (o *options) openWindow(path string) (*document, error) {
	var (
		win *acmehost.Window
		err error
	)
	if path == "" {
		win, err = acmehost.OpenCurrent(acmehost.WithLogger(o.logger))
	} else {
		abs, aerr := filepath.Abs(path)
		if aerr != nil {
			return nil, fmt.Errorf("can't abs %q: %w", path, aerr)
		}
		win, err = acmehost.OpenNamed(abs, acmehost.WithLogger(o.logger))
	}
	if err != nil {
		return nil, err
	}
	name, _ := win.ActiveFile()
	return &document{
		name:     name,
		ws:       win,
		view:     win,
		notifier: win,
		close:    win.Close,
	}, nil
}

// open picks openWindow or openFile.
func (o *options) open(cmd *cobra.Command, inAcme bool, args []string) (*document, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	if inAcme {
		return o.openWindow(path)
	}
	if path == "" {
		return nil, fmt.Errorf("a markdown file is required without --acme")
	}
	return o.openFile(cmd, path)
}
