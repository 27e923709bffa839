package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rjkroege/imgembed/config"
	"github.com/rjkroege/imgembed/embed"
	"github.com/rjkroege/imgembed/fsys"
	"github.com/rjkroege/imgembed/host"
	"github.com/rjkroege/imgembed/imgctl"
	"github.com/rjkroege/imgembed/viewer"
)

// controlFiles are served for a running view.
//
//	ctl     resize PATH WIDTH, delete PATH or reload, one per line
//	images  LINE<TAB>PATH<TAB>WxH of each image as shown
//	text    the document
var controlFiles = []fsys.File{
	{Name: "ctl", Perm: 0200},
	{Name: "images", Perm: 0400},
	{Name: "text", Perm: 0400},
}

// control implements fsys.Handler for a view. Every request runs on the
// view's goroutine.
type control struct {
	ctx      context.Context
	v        *viewer.View
	ws       host.Workspace
	notifier host.Notifier
	settings *config.Settings
}

func (c *control) Read(name string) ([]byte, error) {
	var b bytes.Buffer
	err := c.v.Do(c.ctx, func() {
		switch name {
		case "images":
			for _, e := range c.v.Elements() {
				im, r := e.Embed(), e.Rect()
				fmt.Fprintf(&b, "%d\t%s\t%dx%d\n", im.Line+1, im.Path, r.Dx(), r.Dy())
			}
		case "text":
			if v, ok := c.ws.ActiveView(); ok {
				b.WriteString(v.Text())
			}
		}
	})
	return b.Bytes(), err
}

func (c *control) Write(name string, data []byte) error {
	if name != "ctl" {
		return fsys.ErrPermission
	}
	var err error
	if derr := c.v.Do(c.ctx, func() { err = c.exec(string(data)) }); derr != nil {
		return derr
	}
	return err
}

// exec runs each line of msgs as a control message. It stops at the
// first failure.
func (c *control) exec(msgs string) error {
	for _, line := range strings.Split(msgs, "\n") {
		verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if verb == "" {
			continue
		}
		v, ok := c.ws.ActiveView()
		if !ok {
			return errors.New("no active view")
		}

		switch verb {
		case "resize":
			i := strings.LastIndexByte(arg, ' ')
			if i < 0 {
				return errors.New("usage: resize path width")
			}
			w, err := strconv.Atoi(arg[i+1:])
			if err != nil || w < 1 {
				return fmt.Errorf("bad width %q", arg[i+1:])
			}
			w = max(w, c.settings.MinWidth)
			t := embed.Target{Alt: strings.TrimSpace(arg[:i])}
			if err := imgctl.ResizeEmbed(v, t, w); err != nil {
				return err
			}
			c.notifier.Notify(fmt.Sprintf("Image resized to %dpx", w))
		case "delete":
			if !c.settings.SelectEnabled {
				return errors.New("image removal is disabled")
			}
			if arg == "" {
				return errors.New("usage: delete path")
			}
			if err := imgctl.RemoveEmbed(v, embed.Target{Alt: arg}); err != nil {
				return err
			}
			c.notifier.Notify("Image removed")
		case "reload":
			c.v.Reload(v.Text())
		default:
			return fmt.Errorf("unknown control message %q", verb)
		}
	}
	return nil
}
