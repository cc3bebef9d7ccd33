package collector

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/wetbench/labbook/internal/workspace"
)

// usbCollector is an rsync collector whose source lives on removable
// media. When the source is missing and a mountpoint is configured, the
// drive is mounted for the duration of the sync and unmounted afterwards.
type usbCollector struct {
	rsync      *rsyncCollector
	mountpoint string
}

func newUsbCollector(src workspace.DataSource) (Collector, error) {
	base, err := newRsyncCollector(src)
	if err != nil {
		return nil, err
	}
	return &usbCollector{
		rsync:      base.(*rsyncCollector),
		mountpoint: expandHome(src.Mountpoint),
	}, nil
}

func (c *usbCollector) Dest() string { return c.rsync.Dest() }

func (c *usbCollector) Sync(w *workspace.Workspace, out io.Writer, verbose bool) error {
	unmountWhenDone := false

	if _, err := os.Stat(c.rsync.src); err != nil {
		// Source absent. Without a mountpoint there is nothing to do;
		// the drive may simply not be plugged in.
		if c.mountpoint == "" {
			return nil
		}
		if !isMounted(c.mountpoint) {
			if err := runCommand([]string{"mount", c.mountpoint}, "", out, verbose); err == nil {
				unmountWhenDone = true
			}
		}
	}

	if _, err := os.Stat(c.rsync.src); err == nil {
		if err := c.rsync.Sync(w, out, verbose); err != nil {
			return err
		}
	} else if verbose {
		fmt.Fprintf(out, "can't find %s\n", c.rsync.src)
	}

	if unmountWhenDone {
		if err := runCommand([]string{"umount", c.mountpoint}, "", out, verbose); err == nil {
			fmt.Fprintln(out, "USB safe to remove.")
		}
	}
	return nil
}

func isMounted(mountpoint string) bool {
	return exec.Command("mountpoint", "-q", mountpoint).Run() == nil
}
