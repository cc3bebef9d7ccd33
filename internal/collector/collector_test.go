package collector

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wetbench/labbook/internal/workspace"
)

func TestFromConfigBuildsCollectors(t *testing.T) {
	cfg := &workspace.Config{Data: []workspace.DataSource{
		{Type: "rsync", Src: "server:/srv/seq", Dest: "sequencing"},
		{Type: "usb", Src: "/mnt/usb/gels", Dest: "gels", Mountpoint: "/mnt/usb"},
	}}

	collectors, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	if len(collectors) != 2 {
		t.Fatalf("FromConfig() = %d collectors, want 2", len(collectors))
	}
	if collectors[0].Dest() != "sequencing" || collectors[1].Dest() != "gels" {
		t.Errorf("dests = %q, %q", collectors[0].Dest(), collectors[1].Dest())
	}
}

func TestFromConfigMissingType(t *testing.T) {
	cfg := &workspace.Config{Data: []workspace.DataSource{{Src: "~/usb/gels"}}}

	_, err := FromConfig(cfg)
	var missing *MissingTypeError
	if !errors.As(err, &missing) {
		t.Fatalf("FromConfig() error = %v, want MissingTypeError", err)
	}
}

func TestFromConfigUnknownType(t *testing.T) {
	cfg := &workspace.Config{Data: []workspace.DataSource{{Type: "carrier-pigeon", Src: "x"}}}

	_, err := FromConfig(cfg)
	var unknown *UnknownTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("FromConfig() error = %v, want UnknownTypeError", err)
	}
	if unknown.Type != "carrier-pigeon" {
		t.Errorf("UnknownTypeError.Type = %q", unknown.Type)
	}
}

func TestRsyncDefaultCommandLine(t *testing.T) {
	c, err := newRsyncCollector(workspace.DataSource{Type: "rsync", Src: "server:/srv/gels/", Dest: "gels"})
	if err != nil {
		t.Fatalf("newRsyncCollector() error = %v", err)
	}

	got := c.(*rsyncCollector).commandLine("gels")
	want := []string{"rsync", "--archive", "--ignore-existing", "server:/srv/gels/", "gels"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("commandLine() = %v, want %v", got, want)
	}
}

func TestRsyncCustomCommandSubstitution(t *testing.T) {
	c, err := newRsyncCollector(workspace.DataSource{
		Type: "rsync",
		Src:  "srv:/a",
		Dest: "b",
		Cmd:  "rsync --archive --delete {src} {dest}",
	})
	if err != nil {
		t.Fatalf("newRsyncCollector() error = %v", err)
	}

	got := c.(*rsyncCollector).commandLine("b")
	want := []string{"rsync", "--archive", "--delete", "srv:/a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("commandLine() = %v, want %v", got, want)
	}
}

func TestRsyncRequiresSrc(t *testing.T) {
	if _, err := newRsyncCollector(workspace.DataSource{Type: "rsync"}); err == nil {
		t.Error("newRsyncCollector() succeeded without src")
	}
}

func TestKnownTypesSorted(t *testing.T) {
	want := []string{"rsync", "usb"}
	if got := KnownTypes(); !reflect.DeepEqual(got, want) {
		t.Errorf("KnownTypes() = %v, want %v", got, want)
	}
}
