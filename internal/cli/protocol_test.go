package cli

import (
	"os"
	"path/filepath"
	"testing"
)

// writeSharedProtocols configures a shared protocol directory via the
// user config layer and seeds it with one protocol.
func writeSharedProtocols(t *testing.T) string {
	t.Helper()
	shared := t.TempDir()
	if err := os.WriteFile(filepath.Join(shared, "miniprep.txt"), []byte("1. Spin down cells.\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	cfgDir := filepath.Join(cfgHome, "labbook")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg := "protocol_dirs:\n  - " + shared + "\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return shared
}

func TestProtocolLsOutsideProject(t *testing.T) {
	writeSharedProtocols(t)
	setProjectDir(t, t.TempDir())

	if err := runProtocolLs(newProtocolLsCmd(), nil); err != nil {
		t.Errorf("runProtocolLs() outside project error = %v", err)
	}
}

func TestProtocolReaderOutsideProject(t *testing.T) {
	writeSharedProtocols(t)
	setProjectDir(t, t.TempDir())

	_, r, err := protocolReader([]string{"miniprep"})
	if err != nil {
		t.Fatalf("protocolReader(miniprep) outside project error = %v", err)
	}
	if r.Name() != "text" {
		t.Errorf("reader = %s, want text", r.Name())
	}
}

func TestProtocolLsInsideProjectStillLocal(t *testing.T) {
	writeSharedProtocols(t)
	root := makeProject(t)
	if err := os.WriteFile(filepath.Join(root, "protocols", "gel.txt"), []byte("1. Pour gel.\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := OpenWorkspaceLenient()
	if err != nil {
		t.Fatalf("OpenWorkspaceLenient() error = %v", err)
	}
	if w.Root() != root {
		t.Errorf("lenient open inside project rooted at %q, want %q", w.Root(), root)
	}

	byDir, dirs, err := w.ListProtocols("")
	if err != nil {
		t.Fatalf("ListProtocols() error = %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("searched %d dirs, want 2 (local + shared)", len(dirs))
	}
	if got := byDir[dirs[0]]; len(got) != 1 || got[0] != "gel.txt" {
		t.Errorf("local protocols = %v, want [gel.txt]", got)
	}
}
