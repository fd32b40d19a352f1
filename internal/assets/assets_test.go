package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Sanskruti-Shete/anatomy-model/internal/anatomy"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("stub"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveFindsSystemFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "circulatory.glb"))
	touch(t, filepath.Join(dir, "nervous.gltf"))

	m := NewManager(dir)

	path, err := m.Resolve(anatomy.SystemCirculatory)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if filepath.Base(path) != "circulatory.glb" {
		t.Errorf("path = %s", path)
	}

	if _, err := m.Resolve(anatomy.SystemUrinary); err == nil {
		t.Error("missing system should not resolve")
	}
}

func TestResolvePrefersGLB(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "skeletal.glb"))
	touch(t, filepath.Join(dir, "skeletal.gltf"))

	m := NewManager(dir)
	path, err := m.Resolve(anatomy.SystemSkeletal)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(path) != ".glb" {
		t.Errorf("want .glb preferred, got %s", path)
	}
}

func TestOverrideWinsAndInvalidatesCache(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "muscular.glb"))
	custom := filepath.Join(dir, "custom.glb")
	touch(t, custom)

	m := NewManager(dir)
	m.SetOverride(anatomy.SystemMuscular, custom)

	path, err := m.Resolve(anatomy.SystemMuscular)
	if err != nil {
		t.Fatal(err)
	}
	if path != custom {
		t.Errorf("path = %s, want override %s", path, custom)
	}
}

func TestAvailableListsOnlyResolvable(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "digestive.glb"))

	m := NewManager(dir)
	got := m.Available()
	if len(got) != 1 || got[0] != anatomy.SystemDigestive {
		t.Errorf("available = %v", got)
	}
}

func TestLoadReportsParseError(t *testing.T) {
	dir := t.TempDir()
	// A stub file is not valid glTF; Load must surface the error so the
	// scene can fall back to placeholder geometry.
	touch(t, filepath.Join(dir, "respiratory.glb"))

	m := NewManager(dir)
	if _, err := m.Load(anatomy.SystemRespiratory); err == nil {
		t.Error("expected parse error for stub file")
	}
}
