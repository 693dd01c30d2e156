package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadCachesByPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.gltf")
	writeFile(t, path, triangleDocument(t, dataURI(triangleData()), triangleByteLength))

	l := NewLoader(BackendTypeGLTF)
	first, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first.Name != "tri" {
		t.Errorf("scene name: got %q, want %q", first.Name, "tri")
	}

	second, err := l.Load(path)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if first != second {
		t.Error("second Load did not return the cached scene")
	}

	l.Invalidate(path)
	if l.Get(path) != nil {
		t.Fatal("Get after Invalidate returned a scene")
	}
	third, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load after Invalidate: %v", err)
	}
	if third == first {
		t.Error("Load after Invalidate returned the stale scene")
	}
}

func TestLoadExternalBuffer(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tri.bin"), triangleData())
	path := filepath.Join(dir, "tri.gltf")
	writeFile(t, path, triangleDocument(t, "tri.bin", triangleByteLength))

	scene, err := NewLoader(BackendTypeGLTF).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(scene.Buffers[0].Data); got != triangleByteLength {
		t.Errorf("buffer length: got %d, want %d", got, triangleByteLength)
	}
}

func TestLoadGLBFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.glb")
	writeFile(t, path, glbOf(triangleDocument(t, "", triangleByteLength), triangleData()))

	scene, err := NewLoader(BackendTypeGLTF).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(scene.Meshes); got != 1 {
		t.Errorf("mesh count: got %d, want 1", got)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	if _, err := NewLoader(BackendTypeGLTF).Load("scene.obj"); err == nil {
		t.Fatal("expected an error for .obj")
	}
}

func TestLoadReaderNamesScene(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	doc := triangleDocument(t, dataURI(triangleData()), triangleByteLength)
	scene, err := l.LoadReader("stream", bytes.NewReader(doc), false)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if scene.Name != "stream" {
		t.Errorf("scene name: got %q, want %q", scene.Name, "stream")
	}
	if l.Get("stream") != scene {
		t.Error("Get did not return the scene cached by LoadReader")
	}
}

func TestWithScene(t *testing.T) {
	pre := &model.SceneDescription{Name: "pre"}
	l := NewLoader(BackendTypeGLTF, WithScene("pre.gltf", pre))

	got, err := l.Load("pre.gltf")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != pre {
		t.Error("Load did not return the pre-populated scene")
	}
	if n := len(l.Scenes()); n != 1 {
		t.Errorf("cache size: got %d, want 1", n)
	}
}

func TestIsSceneFile(t *testing.T) {
	tests := map[string]bool{
		"a.gltf": true,
		"b.GLB":  true,
		"c.bin":  false,
		"d":      false,
	}
	for path, want := range tests {
		if got := IsSceneFile(path); got != want {
			t.Errorf("IsSceneFile(%q): got %v, want %v", path, got, want)
		}
	}
}
