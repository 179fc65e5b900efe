package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cubeScene = `
objects:
  - name: Camera
    kind: camera
  - name: Plane
    kind: mesh
    mesh:
      positions: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
      polygons: [[0, 1, 2, 3]]
      uv_layers:
        - name: UVMap
          uvs: [[0, 0], [1, 0], [1, 1], [0, 1]]
`

const noUVScene = `
objects:
  - name: Plane
    mesh:
      positions: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
      polygons: [[0, 1, 2]]
`

func writeScene(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing scene: %v", err)
	}
	return path
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if code := run([]string{"help"}, &stdout, &stderr); code != 0 {
		t.Errorf("help exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "Usage:") {
		t.Error("help output missing usage")
	}
	if code := run([]string{"frobnicate"}, &stdout, &stderr); code != 1 {
		t.Errorf("unknown command exit code = %d, want 1", code)
	}
}

func TestExportAndInspect(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	scenePath := writeScene(t, dir, "level.yaml", cubeScene)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"export", scenePath}, &stdout, &stderr); code != 0 {
		t.Fatalf("export exit code = %d, stderr: %s", code, stderr.String())
	}

	out := filepath.Join(dir, "level.my_mesh")
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() != 8+4*6+20*4 {
		t.Errorf("output size = %d, want %d", info.Size(), 8+4*6+20*4)
	}
	if !strings.Contains(stdout.String(), "1 meshes, 2 triangles, 4 vertices") {
		t.Errorf("unexpected export output: %q", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"inspect", "-n", "1", out}, &stdout, &stderr); code != 0 {
		t.Fatalf("inspect exit code = %d, stderr: %s", code, stderr.String())
	}
	for _, want := range []string{"Indices:   6", "Triangles: 2", "Vertices:  4", "Bounds:"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("inspect output missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestExportExplicitOutput(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	scenePath := writeScene(t, dir, "level.yaml", cubeScene)
	out := filepath.Join(dir, "custom.my_mesh")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"export", scenePath, out}, &stdout, &stderr); code != 0 {
		t.Fatalf("export exit code = %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("explicit output missing: %v", err)
	}
}

func TestExportMissingUVFails(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	scenePath := writeScene(t, dir, "broken.yaml", noUVScene)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"export", scenePath}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.my_mesh")); !os.IsNotExist(err) {
		t.Errorf("output written despite failure: %v", err)
	}
	if !strings.Contains(stderr.String(), "without uv layers") {
		t.Errorf("stderr missing report: %q", stderr.String())
	}
}

func TestExportFailureReportedOnce(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	scenePath := writeScene(t, dir, "broken.yaml", noUVScene)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"export", scenePath}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if n := strings.Count(stderr.String(), "ERROR"); n != 1 {
		t.Errorf("stderr has %d ERROR lines, want 1:\n%s", n, stderr.String())
	}
}

func TestExportSuccessReportedOnce(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	scenePath := writeScene(t, dir, "level.yaml", cubeScene)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"export", scenePath}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	if n := strings.Count(stderr.String(), "Exported 1 meshes"); n != 1 {
		t.Errorf("stderr has %d summaries, want 1:\n%s", n, stderr.String())
	}
	if strings.Contains(stderr.String(), "ERROR") {
		t.Errorf("unexpected error output:\n%s", stderr.String())
	}
}

func TestConfigCommand(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"config", "-include-hidden", "-output-dir", "build"}, &stdout, &stderr); code != 0 {
		t.Fatalf("config exit code = %d, stderr: %s", code, stderr.String())
	}
	saved := filepath.Join(xdg, "mymesh", "mymesh.yaml")
	data, err := os.ReadFile(saved)
	if err != nil {
		t.Fatalf("config not saved to user dir: %v", err)
	}
	for _, want := range []string{"include_hidden: true", "output_dir: build"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("saved config missing %q:\n%s", want, data)
		}
	}

	explicit := filepath.Join(t.TempDir(), "nested", "custom.yaml")
	stdout.Reset()
	if code := run([]string{"config", "-o", explicit}, &stdout, &stderr); code != 0 {
		t.Fatalf("config -o exit code = %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(explicit); err != nil {
		t.Errorf("explicit config missing: %v", err)
	}
	if !strings.Contains(stdout.String(), explicit) {
		t.Errorf("stdout = %q, want saved path", stdout.String())
	}
}

func TestExportArgErrors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer

	if code := run([]string{"export"}, &stdout, &stderr); code != 1 {
		t.Errorf("missing scene exit code = %d, want 1", code)
	}
	if code := run([]string{"export", "/nonexistent/scene.yaml"}, &stdout, &stderr); code != 1 {
		t.Errorf("missing file exit code = %d, want 1", code)
	}
	if code := run([]string{"export", "-bogus"}, &stdout, &stderr); code != 1 {
		t.Errorf("bad flag exit code = %d, want 1", code)
	}
}

func TestInspectErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.my_mesh")
	if err := os.WriteFile(bad, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"inspect"}, &stdout, &stderr); code != 1 {
		t.Errorf("missing file arg exit code = %d, want 1", code)
	}
	if code := run([]string{"inspect", bad}, &stdout, &stderr); code != 1 {
		t.Errorf("truncated file exit code = %d, want 1", code)
	}
}

func TestOutputPathFor(t *testing.T) {
	tests := []struct {
		scene, explicit, dir, want string
	}{
		{"scenes/level.yaml", "", "", filepath.Join("scenes", "level.my_mesh")},
		{"scenes/level.yaml", "", "build", filepath.Join("build", "level.my_mesh")},
		{"scenes/level.yaml", "x.my_mesh", "build", "x.my_mesh"},
	}

	for _, tt := range tests {
		if got := outputPathFor(tt.scene, tt.explicit, tt.dir); got != tt.want {
			t.Errorf("outputPathFor(%q, %q, %q) = %q, want %q", tt.scene, tt.explicit, tt.dir, got, tt.want)
		}
	}
}
