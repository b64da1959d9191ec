package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunBundleToStdout(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.js":     "export var x = 42;",
		"index.js": "import { x } from \"./a\";\nconsole.log(x);",
	})

	code, stdout, stderr := run("-cache", "off", filepath.Join(dir, "index.js"))
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "var a$$x = 42;") {
		t.Errorf("bundle missing definition:\n%s", stdout)
	}
	if !strings.Contains(stdout, "console.log(a$$x);") {
		t.Errorf("bundle missing retargeted use:\n%s", stdout)
	}
}

func TestRunBundleToFile(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.js":     "export var x = 1;",
		"index.js": "import { x } from \"./a\";\nuse(x);",
	})
	out := filepath.Join(dir, "bundle.js")

	code, stdout, stderr := run("-cache", "off", "-o", out, filepath.Join(dir, "index.js"))
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty when writing to a file", stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read bundle: %v", err)
	}
	if !strings.Contains(string(data), "use(a$$x);") {
		t.Errorf("bundle file content:\n%s", data)
	}
}

func TestRunCustomSeparator(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.js":     "export var x = 1;",
		"index.js": "import { x } from \"./a\";\nuse(x);",
	})

	code, stdout, stderr := run("-cache", "off", "-sep", "__", filepath.Join(dir, "index.js"))
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "use(a__x);") {
		t.Errorf("custom separator not applied:\n%s", stdout)
	}
}

func TestRunList(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.js":     "export var x = 1;",
		"b.js":     "import { x } from \"./a\";\nexport var y = x;",
		"index.js": "import { y } from \"./b\";\nuse(y);",
	})

	code, stdout, stderr := run("-cache", "off", "-list", filepath.Join(dir, "index.js"))
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("list = %v, want 3 lines", lines)
	}
	want := []string{"a.js", "b.js", "index.js"}
	for i, line := range lines {
		if filepath.Base(line) != want[i] {
			t.Fatalf("list = %v, want bases %v", lines, want)
		}
	}
}

func TestRunConfigFile(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.js":     "export var x = 1;",
		"index.js": "import { x } from \"./a\";\nuse(x);",
	})
	cfgPath := filepath.Join(dir, "modfuse.yaml")
	cfg := "entry: " + filepath.Join(dir, "index.js") + "\nseparator: \"__\"\ncache: \"off\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	code, stdout, stderr := run("-config", cfgPath)
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "use(a__x);") {
		t.Errorf("config file settings not applied:\n%s", stdout)
	}
}

func TestRunNoEntry(t *testing.T) {
	code, _, stderr := run("-cache", "off")
	if code == 0 {
		t.Fatal("exit = 0, want failure without an entry")
	}
	if !strings.Contains(stderr, "no entry module") {
		t.Errorf("stderr = %q, want a no-entry message", stderr)
	}
}

func TestRunReassignmentError(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.js":     "export var x = 1;",
		"index.js": "import { x } from \"./a\";\nx = 2;",
	})

	code, stdout, stderr := run("-cache", "off", filepath.Join(dir, "index.js"))
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty on error", stdout)
	}
	if !strings.Contains(stderr, "cannot reassign imported binding") {
		t.Errorf("stderr = %q, want the reassignment diagnostic", stderr)
	}
	if !strings.Contains(stderr, "[R001]") {
		t.Errorf("stderr = %q, want the diagnostic code", stderr)
	}
}

func TestRunWithCacheFile(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.js":     "export var x = 1;",
		"index.js": "import { x } from \"./a\";\nuse(x);",
	})
	cachePath := filepath.Join(dir, "meta.db")

	for i := 0; i < 2; i++ {
		code, stdout, stderr := run("-cache", cachePath, filepath.Join(dir, "index.js"))
		if code != 0 {
			t.Fatalf("run %d: exit = %d, stderr: %s", i, code, stderr)
		}
		if !strings.Contains(stdout, "use(a$$x);") {
			t.Errorf("run %d output:\n%s", i, stdout)
		}
	}
	if _, err := os.Stat(cachePath); err != nil {
		t.Errorf("cache file not created: %v", err)
	}
}
