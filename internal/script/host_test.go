package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mvickers/inkmark/internal/engine/selection"
)

const upperScript = `
inkmark.register{
	name = "upper",
	apply = function(text, s, e)
		local head = string.sub(text, 1, s)
		local mid = string.upper(string.sub(text, s + 1, e))
		local tail = string.sub(text, e + 1)
		return head .. mid .. tail, s, e
	end,
}
`

func newTestHost(t *testing.T, scripts ...string) *Host {
	t.Helper()
	h := NewHost()
	t.Cleanup(func() { h.Close() })
	for _, src := range scripts {
		if err := h.LoadString(src); err != nil {
			t.Fatalf("LoadString() error: %v", err)
		}
	}
	return h
}

func TestApplyTransform(t *testing.T) {
	h := newTestHost(t, upperScript)
	st := selection.Select("make this loud", 5, 9)

	res, err := h.Apply("upper", st)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if res.Text != "make THIS loud" {
		t.Errorf("Text = %q, want %q", res.Text, "make THIS loud")
	}
	if res.Start != 5 || res.End != 9 {
		t.Errorf("bounds = (%d,%d), want (5,9)", res.Start, res.End)
	}
	if !res.Consumed {
		t.Error("Consumed = false, want true")
	}
}

func TestApplyTransformMovesBounds(t *testing.T) {
	h := newTestHost(t, `
inkmark.register{
	name = "parenthesize",
	apply = function(text, s, e)
		local head = string.sub(text, 1, s)
		local mid = string.sub(text, s + 1, e)
		local tail = string.sub(text, e + 1)
		return head .. "(" .. mid .. ")" .. tail, s + 1, e + 1
	end,
}
`)

	res, err := h.Apply("parenthesize", selection.Select("abc", 0, 3))
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if res.Text != "(abc)" {
		t.Errorf("Text = %q, want %q", res.Text, "(abc)")
	}
	if res.Start != 1 || res.End != 4 {
		t.Errorf("bounds = (%d,%d), want (1,4)", res.Start, res.End)
	}
}

func TestApplyUnknownTransform(t *testing.T) {
	h := newTestHost(t)

	_, err := h.Apply("missing", selection.Caret("text", 0))
	if !errors.Is(err, ErrUnknownTransform) {
		t.Errorf("Apply() error = %v, want ErrUnknownTransform", err)
	}
}

func TestApplyRejectsBadBounds(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"end past text", `
inkmark.register{name = "bad", apply = function(text, s, e)
	return text, 0, #text + 10
end}`},
		{"negative start", `
inkmark.register{name = "bad", apply = function(text, s, e)
	return text, -1, 0
end}`},
		{"start after end", `
inkmark.register{name = "bad", apply = function(text, s, e)
	return text, 3, 1
end}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHost(t, tt.script)
			_, err := h.Apply("bad", selection.Select("abcdef", 0, 3))
			if !errors.Is(err, ErrInvalidBounds) {
				t.Errorf("Apply() error = %v, want ErrInvalidBounds", err)
			}
		})
	}
}

func TestApplyRejectsWrongReturnTypes(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantSub string
	}{
		{"nil text", `
inkmark.register{name = "bad", apply = function(text, s, e)
	return nil, 0, 0
end}`, "want string"},
		{"string offset", `
inkmark.register{name = "bad", apply = function(text, s, e)
	return text, "zero", 0
end}`, "want integer"},
		{"fractional offset", `
inkmark.register{name = "bad", apply = function(text, s, e)
	return text, 1.5, 2
end}`, "non-integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHost(t, tt.script)
			_, err := h.Apply("bad", selection.Select("abcdef", 0, 3))
			if err == nil {
				t.Fatal("Apply() error = nil, want type error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Apply() error = %v, want substring %q", err, tt.wantSub)
			}
		})
	}
}

func TestApplyPropagatesLuaError(t *testing.T) {
	h := newTestHost(t, `
inkmark.register{name = "boom", apply = function(text, s, e)
	error("kaboom")
end}
`)

	_, err := h.Apply("boom", selection.Caret("text", 0))
	if err == nil {
		t.Fatal("Apply() error = nil, want lua error")
	}
	if !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("Apply() error = %v, want lua message included", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"missing name", `inkmark.register{apply = function() end}`},
		{"empty name", `inkmark.register{name = "", apply = function() end}`},
		{"missing apply", `inkmark.register{name = "x"}`},
		{"apply not function", `inkmark.register{name = "x", apply = "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHost(t)
			if err := h.LoadString(tt.script); err == nil {
				t.Error("LoadString() error = nil, want registration error")
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	h := newTestHost(t, upperScript)

	err := h.LoadString(upperScript)
	if err == nil {
		t.Fatal("LoadString() error = nil, want duplicate error")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Errorf("LoadString() error = %v, want duplicate message", err)
	}
}

func TestSandboxExcludesUnsafeLibraries(t *testing.T) {
	h := newTestHost(t)

	err := h.LoadString(`
assert(io == nil, "io is open")
assert(os == nil, "os is open")
assert(debug == nil, "debug is open")
assert(package == nil, "package is open")
assert(require == nil, "require is available")
assert(load == nil, "load is available")
assert(loadstring == nil, "loadstring is available")
assert(dofile == nil, "dofile is available")
assert(loadfile == nil, "loadfile is available")
assert(string ~= nil, "string missing")
assert(table ~= nil, "table missing")
assert(math ~= nil, "math missing")
`)
	if err != nil {
		t.Errorf("sandbox check failed: %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile := func(name, src string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
	}
	writeFile("a.lua", `inkmark.register{name = "alpha", apply = function(text, s, e) return text, s, e end}`)
	writeFile("b.lua", `inkmark.register{name = "beta", apply = function(text, s, e) return text, s, e end}`)
	writeFile("notes.txt", "not a script")

	h := newTestHost(t)
	if err := h.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}

	names := h.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("Names() = %v, want [alpha beta]", names)
	}
}

func TestLoadDirMissing(t *testing.T) {
	h := newTestHost(t)

	if err := h.LoadDir(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("LoadDir() error = nil, want read error")
	}
}

func TestLoadDirPropagatesScriptError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.lua"), []byte("this is not lua ("), 0644); err != nil {
		t.Fatal(err)
	}

	h := newTestHost(t)
	err := h.LoadDir(dir)
	if err == nil {
		t.Fatal("LoadDir() error = nil, want parse error")
	}
	if !strings.Contains(err.Error(), "broken.lua") {
		t.Errorf("LoadDir() error = %v, want failing path included", err)
	}
}

func TestClosedHost(t *testing.T) {
	h := NewHost()
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}

	if err := h.LoadString("x = 1"); !errors.Is(err, ErrHostClosed) {
		t.Errorf("LoadString() after Close error = %v, want ErrHostClosed", err)
	}
	if _, err := h.Apply("any", selection.Caret("", 0)); !errors.Is(err, ErrHostClosed) {
		t.Errorf("Apply() after Close error = %v, want ErrHostClosed", err)
	}
}
