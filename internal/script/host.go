package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/mvickers/inkmark/internal/dispatcher"
	"github.com/mvickers/inkmark/internal/engine/mutate"
	"github.com/mvickers/inkmark/internal/engine/selection"
	"github.com/mvickers/inkmark/internal/logging"
)

// Host owns a sandboxed Lua state and the transforms scripts have
// registered in it.
//
// gopher-lua's LState is not goroutine-safe; the Host serializes every
// load and call behind its mutex.
type Host struct {
	mu         sync.Mutex
	state      *lua.LState
	transforms map[string]*lua.LFunction
	order      []string
	log        *logging.Logger
	closed     bool
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the host logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.log = l.WithComponent("script")
		}
	}
}

// NewHost creates a host with a freshly sandboxed Lua state.
func NewHost(opts ...Option) *Host {
	h := &Host{
		transforms: make(map[string]*lua.LFunction),
		log:        logging.Discard,
	}
	for _, opt := range opts {
		opt(h)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Base brings the code-loading escape hatches along; remove them.
	for _, name := range []string{"load", "loadstring", "dofile", "loadfile"} {
		L.SetGlobal(name, lua.LNil)
	}

	mod := L.NewTable()
	L.SetField(mod, "register", L.NewFunction(h.luaRegister))
	L.SetGlobal("inkmark", mod)

	h.state = L
	return h
}

var _ dispatcher.Transformer = (*Host)(nil)

// luaRegister implements inkmark.register. It only runs during a load,
// which already holds the host mutex.
func (h *Host) luaRegister(L *lua.LState) int {
	tbl := L.CheckTable(1)

	name, ok := L.GetField(tbl, "name").(lua.LString)
	if !ok || name == "" {
		L.RaiseError("register: name must be a non-empty string")
		return 0
	}
	fn, ok := L.GetField(tbl, "apply").(*lua.LFunction)
	if !ok {
		L.RaiseError("register: apply must be a function")
		return 0
	}
	if _, exists := h.transforms[string(name)]; exists {
		L.RaiseError("register: transform %q already registered", string(name))
		return 0
	}

	h.transforms[string(name)] = fn
	h.order = append(h.order, string(name))
	return 0
}

// LoadDir loads every *.lua file in dir, in name order.
func (h *Host) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read script directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".lua") {
			continue
		}
		if err := h.LoadFile(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile runs one script file, letting it register transforms.
func (h *Host) LoadFile(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	err := h.protect(func() error { return h.state.DoFile(path) })
	if err != nil {
		return fmt.Errorf("load script %s: %w", path, err)
	}
	h.log.Debug("loaded script %s", path)
	return nil
}

// LoadString runs a script from source.
func (h *Host) LoadString(code string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	err := h.protect(func() error { return h.state.DoString(code) })
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	return nil
}

// Names returns the registered transform names in registration order.
func (h *Host) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.order...)
}

// Apply runs the named transform against the selection state. The
// returned bounds are validated against the returned text; a transform
// that misreports them is an error, never a silent clamp.
func (h *Host) Apply(name string, st selection.State) (mutate.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return mutate.Result{}, ErrHostClosed
	}
	fn, ok := h.transforms[name]
	if !ok {
		return mutate.Result{}, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
	}

	var res mutate.Result
	err := h.protect(func() error {
		L := h.state
		top := L.GetTop()
		defer L.SetTop(top)

		L.Push(fn)
		L.Push(lua.LString(st.Text))
		L.Push(lua.LNumber(st.Start))
		L.Push(lua.LNumber(st.End))
		if err := L.PCall(3, 3, nil); err != nil {
			return err
		}

		text, ok := L.Get(top + 1).(lua.LString)
		if !ok {
			return fmt.Errorf("returned %s for text, want string", L.Get(top+1).Type())
		}
		start, err := intReturn(L.Get(top+2), "start")
		if err != nil {
			return err
		}
		end, err := intReturn(L.Get(top+3), "end")
		if err != nil {
			return err
		}
		if start < 0 || end < start || end > len(text) {
			return fmt.Errorf("%w: start %d, end %d, text length %d",
				ErrInvalidBounds, start, end, len(text))
		}

		res = mutate.Result{Text: string(text), Start: start, End: end, Consumed: true}
		return nil
	})
	if err != nil {
		return mutate.Result{}, fmt.Errorf("transform %q: %w", name, err)
	}
	return res, nil
}

// intReturn converts a Lua return value to an integral offset.
func intReturn(v lua.LValue, which string) (int, error) {
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("returned %s for %s, want integer", v.Type(), which)
	}
	i := int(n)
	if lua.LNumber(i) != n {
		return 0, fmt.Errorf("returned non-integer %v for %s", float64(n), which)
	}
	return i, nil
}

// protect runs fn, converting Lua panics into errors.
func (h *Host) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the Lua state. Further loads and calls return
// ErrHostClosed.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.state.Close()
	h.closed = true
	return nil
}
