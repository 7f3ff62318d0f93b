package transform

import (
	"context"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/richsheet/internal/delta"
)

// DefaultScriptTimeout bounds a single script invocation.
const DefaultScriptTimeout = 100 * time.Millisecond

// ScriptFunc is the global function a script must define. It receives the
// attribute value and returns a style table or nil:
//
//	function style(value)
//	  if value == "loud" then
//	    return { bold = true, case = "upper", fg = "#ff0000" }
//	  end
//	end
//
// Recognized fields are bold, italic, underline, strike, dim (booleans),
// fg and bg (hex colors) and case ("upper", "lower", "title").
const ScriptFunc = "style"

// Script is a Transform implemented in Lua. The interpreter runs with only
// the base, table, string and math libraries and without file loading.
// Calls are serialized; a Script is safe for concurrent use.
type Script struct {
	mu      sync.Mutex
	L       *lua.LState
	timeout time.Duration
	closed  bool
}

// ScriptOption configures a Script.
type ScriptOption func(*Script)

// WithScriptTimeout sets the per-call timeout. Zero disables it.
func WithScriptTimeout(d time.Duration) ScriptOption {
	return func(s *Script) {
		s.timeout = d
	}
}

// NewScript compiles source and checks that it defines ScriptFunc.
func NewScript(source string, opts ...ScriptOption) (*Script, error) {
	s := &Script{timeout: DefaultScriptTimeout}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	s.L = L

	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		L.SetContext(ctx)
	}
	err := s.protect(func() error { return L.DoString(source) })
	if s.timeout > 0 {
		L.RemoveContext()
	}
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}
	if fn := L.GetGlobal(ScriptFunc); fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("%w: %s is not a function (got %s)", ErrScript, ScriptFunc, fn.Type())
	}
	return s, nil
}

// openSafeLibraries opens the libraries a style function may need and
// removes everything that loads code from outside the script.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// protect runs fn, turning a Lua panic into an error.
func (s *Script) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Apply implements Transform.
func (s *Script) Apply(v delta.Value) (Style, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Style{}, ErrScriptClosed
	}

	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}

	top := s.L.GetTop()
	err := s.protect(func() error {
		return s.L.CallByParam(lua.P{
			Fn:      s.L.GetGlobal(ScriptFunc),
			NRet:    1,
			Protect: true,
		}, toLuaValue(v))
	})
	if err != nil {
		s.L.SetTop(top)
		return Style{}, fmt.Errorf("%w: %v", ErrScript, err)
	}
	ret := s.L.Get(-1)
	s.L.SetTop(top)

	return styleFromLua(ret)
}

// Close releases the interpreter. It is safe to call more than once.
func (s *Script) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}

func toLuaValue(v delta.Value) lua.LValue {
	if s, ok := v.Str(); ok {
		return lua.LString(s)
	}
	if n, ok := v.Num(); ok {
		return lua.LNumber(n)
	}
	if b, ok := v.Truth(); ok {
		return lua.LBool(b)
	}
	return lua.LNil
}

func styleFromLua(lv lua.LValue) (Style, error) {
	var style Style
	switch t := lv.(type) {
	case *lua.LNilType:
		return style, nil
	case *lua.LTable:
		style.Bold = lua.LVAsBool(t.RawGetString("bold"))
		style.Italic = lua.LVAsBool(t.RawGetString("italic"))
		style.Underline = lua.LVAsBool(t.RawGetString("underline"))
		style.StrikeThrough = lua.LVAsBool(t.RawGetString("strike"))
		style.Dim = lua.LVAsBool(t.RawGetString("dim"))

		var err error
		if fg, ok := t.RawGetString("fg").(lua.LString); ok {
			if style.Foreground, err = ParseColor(string(fg)); err != nil {
				return Style{}, fmt.Errorf("%w: %v", ErrScript, err)
			}
		}
		if bg, ok := t.RawGetString("bg").(lua.LString); ok {
			if style.Background, err = ParseColor(string(bg)); err != nil {
				return Style{}, fmt.Errorf("%w: %v", ErrScript, err)
			}
		}
		if c, ok := t.RawGetString("case").(lua.LString); ok {
			if style.Case, err = ParseCase(string(c)); err != nil {
				return Style{}, fmt.Errorf("%w: %v", ErrScript, err)
			}
		}
		return style, nil
	default:
		return Style{}, fmt.Errorf("%w: %s returned %s, expected table or nil", ErrScript, ScriptFunc, lv.Type())
	}
}
