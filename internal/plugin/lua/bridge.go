package lua

import (
	"fmt"

	glua "github.com/yuin/gopher-lua"
)

// Bridge converts values between Go and Lua representations. Conversions
// are value-deep: tables become fresh Go maps/slices and vice versa, so
// neither side can alias the other's internals.
type Bridge struct {
	L *glua.LState
}

// NewBridge creates a Bridge for the given Lua state.
func NewBridge(L *glua.LState) *Bridge {
	return &Bridge{L: L}
}

// ToLua converts a Go value to a Lua value.
func (b *Bridge) ToLua(v any) glua.LValue {
	switch val := v.(type) {
	case nil:
		return glua.LNil
	case bool:
		return glua.LBool(val)
	case int:
		return glua.LNumber(val)
	case int32:
		return glua.LNumber(val)
	case int64:
		return glua.LNumber(val)
	case float32:
		return glua.LNumber(val)
	case float64:
		return glua.LNumber(val)
	case string:
		return glua.LString(val)
	case []any:
		tbl := b.L.NewTable()
		for i, elem := range val {
			tbl.RawSetInt(i+1, b.ToLua(elem))
		}
		return tbl
	case map[string]any:
		tbl := b.L.NewTable()
		for k, elem := range val {
			tbl.RawSetString(k, b.ToLua(elem))
		}
		return tbl
	case glua.LValue:
		return val
	default:
		return glua.LString(fmt.Sprintf("%v", val))
	}
}

// ToGo converts a Lua value to a Go value.
func (b *Bridge) ToGo(lv glua.LValue) any {
	return b.toGo(lv, make(map[*glua.LTable]bool))
}

func (b *Bridge) toGo(lv glua.LValue, visited map[*glua.LTable]bool) any {
	switch v := lv.(type) {
	case glua.LBool:
		return bool(v)
	case glua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case glua.LString:
		return string(v)
	case *glua.LTable:
		if visited[v] {
			return nil // break cycles
		}
		visited[v] = true
		return b.tableToGo(v, visited)
	case *glua.LUserData:
		return v.Value
	default:
		return nil
	}
}

// tableToGo converts a table to a slice when it is a contiguous 1-based
// array, otherwise to a string-keyed map.
func (b *Bridge) tableToGo(t *glua.LTable, visited map[*glua.LTable]bool) any {
	n := t.Len()
	if n > 0 {
		count := 0
		t.ForEach(func(_, _ glua.LValue) { count++ })
		if count == n {
			arr := make([]any, n)
			for i := 1; i <= n; i++ {
				arr[i-1] = b.toGo(t.RawGetInt(i), visited)
			}
			return arr
		}
	}

	m := make(map[string]any)
	t.ForEach(func(k, v glua.LValue) {
		m[k.String()] = b.toGo(v, visited)
	})
	return m
}
