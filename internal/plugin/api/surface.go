package api

import (
	glua "github.com/yuin/gopher-lua"

	"github.com/scriptdeck/scriptdeck/internal/surface"
)

// PushSurface builds the Lua binding for a drawable surface. Unlike the
// bundle modules it is not a global: the table is passed as the argument to
// a plugin's render capability, scoping surface access to render calls.
//
// Lua surface:
//
//	surface.size() -> width, height
//	surface.set_line(row, text)  -- rows are 1-based
//	surface.clear()
func PushSurface(L *glua.LState, s surface.Surface) *glua.LTable {
	tbl := L.NewTable()

	L.SetField(tbl, "size", L.NewFunction(func(L *glua.LState) int {
		w, h := s.Size()
		L.Push(glua.LNumber(w))
		L.Push(glua.LNumber(h))
		return 2
	}))

	L.SetField(tbl, "set_line", L.NewFunction(func(L *glua.LState) int {
		row := L.CheckInt(1)
		text := L.CheckString(2)
		s.SetLine(row-1, text)
		return 0
	}))

	L.SetField(tbl, "clear", L.NewFunction(func(L *glua.LState) int {
		s.Clear()
		return 0
	}))

	return tbl
}
