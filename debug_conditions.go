// debug_conditions.go - breakpoint expression evaluator for the BIOS debug console
//
// Break expressions are small Lua boolean expressions evaluated against
// the CPU's register state at the moment a BIOS interrupt is about to be
// serviced, e.g. "int == 0x13 and ah == 0x02" breaks only on the CHS
// disk-read subfunction. A bare interrupt number ("0x10") is shorthand
// for "int == 0x10".

package main

import (
	"fmt"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// BreakCondition is a compiled expression evaluated once per INT n.
type BreakCondition struct {
	expr string
	l    *lua.LState
	fn   *lua.LFunction
}

// ParseBreakCondition compiles a break expression. A bare hex/decimal
// number is treated as shorthand for "int == <vector>".
func ParseBreakCondition(expr string) (*BreakCondition, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty break expression")
	}
	if v, ok := parseVectorLiteral(expr); ok {
		expr = fmt.Sprintf("int == %d", v)
	}

	l := lua.NewState()
	fn, err := l.LoadString("return (" + expr + ")")
	if err != nil {
		l.Close()
		return nil, fmt.Errorf("parsing break expression %q: %w", expr, err)
	}
	return &BreakCondition{expr: expr, l: l, fn: fn}, nil
}

func parseVectorLiteral(s string) (uint64, bool) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Close releases the Lua state backing this condition.
func (b *BreakCondition) Close() {
	b.l.Close()
}

func (b *BreakCondition) String() string {
	return b.expr
}

// Eval runs the compiled expression against a register snapshot. vector
// is exposed as the Lua global "int"; every entry in regs is exposed
// under its lowercase register name (ah, al, ax, bx, cx, dx, ds, es,
// flags, ...).
func (b *BreakCondition) Eval(vector byte, regs map[string]uint64) (bool, error) {
	b.l.SetGlobal("int", lua.LNumber(vector))
	for name, val := range regs {
		b.l.SetGlobal(strings.ToLower(name), lua.LNumber(val))
	}
	b.l.Push(b.fn)
	if err := b.l.PCall(0, 1, nil); err != nil {
		return false, fmt.Errorf("evaluating break expression %q: %w", b.expr, err)
	}
	ret := b.l.Get(-1)
	b.l.Pop(1)
	return lua.LVAsBool(ret), nil
}
