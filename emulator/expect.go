package emulator

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/katta/cpu"
	"github.com/ezrec/katta/internal"
)

// unpackAddr converts a Starlark integer to a bus address.
func unpackAddr(fn *starlark.Builtin, value starlark.Value) (addr uint32, err error) {
	st_int, ok := value.(starlark.Int)
	if !ok {
		err = ErrExpression(fn.Name())
		return
	}

	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrExpression(fn.Name())
		return
	}

	addr = uint32(st_int64)
	return
}

// predeclared returns the machine state visible to expectations.
func (emu *Emulator) predeclared() (pred starlark.StringDict) {
	words := map[uint32]int32{}
	for addr, value := range internal.IterSeq2Concat(emu.Cpu.Memory.Words(), emu.Cpu.Stack.Words()) {
		words[addr] = value
	}

	var stack []starlark.Value
	for _, value := range emu.Cpu.Stack.Words() {
		stack = append(stack, starlark.MakeInt(int(value)))
	}

	mem := func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var st_addr starlark.Value
		err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &st_addr)
		if err != nil {
			return nil, err
		}
		addr, err := unpackAddr(fn, st_addr)
		if err != nil {
			return nil, err
		}
		value, ok := words[addr]
		if !ok {
			value = cpu.SENTINEL
		}
		return starlark.MakeInt(int(value)), nil
	}

	label := func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name)
		if err != nil {
			return nil, err
		}
		found, ok := emu.Program.Label(name)
		if !ok {
			return starlark.None, nil
		}
		return starlark.MakeInt64(int64(found.Addr)), nil
	}

	pred = starlark.StringDict{
		"FLAG":  starlark.Bool(emu.Cpu.Cond),
		"STEPS": starlark.MakeInt(emu.Cpu.Steps),
		"stack": starlark.NewList(stack),
		"mem":   starlark.NewBuiltin("mem", mem),
		"label": starlark.NewBuiltin("label", label),
	}

	for n, name := range cpu.RegisterName {
		pred[name] = starlark.MakeInt(int(emu.Cpu.Register[n]))
	}

	return
}

// Expect evaluates a Starlark expression against the machine state, and
// returns its truth value.
//
// The registers are A to D, the flag is FLAG, the executed instruction count
// is STEPS, the stack values, top first, are the list stack, mem(addr) reads
// data or stack memory without a bus access, and label(name) is the address
// of a label, or None.
func (emu *Emulator) Expect(expr string) (ok bool, err error) {
	thread := starlark.Thread{Name: "expect"}
	opts := syntax.FileOptions{}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expect", prog, emu.predeclared())
	if err != nil {
		return
	}

	st_rc, found := dict["rc"]
	if !found {
		err = ErrExpression(expr)
		return
	}

	ok = bool(st_rc.Truth())
	return
}
