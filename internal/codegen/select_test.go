package codegen

import (
	"testing"

	"cc/internal/tacky"
)

func selectOne(body []tacky.Instr) []Instr {
	fn := &tacky.Func{Name: "f", Body: body}
	return selectFunc(fn).Body
}

func TestSelectReturnConstant(t *testing.T) {
	body := selectOne([]tacky.Instr{&tacky.Return{Value: tacky.Constant(7)}})
	if len(body) != 2 {
		t.Fatalf("got %d instrs, want 2: %#v", len(body), body)
	}
	mov, ok := body[0].(*Mov)
	if !ok || mov.Src != Immediate(7) || mov.Dst != (Register{AX}) {
		t.Fatalf("instr 0 = %#v, want Mov($7, %%eax)", body[0])
	}
	if _, ok := body[1].(*Ret); !ok {
		t.Fatalf("instr 1 = %#v, want *Ret", body[1])
	}
}

func TestSelectBinaryDivUsesCdqAndIdiv(t *testing.T) {
	body := selectOne([]tacky.Instr{
		&tacky.Binary{Op: tacky.Div, Src1: tacky.Var("a"), Src2: tacky.Var("b"), Dst: tacky.Var("d")},
	})
	if len(body) != 4 {
		t.Fatalf("got %d instrs, want 4: %#v", len(body), body)
	}
	if _, ok := body[0].(*Mov); !ok {
		t.Fatalf("instr 0 = %#v, want Mov(a, %%eax)", body[0])
	}
	if _, ok := body[1].(*Cdq); !ok {
		t.Fatalf("instr 1 = %#v, want *Cdq", body[1])
	}
	idiv, ok := body[2].(*Idiv)
	if !ok || idiv.Operand != (Pseudo{"b"}) {
		t.Fatalf("instr 2 = %#v, want Idiv(b)", body[2])
	}
	mov, ok := body[3].(*Mov)
	if !ok || mov.Src != (Register{AX}) || mov.Dst != (Pseudo{"d"}) {
		t.Fatalf("instr 3 = %#v, want Mov(%%eax, d)", body[3])
	}
}

func TestSelectBinaryRemTakesRemainderFromDX(t *testing.T) {
	body := selectOne([]tacky.Instr{
		&tacky.Binary{Op: tacky.Rem, Src1: tacky.Var("a"), Src2: tacky.Var("b"), Dst: tacky.Var("d")},
	})
	mov, ok := body[len(body)-1].(*Mov)
	if !ok || mov.Src != (Register{DX}) || mov.Dst != (Pseudo{"d"}) {
		t.Fatalf("last instr = %#v, want Mov(%%edx, d)", body[len(body)-1])
	}
}

func TestSelectRelationalUsesCmpAndSetCC(t *testing.T) {
	body := selectOne([]tacky.Instr{
		&tacky.Binary{Op: tacky.Lt, Src1: tacky.Var("a"), Src2: tacky.Var("b"), Dst: tacky.Var("d")},
	})
	if len(body) != 3 {
		t.Fatalf("got %d instrs, want 3: %#v", len(body), body)
	}
	cmp, ok := body[0].(*Cmp)
	// Cmp computes B - A in AT&T order; TAC's Src2 is the right operand,
	// so it must be A (subtrahend) and Src1 must be B.
	if !ok || cmp.A != (Pseudo{"b"}) || cmp.B != (Pseudo{"a"}) {
		t.Fatalf("instr 0 = %#v, want Cmp(b, a)", body[0])
	}
	set, ok := body[2].(*SetCC)
	if !ok || set.Cond != L {
		t.Fatalf("instr 2 = %#v, want SetCC(L, d)", body[2])
	}
}

func TestSelectUnaryLogicalNotPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic: LogicalNot must never reach the selector")
		}
	}()
	selectOne([]tacky.Instr{
		&tacky.Unary{Op: tacky.LogicalNot, Src: tacky.Var("a"), Dst: tacky.Var("d")},
	})
}

func TestSelectCallSixArgsAllInRegisters(t *testing.T) {
	args := []tacky.Value{
		tacky.Constant(1), tacky.Constant(2), tacky.Constant(3),
		tacky.Constant(4), tacky.Constant(5), tacky.Constant(6),
	}
	body := selectOne([]tacky.Instr{
		&tacky.FunctionCall{Name: "f", Args: args, Dst: tacky.Var("r")},
	})
	var pushes, allocs, deallocs int
	for _, in := range body {
		switch in.(type) {
		case *Push:
			pushes++
		case *AllocateStack:
			allocs++
		case *DeallocateStack:
			deallocs++
		}
	}
	if pushes != 0 || allocs != 0 || deallocs != 0 {
		t.Fatalf("6-argument call must not touch the stack: pushes=%d allocs=%d deallocs=%d", pushes, allocs, deallocs)
	}
	if _, ok := body[len(body)-2].(*Call); !ok {
		t.Fatalf("expected *Call right before the final result move, got %#v", body[len(body)-2])
	}
}

func TestSelectCallSevenArgsOddPadding(t *testing.T) {
	// 7 args: 6 in registers, 1 on the stack -- an odd stack-arg count, so
	// an 8-byte padding slot keeps %rsp 16-byte aligned at the call.
	args := make([]tacky.Value, 7)
	for i := range args {
		args[i] = tacky.Constant(int32(i))
	}
	body := selectOne([]tacky.Instr{
		&tacky.FunctionCall{Name: "f", Args: args, Dst: tacky.Var("r")},
	})
	alloc, ok := body[0].(*AllocateStack)
	if !ok || alloc.N != 8 {
		t.Fatalf("instr 0 = %#v, want AllocateStack(8) padding for an odd stack-arg count", body[0])
	}
	var pushes int
	var dealloc *DeallocateStack
	for _, in := range body {
		switch n := in.(type) {
		case *Push:
			pushes++
		case *DeallocateStack:
			dealloc = n
		}
	}
	if pushes != 1 {
		t.Fatalf("got %d pushes, want 1 (the seventh argument)", pushes)
	}
	if dealloc == nil || dealloc.N != 16 {
		t.Fatalf("DeallocateStack = %#v, want N=16 (8 pushed + 8 padding)", dealloc)
	}
}

func TestSelectCallEightArgsNoPadding(t *testing.T) {
	// 8 args: 6 in registers, 2 on the stack -- an even count needs no padding.
	args := make([]tacky.Value, 8)
	for i := range args {
		args[i] = tacky.Constant(int32(i))
	}
	body := selectOne([]tacky.Instr{
		&tacky.FunctionCall{Name: "f", Args: args, Dst: tacky.Var("r")},
	})
	if _, ok := body[0].(*AllocateStack); ok {
		t.Fatalf("instr 0 = %#v, want no padding for an even stack-arg count", body[0])
	}
	var pushes int
	var dealloc *DeallocateStack
	for _, in := range body {
		switch n := in.(type) {
		case *Push:
			pushes++
		case *DeallocateStack:
			dealloc = n
		}
	}
	if pushes != 2 {
		t.Fatalf("got %d pushes, want 2", pushes)
	}
	if dealloc == nil || dealloc.N != 16 {
		t.Fatalf("DeallocateStack = %#v, want N=16", dealloc)
	}
}

func TestSelectPrologueSpillsExtraParamsFromStack(t *testing.T) {
	params := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	fn := &tacky.Func{Name: "f", Params: params, Body: nil}
	body := selectFunc(fn).Body
	if len(body) != 8 {
		t.Fatalf("got %d prologue instrs, want 8", len(body))
	}
	m6 := body[6].(*Mov)
	if m6.Src != (Stack{Offset: 16}) || m6.Dst != (Pseudo{"g"}) {
		t.Fatalf("7th param = %#v, want Mov(16(%%rbp), g)", m6)
	}
	m7 := body[7].(*Mov)
	if m7.Src != (Stack{Offset: 24}) || m7.Dst != (Pseudo{"h"}) {
		t.Fatalf("8th param = %#v, want Mov(24(%%rbp), h)", m7)
	}
}
