package codegen_test

import (
	"fmt"
	"strings"
	"testing"

	"cc/internal/codegen"
)

// ExampleEmit shows the full text emitted for a trivial function, including
// the file header, prologue/epilogue and the note.GNU-stack footer.
func ExampleEmit() {
	prog := &codegen.Program{Funcs: []*codegen.Func{{
		Name: "main",
		Body: []codegen.Instr{
			&codegen.AllocateStack{N: 0},
			&codegen.Mov{Src: codegen.Immediate(2), Dst: codegen.Register{Reg: codegen.AX}},
			&codegen.Ret{},
		},
	}}}
	fmt.Print(codegen.Emit(prog, "ret.c"))
	// Output:
	// 	.file "ret.c"
	// 	.text
	// 	.globl main
	// 	.type main, @function
	// main:
	// 	pushq	%rbp
	// 	movq	%rsp, %rbp
	// 	movl	$2, %eax
	// 	movq	%rbp, %rsp
	// 	popq	%rbp
	// 	ret
	// 	.size main, .-main
	// 	.section .note.GNU-stack,"",@progbits
}

func TestEmitOmitsZeroSizeAllocateDeallocate(t *testing.T) {
	prog := &codegen.Program{Funcs: []*codegen.Func{{
		Name: "f",
		Body: []codegen.Instr{
			&codegen.AllocateStack{N: 0},
			&codegen.DeallocateStack{N: 0},
			&codegen.Ret{},
		},
	}}}
	text := codegen.Emit(prog, "f.c")
	if strings.Contains(text, "subq") || strings.Contains(text, "addq") {
		t.Fatalf("a zero-size AllocateStack/DeallocateStack must not emit subq/addq:\n%s", text)
	}
}

func TestEmitNonZeroAllocateStack(t *testing.T) {
	prog := &codegen.Program{Funcs: []*codegen.Func{{
		Name: "f",
		Body: []codegen.Instr{&codegen.AllocateStack{N: 16}, &codegen.Ret{}},
	}}}
	text := codegen.Emit(prog, "f.c")
	if !strings.Contains(text, "subq\t$16, %rsp") {
		t.Fatalf("expected 'subq $16, %%rsp', got:\n%s", text)
	}
}

func TestEmitStackOperand(t *testing.T) {
	prog := &codegen.Program{Funcs: []*codegen.Func{{
		Name: "f",
		Body: []codegen.Instr{
			&codegen.Mov{Src: codegen.Immediate(1), Dst: codegen.Stack{Offset: -4}},
			&codegen.Ret{},
		},
	}}}
	text := codegen.Emit(prog, "f.c")
	if !strings.Contains(text, "movl\t$1, -4(%rbp)") {
		t.Fatalf("expected a frame-relative operand, got:\n%s", text)
	}
}

func TestEmitJumpAndLabelPassThroughVerbatim(t *testing.T) {
	// Labels generated upstream already carry globally-unique, assembler-legal
	// names (".L7", "break_3", ...); the emitter must not rewrite them.
	prog := &codegen.Program{Funcs: []*codegen.Func{{
		Name: "f",
		Body: []codegen.Instr{
			&codegen.Jmp{Target: "break_3"},
			&codegen.Label{Name: "break_3"},
			&codegen.Ret{},
		},
	}}}
	text := codegen.Emit(prog, "f.c")
	if !strings.Contains(text, "jmp\tbreak_3") {
		t.Fatalf("expected 'jmp break_3' unchanged, got:\n%s", text)
	}
	if !strings.Contains(text, "break_3:\n") {
		t.Fatalf("expected label 'break_3:' unchanged, got:\n%s", text)
	}
}

func TestEmitSetCCUsesEightBitDestination(t *testing.T) {
	prog := &codegen.Program{Funcs: []*codegen.Func{{
		Name: "f",
		Body: []codegen.Instr{
			&codegen.SetCC{Cond: codegen.L, Dst: codegen.Register{Reg: codegen.AX}},
			&codegen.Ret{},
		},
	}}}
	text := codegen.Emit(prog, "f.c")
	if !strings.Contains(text, "setl\t%al") {
		t.Fatalf("expected 'setl %%al' (8-bit register form), got:\n%s", text)
	}
}

func TestEmitUnassignedPseudoPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic: a Pseudo must never reach the emitter")
		}
	}()
	prog := &codegen.Program{Funcs: []*codegen.Func{{
		Name: "f",
		Body: []codegen.Instr{&codegen.Mov{Src: codegen.Immediate(1), Dst: codegen.Pseudo{Name: "x"}}},
	}}}
	codegen.Emit(prog, "f.c")
}
