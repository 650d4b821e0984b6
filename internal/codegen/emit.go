package codegen

import (
	"fmt"
	"strings"
)

// reg32 gives the 32-bit AT&T name of a register.
var reg32 = map[Reg]string{
	AX:  "%eax",
	DX:  "%edx",
	CX:  "%ecx",
	DI:  "%edi",
	SI:  "%esi",
	R8:  "%r8d",
	R9:  "%r9d",
	R10: "%r10d",
	R11: "%r11d",
}

// reg8 gives the 8-bit AT&T name of a register, used for SetCC destinations.
var reg8 = map[Reg]string{
	AX:  "%al",
	DX:  "%dl",
	CX:  "%cl",
	DI:  "%dil",
	SI:  "%sil",
	R8:  "%r8b",
	R9:  "%r9b",
	R10: "%r10b",
	R11: "%r11b",
}

// reg64 gives the 64-bit AT&T name of a register, used for Push operands.
var reg64 = map[Reg]string{
	AX:  "%rax",
	DX:  "%rdx",
	CX:  "%rcx",
	DI:  "%rdi",
	SI:  "%rsi",
	R8:  "%r8",
	R9:  "%r9",
	R10: "%r10",
	R11: "%r11",
}

var ccSuffix = map[CondCode]string{
	E:  "e",
	NE: "ne",
	L:  "l",
	LE: "le",
	G:  "g",
	GE: "ge",
}

// Emit formats a legalized assembly-IR program as AT&T-syntax text, per
// spec.md §4.8, using basename for the `.file` directive.
func Emit(prog *Program, basename string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\t.file %q\n", basename)
	b.WriteString("\t.text\n")
	for _, fn := range prog.Funcs {
		emitFunc(&b, fn)
	}
	b.WriteString("\t.section .note.GNU-stack,\"\",@progbits\n")
	return b.String()
}

func emitFunc(b *strings.Builder, fn *Func) {
	fmt.Fprintf(b, "\t.globl %s\n", fn.Name)
	fmt.Fprintf(b, "\t.type %s, @function\n", fn.Name)
	fmt.Fprintf(b, "%s:\n", fn.Name)
	b.WriteString("\tpushq\t%rbp\n")
	b.WriteString("\tmovq\t%rsp, %rbp\n")
	for _, in := range fn.Body {
		emitInstr(b, in)
	}
	fmt.Fprintf(b, "\t.size %s, .-%s\n", fn.Name, fn.Name)
}

func emitInstr(b *strings.Builder, in Instr) {
	switch i := in.(type) {
	case *Mov:
		fmt.Fprintf(b, "\tmovl\t%s, %s\n", operand32(i.Src), operand32(i.Dst))
	case *Unary:
		op := "negl"
		if i.Op == Not {
			op = "notl"
		}
		fmt.Fprintf(b, "\t%s\t%s\n", op, operand32(i.Dst))
	case *Binary:
		var op string
		switch i.Op {
		case Add:
			op = "addl"
		case Sub:
			op = "subl"
		case Mul:
			op = "imull"
		}
		fmt.Fprintf(b, "\t%s\t%s, %s\n", op, operand32(i.Src), operand32(i.Dst))
	case *Cmp:
		fmt.Fprintf(b, "\tcmpl\t%s, %s\n", operand32(i.A), operand32(i.B))
	case *Idiv:
		fmt.Fprintf(b, "\tidivl\t%s\n", operand32(i.Operand))
	case *Cdq:
		b.WriteString("\tcdq\n")
	case *Jmp:
		fmt.Fprintf(b, "\tjmp\t%s\n", i.Target)
	case *JmpCC:
		fmt.Fprintf(b, "\tj%s\t%s\n", ccSuffix[i.Cond], i.Target)
	case *SetCC:
		fmt.Fprintf(b, "\tset%s\t%s\n", ccSuffix[i.Cond], operand8(i.Dst))
	case *Label:
		fmt.Fprintf(b, "%s:\n", i.Name)
	case *Push:
		fmt.Fprintf(b, "\tpushq\t%s\n", operand64(i.Operand))
	case *AllocateStack:
		if i.N > 0 {
			fmt.Fprintf(b, "\tsubq\t$%d, %%rsp\n", i.N)
		}
	case *DeallocateStack:
		if i.N > 0 {
			fmt.Fprintf(b, "\taddq\t$%d, %%rsp\n", i.N)
		}
	case *Call:
		fmt.Fprintf(b, "\tcall\t%s\n", i.Name)
	case *Ret:
		b.WriteString("\tmovq\t%rbp, %rsp\n")
		b.WriteString("\tpopq\t%rbp\n")
		b.WriteString("\tret\n")
	default:
		panic("codegen: unknown assembly instruction type")
	}
}

func operand32(op Operand) string {
	switch o := op.(type) {
	case Immediate:
		return fmt.Sprintf("$%d", int64(o))
	case Register:
		return reg32[o.Reg]
	case Stack:
		return fmt.Sprintf("%d(%%rbp)", o.Offset)
	case Pseudo:
		panic("codegen: unassigned pseudo reached the emitter: " + o.Name)
	default:
		panic("codegen: unknown operand type")
	}
}

func operand8(op Operand) string {
	switch o := op.(type) {
	case Register:
		return reg8[o.Reg]
	case Stack:
		return fmt.Sprintf("%d(%%rbp)", o.Offset)
	default:
		panic("codegen: SetCC destination must be a register or stack slot")
	}
}

func operand64(op Operand) string {
	switch o := op.(type) {
	case Immediate:
		return fmt.Sprintf("$%d", int64(o))
	case Register:
		return reg64[o.Reg]
	case Stack:
		return fmt.Sprintf("%d(%%rbp)", o.Offset)
	default:
		panic("codegen: unknown operand type")
	}
}
