package codegen

import "cc/internal/tacky"

// argRegs holds the six integer argument registers in System V order.
var argRegs = [6]Reg{DI, SI, DX, CX, R8, R9}

// Select translates a TAC program into assembly IR with pseudo-register
// operands, implementing spec.md §4.5 including the System V AMD64
// function-call and parameter-passing conventions. Pseudo operands are
// replaced by stack slots later, in AssignStack.
func Select(prog *tacky.Program) *Program {
	out := &Program{}
	for _, fn := range prog.Funcs {
		out.Funcs = append(out.Funcs, selectFunc(fn))
	}
	return out
}

func selectFunc(fn *tacky.Func) *Func {
	s := &selector{}
	s.prologue(fn.Params)
	for _, in := range fn.Body {
		s.selectInstr(in)
	}
	return &Func{Name: fn.Name, Body: s.instrs}
}

type selector struct {
	instrs []Instr
}

func (s *selector) emit(i Instr) { s.instrs = append(s.instrs, i) }

// prologue moves the first six parameters out of their argument registers
// and into pseudos named after the parameters; parameters beyond the sixth
// already live on the caller's stack frame at 16(%rbp), 24(%rbp), ....
func (s *selector) prologue(params []string) {
	for i, p := range params {
		if i < 6 {
			s.emit(&Mov{Src: Register{argRegs[i]}, Dst: Pseudo{p}})
		} else {
			s.emit(&Mov{Src: Stack{Offset: 16 + 8*(i-6)}, Dst: Pseudo{p}})
		}
	}
}

func operand(v tacky.Value) Operand {
	switch n := v.(type) {
	case tacky.Constant:
		return Immediate(n)
	case tacky.Var:
		return Pseudo{string(n)}
	default:
		panic("codegen: unknown tacky value type")
	}
}

var relCond = map[tacky.BinaryOp]CondCode{
	tacky.Eq: E,
	tacky.NE: NE,
	tacky.Lt: L,
	tacky.LE: LE,
	tacky.Gt: G,
	tacky.GE: GE,
}

func (s *selector) selectInstr(in tacky.Instr) {
	switch n := in.(type) {
	case *tacky.Return:
		s.emit(&Mov{Src: operand(n.Value), Dst: Register{AX}})
		s.emit(&Ret{})
	case *tacky.Unary:
		s.selectUnary(n)
	case *tacky.Binary:
		s.selectBinary(n)
	case *tacky.Copy:
		s.emit(&Mov{Src: operand(n.Src), Dst: operand(n.Dst)})
	case *tacky.Jump:
		s.emit(&Jmp{Target: n.Target})
	case *tacky.JumpIfZero:
		s.emit(&Cmp{A: Immediate(0), B: operand(n.Cond)})
		s.emit(&JmpCC{Cond: E, Target: n.Target})
	case *tacky.JumpIfNotZero:
		s.emit(&Cmp{A: Immediate(0), B: operand(n.Cond)})
		s.emit(&JmpCC{Cond: NE, Target: n.Target})
	case *tacky.Label:
		s.emit(&Label{Name: n.Name})
	case *tacky.FunctionCall:
		s.selectCall(n)
	default:
		panic("codegen: unknown tacky instruction type")
	}
}

func (s *selector) selectUnary(n *tacky.Unary) {
	d := operand(n.Dst)
	s.emit(&Mov{Src: operand(n.Src), Dst: d})
	switch n.Op {
	case tacky.Complement:
		s.emit(&Unary{Op: Not, Dst: d})
	case tacky.Negate:
		s.emit(&Unary{Op: Neg, Dst: d})
	case tacky.LogicalNot:
		// TAC never emits Unary(LogicalNot, ...): `!e` is lowered at TAC
		// generation time to Binary(Eq, v, 0, t) (spec.md §4.4).
		panic("codegen: LogicalNot reached the assembly selector")
	}
}

func (s *selector) selectBinary(n *tacky.Binary) {
	a, b, d := operand(n.Src1), operand(n.Src2), operand(n.Dst)
	switch n.Op {
	case tacky.Add:
		s.emit(&Mov{Src: a, Dst: d})
		s.emit(&Binary{Op: Add, Src: b, Dst: d})
	case tacky.Sub:
		s.emit(&Mov{Src: a, Dst: d})
		s.emit(&Binary{Op: Sub, Src: b, Dst: d})
	case tacky.Mul:
		s.emit(&Mov{Src: a, Dst: d})
		s.emit(&Binary{Op: Mul, Src: b, Dst: d})
	case tacky.Div:
		s.emit(&Mov{Src: a, Dst: Register{AX}})
		s.emit(&Cdq{})
		s.emit(&Idiv{Operand: b})
		s.emit(&Mov{Src: Register{AX}, Dst: d})
	case tacky.Rem:
		s.emit(&Mov{Src: a, Dst: Register{AX}})
		s.emit(&Cdq{})
		s.emit(&Idiv{Operand: b})
		s.emit(&Mov{Src: Register{DX}, Dst: d})
	default: // Relational: Eq, NE, Lt, LE, Gt, GE.
		s.emit(&Cmp{A: b, B: a})
		s.emit(&Mov{Src: Immediate(0), Dst: d})
		s.emit(&SetCC{Cond: relCond[n.Op], Dst: d})
	}
}

// selectCall lowers a call per the System V AMD64 convention: the first six
// arguments go in registers, the rest are pushed onto the stack in reverse
// order, and the stack is kept 16-byte aligned at the `call` instruction.
func (s *selector) selectCall(n *tacky.FunctionCall) {
	regArgs, stackArgs := n.Args, []tacky.Value(nil)
	if len(n.Args) > 6 {
		regArgs = n.Args[:6]
		stackArgs = n.Args[6:]
	}

	stackCount := len(stackArgs)
	padding := 0
	if stackCount%2 != 0 {
		padding = 8
	}
	if padding > 0 {
		s.emit(&AllocateStack{N: padding})
	}

	for i, a := range regArgs {
		s.emit(&Mov{Src: operand(a), Dst: Register{argRegs[i]}})
	}

	for i := stackCount - 1; i >= 0; i-- {
		op := operand(stackArgs[i])
		switch op.(type) {
		case Register, Immediate:
			s.emit(&Push{Operand: op})
		default:
			s.emit(&Mov{Src: op, Dst: Register{AX}})
			s.emit(&Push{Operand: Register{AX}})
		}
	}

	s.emit(&Call{Name: n.Name})

	if total := 8*stackCount + padding; total > 0 {
		s.emit(&DeallocateStack{N: total})
	}

	s.emit(&Mov{Src: Register{AX}, Dst: operand(n.Dst)})
}
