package codegen

// Legalize rewrites instructions violating x86 operand constraints using the
// scratch registers R10 (source scratch) and R11 (destination scratch),
// per spec.md §4.7. It replaces fn.Body with the legalized instruction list.
func Legalize(fn *Func) {
	var out []Instr
	emit := func(i Instr) { out = append(out, i) }

	for _, in := range fn.Body {
		switch i := in.(type) {
		case *Mov:
			if isStack(i.Src) && isStack(i.Dst) {
				emit(&Mov{Src: i.Src, Dst: Register{R10}})
				emit(&Mov{Src: Register{R10}, Dst: i.Dst})
				continue
			}
			emit(i)
		case *Idiv:
			if imm, ok := i.Operand.(Immediate); ok {
				emit(&Mov{Src: imm, Dst: Register{R10}})
				emit(&Idiv{Operand: Register{R10}})
				continue
			}
			emit(i)
		case *Binary:
			switch i.Op {
			case Add, Sub:
				if isStack(i.Src) && isStack(i.Dst) {
					emit(&Mov{Src: i.Src, Dst: Register{R10}})
					emit(&Binary{Op: i.Op, Src: Register{R10}, Dst: i.Dst})
					continue
				}
			case Mul:
				if isStack(i.Dst) {
					emit(&Mov{Src: i.Dst, Dst: Register{R11}})
					emit(&Binary{Op: Mul, Src: i.Src, Dst: Register{R11}})
					emit(&Mov{Src: Register{R11}, Dst: i.Dst})
					continue
				}
			}
			emit(i)
		case *Cmp:
			if isStack(i.A) && isStack(i.B) {
				emit(&Mov{Src: i.A, Dst: Register{R10}})
				emit(&Cmp{A: Register{R10}, B: i.B})
				continue
			}
			if imm, ok := i.B.(Immediate); ok {
				emit(&Mov{Src: imm, Dst: Register{R11}})
				emit(&Cmp{A: i.A, B: Register{R11}})
				continue
			}
			emit(i)
		default:
			emit(i)
		}
	}
	fn.Body = out
}

func isStack(op Operand) bool {
	_, ok := op.(Stack)
	return ok
}
