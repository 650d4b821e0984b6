package sema

import (
	"cc/internal/cerr"
	"cc/internal/frontend"
	"cc/internal/util"
)

// labeler assigns a unique label to each loop and rewrites break/continue to
// carry their innermost enclosing loop's label, per spec.md §4.2. It is kept
// separate from the resolver for clarity, as the teacher's own
// identifier-resolution modules mix these two concerns inconsistently
// (spec.md §9) — this implementation adopts the fuller, split variant.
type labeler struct {
	labels *util.Counter
	stack  []string // Active loop labels, innermost last.
}

// LabelLoops runs the loop labeler over prog in place.
func LabelLoops(prog *frontend.Program, labels *util.Counter) error {
	l := &labeler{labels: labels}
	for _, fn := range prog.Funcs {
		if fn.Body != nil {
			if err := l.labelBlock(fn.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *labeler) labelBlock(b *frontend.Block) error {
	for _, item := range b.Items {
		if err := l.labelBlockItem(item); err != nil {
			return err
		}
	}
	return nil
}

func (l *labeler) labelBlockItem(item frontend.BlockItem) error {
	switch n := item.(type) {
	case *frontend.VarDecl, *frontend.FuncDecl:
		return nil
	case frontend.Stmt:
		return l.labelStmt(n)
	default:
		return cerr.New(cerr.Internal, "unknown block item type %T", item)
	}
}

func (l *labeler) labelStmt(s frontend.Stmt) error {
	switch n := s.(type) {
	case *frontend.ExprStmt, *frontend.NullStmt, *frontend.ReturnStmt:
		return nil
	case *frontend.IfStmt:
		if err := l.labelStmt(n.Then); err != nil {
			return err
		}
		if n.Else != nil {
			return l.labelStmt(n.Else)
		}
		return nil
	case *frontend.CompoundStmt:
		return l.labelBlock(n.Body)
	case *frontend.BreakStmt:
		if len(l.stack) == 0 {
			return cerr.At(cerr.MisplacedBreak, pos(n.Pos), "break outside of any loop")
		}
		n.Label = l.top()
		return nil
	case *frontend.ContinueStmt:
		if len(l.stack) == 0 {
			return cerr.At(cerr.MisplacedContinue, pos(n.Pos), "continue outside of any loop")
		}
		n.Label = l.top()
		return nil
	case *frontend.WhileStmt:
		n.Label = util.LoopLabel(l.labels)
		l.push(n.Label)
		defer l.pop()
		return l.labelStmt(n.Body)
	case *frontend.DoWhileStmt:
		n.Label = util.LoopLabel(l.labels)
		l.push(n.Label)
		defer l.pop()
		return l.labelStmt(n.Body)
	case *frontend.ForStmt:
		n.Label = util.LoopLabel(l.labels)
		l.push(n.Label)
		defer l.pop()
		return l.labelStmt(n.Body)
	default:
		return cerr.New(cerr.Internal, "unknown statement type %T", s)
	}
}

func (l *labeler) push(label string) { l.stack = append(l.stack, label) }
func (l *labeler) pop()              { l.stack = l.stack[:len(l.stack)-1] }
func (l *labeler) top() string       { return l.stack[len(l.stack)-1] }

func pos(p frontend.Pos) cerr.Pos {
	return cerr.Pos{Line: p.Line, Col: p.Col}
}
