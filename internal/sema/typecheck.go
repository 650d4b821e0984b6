package sema

import (
	"cc/internal/cerr"
	"cc/internal/frontend"
)

// funcSig records a function's arity and whether it has been defined (has a
// body), so a later declaration/definition/call can be checked against it.
type funcSig struct {
	arity   int
	defined bool
}

// typeChecker implements spec.md §4.3: it tracks function symbols by name
// (functions have external linkage, so identity is their unmangled name,
// stable program-wide) and verifies arity consistency, rejects a second
// definition, and verifies every call site's argument count. Because a call
// can only have resolved successfully if its target was already declared in
// an enclosing scope (spec.md §4.1), a single forward walk that registers
// signatures as it encounters declarations is sufficient: by the time a
// call site is reached, its target is already registered.
type typeChecker struct {
	sigs map[string]funcSig
}

// TypeCheck runs the type checker over an already resolved and labeled
// program.
func TypeCheck(prog *frontend.Program) error {
	tc := &typeChecker{sigs: make(map[string]funcSig)}
	for _, fn := range prog.Funcs {
		if err := tc.checkFuncDecl(fn); err != nil {
			return err
		}
		if fn.Body != nil {
			if err := tc.checkBlock(fn.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkFuncDecl implements the declaration-compatibility rules: arity must
// match any prior declaration, and a function may be defined (given a body)
// at most once.
func (tc *typeChecker) checkFuncDecl(fn *frontend.FuncDecl) error {
	arity := len(fn.Params)
	prev, ok := tc.sigs[fn.Name]
	if ok {
		if prev.arity != arity {
			return cerr.At(cerr.IncompatibleDeclaration, pos(fn.Pos),
				"%q redeclared with %d parameter(s), previously declared with %d", fn.Name, arity, prev.arity)
		}
		if fn.Body != nil {
			if prev.defined {
				return cerr.At(cerr.Redefinition, pos(fn.Pos), "%q redefined", fn.Name)
			}
			prev.defined = true
		}
		tc.sigs[fn.Name] = prev
		return nil
	}
	tc.sigs[fn.Name] = funcSig{arity: arity, defined: fn.Body != nil}
	return nil
}

func (tc *typeChecker) checkBlock(b *frontend.Block) error {
	for _, item := range b.Items {
		if err := tc.checkBlockItem(item); err != nil {
			return err
		}
	}
	return nil
}

func (tc *typeChecker) checkBlockItem(item frontend.BlockItem) error {
	switch n := item.(type) {
	case *frontend.VarDecl:
		if n.Init != nil {
			return tc.checkExpr(n.Init)
		}
		return nil
	case *frontend.FuncDecl:
		return tc.checkFuncDecl(n)
	case frontend.Stmt:
		return tc.checkStmt(n)
	default:
		return cerr.New(cerr.Internal, "unknown block item type %T", item)
	}
}

func (tc *typeChecker) checkStmt(s frontend.Stmt) error {
	switch n := s.(type) {
	case *frontend.ExprStmt:
		return tc.checkExpr(n.X)
	case *frontend.NullStmt:
		return nil
	case *frontend.ReturnStmt:
		return tc.checkExpr(n.X)
	case *frontend.IfStmt:
		if err := tc.checkExpr(n.Cond); err != nil {
			return err
		}
		if err := tc.checkStmt(n.Then); err != nil {
			return err
		}
		if n.Else != nil {
			return tc.checkStmt(n.Else)
		}
		return nil
	case *frontend.CompoundStmt:
		return tc.checkBlock(n.Body)
	case *frontend.BreakStmt, *frontend.ContinueStmt:
		return nil
	case *frontend.WhileStmt:
		if err := tc.checkExpr(n.Cond); err != nil {
			return err
		}
		return tc.checkStmt(n.Body)
	case *frontend.DoWhileStmt:
		if err := tc.checkStmt(n.Body); err != nil {
			return err
		}
		return tc.checkExpr(n.Cond)
	case *frontend.ForStmt:
		switch init := n.Init.(type) {
		case *frontend.ForInitDecl:
			if init.Decl.Init != nil {
				if err := tc.checkExpr(init.Decl.Init); err != nil {
					return err
				}
			}
		case *frontend.ForInitExpr:
			if init.X != nil {
				if err := tc.checkExpr(init.X); err != nil {
					return err
				}
			}
		}
		if n.Cond != nil {
			if err := tc.checkExpr(n.Cond); err != nil {
				return err
			}
		}
		if n.Post != nil {
			if err := tc.checkExpr(n.Post); err != nil {
				return err
			}
		}
		return tc.checkStmt(n.Body)
	default:
		return cerr.New(cerr.Internal, "unknown statement type %T", s)
	}
}

func (tc *typeChecker) checkExpr(e frontend.Expr) error {
	switch n := e.(type) {
	case *frontend.IntLit, *frontend.VarExpr:
		return nil
	case *frontend.UnaryExpr:
		return tc.checkExpr(n.X)
	case *frontend.BinaryExpr:
		if err := tc.checkExpr(n.L); err != nil {
			return err
		}
		return tc.checkExpr(n.R)
	case *frontend.AssignExpr:
		if err := tc.checkExpr(n.Target); err != nil {
			return err
		}
		return tc.checkExpr(n.Value)
	case *frontend.CondExpr:
		if err := tc.checkExpr(n.Cond); err != nil {
			return err
		}
		if err := tc.checkExpr(n.Then); err != nil {
			return err
		}
		return tc.checkExpr(n.Else)
	case *frontend.CallExpr:
		sig, ok := tc.sigs[n.Name]
		if !ok {
			// The resolver already guarantees n.Name is a declared, linked
			// function; reaching here without a signature is a compiler bug.
			return cerr.New(cerr.Internal, "call to %q has no registered signature", n.Name)
		}
		if len(n.Args) != sig.arity {
			return cerr.At(cerr.IncompatibleDeclaration, pos(n.Pos),
				"%q called with %d argument(s), expected %d", n.Name, len(n.Args), sig.arity)
		}
		for _, a := range n.Args {
			if err := tc.checkExpr(a); err != nil {
				return err
			}
		}
		return nil
	default:
		return cerr.New(cerr.Internal, "unknown expression type %T", n)
	}
}
