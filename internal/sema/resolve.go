package sema

import (
	"cc/internal/cerr"
	"cc/internal/frontend"
	"cc/internal/util"
)

// resolver walks the syntax tree renaming variables to globally unique
// mangled names and validating every declaration and reference, per
// spec.md §4.1.
type resolver struct {
	scopes scopeStack
	names  *util.Counter
}

// Resolve runs identifier resolution over prog in place: every VarDecl and
// VarExpr name is rewritten to its mangled form, and every FuncDecl/CallExpr
// name is validated against the declarations visible at that point.
// names is the program-wide mangled-name counter; the driver owns it and
// passes the same instance across compilation so that names stay unique
// even if Resolve were ever invoked more than once in a process (it never
// is, today, since analysis stops at the first failure).
func Resolve(prog *frontend.Program, names *util.Counter) error {
	r := &resolver{names: names}
	r.scopes.push() // Program root scope.
	defer r.scopes.pop()
	for _, fn := range prog.Funcs {
		if err := r.resolveTopLevelFunc(fn); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) pos(p frontend.Pos) cerr.Pos {
	return cerr.Pos{Line: p.Line, Col: p.Col}
}

// resolveTopLevelFunc declares fn in the program scope and, if it has a
// body, resolves it in a fresh function scope holding its parameters.
func (r *resolver) resolveTopLevelFunc(fn *frontend.FuncDecl) error {
	if err := r.declareFunc(fn); err != nil {
		return err
	}
	return r.resolveFuncBody(fn)
}

// declareFunc implements spec.md §4.1's "Declare function" operation in the
// current (innermost) scope.
func (r *resolver) declareFunc(fn *frontend.FuncDecl) error {
	sc := r.scopes.top()
	if e, ok := sc.vars[fn.Name]; ok && !e.linkage {
		return cerr.At(cerr.DuplicateDeclaration, r.pos(fn.Pos),
			"%q is already declared as a variable in this scope", fn.Name)
	}
	sc.vars[fn.Name] = symEntry{name: fn.Name, linkage: true}
	return nil
}

// resolveFuncBody resolves a function's body, if it has one, in a fresh
// scope holding its (mangled) parameters.
func (r *resolver) resolveFuncBody(fn *frontend.FuncDecl) error {
	if fn.Body == nil {
		return nil
	}
	r.scopes.push()
	defer r.scopes.pop()
	sc := r.scopes.top()
	for i, p := range fn.Params {
		mangled := util.Mangle(r.names, p)
		sc.vars[p] = symEntry{name: mangled}
		fn.Params[i] = mangled
	}
	return r.resolveBlockInScope(fn.Body)
}

// resolveNestedFuncDecl handles a FuncDecl found as a BlockItem: nested
// definitions (a body inside another function's body) are rejected, but
// nested declarations (prototypes) are accepted and declared into the
// current scope, matching spec.md §4.1.
func (r *resolver) resolveNestedFuncDecl(fn *frontend.FuncDecl) error {
	if fn.Body != nil {
		return cerr.At(cerr.NestedFunctionDefinition, r.pos(fn.Pos),
			"function %q defined inside another function's body", fn.Name)
	}
	return r.declareFunc(fn)
}

// resolveBlock pushes a fresh scope (for a compound statement) and resolves
// its items within it.
func (r *resolver) resolveBlock(b *frontend.Block) error {
	r.scopes.push()
	defer r.scopes.pop()
	return r.resolveBlockInScope(b)
}

// resolveBlockInScope resolves a block's items without introducing an
// additional scope of its own; used both for compound statements (whose
// caller already pushed a scope) and for a function body (whose scope
// already holds the parameters).
func (r *resolver) resolveBlockInScope(b *frontend.Block) error {
	for _, item := range b.Items {
		if err := r.resolveBlockItem(item); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) resolveBlockItem(item frontend.BlockItem) error {
	switch n := item.(type) {
	case *frontend.VarDecl:
		return r.resolveVarDecl(n)
	case *frontend.FuncDecl:
		return r.resolveNestedFuncDecl(n)
	case frontend.Stmt:
		return r.resolveStmt(n)
	default:
		return cerr.New(cerr.Internal, "unknown block item type %T", item)
	}
}

// resolveVarDecl implements spec.md §4.1's "Declare variable" operation.
func (r *resolver) resolveVarDecl(d *frontend.VarDecl) error {
	sc := r.scopes.top()
	if e, ok := sc.vars[d.Name]; ok && !e.linkage {
		return cerr.At(cerr.DuplicateDeclaration, r.pos(d.Pos),
			"%q is already declared in this scope", d.Name)
	}
	if d.Init != nil {
		if err := r.resolveExpr(&d.Init); err != nil {
			return err
		}
	}
	mangled := util.Mangle(r.names, d.Name)
	sc.vars[d.Name] = symEntry{name: mangled}
	d.Name = mangled
	return nil
}

func (r *resolver) resolveStmt(s frontend.Stmt) error {
	switch n := s.(type) {
	case *frontend.ExprStmt:
		return r.resolveExpr(&n.X)
	case *frontend.NullStmt:
		return nil
	case *frontend.ReturnStmt:
		return r.resolveExpr(&n.X)
	case *frontend.IfStmt:
		if err := r.resolveExpr(&n.Cond); err != nil {
			return err
		}
		if err := r.resolveStmt(n.Then); err != nil {
			return err
		}
		if n.Else != nil {
			return r.resolveStmt(n.Else)
		}
		return nil
	case *frontend.CompoundStmt:
		return r.resolveBlock(n.Body)
	case *frontend.BreakStmt, *frontend.ContinueStmt:
		return nil // Validated by the loop labeler, not the resolver.
	case *frontend.WhileStmt:
		if err := r.resolveExpr(&n.Cond); err != nil {
			return err
		}
		return r.resolveStmt(n.Body)
	case *frontend.DoWhileStmt:
		if err := r.resolveStmt(n.Body); err != nil {
			return err
		}
		return r.resolveExpr(&n.Cond)
	case *frontend.ForStmt:
		return r.resolveFor(n)
	default:
		return cerr.New(cerr.Internal, "unknown statement type %T", s)
	}
}

// resolveFor pushes the for-loop header's scope, which encloses both the
// init clause and the body, per spec.md §4.1.
func (r *resolver) resolveFor(n *frontend.ForStmt) error {
	r.scopes.push()
	defer r.scopes.pop()

	switch init := n.Init.(type) {
	case *frontend.ForInitDecl:
		if err := r.resolveVarDecl(init.Decl); err != nil {
			return err
		}
	case *frontend.ForInitExpr:
		if init.X != nil {
			if err := r.resolveExpr(&init.X); err != nil {
				return err
			}
		}
	}
	if n.Cond != nil {
		if err := r.resolveExpr(&n.Cond); err != nil {
			return err
		}
	}
	if n.Post != nil {
		if err := r.resolveExpr(&n.Post); err != nil {
			return err
		}
	}
	return r.resolveStmt(n.Body)
}

// resolveExpr resolves the expression pointed to by ep. No node is replaced:
// variable references are rewritten by mutating VarExpr.Name directly.
func (r *resolver) resolveExpr(ep *frontend.Expr) error {
	switch n := (*ep).(type) {
	case *frontend.IntLit:
		return nil
	case *frontend.VarExpr:
		e, ok := r.scopes.lookup(n.Name)
		if !ok || e.linkage {
			return cerr.At(cerr.UndeclaredIdentifier, r.pos(n.Pos), "undeclared identifier %q", n.Name)
		}
		n.Name = e.name
		return nil
	case *frontend.UnaryExpr:
		return r.resolveExpr(&n.X)
	case *frontend.BinaryExpr:
		if err := r.resolveExpr(&n.L); err != nil {
			return err
		}
		return r.resolveExpr(&n.R)
	case *frontend.AssignExpr:
		if err := r.resolveExpr(&n.Target); err != nil {
			return err
		}
		if _, ok := n.Target.(*frontend.VarExpr); !ok {
			return cerr.At(cerr.InvalidLvalue, r.pos(n.Pos), "left-hand side of assignment is not a variable")
		}
		return r.resolveExpr(&n.Value)
	case *frontend.CondExpr:
		if err := r.resolveExpr(&n.Cond); err != nil {
			return err
		}
		if err := r.resolveExpr(&n.Then); err != nil {
			return err
		}
		return r.resolveExpr(&n.Else)
	case *frontend.CallExpr:
		e, ok := r.scopes.lookup(n.Name)
		if !ok || !e.linkage {
			return cerr.At(cerr.UndeclaredIdentifier, r.pos(n.Pos), "call to undeclared function %q", n.Name)
		}
		for i := range n.Args {
			if err := r.resolveExpr(&n.Args[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return cerr.New(cerr.Internal, "unknown expression type %T", n)
	}
}
