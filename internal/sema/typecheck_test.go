package sema

import (
	"testing"

	"cc/internal/cerr"
	"cc/internal/frontend"
)

func typeCheckSrc(t *testing.T, src string) error {
	t.Helper()
	prog, err := frontend.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return TypeCheck(prog)
}

func TestTypeCheckArityMismatch(t *testing.T) {
	src := `int f(int a, int b);
int f(int a) { return a; }`
	assertKind(t, typeCheckSrc(t, src), cerr.IncompatibleDeclaration)
}

func TestTypeCheckRedefinition(t *testing.T) {
	src := `int f(void) { return 1; }
int f(void) { return 2; }`
	assertKind(t, typeCheckSrc(t, src), cerr.Redefinition)
}

func TestTypeCheckMultipleCompatibleDeclarationsOK(t *testing.T) {
	src := `int f(int a);
int f(int a);
int f(int a) { return a; }`
	if err := typeCheckSrc(t, src); err != nil {
		t.Fatalf("TypeCheck: %v, want repeated compatible declarations to be legal", err)
	}
}

func TestTypeCheckCallArityMismatch(t *testing.T) {
	src := `int add(int a, int b) { return a + b; }
int main(void) { return add(1); }`
	assertKind(t, typeCheckSrc(t, src), cerr.IncompatibleDeclaration)
}

func TestTypeCheckCallArityOK(t *testing.T) {
	src := `int add(int a, int b) { return a + b; }
int main(void) { return add(1, 2); }`
	if err := typeCheckSrc(t, src); err != nil {
		t.Fatalf("TypeCheck: %v", err)
	}
}
