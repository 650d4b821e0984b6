package sema

import (
	"testing"

	"cc/internal/cerr"
	"cc/internal/frontend"
	"cc/internal/util"
)

func labelSrc(t *testing.T, src string) (*frontend.Program, error) {
	t.Helper()
	prog, err := frontend.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	err = LabelLoops(prog, &util.Counter{})
	return prog, err
}

func TestLabelLoopsAssignsUniqueLabels(t *testing.T) {
	src := `int f(void) {
    while (1) { break; }
    while (1) { break; }
    return 0;
}`
	prog, err := labelSrc(t, src)
	if err != nil {
		t.Fatalf("LabelLoops: %v", err)
	}
	l1 := prog.Funcs[0].Body.Items[0].(*frontend.WhileStmt).Label
	l2 := prog.Funcs[0].Body.Items[1].(*frontend.WhileStmt).Label
	if l1 == "" || l2 == "" {
		t.Fatalf("expected non-empty labels, got %q and %q", l1, l2)
	}
	if l1 == l2 {
		t.Fatalf("expected distinct labels for distinct loops, got %q twice", l1)
	}
}

func TestLabelLoopsBreakContinueCarryInnermost(t *testing.T) {
	src := `int f(void) {
    while (1) {
        while (2) {
            break;
            continue;
        }
    }
    return 0;
}`
	prog, err := labelSrc(t, src)
	if err != nil {
		t.Fatalf("LabelLoops: %v", err)
	}
	outer := prog.Funcs[0].Body.Items[0].(*frontend.WhileStmt)
	inner := outer.Body.(*frontend.CompoundStmt).Body.Items[0].(*frontend.WhileStmt)
	innerBody := inner.Body.(*frontend.CompoundStmt).Body.Items
	brk := innerBody[0].(*frontend.BreakStmt)
	cont := innerBody[1].(*frontend.ContinueStmt)
	if brk.Label != inner.Label {
		t.Fatalf("break.Label = %q, want innermost loop's label %q", brk.Label, inner.Label)
	}
	if cont.Label != inner.Label {
		t.Fatalf("continue.Label = %q, want innermost loop's label %q", cont.Label, inner.Label)
	}
	if inner.Label == outer.Label {
		t.Fatalf("inner and outer loops must not share a label")
	}
}

func TestLabelLoopsMisplacedBreak(t *testing.T) {
	_, err := labelSrc(t, `int f(void) { break; return 0; }`)
	assertKind(t, err, cerr.MisplacedBreak)
}

func TestLabelLoopsMisplacedContinue(t *testing.T) {
	_, err := labelSrc(t, `int f(void) { continue; return 0; }`)
	assertKind(t, err, cerr.MisplacedContinue)
}

func TestLabelLoopsForLoop(t *testing.T) {
	src := `int f(void) {
    for (int i = 0; i < 10; i = i + 1) {
        continue;
    }
    return 0;
}`
	prog, err := labelSrc(t, src)
	if err != nil {
		t.Fatalf("LabelLoops: %v", err)
	}
	forStmt := prog.Funcs[0].Body.Items[0].(*frontend.ForStmt)
	if forStmt.Label == "" {
		t.Fatalf("expected a non-empty label on the for loop")
	}
	cont := forStmt.Body.(*frontend.CompoundStmt).Body.Items[0].(*frontend.ContinueStmt)
	if cont.Label != forStmt.Label {
		t.Fatalf("continue.Label = %q, want %q", cont.Label, forStmt.Label)
	}
}
