package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cc/internal/cerr"
	"cc/internal/codegen"
	"cc/internal/frontend"
	"cc/internal/sema"
	"cc/internal/tacky"
	"cc/internal/util"
)

// verbosef prints a per-stage -vb progress line to stderr (stdout is
// reserved for a stage-stop flag's IR dump), matching the teacher's
// `if opt.Verbose { ir.Root.Print(0, true) }` gate in spirit: diagnostics
// are plain fmt.Fprintf calls behind a boolean flag, not a logging
// framework (spec.md §2.2).
func verbosef(opt options, format string, args ...interface{}) {
	if opt.Verbose {
		fmt.Fprintf(os.Stderr, "cc: "+format+"\n", args...)
	}
}

// run drives the pipeline end to end, stopping early and printing an
// intermediate representation if opt.Stop requests it. Each stage's
// description matches spec.md §2's table, leaves first. Under -vb, each
// stage also reports its wall-clock time and, where spec.md §2.2 commits to
// one, a count: variables renamed, loops labeled, pseudos assigned.
func run(opt options) error {
	t := time.Now()
	iPath := strings.TrimSuffix(opt.Src, ".c") + ".i"
	if err := util.Preprocess(opt.Src, iPath); err != nil {
		return cerr.Wrap(cerr.ExternalTool, err, "preprocessing %s", opt.Src)
	}
	defer os.Remove(iPath)
	verbosef(opt, "preprocess: %s", time.Since(t))

	src, err := util.ReadSource(iPath)
	if err != nil {
		return cerr.Wrap(cerr.IO, err, "reading %s", iPath)
	}

	if opt.Stop == stopLex {
		fmt.Println(frontend.TokenStream(src))
		return nil
	}

	t = time.Now()
	prog, err := frontend.Parse(src)
	if err != nil {
		return err
	}
	verbosef(opt, "parse: %s", time.Since(t))
	if opt.Stop == stopParse {
		fmt.Print(util.Dump(prog))
		return nil
	}

	t = time.Now()
	names := &util.Counter{}
	if err := sema.Resolve(prog, names); err != nil {
		return err
	}
	verbosef(opt, "resolve: %s (%d variables renamed)", time.Since(t), names.Count())

	t = time.Now()
	labels := &util.Counter{}
	if err := sema.LabelLoops(prog, labels); err != nil {
		return err
	}
	verbosef(opt, "label loops: %s (%d loops labeled)", time.Since(t), labels.Count())

	t = time.Now()
	if err := sema.TypeCheck(prog); err != nil {
		return err
	}
	verbosef(opt, "type check: %s", time.Since(t))
	if opt.Stop == stopValidate {
		fmt.Print(util.Dump(prog))
		return nil
	}

	t = time.Now()
	tac := tacky.Generate(prog)
	verbosef(opt, "tacky: %s", time.Since(t))
	if opt.Stop == stopTacky {
		fmt.Print(util.Dump(tac))
		return nil
	}

	t = time.Now()
	asm := codegen.Select(tac)
	pseudos := 0
	for _, fn := range asm.Funcs {
		pseudos += codegen.AssignStack(fn)
		codegen.Legalize(fn)
	}
	verbosef(opt, "codegen: %s (%d pseudos assigned)", time.Since(t), pseudos)
	if opt.Stop == stopCodegen {
		fmt.Print(util.Dump(asm))
		return nil
	}

	t = time.Now()
	err = assembleAndLink(opt, asm)
	verbosef(opt, "assemble+link: %s", time.Since(t))
	return err
}

// assembleAndLink emits the final assembly text, then shells out to the
// external C toolchain to assemble and link it (spec.md §6). Unless
// -S/--keep-asm was given, the .s file is removed once the link step has
// run, whether linking succeeded or failed.
func assembleAndLink(opt options, asm *codegen.Program) error {
	basename := filepath.Base(opt.Src)
	text := codegen.Emit(asm, basename)

	asmPath := strings.TrimSuffix(opt.Src, ".c") + ".s"
	f, err := os.Create(asmPath)
	if err != nil {
		return cerr.Wrap(cerr.IO, err, "writing %s", asmPath)
	}
	w := util.NewWriter(f)
	w.WriteString(text)
	flushErr := w.Flush()
	closeErr := f.Close()
	if flushErr != nil {
		return cerr.Wrap(cerr.IO, flushErr, "writing %s", asmPath)
	}
	if closeErr != nil {
		return cerr.Wrap(cerr.IO, closeErr, "writing %s", asmPath)
	}
	cleanup := func() {
		if !opt.KeepAsm {
			_ = os.Remove(asmPath)
		}
	}

	if err := util.Link(asmPath, opt.Out); err != nil {
		cleanup()
		return cerr.Wrap(cerr.ExternalTool, err, "linking %s", opt.Out)
	}
	cleanup()
	return nil
}

func main() {
	opt, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "cc: %s\n", err)
		os.Exit(2)
	}

	if err := run(opt); err != nil {
		fmt.Fprintf(os.Stderr, "cc: %s\n", err)
		if cerr.IsInternal(err) {
			// A violated compiler invariant, not a user-facing diagnostic;
			// exit distinctly so scripts can tell the two apart (spec.md §7).
			os.Exit(3)
		}
		os.Exit(1)
	}
}
