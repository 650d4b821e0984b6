package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// stopStage names the pipeline stage after which the driver should stop and
// print the intermediate representation, per spec.md §6. stopNone runs the
// pipeline to completion.
type stopStage int

const (
	stopNone stopStage = iota
	stopLex
	stopParse
	stopValidate
	stopTacky
	stopCodegen
)

// options holds the parsed command-line invocation.
type options struct {
	Src     string // Path to the input C source file.
	Out     string // Path to the output executable; defaults to Src with a trailing ".c" removed.
	Stop    stopStage
	Verbose bool // -vb: print per-stage timing and counts to stderr as the pipeline runs.
	KeepAsm bool // -S, --keep-asm: keep the generated .s file instead of deleting it after linking.
}

// ---------------------
// ----- Constants -----
// ---------------------

const appVersion = "cc - a subset-of-C compiler, 1.0"

// ---------------------
// ----- Functions -----
// ---------------------

// parseArgs parses os.Args[1:] into an options value.
func parseArgs(args []string) (options, error) {
	opt := options{}
	for i1 := 0; i1 < len(args); i1++ {
		switch args[i1] {
		case "-h", "--help":
			printHelp()
			os.Exit(0)
		case "-v", "--version":
			fmt.Println(appVersion)
			os.Exit(0)
		case "--lex":
			opt.Stop = stopLex
		case "--parse":
			opt.Stop = stopParse
		case "--validate":
			opt.Stop = stopValidate
		case "--tacky":
			opt.Stop = stopTacky
		case "--codegen":
			opt.Stop = stopCodegen
		case "-vb":
			opt.Verbose = true
		case "-S", "--keep-asm":
			opt.KeepAsm = true
		case "-o":
			if i1+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i1])
			}
			i1++
			opt.Out = args[i1]
		default:
			if strings.HasPrefix(args[i1], "-") {
				return opt, fmt.Errorf("unexpected flag: %s", args[i1])
			}
			if opt.Src != "" {
				return opt, fmt.Errorf("unexpected extra argument: %s", args[i1])
			}
			opt.Src = args[i1]
		}
	}
	if opt.Src == "" {
		return opt, fmt.Errorf("expected a path to a C source file")
	}
	if opt.Out == "" {
		opt.Out = strings.TrimSuffix(opt.Src, ".c")
	}
	return opt, nil
}

// printHelp prints a usage message to stdout.
func printHelp() {
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "usage: cc [flags] <file.c>")
	_, _ = fmt.Fprintln(w, "--lex\tStop after tokenization and print the token stream.")
	_, _ = fmt.Fprintln(w, "--parse\tStop after parsing and print the syntax tree.")
	_, _ = fmt.Fprintln(w, "--validate\tStop after semantic analysis and print the analyzed tree.")
	_, _ = fmt.Fprintln(w, "--tacky\tStop after TAC generation and print the TAC program.")
	_, _ = fmt.Fprintln(w, "--codegen\tStop after assembly selection and print the assembly IR.")
	_, _ = fmt.Fprintln(w, "-o\tPath of the output executable.")
	_, _ = fmt.Fprintln(w, "-S, --keep-asm\tKeep the generated .s file instead of deleting it after linking.")
	_, _ = fmt.Fprintln(w, "-vb\tVerbose mode: print per-stage timing and counts to stderr.")
	_, _ = fmt.Fprintln(w, "-h, --help\tPrint this help message and exit.")
	_, _ = fmt.Fprintln(w, "-v, --version\tPrint the compiler version and exit.")
	_ = w.Flush()
}
