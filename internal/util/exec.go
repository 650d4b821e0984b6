package util

import (
	"os/exec"

	"github.com/pkg/errors"
)

// Preprocess invokes the external C preprocessor on src, producing dst, per
// spec.md §6: `gcc -E -P <input.c> -o <input.i>`.
func Preprocess(src, dst string) error {
	cmd := exec.Command("gcc", "-E", "-P", src, "-o", dst)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "preprocess: %s", out)
	}
	return nil
}

// Link invokes the external toolchain's assembler and linker on the emitted
// assembly file src, producing the executable exe, per spec.md §6:
// `gcc -o <exe> <input.s>`.
func Link(src, exe string) error {
	cmd := exec.Command("gcc", "-o", exe, src)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "link: %s", out)
	}
	return nil
}
