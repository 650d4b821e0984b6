package util

import "github.com/davecgh/go-spew/spew"

// dumpConfig renders struct values without pointer addresses, which would
// otherwise make every `--parse`/`--tacky`/`--codegen` dump nondeterministic
// and useless for diffing against a golden file.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump renders v as an indented, human-readable tree, for the driver's
// intermediate-representation stage-stop flags (spec.md §6).
func Dump(v interface{}) string {
	return dumpConfig.Sdump(v)
}
