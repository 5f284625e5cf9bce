package cmd

import (
	"errors"

	"github.com/ssargent/fsepack/pkg/fileio"
	"github.com/ssargent/fsepack/pkg/frame"
)

// Exit codes for failures outside the frame codec. Codec failures carry
// their own codes (see pkg/frame); together the numbering is the tool's
// shell contract.
const (
	exitGeneric          = 1
	exitOverwriteRefused = 11
	exitOpenInput        = 12
	exitOpenOutput       = 13
)

// Sentinels so exitCode can tell which open phase failed.
var (
	errOpenInput  = errors.New("cannot open input")
	errOpenOutput = errors.New("cannot open output")
)

// exitCode maps an error to the tool's numeric exit contract.
func exitCode(err error) int {
	if code := frame.Code(err); code != 0 {
		return code
	}
	switch {
	case errors.Is(err, fileio.ErrOverwriteRefused):
		return exitOverwriteRefused
	case errors.Is(err, errOpenInput):
		return exitOpenInput
	case errors.Is(err, errOpenOutput):
		return exitOpenOutput
	}
	return exitGeneric
}
