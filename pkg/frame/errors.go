// Package frame drives block-at-a-time compression and decompression of
// fsepack frames over streaming sources and sinks.
package frame

import (
	"errors"
	"fmt"
)

// Numeric error codes. They surface as process exit codes and their values
// are part of the tool's shell contract; do not renumber.
const (
	// Encode side.
	CodeAlloc           = 21
	CodeWriteHeader     = 22
	CodeReadSource      = 23
	CodeEntropyCompress = 24
	CodeWriteCompressed = 25
	CodeWriteRaw        = 26
	CodeWriteRLE        = 27
	CodeWriteTrailer    = 28

	// Decode side.
	CodeReadFrameHeader   = 30
	CodeBadMagic          = 31
	CodeReservedBits      = 32
	CodeBlockSizeID       = 33
	CodeReadBlockHeader   = 34
	CodeReadBlockBody     = 35
	CodeEntropyDecompress = 36
	CodeWriteSink         = 37
	CodeChecksum          = 38
	CodeBlockLength       = 39
	CodeBlockType         = 40
)

// Error is a frame codec failure tagged with its exit code.
type Error struct {
	Code int
	Msg  string
	Err  error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errf(code int, cause error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// Code extracts the numeric code from an error returned by this package;
// zero means the error did not originate here.
func Code(err error) int {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}
