// Package fileio resolves filename arguments to read and write handles for
// the codec.
//
// The names "stdin" and "stdout" and the platform null device are accepted
// in place of real paths. Overwrite protection is a policy of this layer:
// an existing output is only replaced when the caller forces it or a prompt
// is permitted and answered with yes. The prompt sits behind an explicit
// Interactive capability so the codec itself never touches the terminal.
//
// Binary mode on the standard streams needs no handling here; on the
// supported platforms os.Stdin and os.Stdout never translate bytes.
package fileio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sentinel names accepted in place of file paths.
const (
	StdinName  = "stdin"
	StdoutName = "stdout"
)

// NullDevice is the platform null sink accepted as an output name.
var NullDevice = os.DevNull

// ErrOverwriteRefused is returned when an output exists and neither the
// force flag nor the prompt allowed replacing it.
var ErrOverwriteRefused = &FileError{"output exists, overwrite refused"}

// FileError represents an I/O adapter failure.
type FileError struct {
	Message string
}

func (e *FileError) Error() string {
	return e.Message
}

// Opener resolves names to handles under an overwrite policy.
type Opener struct {
	// Force replaces existing outputs without asking.
	Force bool
	// Interactive permits a Y/N prompt on output collision. When false and
	// Force is false, a collision is ErrOverwriteRefused.
	Interactive bool
	// PromptOut and PromptIn carry the prompt; they default to stderr and
	// stdin and exist so tests can script the conversation.
	PromptOut io.Writer
	PromptIn  io.Reader
}

// OpenPair resolves an input and an output name. On failure nothing is left
// open.
func (o *Opener) OpenPair(inputName, outputName string) (io.ReadCloser, io.WriteCloser, error) {
	in, err := o.OpenInput(inputName)
	if err != nil {
		return nil, nil, err
	}
	out, err := o.OpenOutput(outputName)
	if err != nil {
		in.Close()
		return nil, nil, err
	}
	return in, out, nil
}

// OpenInput resolves an input name to a read handle.
func (o *Opener) OpenInput(name string) (io.ReadCloser, error) {
	if name == StdinName {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", name, err)
	}
	return f, nil
}

// OpenOutput resolves an output name to a write handle, applying the
// overwrite policy for regular files.
func (o *Opener) OpenOutput(name string) (io.WriteCloser, error) {
	switch name {
	case StdoutName:
		return nopWriteCloser{os.Stdout}, nil
	case NullDevice:
		f, err := os.OpenFile(NullDevice, os.O_WRONLY, 0)
		if err != nil {
			return nil, fmt.Errorf("cannot open %s: %w", name, err)
		}
		return f, nil
	}

	if _, err := os.Stat(name); err == nil && !o.Force {
		if !o.Interactive {
			return nil, fmt.Errorf("%s: %w", name, ErrOverwriteRefused)
		}
		ok, err := o.confirm(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w", name, ErrOverwriteRefused)
		}
	}

	f, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", name, err)
	}
	return f, nil
}

// confirm asks whether name may be overwritten and reads one line.
func (o *Opener) confirm(name string) (bool, error) {
	out := o.PromptOut
	if out == nil {
		out = os.Stderr
	}
	in := o.PromptIn
	if in == nil {
		in = os.Stdin
	}
	fmt.Fprintf(out, "%s already exists, overwrite? (y/N): ", name)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// nopWriteCloser keeps the process's stdout open across frames.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
