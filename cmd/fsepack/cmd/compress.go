package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ssargent/fsepack/pkg/fileio"
	"github.com/ssargent/fsepack/pkg/frame"
)

// frameSuffix is appended to input names when no output name is given.
const frameSuffix = ".fse"

// compressCmd represents the compress command
var compressCmd = &cobra.Command{
	Use:     "compress <input> [output]",
	Aliases: []string{"c"},
	Short:   "Compress a file into an fsepack frame",
	Long: `Compress a file into an fsepack frame.

The names "stdin" and "stdout" are accepted in place of paths, as is the
platform null device for output. Without an output argument the input name
plus "` + frameSuffix + `" is used (stdout when reading stdin).

Example:
  fsepack compress big.dat
  fsepack compress -B 8 big.dat big.fse
  cat big.dat | fsepack compress stdin stdout > big.fse`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompress(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(compressCmd)
}

func runCompress(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	inName := args[0]
	outName := fileio.StdoutName
	switch {
	case len(args) == 2:
		outName = args[1]
	case inName != fileio.StdinName:
		outName = inName + frameSuffix
	}

	opener := &fileio.Opener{Force: cfg.Force, Interactive: inName != fileio.StdinName}
	in, err := opener.OpenInput(inName)
	if err != nil {
		return fmt.Errorf("%w: %w", errOpenInput, err)
	}
	defer in.Close()

	out, err := opener.OpenOutput(outName)
	if err != nil {
		if errors.Is(err, fileio.ErrOverwriteRefused) {
			return err
		}
		return fmt.Errorf("%w: %w", errOpenOutput, err)
	}

	enc, err := frame.NewEncoder(frame.EncoderConfig{BlockSizeID: cfg.BlockSizeID})
	if err != nil {
		out.Close()
		return err
	}

	counted := &countingReader{r: in}
	written, err := enc.Encode(counted, out)
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("cannot close %s: %w", outName, err)
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "%s: %s -> %s (%s, %.2f%%)\n",
			inName, humanize.IBytes(uint64(counted.n)), humanize.IBytes(uint64(written)),
			outName, ratio(written, counted.n))
	}
	return nil
}

// ratio reports compressed size as a percentage of the original.
func ratio(written, read int64) float64 {
	if read == 0 {
		return 0
	}
	return float64(written) / float64(read) * 100
}

// countingReader counts bytes handed to the encoder for ratio reporting.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
