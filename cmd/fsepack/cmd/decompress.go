package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ssargent/fsepack/pkg/fileio"
	"github.com/ssargent/fsepack/pkg/frame"
)

// decompressCmd represents the decompress command
var decompressCmd = &cobra.Command{
	Use:     "decompress <input> [output]",
	Aliases: []string{"d"},
	Short:   "Decompress an fsepack frame",
	Long: `Decompress an fsepack frame back into the original bytes, verifying
the frame's content checksum.

Without an output argument the "` + frameSuffix + `" suffix is stripped from the
input name (stdout when reading stdin).

Example:
  fsepack decompress big.fse
  fsepack decompress big.fse restored.dat
  fsepack decompress stdin stdout < big.fse > big.dat`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecompress(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(decompressCmd)
}

func runDecompress(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	inName := args[0]
	var outName string
	switch {
	case len(args) == 2:
		outName = args[1]
	case inName == fileio.StdinName:
		outName = fileio.StdoutName
	case strings.HasSuffix(inName, frameSuffix):
		outName = strings.TrimSuffix(inName, frameSuffix)
	default:
		return fmt.Errorf("cannot derive an output name from %s, pass one explicitly", inName)
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

	counted := &countingReader{r: in}
	written, err := frame.NewDecoder().Decode(counted, out)
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("cannot close %s: %w", outName, err)
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "%s: %s -> %s (%s)\n",
			inName, humanize.IBytes(uint64(counted.n)), humanize.IBytes(uint64(written)), outName)
	}
	return nil
}
