package entropy

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/fse"
)

// Table is a reusable coding table for the core-loop path: the symbol
// histogram is taken once over a sample, the table geometry (highest symbol
// and table log) is pinned, and the same pair of scratch states then serves
// any number of encode/decode iterations without reallocation.
type Table struct {
	comp fse.Scratch
	dec  fse.Scratch

	// MaxSymbol is the highest symbol the table codes for. It may be lower
	// than requested when the sample's alphabet is smaller.
	MaxSymbol uint8
	// TableLog is the requested log2 of the coding table size; zero selects
	// the primitive's default.
	TableLog uint8
}

// Histogram counts symbol occurrences in src and reports the highest symbol
// observed and the count of the most frequent one.
func Histogram(src []byte) (counts [256]uint32, maxSymbol uint8, maxCount uint32) {
	for _, b := range src {
		counts[b]++
	}
	for i, c := range counts {
		if c == 0 {
			continue
		}
		maxSymbol = uint8(i)
		if c > maxCount {
			maxCount = c
		}
	}
	return counts, maxSymbol, maxCount
}

// NewTable builds a coding table from sample. maxSymbol is revised downward
// to the largest symbol actually observed; tableLog of zero selects the
// primitive's default. The sample must be compressible: a single repeated
// symbol or incompressible data has no useful table.
func NewTable(sample []byte, maxSymbol uint8, tableLog uint8) (*Table, error) {
	if len(sample) < 2 {
		return nil, errors.New("entropy: sample too short to build a table")
	}

	counts, highest, maxCount := Histogram(sample)
	if highest < maxSymbol {
		maxSymbol = highest
	}

	t := &Table{MaxSymbol: maxSymbol, TableLog: tableLog}
	t.comp.MaxSymbolValue = maxSymbol
	t.comp.TableLog = tableLog

	// Hand the precomputed histogram to the primitive and prime the
	// compression and decompression tables once, so iterations only run the
	// coding loops.
	copy(t.comp.Histogram(), counts[:])
	t.comp.HistogramFinished(maxSymbol, int(maxCount))
	body, err := t.Encode(sample)
	if err != nil {
		return nil, fmt.Errorf("entropy: priming table: %w", err)
	}
	if _, err := t.Decode(body, len(sample)); err != nil {
		return nil, fmt.Errorf("entropy: priming table: %w", err)
	}
	return t, nil
}

// Encode compresses src with the table's pinned geometry. The returned
// slice aliases the table's scratch buffer and is valid until the next
// Encode.
func (t *Table) Encode(src []byte) ([]byte, error) {
	t.comp.MaxSymbolValue = t.MaxSymbol
	t.comp.TableLog = t.TableLog
	return fse.Compress(src, &t.comp)
}

// Decode decompresses an Encode result. dstCap caps the decoded size.
func (t *Table) Decode(src []byte, dstCap int) ([]byte, error) {
	t.dec.DecompressLimit = dstCap + 1
	out, err := fse.Decompress(src, &t.dec)
	if err != nil {
		return nil, err
	}
	if len(out) > dstCap {
		return nil, fmt.Errorf("entropy: decoded %d bytes, cap is %d", len(out), dstCap)
	}
	return out, nil
}
