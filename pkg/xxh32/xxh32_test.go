package xxh32

import (
	"math/rand"
	"testing"
)

// Reference vectors from the published xxHash test suite (seed 0).
func TestChecksumVectors(t *testing.T) {
	testCases := []struct {
		input string
		want  uint32
	}{
		{"", 0x02cc5d05},
		{"a", 0x550d7456},
		{"abc", 0x32d153ff},
		{"abcd", 0xa3643705},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := Checksum([]byte(tc.input)); got != tc.want {
				t.Errorf("Checksum(%q) = %#08x, want %#08x", tc.input, got, tc.want)
			}
		})
	}
}

// Streaming writes of any chunking must agree with the one-shot checksum.
func TestStreamingMatchesOneShot(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	data := make([]byte, 64*1024)
	rng.Read(data)

	want := Checksum(data)

	chunkSizes := []int{1, 3, 7, 15, 16, 17, 64, 1024, 4099}
	for _, size := range chunkSizes {
		var d Digest
		for off := 0; off < len(data); off += size {
			end := off + size
			if end > len(data) {
				end = len(data)
			}
			if _, err := d.Write(data[off:end]); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
		}
		if got := d.Sum32(); got != want {
			t.Errorf("chunk size %d: got %#08x, want %#08x", size, got, want)
		}
	}
}

func TestSumDoesNotConsumeState(t *testing.T) {
	var d Digest
	d.Write([]byte("abc"))
	first := d.Sum32()
	if second := d.Sum32(); second != first {
		t.Errorf("repeated Sum32 changed result: %#08x then %#08x", first, second)
	}
	d.Write([]byte("d"))
	if got, want := d.Sum32(), Checksum([]byte("abcd")); got != want {
		t.Errorf("write after Sum32: got %#08x, want %#08x", got, want)
	}
}

func TestReset(t *testing.T) {
	var d Digest
	d.Write([]byte("garbage"))
	d.Reset()
	if got, want := d.Sum32(), Checksum(nil); got != want {
		t.Errorf("Reset digest = %#08x, want %#08x", got, want)
	}
}

func BenchmarkChecksum(b *testing.B) {
	data := make([]byte, 32*1024)
	rand.New(rand.NewSource(2)).Read(data)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Checksum(data)
	}
}
