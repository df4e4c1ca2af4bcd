package features

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-magika/magika/config"
)

func cfg(beg, mid, end, block, padding int) config.Config {
	return config.Config{
		BegSize:      beg,
		MidSize:      mid,
		EndSize:      end,
		BlockSize:    block,
		PaddingToken: padding,
	}
}

func TestExtractBasic(t *testing.T) {
	c := cfg(4, 0, 4, 16, 256)
	v, err := Extract(c, BytesSource([]byte("abcdefgh")))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]int32{'a', 'b', 'c', 'd'}, v.Beg); d != "" {
		t.Errorf("beg mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int32{'e', 'f', 'g', 'h'}, v.End); d != "" {
		t.Errorf("end mismatch (-want +got):\n%s", d)
	}
}

func TestExtractTrimsLeadingAndTrailingWhitespace(t *testing.T) {
	c := cfg(3, 0, 3, 64, 256)
	v, err := Extract(c, BytesSource([]byte("   abc   ")))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]int32{'a', 'b', 'c'}, v.Beg); d != "" {
		t.Errorf("beg mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int32{'a', 'b', 'c'}, v.End); d != "" {
		t.Errorf("end mismatch (-want +got):\n%s", d)
	}
}

func TestExtractBegShorterThanBegSizeLeftAligned(t *testing.T) {
	c := cfg(5, 0, 5, 64, 256)
	v, err := Extract(c, BytesSource([]byte("ab")))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]int32{'a', 'b', 256, 256, 256}, v.Beg); d != "" {
		t.Errorf("beg mismatch (-want +got):\n%s", d)
	}
	// End is right-aligned: padding first, then bytes.
	if d := cmp.Diff([]int32{256, 256, 256, 'a', 'b'}, v.End); d != "" {
		t.Errorf("end mismatch (-want +got):\n%s", d)
	}
}

func TestExtractTrimToEmptyYieldsAllPadding(t *testing.T) {
	c := cfg(3, 0, 3, 64, 256)
	v, err := Extract(c, BytesSource([]byte("   ")))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]int32{256, 256, 256}, v.Beg); d != "" {
		t.Errorf("beg mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int32{256, 256, 256}, v.End); d != "" {
		t.Errorf("end mismatch (-want +got):\n%s", d)
	}
}

func TestExtractMidCenterAligned(t *testing.T) {
	c := cfg(0, 6, 0, 64, 256)
	v, err := Extract(c, BytesSource([]byte("0123456789")))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(v.Mid), 6; got != want {
		t.Fatalf("len(Mid) = %d, want %d", got, want)
	}
	// The 6-byte window is centred on n/2 = 5: bytes 2..7.
	if d := cmp.Diff([]int32{'2', '3', '4', '5', '6', '7'}, v.Mid); d != "" {
		t.Errorf("mid mismatch (-want +got):\n%s", d)
	}
}

func TestExtractInputSmallerThanBlockSizeReusesBytes(t *testing.T) {
	// beg and end windows both read the full (short) input; trimming and
	// alignment still apply independently.
	c := cfg(3, 0, 3, 1024, 256)
	v, err := Extract(c, BytesSource([]byte("xy")))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]int32{'x', 'y', 256}, v.Beg); d != "" {
		t.Errorf("beg mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int32{256, 'x', 'y'}, v.End); d != "" {
		t.Errorf("end mismatch (-want +got):\n%s", d)
	}
}

func TestExtractOffsetProbesPaddedWhenShort(t *testing.T) {
	c := cfg(2, 0, 2, 64, 256)
	c.UseInputsAtOffsets = true
	c.OffsetProbes = []int64{100}
	v, err := Extract(c, BytesSource([]byte("ab")))
	if err != nil {
		t.Fatal(err)
	}
	want := []int32{256, 256, 256, 256, 256, 256, 256, 256}
	if d := cmp.Diff(want, v.OffsetProbes); d != "" {
		t.Errorf("offset probes mismatch (-want +got):\n%s", d)
	}
}

func TestExtractOffsetProbesReadExactWindow(t *testing.T) {
	c := cfg(0, 0, 0, 64, 256)
	c.UseInputsAtOffsets = true
	c.OffsetProbes = []int64{2}
	v, err := Extract(c, BytesSource([]byte("0123456789ABCDEF")))
	if err != nil {
		t.Fatal(err)
	}
	want := []int32{'2', '3', '4', '5', '6', '7', '8', '9'}
	if d := cmp.Diff(want, v.OffsetProbes); d != "" {
		t.Errorf("offset probes mismatch (-want +got):\n%s", d)
	}
}

func TestFlattenOrderAndLength(t *testing.T) {
	c := cfg(2, 2, 2, 64, 256)
	c.UseInputsAtOffsets = true
	c.OffsetProbes = []int64{0}
	v, err := Extract(c, BytesSource([]byte("abcdefgh")))
	if err != nil {
		t.Fatal(err)
	}
	flat := v.Flatten()
	if got, want := len(flat), c.FeatureLength(); got != want {
		t.Fatalf("len(Flatten()) = %d, want %d (FeatureLength)", got, want)
	}
}

func TestExtractNeverReadsBeyondBoundedWindow(t *testing.T) {
	// A large input should not cause an error or be read in full -- only
	// the windows near the beginning and end matter.
	big := make([]byte, 10_000_000)
	for i := range big {
		big[i] = byte('a' + i%26)
	}
	c := cfg(8, 0, 8, 16, 256)
	v, err := Extract(c, BytesSource(big))
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Beg) != 8 || len(v.End) != 8 {
		t.Fatalf("unexpected feature lengths: beg=%d end=%d", len(v.Beg), len(v.End))
	}
}
