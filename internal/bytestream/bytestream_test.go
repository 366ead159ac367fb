package bytestream

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVarUintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 300, 16384, 1 << 20, 0xFFFFFFFF}
	for _, v := range values {
		encoded := EncodeVarUint(v)
		decoded, n, err := DecodeVarUint(encoded)
		assert.NoError(t, err)
		assert.Equal(t, v, decoded)
		assert.Equal(t, len(encoded), n)
	}
}

func TestVarUintZeroIsSingleByte(t *testing.T) {
	encoded := EncodeVarUint(0)
	if len(encoded) != 1 || encoded[0] != 0 {
		t.Errorf("EncodeVarUint(0) = %v, want single zero byte", encoded)
	}
}

func TestSignedComplementRoundTrip(t *testing.T) {
	for v := int32(-32767); v <= 32767; v += 37 {
		got := FromSignedComplement(ToSignedComplement(v))
		assert.Equal(t, v, got)
	}
	// boundary values
	assert.Equal(t, int32(32767), FromSignedComplement(ToSignedComplement(32767)))
	assert.Equal(t, int32(-32767), FromSignedComplement(ToSignedComplement(-32767)))
}

func TestReaderUnreadByte(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x10, 0x20, 0x30}))
	b, err := r.ReadU8()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x10), b)

	peek, err := r.PeekByte()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x20), peek)

	b2, err := r.ReadU8()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x20), b2)
}

func TestLengthPrefixedASCIIRoundTrip(t *testing.T) {
	w := NewWriter()
	if err := w.WriteLengthPrefixedASCII("Sample Builder"); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := NewReader(bytes.NewReader(w.Bytes()))
	s, err := r.ReadLengthPrefixedASCII()
	assert.NoError(t, err)
	assert.Equal(t, "Sample Builder", s)
}

func TestLengthPrefixedUTF16RoundTrip(t *testing.T) {
	w := NewWriter()
	if err := w.WriteLengthPrefixedUTF16("Piano"); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := NewReader(bytes.NewReader(w.Bytes()))
	s, err := r.ReadLengthPrefixedUTF16()
	assert.NoError(t, err)
	assert.Equal(t, "Piano", s)
}

func TestCRC32MatchesKnownVector(t *testing.T) {
	// "123456789" -> 0xCBF43926 is the standard CRC-32/ISO-HDLC check value.
	got := CRC32([]byte("123456789"))
	assert.Equal(t, uint32(0xCBF43926), got)
}

func TestPadToEven(t *testing.T) {
	w := NewWriter()
	w.WriteBytes([]byte{1, 2, 3})
	w.PadToEven()
	assert.Equal(t, 4, w.Len())

	w2 := NewWriter()
	w2.WriteBytes([]byte{1, 2})
	w2.PadToEven()
	assert.Equal(t, 2, w2.Len())
}

func TestFixedASCIITrimsPadding(t *testing.T) {
	w := NewWriter()
	w.WriteFixedASCII("hi", 8)
	r := NewReader(bytes.NewReader(w.Bytes()))
	s, err := r.ReadFixedASCII(8)
	assert.NoError(t, err)
	assert.Equal(t, "hi", s)
}
