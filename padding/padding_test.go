package padding_test

import (
	"testing"

	"github.com/nkazakov/rotorfeistel/bitstring"
	"github.com/nkazakov/rotorfeistel/padding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPadder(t *testing.T, blockSize int) *padding.Padder {
	t.Helper()
	p, err := padding.New(padding.Config{BlockSize: blockSize})
	require.NoError(t, err)
	return p
}

func concat(blocks []bitstring.Bitstring) bitstring.Bitstring {
	out := bitstring.New(0)
	for _, b := range blocks {
		out = out.Concat(b)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	p := mustPadder(t, 64)

	cases := []string{"", "a", "Hello!!!", "The quick brown fox jumps"}
	codec := bitstring.NewBitCodec()

	for _, s := range cases {
		bits, err := codec.ToBits(s)
		require.NoError(t, err)

		blocks, err := p.PadAndSplit(bits)
		require.NoError(t, err)
		for _, b := range blocks {
			assert.Equal(t, 64, b.Width())
		}

		stripped := p.Strip(concat(blocks))
		assert.True(t, stripped.Equal(bits), "round trip failed for %q", s)
	}
}

func TestEmptyPlaintextYieldsOneBlock(t *testing.T) {
	p := mustPadder(t, 64)
	blocks, err := p.PadAndSplit(bitstring.New(0))
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	// Padding byte value is 8 (64 bits / 8), repeated 8 times.
	for i := 0; i < 8; i++ {
		b := blocks[0].Slice(i*8, (i+1)*8)
		var v int
		for bit := 0; bit < 8; bit++ {
			v = (v << 1) | int(b.Bit(bit))
		}
		assert.Equal(t, 8, v)
	}
}

func TestExactBlockAddsWholeExtraBlock(t *testing.T) {
	p := mustPadder(t, 64)
	codec := bitstring.NewBitCodec()
	bits, err := codec.ToBits("12345678") // 8 ASCII chars = 64 bits
	require.NoError(t, err)

	blocks, err := p.PadAndSplit(bits)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}

func TestFortyBitPaddingMatchesSpecExample(t *testing.T) {
	p := mustPadder(t, 64)
	bits := bitstring.New(40)
	for i := 0; i < 5; i++ {
		// "01001000" repeated 5 times
		pattern := []byte{0, 1, 0, 0, 1, 0, 0, 0}
		for bit, v := range pattern {
			bits.SetBit(i*8+bit, v)
		}
	}

	blocks, err := p.PadAndSplit(bits)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	tail := blocks[0].Slice(40, 64)
	for i := 0; i < 3; i++ {
		b := tail.Slice(i*8, (i+1)*8)
		assert.Equal(t, "00000011", b.String())
	}
}

func TestStripIsTolerantOfUnpaddedInput(t *testing.T) {
	p := mustPadder(t, 64)
	raw := bitstring.FromBytes([]byte("unpadded"))
	stripped := p.Strip(raw)
	assert.True(t, stripped.Equal(raw))
}

func TestNewRejectsNonMultipleOf8(t *testing.T) {
	_, err := padding.New(padding.Config{BlockSize: 13})
	require.Error(t, err)
}
