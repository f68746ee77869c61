package keyschedule_test

import (
	"testing"

	"github.com/nkazakov/rotorfeistel/bitstring"
	"github.com/nkazakov/rotorfeistel/keyschedule"
	"github.com/nkazakov/rotorfeistel/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubkeyCountAndWidth(t *testing.T) {
	perm := tables.NewStandardPermutator()
	key := bitstring.FromBytes([]byte{0x13, 0x34, 0x57, 0x79, 0x9B, 0xBC, 0xDF, 0xF1})

	ks, err := keyschedule.New(key, perm)
	require.NoError(t, err)
	assert.Equal(t, 16, ks.Count())
	for i := 0; i < ks.Count(); i++ {
		assert.Equal(t, 48, ks.Subkey(i).Width())
	}
}

func TestRejectsWrongKeyWidth(t *testing.T) {
	perm := tables.NewStandardPermutator()
	_, err := keyschedule.New(bitstring.New(32), perm)
	require.Error(t, err)
}

// TestFirstSubkeyRotatesByOne pins round 0's subkey for the classic
// textbook key 0x133457799BBCDFF1: PC-1, one left rotation of each half,
// then PC-2.  Round 0 shifts by one under both this module's constant
// rule and real DES's variable schedule, so this vector does not tell the
// two schedules apart.
func TestFirstSubkeyRotatesByOne(t *testing.T) {
	perm := tables.NewStandardPermutator()
	key := bitstring.FromBytes([]byte{0x13, 0x34, 0x57, 0x79, 0x9B, 0xBC, 0xDF, 0xF1})

	ks, err := keyschedule.New(key, perm)
	require.NoError(t, err)

	want := bitFromString("000110110000001011101111111111000111000001110010")
	assert.True(t, ks.Subkey(0).Equal(want), "got %s want %s", ks.Subkey(0).String(), want.String())
}

func bitFromString(s string) bitstring.Bitstring {
	b := bitstring.New(len(s))
	for i, c := range s {
		if c == '1' {
			b.SetBit(i, 1)
		}
	}
	return b
}

func TestDeterministicGivenSameKey(t *testing.T) {
	perm := tables.NewStandardPermutator()
	key := bitstring.New(64)

	a, err := keyschedule.New(key, perm)
	require.NoError(t, err)
	b, err := keyschedule.New(key, perm)
	require.NoError(t, err)

	for i := 0; i < 16; i++ {
		assert.True(t, a.Subkey(i).Equal(b.Subkey(i)))
	}
}
