// Package keyschedule derives the 16 round subkeys a DES-family Feistel
// cipher needs from its 64-bit master key: PC-1, 28-bit half rotation,
// PC-2.  Grounded on original_source/src/des_encryption.py's
// _generate_subkeys and cipher/des/des.go's KeyScheduler (teacher shape
// only; that file's own imports do not resolve against anything in the
// teacher snapshot — see DESIGN.md).
package keyschedule

import (
	"github.com/nkazakov/rotorfeistel/bitstring"
	"github.com/nkazakov/rotorfeistel/errors"
	"github.com/nkazakov/rotorfeistel/tables"
)

const numRounds = 16

// KeySchedule holds the 16 ordered 48-bit subkeys derived from a 64-bit
// key.  Decryption uses them in reverse order; KeySchedule itself always
// stores them in round order.
type KeySchedule struct {
	subkeys [numRounds]bitstring.Bitstring
}

// New derives a KeySchedule from key (must be 64 bits) using perm's PC-1/
// PC-2 tables, rotating each 28-bit half left by one position every round.
func New(key bitstring.Bitstring, perm *tables.Permutator) (*KeySchedule, error) {
	if key.Width() != 64 {
		return nil, errors.Annotate(errors.ErrInvalidKey, "key schedule: want 64-bit key, got %d bits: %w", key.Width())
	}

	kept, _, err := perm.PermutedChoice1(key)
	if err != nil {
		return nil, errors.Annotate(err, "PC-1 failed: %w")
	}
	if kept.Width() != 56 {
		return nil, errors.Annotate(errors.ErrInvalidSize, "PC-1 output width %d, want 56: %w", kept.Width())
	}

	c := kept.Slice(0, 28)
	d := kept.Slice(28, 56)

	ks := &KeySchedule{}
	for round := 0; round < numRounds; round++ {
		c = rotateLeft(c, 1)
		d = rotateLeft(d, 1)

		subkey, err := perm.PermutedChoice2(c.Concat(d))
		if err != nil {
			return nil, errors.Annotate(err, "PC-2 failed at round %d: %w", round)
		}
		if subkey.Width() != 48 {
			return nil, errors.Annotate(errors.ErrInvalidSize, "PC-2 output width %d at round %d, want 48: %w", subkey.Width(), round)
		}
		ks.subkeys[round] = subkey
	}

	return ks, nil
}

// Subkey returns the round-i subkey, 0 <= i < Count().
func (ks *KeySchedule) Subkey(i int) bitstring.Bitstring {
	return ks.subkeys[i]
}

// Count returns the number of subkeys (always 16).
func (ks *KeySchedule) Count() int {
	return numRounds
}

// rotateLeft performs a cyclic left rotation of a 28-bit half by n
// positions.
func rotateLeft(half bitstring.Bitstring, n int) bitstring.Bitstring {
	width := half.Width()
	n = n % width
	out := bitstring.New(width)
	for i := 0; i < width; i++ {
		out.SetBit(i, half.Bit((i+n)%width))
	}
	return out
}
