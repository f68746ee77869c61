package blockcipher

import (
	"github.com/nkazakov/rotorfeistel/bitstring"
	"github.com/nkazakov/rotorfeistel/errors"
	"github.com/nkazakov/rotorfeistel/tables"
)

// roundFunction computes F(R, K): expansion, key-mixing, S-box
// substitution, straight permutation.  |R| = 32, |K| = 48; the result is
// 32 bits.  Grounded on cipher/des/des.go's RoundFunction.Transform.
func roundFunction(half, subkey bitstring.Bitstring, perm *tables.Permutator, sboxes *tables.SboxBank) (bitstring.Bitstring, error) {
	if half.Width() != 32 {
		return bitstring.Bitstring{}, errors.Annotate(errors.ErrInvalidSize, "round function: half width %d, want 32: %w", half.Width())
	}
	if subkey.Width() != 48 {
		return bitstring.Bitstring{}, errors.Annotate(errors.ErrInvalidSize, "round function: subkey width %d, want 48: %w", subkey.Width())
	}

	expanded, err := perm.Expand(half)
	if err != nil {
		return bitstring.Bitstring{}, errors.Annotate(err, "expansion failed: %w")
	}

	mixed, err := expanded.Xor(subkey)
	if err != nil {
		return bitstring.Bitstring{}, errors.Annotate(err, "key mixing failed: %w")
	}

	substituted, err := sboxes.Substitute(mixed)
	if err != nil {
		return bitstring.Bitstring{}, errors.Annotate(err, "s-box substitution failed: %w")
	}

	return perm.PBox(substituted)
}
