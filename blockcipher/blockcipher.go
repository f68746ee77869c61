// Package blockcipher implements spec.md §4.6's Feistel block cipher: the
// full 16-round transform with initial/final permutations, and the
// ECB-mode message-level Encrypt/Decrypt built on top of padding.Padder.
//
// Grounded on cipher/des/des.go (IP/IP⁻¹ wrapping and the encrypt/decrypt
// block shape) and cipher/feistel.go (the round loop and
// reversed-subkey-order decryption).
package blockcipher

import (
	"github.com/nkazakov/rotorfeistel/bitstring"
	"github.com/nkazakov/rotorfeistel/errors"
	"github.com/nkazakov/rotorfeistel/keyschedule"
	"github.com/nkazakov/rotorfeistel/padding"
	"github.com/nkazakov/rotorfeistel/prng"
	"github.com/nkazakov/rotorfeistel/tables"
)

const (
	blockWidth    = 64
	defaultRounds = 16
)

// Config configures a BlockCipher.  Leave Key nil for a fresh random key;
// leave Permutator and Sboxes nil to default to the standard DES tables
// (or, if RandomSource is set and Permutator/Sboxes are both nil, to
// freshly synthesized randomized tables instead — spec.md §4.3/§4.4's two
// S-box/permutation modes).
type Config struct {
	// Key is the 64-bit master key.  Optional: a random key is generated
	// if nil.
	Key *bitstring.Bitstring

	// Rounds is the number of Feistel rounds.  Defaults to 16, which is
	// also the maximum (one subkey per round).
	Rounds int

	// Permutator supplies the six permutation tables.  Optional.
	Permutator *tables.Permutator

	// Sboxes supplies the eight S-boxes.  Optional.
	Sboxes *tables.SboxBank

	// RandomSource seeds key/table generation when Key/Permutator/Sboxes
	// are not supplied explicitly.  Optional.
	RandomSource *prng.Source
}

// BlockCipher implements the Feistel engine spec.md §4.6 describes.  It
// exclusively owns its key, subkeys, Permutator and SboxBank.
type BlockCipher struct {
	rounds   int
	perm     *tables.Permutator
	sboxes   *tables.SboxBank
	schedule *keyschedule.KeySchedule
	padder   *padding.Padder
	codec    *bitstring.BitCodec
}

// New constructs a BlockCipher from cfg.
func New(cfg Config) (*BlockCipher, error) {
	source := cfg.RandomSource
	if source == nil {
		source = prng.New(0)
	}

	key := cfg.Key
	if key == nil {
		generated := source.Bits(blockWidth)
		key = &generated
	}
	if key.Width() != blockWidth {
		return nil, errors.Annotate(errors.ErrInvalidKey, "block cipher: key width %d, want %d: %w", key.Width(), blockWidth)
	}

	rounds := cfg.Rounds
	if rounds == 0 {
		rounds = defaultRounds
	}
	if rounds <= 0 {
		return nil, errors.Annotate(errors.ErrInvalidConfig, "block cipher: rounds must be positive, got %d: %w", rounds)
	}

	perm := cfg.Permutator
	sboxes := cfg.Sboxes
	if perm == nil && sboxes == nil && cfg.RandomSource != nil {
		randomPerm, err := tables.NewRandomPermutator(source)
		if err != nil {
			return nil, errors.Annotate(err, "random permutator synthesis failed: %w")
		}
		perm = randomPerm
		sboxes = tables.NewRandomSboxBank(source)
	}
	if perm == nil {
		perm = tables.NewStandardPermutator()
	}
	if sboxes == nil {
		sboxes = tables.NewStandardSboxBank()
	}

	schedule, err := keyschedule.New(*key, perm)
	if err != nil {
		return nil, errors.Annotate(err, "key schedule construction failed: %w")
	}
	if rounds > schedule.Count() {
		return nil, errors.Annotate(errors.ErrInvalidConfig, "block cipher: rounds %d exceeds the %d available subkeys: %w", rounds, schedule.Count())
	}

	padder, err := padding.New(padding.Config{BlockSize: blockWidth})
	if err != nil {
		return nil, errors.Annotate(err, "padder construction failed: %w")
	}

	return &BlockCipher{
		rounds:   rounds,
		perm:     perm,
		sboxes:   sboxes,
		schedule: schedule,
		padder:   padder,
		codec:    bitstring.NewBitCodec(),
	}, nil
}

// EncryptBlock encrypts a single 64-bit block: IP, rounds rounds of Feistel
// transform in subkey order, a 32-bit swap, IP⁻¹.
func (c *BlockCipher) EncryptBlock(block bitstring.Bitstring) (bitstring.Bitstring, error) {
	return c.transformBlock(block, c.subkeyOrder(false))
}

// DecryptBlock decrypts a single 64-bit block, identical to EncryptBlock
// except subkeys are traversed in reverse round order.
func (c *BlockCipher) DecryptBlock(block bitstring.Bitstring) (bitstring.Bitstring, error) {
	return c.transformBlock(block, c.subkeyOrder(true))
}

func (c *BlockCipher) subkeyOrder(reversed bool) []int {
	order := make([]int, c.rounds)
	for i := range order {
		if reversed {
			order[i] = c.rounds - 1 - i
		} else {
			order[i] = i
		}
	}
	return order
}

func (c *BlockCipher) transformBlock(block bitstring.Bitstring, subkeyOrder []int) (bitstring.Bitstring, error) {
	if block.Width() != blockWidth {
		return bitstring.Bitstring{}, errors.Annotate(errors.ErrInvalidSize, "block cipher: block width %d, want %d: %w", block.Width(), blockWidth)
	}

	permuted, err := c.perm.InitialPermutation(block)
	if err != nil {
		return bitstring.Bitstring{}, errors.Annotate(err, "initial permutation failed: %w")
	}

	l := permuted.Slice(0, 32)
	r := permuted.Slice(32, 64)

	for _, idx := range subkeyOrder {
		f, err := roundFunction(r, c.schedule.Subkey(idx), c.perm, c.sboxes)
		if err != nil {
			return bitstring.Bitstring{}, errors.Annotate(err, "round function failed: %w")
		}
		newR, err := l.Xor(f)
		if err != nil {
			return bitstring.Bitstring{}, errors.Annotate(err, "round mixing failed: %w")
		}
		l, r = r, newR
	}

	// Post-round 32-bit swap (undoes the swap implicit in the last round).
	swapped := r.Concat(l)

	return c.perm.InverseInitialPermutation(swapped)
}

// Encrypt encrypts plaintext under ECB, padding per padding.Padder's
// scheme.
func (c *BlockCipher) Encrypt(plaintext string) (string, error) {
	bits, err := c.codec.ToBits(plaintext)
	if err != nil {
		return "", errors.Annotate(err, "encrypt: bit conversion failed: %w")
	}

	blocks, err := c.padder.PadAndSplit(bits)
	if err != nil {
		return "", errors.Annotate(err, "encrypt: padding failed: %w")
	}

	out := bitstring.New(0)
	for i, block := range blocks {
		enc, err := c.EncryptBlock(block)
		if err != nil {
			return "", errors.Annotate(err, "encrypt: block %d failed: %w", i)
		}
		out = out.Concat(enc)
	}

	return c.codec.FromBits(out)
}

// Decrypt decrypts ciphertext, unpadding after block decryption.
// CorruptCiphertext if the bit length is not a multiple of 64.
func (c *BlockCipher) Decrypt(ciphertext string) (string, error) {
	bits, err := c.codec.ToBits(ciphertext)
	if err != nil {
		return "", errors.Annotate(err, "decrypt: bit conversion failed: %w")
	}
	if bits.Width()%blockWidth != 0 {
		return "", errors.Annotate(errors.ErrCorruptCiphertext, "decrypt: ciphertext width %d not a multiple of %d: %w", bits.Width(), blockWidth)
	}

	blockCount := bits.Width() / blockWidth
	out := bitstring.New(0)
	for i := 0; i < blockCount; i++ {
		block := bits.Slice(i*blockWidth, (i+1)*blockWidth)
		dec, err := c.DecryptBlock(block)
		if err != nil {
			return "", errors.Annotate(err, "decrypt: block %d failed: %w", i)
		}
		out = out.Concat(dec)
	}

	unpadded := c.padder.Strip(out)
	return c.codec.FromBits(unpadded)
}

// BlockWidth returns the block size in bits (always 64).
func (c *BlockCipher) BlockWidth() int {
	return blockWidth
}
