// Package hybrid composes a RotorMachine and a BlockCipher into the
// two-layer cryptosystem spec.md §4.9 describes: encrypt(M) =
// BlockCipher.Encrypt(RotorMachine.Encrypt(M)); decrypt inverts both
// stages in the opposite order.
//
// Grounded on original_source/src/hybrid_cryptosystem.py's
// HybridCryptosystem.
package hybrid

import (
	"github.com/nkazakov/rotorfeistel/blockcipher"
	"github.com/nkazakov/rotorfeistel/errors"
	"github.com/nkazakov/rotorfeistel/rotor"
)

// Config configures a Cipher.  RotorConfig and BlockConfig are passed
// straight through to rotor.New and blockcipher.New.
type Config struct {
	RotorConfig rotor.Config
	BlockConfig blockcipher.Config
}

// Cipher is the sequential composition of a RotorMachine and a
// BlockCipher.  It exclusively owns one of each.
type Cipher struct {
	rotorMachine *rotor.Machine
	blockCipher  *blockcipher.BlockCipher

	e1, e2, d1, d2 string
	e1Set, e2Set, d1Set, d2Set bool
}

// New constructs a Cipher from cfg.
func New(cfg Config) (*Cipher, error) {
	rotorMachine, err := rotor.New(cfg.RotorConfig)
	if err != nil {
		return nil, errors.Annotate(err, "hybrid cipher: rotor construction failed: %w")
	}

	blockCipher, err := blockcipher.New(cfg.BlockConfig)
	if err != nil {
		return nil, errors.Annotate(err, "hybrid cipher: block cipher construction failed: %w")
	}

	return &Cipher{rotorMachine: rotorMachine, blockCipher: blockCipher}, nil
}

// Encrypt computes E1 = RotorMachine.Encrypt(plaintext), then
// E2 = BlockCipher.Encrypt(E1), retaining both for later inspection.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	c.e1, c.e2, c.e1Set, c.e2Set = "", "", false, false

	e1 := c.rotorMachine.Encrypt(plaintext)
	c.e1, c.e1Set = e1, true

	e2, err := c.blockCipher.Encrypt(e1)
	if err != nil {
		return "", errors.Annotate(err, "hybrid cipher: block stage failed: %w")
	}
	c.e2, c.e2Set = e2, true

	return e2, nil
}

// Decrypt computes D1 = BlockCipher.Decrypt(ciphertext), then
// D2 = RotorMachine.Decrypt(D1), retaining both for later inspection.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	c.d1, c.d2, c.d1Set, c.d2Set = "", "", false, false

	d1, err := c.blockCipher.Decrypt(ciphertext)
	if err != nil {
		return "", errors.Annotate(err, "hybrid cipher: block stage failed: %w")
	}
	c.d1, c.d1Set = d1, true

	d2 := c.rotorMachine.Decrypt(d1)
	c.d2, c.d2Set = d2, true

	return d2, nil
}

// E1 returns the rotor-stage output of the most recent Encrypt call.
func (c *Cipher) E1() (string, error) {
	if !c.e1Set {
		return "", errors.ErrStateNotSet
	}
	return c.e1, nil
}

// E2 returns the block-stage output of the most recent Encrypt call (the
// final ciphertext).
func (c *Cipher) E2() (string, error) {
	if !c.e2Set {
		return "", errors.ErrStateNotSet
	}
	return c.e2, nil
}

// D1 returns the block-stage output of the most recent Decrypt call.
func (c *Cipher) D1() (string, error) {
	if !c.d1Set {
		return "", errors.ErrStateNotSet
	}
	return c.d1, nil
}

// D2 returns the rotor-stage output of the most recent Decrypt call (the
// final plaintext).
func (c *Cipher) D2() (string, error) {
	if !c.d2Set {
		return "", errors.ErrStateNotSet
	}
	return c.d2, nil
}
