// Package errors represents some useful helpers for error-handling improvement.
package errors

import "fmt"

// ConstError is just a simple string error.
type ConstError string

// type check
var _ error = (*ConstError)(nil)

// Error implements [error] interface for ConstError.
func (e ConstError) Error() string {
	return string(e)
}

// Annotate wraps err with message unless err is nil.
func Annotate(err error, format string, args ...any) (annotated error) {
	if err == nil {
		return err
	}

	return fmt.Errorf(format, append(args, err)...)
}

// Taxonomy of error kinds shared across the module.  See spec.md §7.
const (
	// ErrInvalidSize means a bit string did not match its declared width.
	ErrInvalidSize = ConstError("invalid size")

	// ErrInvalidTable means a permutation table referenced an out-of-range
	// source index, or a table declared unique was not a permutation.
	ErrInvalidTable = ConstError("invalid table")

	// ErrInvalidRotor means a rotor's character multiset differs from the
	// alphabet, or rotor lengths disagree.
	ErrInvalidRotor = ConstError("invalid rotor")

	// ErrInvalidKey means a key did not have the width its cipher requires.
	ErrInvalidKey = ConstError("invalid key")

	// ErrCorruptCiphertext means ciphertext bit-length was not a multiple of
	// the block size during decryption.
	ErrCorruptCiphertext = ConstError("corrupt ciphertext")

	// ErrInvalidPadding means a padding byte was out of range, or the tail
	// did not match the expected repeated padding byte.
	ErrInvalidPadding = ConstError("invalid padding")

	// ErrStateNotSet means an intermediate accessor was used before the
	// corresponding operation ran.
	ErrStateNotSet = ConstError("state not set")

	// ErrInvalidConfig means a Config struct failed validation.
	ErrInvalidConfig = ConstError("invalid config")
)
