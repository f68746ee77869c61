package rotor_test

import (
	"testing"

	"github.com/nkazakov/rotorfeistel/rotor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityRotor() []rune {
	return []rune(rotor.DefaultAlphabet)
}

// shiftByOneRotor returns "ZABC...Y", a left-rotation of the identity
// alphabet by one position the other direction.
func shiftByOneRotor() []rune {
	alpha := []rune(rotor.DefaultAlphabet)
	out := make([]rune, len(alpha))
	out[0] = alpha[len(alpha)-1]
	copy(out[1:], alpha[:len(alpha)-1])
	return out
}

func TestScenarioThreeIdentityAndShiftRotors(t *testing.T) {
	m, err := rotor.New(rotor.Config{
		Rotor1: identityRotor(),
		Rotor2: shiftByOneRotor(),
		Rotor3: identityRotor(),
	})
	require.NoError(t, err)

	ciphertext := m.Encrypt("AAAAA")
	require.Len(t, ciphertext, 5)

	m.Reset()
	plaintext := m.Decrypt(ciphertext)
	assert.Equal(t, "AAAAA", plaintext)
}

func TestRoundTrip(t *testing.T) {
	m, err := rotor.New(rotor.Config{})
	require.NoError(t, err)

	cases := []string{"A", "HELLOWORLD", "ABCDEFGHIJKLMNOPQRSTUVWXYZABCDEFGH"}
	for _, s := range cases {
		ciphertext := m.Encrypt(s)
		plaintext := m.Decrypt(ciphertext)
		assert.Equal(t, s, plaintext, "round trip failed for %q", s)
	}
}

func TestResetIndependence(t *testing.T) {
	m, err := rotor.New(rotor.Config{})
	require.NoError(t, err)

	first := m.Encrypt("HELLO")
	_ = m.Encrypt("SOME OTHER MESSAGE THAT ADVANCES STATE")
	second := m.Encrypt("HELLO")

	assert.Equal(t, first, second)
}

func TestPassthroughForCharactersOutsideAlphabet(t *testing.T) {
	m, err := rotor.New(rotor.Config{})
	require.NoError(t, err)

	ciphertext := m.Encrypt("1")
	assert.Equal(t, "1", ciphertext)
}

func TestNewRejectsWrongRotorMultiset(t *testing.T) {
	bad := []rune(rotor.DefaultAlphabet)
	bad[0] = bad[1] // duplicate character, breaks the multiset

	_, err := rotor.New(rotor.Config{Rotor1: bad})
	require.Error(t, err)
}

func TestNewRejectsWrongRotorLength(t *testing.T) {
	_, err := rotor.New(rotor.Config{Rotor1: []rune("TOOSHORT")})
	require.Error(t, err)
}

func TestDoubleStepFiresTwicePerRevolution(t *testing.T) {
	m, err := rotor.New(rotor.Config{
		Rotor1: identityRotor(),
		Rotor2: identityRotor(),
		Rotor3: identityRotor(),
	})
	require.NoError(t, err)

	// 26-letter alphabet: rotor 2 should have stepped twice (at rotor1
	// positions 13 and 0/26) after one full revolution of rotor 1.
	input := make([]rune, 26)
	for i := range input {
		input[i] = 'A'
	}
	m.Encrypt(string(input))
	state := m.State()
	assert.Equal(t, 0, state.Rotor1Pos)
	assert.Equal(t, 2, state.Rotor2Pos)
}
