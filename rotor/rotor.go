// Package rotor implements the three-wheel substitution machine spec.md
// §4.8 describes: odometer stepping over a rotor alphabet of size N,
// including the double-step-per-revolution quirk preserved intentionally
// as specified.
//
// Grounded on original_source/src/rotor_machine.py's RotorMachine.
package rotor

import (
	"github.com/nkazakov/rotorfeistel/errors"
	"github.com/nkazakov/rotorfeistel/prng"
)

// DefaultAlphabet is the 26-letter uppercase pedagogical alphabet spec.md
// §4.8 names as one of the two canonical choices.
const DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Config configures a Machine.  Leave a rotor nil to have it generated as
// an independent uniform random permutation of Alphabet.
type Config struct {
	// Alphabet is the character set Σ each rotor permutes.  Defaults to
	// DefaultAlphabet.
	Alphabet string

	// Rotor1, Rotor2, Rotor3 are optional explicit wirings.  Each must be
	// a permutation of Alphabet's runes.
	Rotor1, Rotor2, Rotor3 []rune

	// RandomSource seeds default rotor generation.  Optional.
	RandomSource *prng.Source
}

// State reports a snapshot of the machine's mutable stepping state,
// supplementing RotorMachine.get_rotor_state_dict.
type State struct {
	Rotor1, Rotor2, Rotor3          []rune
	Rotor1Pos, Rotor2Pos, Rotor3Pos int
	Rotor1Current, Rotor2Current, Rotor3Current rune
}

// Machine is a three-rotor substitution cipher with odometer stepping.
type Machine struct {
	alphabetSize int

	original1, original2, original3 []rune

	rotor1, rotor2, rotor3 []rune
	pos1, pos2, pos3       int
}

// New constructs a Machine from cfg.  Fails with ErrInvalidRotor if any
// explicit rotor's character multiset is not exactly the alphabet.
func New(cfg Config) (*Machine, error) {
	alphabet := cfg.Alphabet
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	if len(alphabet) == 0 {
		return nil, errors.ErrInvalidConfig
	}
	runes := []rune(alphabet)
	n := len(runes)

	source := cfg.RandomSource
	if source == nil {
		source = prng.New(0)
	}

	rotor1, err := resolveRotor(cfg.Rotor1, runes, source)
	if err != nil {
		return nil, errors.Annotate(err, "rotor 1: %w")
	}
	rotor2, err := resolveRotor(cfg.Rotor2, runes, source)
	if err != nil {
		return nil, errors.Annotate(err, "rotor 2: %w")
	}
	rotor3, err := resolveRotor(cfg.Rotor3, runes, source)
	if err != nil {
		return nil, errors.Annotate(err, "rotor 3: %w")
	}

	m := &Machine{
		alphabetSize: n,
		original1:    rotor1,
		original2:    rotor2,
		original3:    rotor3,
	}
	m.Reset()
	return m, nil
}

// resolveRotor validates an explicit wiring against alphabet, or generates
// one as a uniform random permutation when wiring is nil. Grounded on
// des_generator.py's random_alphabet.
func resolveRotor(wiring []rune, alphabet []rune, source *prng.Source) ([]rune, error) {
	if wiring == nil {
		perm := source.UniformPermutation(len(alphabet))
		out := make([]rune, len(alphabet))
		for i, p := range perm {
			out[i] = alphabet[p]
		}
		return out, nil
	}

	if len(wiring) != len(alphabet) {
		return nil, errors.Annotate(errors.ErrInvalidRotor, "rotor length %d, want %d: %w", len(wiring), len(alphabet))
	}
	seen := make(map[rune]bool, len(alphabet))
	for _, r := range alphabet {
		seen[r] = true
	}
	present := make(map[rune]bool, len(wiring))
	for _, r := range wiring {
		if !seen[r] || present[r] {
			return nil, errors.ErrInvalidRotor
		}
		present[r] = true
	}
	out := make([]rune, len(wiring))
	copy(out, wiring)
	return out, nil
}

// Reset restores each rotor to its original wiring and zeroes all
// positions.
func (m *Machine) Reset() {
	m.rotor1 = cloneRunes(m.original1)
	m.rotor2 = cloneRunes(m.original2)
	m.rotor3 = cloneRunes(m.original3)
	m.pos1, m.pos2, m.pos3 = 0, 0, 0
}

func cloneRunes(src []rune) []rune {
	out := make([]rune, len(src))
	copy(out, src)
	return out
}

// indexOf returns the position of r within rotor, or -1 if absent.
func indexOf(rotor []rune, r rune) int {
	for i, c := range rotor {
		if c == r {
			return i
		}
	}
	return -1
}

// step advances the rotors by one character per the odometer rule:
// rotor 1 always steps; rotor 2 steps when rotor 1's new position is a
// multiple of N/2 (firing twice per revolution, preserved as specified);
// rotor 3 steps when rotor 2's new position is a multiple of N.
func (m *Machine) step() {
	m.rotor1 = append(m.rotor1[1:], m.rotor1[0])
	m.pos1 = (m.pos1 + 1) % m.alphabetSize

	if m.pos1%(m.alphabetSize/2) == 0 {
		m.rotor2 = append(m.rotor2[1:], m.rotor2[0])
		m.pos2 = (m.pos2 + 1) % m.alphabetSize
	}

	if m.pos2%m.alphabetSize == 0 {
		m.rotor3 = append(m.rotor3[1:], m.rotor3[0])
		m.pos3 = (m.pos3 + 1) % m.alphabetSize
	}
}

// encryptRune runs one character through R1 -> R2 -> R3, then steps.
// Characters outside the rotor alphabet pass through unchanged but still
// advance the stepping mechanism.
func (m *Machine) encryptRune(c rune) rune {
	defer m.step()

	i := indexOf(m.rotor1, c)
	if i < 0 {
		return c
	}
	c2 := m.rotor2[i]
	j := indexOf(m.rotor2, c2)
	return m.rotor3[j]
}

// decryptRune inverts encryptRune: R3 -> R2 -> R1, then steps.
func (m *Machine) decryptRune(c rune) rune {
	defer m.step()

	j := indexOf(m.rotor3, c)
	if j < 0 {
		return c
	}
	c2 := m.rotor2[j]
	i := indexOf(m.rotor2, c2)
	return m.rotor1[i]
}

// Encrypt resets the machine, then substitutes each rune of plaintext in
// turn.
func (m *Machine) Encrypt(plaintext string) string {
	m.Reset()
	out := make([]rune, 0, len(plaintext))
	for _, c := range plaintext {
		out = append(out, m.encryptRune(c))
	}
	return string(out)
}

// Decrypt resets the machine, then inverts each rune of ciphertext in
// turn.
func (m *Machine) Decrypt(ciphertext string) string {
	m.Reset()
	out := make([]rune, 0, len(ciphertext))
	for _, c := range ciphertext {
		out = append(out, m.decryptRune(c))
	}
	return string(out)
}

// State returns a snapshot of the machine's current rotor wirings and
// position counters.
func (m *Machine) State() State {
	return State{
		Rotor1: cloneRunes(m.rotor1), Rotor2: cloneRunes(m.rotor2), Rotor3: cloneRunes(m.rotor3),
		Rotor1Pos: m.pos1, Rotor2Pos: m.pos2, Rotor3Pos: m.pos3,
		Rotor1Current: m.rotor1[0], Rotor2Current: m.rotor2[0], Rotor3Current: m.rotor3[0],
	}
}
