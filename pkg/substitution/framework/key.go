package framework

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	// AlphabetSize is the number of symbols a Key permutes.
	AlphabetSize = 26
	// Alphabet is the ordered symbol set every Key is defined over.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Key is a candidate substitution key. Index i holds the rank of the
// ciphertext letter that plaintext letter Alphabet[i] is replaced with, so a
// valid Key is a permutation of 0..25. Keys are values: copying one never
// aliases another.
type Key [AlphabetSize]uint8

// LetterPair is one plaintext -> ciphertext entry of a Key.
type LetterPair struct {
	Plain  byte
	Cipher byte
}

func (p LetterPair) String() string {
	return fmt.Sprintf("%c -> %c", p.Plain, p.Cipher)
}

// NewRandomKey draws a uniformly random permutation of the alphabet from rng.
func NewRandomKey(rng *rand.Rand) Key {
	var k Key
	for i, v := range rng.Perm(AlphabetSize) {
		k[i] = uint8(v)
	}
	return k
}

// IdentityKey maps every letter to itself.
func IdentityKey() Key {
	var k Key
	for i := range k {
		k[i] = uint8(i)
	}
	return k
}

// ParseKey reads a key written as its 26 ciphertext images in plaintext
// order, e.g. "QWERTYUIOPASDFGHJKLZXCVBNM". Case is ignored.
func ParseKey(s string) (Key, error) {
	var k Key
	if len(s) != AlphabetSize {
		return k, fmt.Errorf("key %q has %d letters, want %d", s, len(s), AlphabetSize)
	}
	for i := 0; i < AlphabetSize; i++ {
		c := s[i]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return k, fmt.Errorf("key %q: position %d is not a letter", s, i)
		}
		k[i] = c - 'A'
	}
	if err := k.Validate(); err != nil {
		return k, err
	}
	return k, nil
}

// String renders the ciphertext images in plaintext order.
func (k Key) String() string {
	b := make([]byte, AlphabetSize)
	for i, v := range k {
		b[i] = 'A' + v
	}
	return string(b)
}

// Validate reports ErrNotBijective if some image is out of range or used twice.
func (k Key) Validate() error {
	var seen [AlphabetSize]bool
	for i, v := range k {
		if int(v) >= AlphabetSize {
			return fmt.Errorf("%w: %c maps to out-of-range image %d", ErrNotBijective, Alphabet[i], v)
		}
		if seen[v] {
			return fmt.Errorf("%w: image %c is used more than once", ErrNotBijective, 'A'+v)
		}
		seen[v] = true
	}
	return nil
}

// IsBijection is Validate without the diagnostics.
func (k Key) IsBijection() bool {
	return k.Validate() == nil
}

// Inverse returns the ciphertext -> plaintext key.
func (k Key) Inverse() Key {
	var inv Key
	for i, v := range k {
		inv[v] = uint8(i)
	}
	return inv
}

// Swap returns a copy of k with the images of positions i and j exchanged.
func (k Key) Swap(i, j int) Key {
	k[i], k[j] = k[j], k[i]
	return k
}

// Pairs lists the key as plaintext -> ciphertext pairs, sorted by plaintext letter.
func (k Key) Pairs() []LetterPair {
	pairs := make([]LetterPair, AlphabetSize)
	for i, v := range k {
		pairs[i] = LetterPair{Plain: Alphabet[i], Cipher: 'A' + v}
	}
	return pairs
}

// Encode applies the key to plaintext. Letters keep their case, everything
// else passes through.
func (k Key) Encode(plaintext string) string {
	return substitute(plaintext, &k)
}

// Decode recovers plaintext from text encoded with k.
func (k Key) Decode(ciphertext string) string {
	inv := k.Inverse()
	return substitute(ciphertext, &inv)
}

// substitute works on bytes: multi-byte UTF-8 sequences never fall in the
// ASCII letter ranges and are copied unchanged.
func substitute(text string, table *Key) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case 'A' <= c && c <= 'Z':
			b.WriteByte('A' + table[c-'A'])
		case 'a' <= c && c <= 'z':
			b.WriteByte('a' + table[c-'a'])
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// CountLetters returns how many ASCII letters text contains.
func CountLetters(text string) int {
	n := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') {
			n++
		}
	}
	return n
}
