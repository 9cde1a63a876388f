package benchmarks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/fitness"
	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
)

// DefaultKey is the key the built-in benchmarks encrypt with.
const DefaultKey = "QWERTYUIOPASDFGHJKLZXCVBNM"

// KnownPlaintext is a benchmark problem: a plaintext encrypted with a known
// key, scored against a corpus. Knowing the key makes it possible to measure
// how close a search got, not only whether it reached a perfect score.
type KnownPlaintext struct {
	name      string
	plaintext string
	key       framework.Key
	*fitness.WordMatch
}

var _ framework.Problem = &KnownPlaintext{}

// NewKnownPlaintext encrypts plaintext with key and prepares the word-match
// fitness against corpus.
func NewKnownPlaintext(name, plaintext, corpus string, key framework.Key) (*KnownPlaintext, error) {
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("benchmark %s: %w", name, err)
	}
	match, err := fitness.NewWordMatch(key.Encode(plaintext), corpus)
	if err != nil {
		return nil, fmt.Errorf("benchmark %s: %w", name, err)
	}
	return &KnownPlaintext{
		name:      name,
		plaintext: plaintext,
		key:       key,
		WordMatch: match,
	}, nil
}

func (p *KnownPlaintext) Name() string {
	return p.name
}

func (p *KnownPlaintext) Plaintext() string {
	return p.plaintext
}

// TrueKey is the key the ciphertext was produced with.
func (p *KnownPlaintext) TrueKey() framework.Key {
	return p.key
}

// Accuracy is the fraction of distinct plaintext letters that key maps to
// the same ciphertext letter as the true key. Letters absent from the
// plaintext cannot be recovered and are not counted.
func (p *KnownPlaintext) Accuracy(key framework.Key) float64 {
	var present [framework.AlphabetSize]bool
	for i := 0; i < len(p.plaintext); i++ {
		c := p.plaintext[i]
		switch {
		case 'A' <= c && c <= 'Z':
			present[c-'A'] = true
		case 'a' <= c && c <= 'z':
			present[c-'a'] = true
		}
	}
	total, correct := 0, 0
	for i, ok := range present {
		if !ok {
			continue
		}
		total++
		if key[i] == p.key[i] {
			correct++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

var decoys = []string{"JUMPS", "OVER", "LAZY", "DOG"}

// QuickBrownFox is the classic four word sentence with a handful of decoy
// words in the corpus. Whole-word scoring gives the search almost nothing to
// climb on here, so it mostly serves as a smoke test.
func QuickBrownFox() (*KnownPlaintext, error) {
	const plaintext = "THE QUICK BROWN FOX"
	key, err := framework.ParseKey(DefaultKey)
	if err != nil {
		return nil, err
	}
	corpus := plaintext + " " + strings.Join(decoys, " ")
	return NewKnownPlaintext("QuickBrownFox", plaintext, corpus, key)
}

// ladderWords each add at most one letter to those seen before them, so a
// single swap can always turn one more word into a corpus match.
var ladderWords = []string{
	"A", "I", "AT", "IT", "TIE", "THE", "HIT", "HINT", "THIN", "TEN",
	"NOT", "NOTE", "ONE", "TON", "TORN", "RUN", "TRUE", "BURN", "BUT",
	"CUT", "CUB", "KIT", "KICK", "QUIT", "QUICK", "ROW", "BROWN", "OWN",
	"FOR", "FIT", "FIX", "FOX", "OX",
}

// Ladder hides "THE QUICK BROWN FOX" behind a vocabulary ladder that the
// search can climb one letter at a time.
func Ladder() (*KnownPlaintext, error) {
	key, err := framework.ParseKey(DefaultKey)
	if err != nil {
		return nil, err
	}
	plaintext := strings.Join(ladderWords, " ") + " THE QUICK BROWN FOX"
	corpus := strings.Join(append(slices.Clone(ladderWords), decoys...), " ")
	return NewKnownPlaintext("Ladder", plaintext, corpus, key)
}

