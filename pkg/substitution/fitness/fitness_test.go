package fitness

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
)

func TestNewWordMatchRejectsUnscorableText(t *testing.T) {
	tests := []struct {
		name       string
		ciphertext string
		wantErr    error
	}{
		{name: "empty", ciphertext: "", wantErr: framework.ErrEmptyText},
		{name: "whitespace", ciphertext: " \t\n ", wantErr: framework.ErrEmptyText},
		{name: "no letters", ciphertext: "123 , 456 !", wantErr: framework.ErrNoLetters},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWordMatch(tt.ciphertext, "THE CORPUS")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestScore(t *testing.T) {
	w, err := NewWordMatch("X", "the quick brown fox , jumps")
	require.NoError(t, err)
	assert.Equal(t, 6, w.VocabularySize())

	tests := []struct {
		name    string
		decoded string
		want    float64
	}{
		{name: "all known", decoded: "the quick brown fox", want: 1},
		{name: "none known", decoded: "lazy dog", want: 0},
		{name: "half known", decoded: "the lazy fox dog", want: 0.5},
		// Repeated tokens count once in the numerator but every time in the denominator.
		{name: "repeats", decoded: "the the the dog", want: 0.25},
		{name: "case sensitive", decoded: "The Quick", want: 0},
		{name: "punctuation token", decoded: "fox ,", want: 1},
		{name: "empty", decoded: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, w.Score(tt.decoded), 1e-12)
		})
	}
}

func TestEvaluate(t *testing.T) {
	const plaintext = "THE QUICK BROWN FOX"
	key, err := framework.ParseKey("QWERTYUIOPASDFGHJKLZXCVBNM")
	require.NoError(t, err)

	w, err := NewWordMatch(key.Encode(plaintext), "THE QUICK BROWN FOX JUMPS OVER")
	require.NoError(t, err)
	assert.Equal(t, 1.0, w.Evaluate(key))

	rng := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 500; i++ {
		s := w.Fitness()(framework.NewRandomKey(rng))
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestCache(t *testing.T) {
	calls := 0
	var mu sync.Mutex
	fn := func(k framework.Key) float64 {
		mu.Lock()
		calls++
		mu.Unlock()
		return float64(k[0]) / framework.AlphabetSize
	}
	c := NewCache(fn, 0)

	k := framework.IdentityKey().Swap(0, 5)
	assert.InDelta(t, 5.0/26, c.Evaluate(k), 1e-12)
	assert.InDelta(t, 5.0/26, c.Fitness()(k), 1e-12)
	assert.Equal(t, 1, calls)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, 1, c.Len())
}

func TestCacheFlushesAtCapacity(t *testing.T) {
	c := NewCache(func(framework.Key) float64 { return 0.5 }, 3)
	rng := rand.New(rand.NewPCG(2, 2))
	for i := 0; i < 10; i++ {
		c.Evaluate(framework.NewRandomKey(rng))
		assert.LessOrEqual(t, c.Len(), 3)
	}
}
