package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2/ktesting"
	"sigs.k8s.io/yaml"

	"github.com/mihai-snyk/substitution-decoder/apis/decoder/v1alpha1"
	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
)

func execute(t *testing.T, args ...string) (string, error) {
	_, ctx := ktesting.NewTestContext(t)
	var out bytes.Buffer
	cmd := NewDecoderCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestDecode(t *testing.T) {
	dir := t.TempDir()
	key, err := framework.ParseKey("QWERTYUIOPASDFGHJKLZXCVBNM")
	require.NoError(t, err)

	encoded := filepath.Join(dir, "encoded.txt")
	corpus := filepath.Join(dir, "corpus.txt")
	require.NoError(t, os.WriteFile(encoded, []byte(key.Encode("The cat, the hat.")), 0o600))
	require.NoError(t, os.WriteFile(corpus, []byte("the cat sat on the hat"), 0o600))

	output := filepath.Join(dir, "decoded.txt")
	report := filepath.Join(dir, "report.yaml")
	keyFile := filepath.Join(dir, "key.txt")
	stdout, err := execute(t, "decode",
		"--encoded="+encoded,
		"--corpus="+corpus,
		"--output="+output,
		"--report="+report,
		"--key-output="+keyFile,
		"--population-size=20",
		"--max-generations=5",
		"--seed=1",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Decoded letter -> Encoded letter")

	decoded, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, stdout, string(decoded))
	// Punctuation is attached to the preceding word again.
	assert.Regexp(t, `^\S+ \S+,\s+\S+ \S+\.\s*$`, string(decoded))

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var got v1alpha1.DecodeReport
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, v1alpha1.DecodeReportKind, got.Kind)
	assert.Equal(t, 6, got.Spec.CiphertextTokens)
	assert.Equal(t, int32(20), *got.Spec.Configuration.PopulationSize)
	assert.Equal(t, uint64(1), *got.Spec.Configuration.Seed)
	assert.LessOrEqual(t, got.Status.Generations, 6)
	assert.Len(t, got.Status.ScoreHistory, got.Status.Generations)
	assert.FileExists(t, keyFile)
}

func TestDecodeRequiresInputs(t *testing.T) {
	_, err := execute(t, "decode")
	require.Error(t, err)
	assert.ErrorContains(t, err, "--encoded is required")
}

func TestDecodeRejectsEmptyCiphertext(t *testing.T) {
	dir := t.TempDir()
	encoded := filepath.Join(dir, "encoded.txt")
	corpus := filepath.Join(dir, "corpus.txt")
	require.NoError(t, os.WriteFile(encoded, []byte("  \n"), 0o600))
	require.NoError(t, os.WriteFile(corpus, []byte("the"), 0o600))

	_, err := execute(t, "decode", "--encoded="+encoded, "--corpus="+corpus, "--output=")
	assert.ErrorIs(t, err, framework.ErrEmptyText)
}

func TestBenchmark(t *testing.T) {
	stdout, err := execute(t, "benchmark",
		"--name=quickbrownfox",
		"--population-size=40",
		"--max-generations=3",
		"--seed=5",
	)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "QuickBrownFox: "), stdout)
	assert.Contains(t, stdout, "key accuracy")
	assert.Contains(t, stdout, "expected: THE QUICK BROWN FOX")
}

func TestBenchmarkUnknown(t *testing.T) {
	_, err := execute(t, "benchmark", "--name=nope")
	assert.ErrorContains(t, err, `unknown benchmark "nope"`)
}
