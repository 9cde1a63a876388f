package sink

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/mihai-snyk/substitution-decoder/apis/decoder/v1alpha1"
	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/algorithms"
	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/util"
)

// Outputs names where the results of a run are written. Empty paths are skipped.
type Outputs struct {
	PlaintextPath string
	KeyPath       string
	ReportPath    string
	PlotPath      string

	// PlotTitle names the run in the convergence chart.
	PlotTitle string
}

// FormatKey renders key for humans, one "plain -> cipher" line per letter.
func FormatKey(key framework.Key) string {
	var b strings.Builder
	b.WriteString("Decoded letter -> Encoded letter\n\n")
	for _, p := range key.Pairs() {
		b.WriteString(p.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// NewReport assembles the report of a finished run.
func NewReport(spec v1alpha1.DecodeReportSpec, res *algorithms.Result, started, finished time.Time) *v1alpha1.DecodeReport {
	pairs := res.Key.Pairs()
	keyPairs := make([]string, len(pairs))
	for i, p := range pairs {
		keyPairs[i] = p.String()
	}
	history := make([]float64, len(res.History))
	for i, s := range res.History {
		history[i] = s.BestScore
	}

	return &v1alpha1.DecodeReport{
		TypeMeta: metav1.TypeMeta{
			APIVersion: v1alpha1.SchemeGroupVersion.String(),
			Kind:       v1alpha1.DecodeReportKind,
		},
		Spec: spec,
		Status: v1alpha1.DecodeReportStatus{
			Phase:        v1alpha1.DecodePhase(res.Phase),
			Generations:  res.Generations,
			BestScore:    res.Score,
			Key:          res.Key.String(),
			KeyPairs:     keyPairs,
			ScoreHistory: history,
			Evaluations:  res.Evaluations,
			CacheHits:    res.CacheHits,
			StartedAt:    &metav1.Time{Time: started},
			FinishedAt:   &metav1.Time{Time: finished},
		},
	}
}

// WriteReport stores report as YAML.
func WriteReport(path string, report *v1alpha1.DecodeReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return writeFile(path, string(data))
}

// Persist writes every configured output. A failed write does not stop the
// others; failures are logged and returned together.
func Persist(ctx context.Context, out Outputs, plaintext string, res *algorithms.Result, report *v1alpha1.DecodeReport) error {
	logger := klog.FromContext(ctx)

	var errs []error
	record := func(what, path string, err error) {
		if err != nil {
			logger.Error(err, "Failed to write result", "output", what, "path", path)
			errs = append(errs, fmt.Errorf("writing %s: %w", what, err))
			return
		}
		logger.V(2).Info("Wrote result", "output", what, "path", path)
	}

	if out.PlaintextPath != "" {
		record("plaintext", out.PlaintextPath, writeFile(out.PlaintextPath, plaintext))
	}
	if out.KeyPath != "" {
		record("key", out.KeyPath, writeFile(out.KeyPath, FormatKey(res.Key)))
	}
	if out.ReportPath != "" && report != nil {
		record("report", out.ReportPath, WriteReport(out.ReportPath, report))
	}
	if out.PlotPath != "" {
		record("plot", out.PlotPath, util.PlotConvergence(res.History, out.PlotTitle, out.PlotPath))
	}
	return utilerrors.NewAggregate(errs)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
