package app

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
)

// progressBar shows generations against the generation budget. The search
// usually stops early on stagnation, so the bar is aborted rather than filled.
type progressBar struct {
	p     *mpb.Progress
	bar   *mpb.Bar
	stats atomic.Pointer[framework.GenerationStats]
}

func newProgressBar(w io.Writer, total, stagnationLimit int) *progressBar {
	pb := &progressBar{p: mpb.New(mpb.WithOutput(w), mpb.WithWidth(60))}
	pb.bar = pb.p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("Generations: "),
			decor.CountersNoUnit("%d / %d", decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.Any(func(decor.Statistics) string {
				s := pb.stats.Load()
				if s == nil {
					return ""
				}
				return fmt.Sprintf("best %.3f  stale %d/%d", s.RecordScore, s.Stagnation, stagnationLimit)
			}, decor.WCSyncSpace),
		),
	)
	return pb
}

func (pb *progressBar) update(stats framework.GenerationStats) {
	pb.stats.Store(&stats)
	pb.bar.SetCurrent(int64(stats.Generation + 1))
}

func (pb *progressBar) finish() {
	if !pb.bar.Completed() {
		pb.bar.Abort(false)
	}
	pb.p.Wait()
}
