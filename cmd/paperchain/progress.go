package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/dd0wney/cluso-paperchain/pkg/rings"
)

// progressPrinter redraws a single progress line for the running stage.
type progressPrinter struct {
	w   io.Writer
	bar progress.Model
	mu  sync.Mutex
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{
		w:   w,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (p *progressPrinter) update(pr rings.Progress) {
	pct := 1.0
	if pr.Total > 0 {
		pct = float64(pr.Done) / float64(pr.Total)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "\r%-9s %s %d/%d found %d", pr.Stage, p.bar.ViewAs(pct), pr.Done, pr.Total, pr.Found)
}

func (p *progressPrinter) done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w)
}
