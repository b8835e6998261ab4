package pairing

import (
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Report captures the pair-resolution diagnostics: the emitted pairs,
// identities present in only one collection, and files skipped by the
// one-to-one constraint or emission-time validation.
type Report struct {
	Pairs            []Pair
	UnmatchedProduct []string // identities with no selfie counterpart
	UnmatchedSelfie  []string // identities with no product counterpart
	SkippedProduct   int      // product files left unpaired
	SkippedSelfie    int      // selfie files left unpaired
}

// Summary returns the one-line resolution summary logged after every run.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d pairs, %d/%d unmatched identities (product/selfie), %d/%d files skipped",
		len(r.Pairs), len(r.UnmatchedProduct), len(r.UnmatchedSelfie),
		r.SkippedProduct, r.SkippedSelfie)
}

// Render returns the pair table for terminal display.
func (r *Report) Render() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Identity", "Product", "Selfie"})

	for _, p := range r.Pairs {
		tw.AppendRow(table.Row{
			fmt.Sprintf("%02d", p.Index),
			p.Identity,
			filepath.Base(p.SourceA),
			filepath.Base(p.SourceB),
		})
	}
	tw.AppendFooter(table.Row{"", "", "", r.Summary()})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
