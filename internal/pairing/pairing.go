// Package pairing matches files across the two input collections. Files are
// grouped by the identity token extracted from their names, each group is
// sorted by ordering key, and groups sharing an identity are matched
// positionally. A usage set enforces that no file is ever claimed by more
// than one pair, even if duplicate names slip through grouping.
package pairing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/clipweave/internal/config"
	"github.com/backmassage/clipweave/internal/identity"
)

// SourceFile is one discovered input file. Identity and ordering key are
// derived once at discovery and never recomputed.
type SourceFile struct {
	Path       string
	Collection config.Collection
	Identity   string
	OrderKey   string
	Ext        string
}

// Pair couples one product file with one selfie file under a shared
// identity. Pairs are immutable once emitted; Index is 1-based emission
// order.
type Pair struct {
	SourceA  string // product file path
	SourceB  string // selfie file path
	NameA    string // display name derived from SourceA
	NameB    string // display name derived from SourceB
	Identity string
	Index    int
}

// usageSet tracks file paths already claimed by a pair, per collection.
type usageSet struct {
	product map[string]bool
	selfie  map[string]bool
}

func newUsageSet() *usageSet {
	return &usageSet{
		product: make(map[string]bool),
		selfie:  make(map[string]bool),
	}
}

func (u *usageSet) used(f SourceFile) bool {
	if f.Collection == config.CollectionProduct {
		return u.product[f.Path]
	}
	return u.selfie[f.Path]
}

func (u *usageSet) claim(f SourceFile) {
	if f.Collection == config.CollectionProduct {
		u.product[f.Path] = true
		return
	}
	u.selfie[f.Path] = true
}

// Resolve enumerates both collections under cfg and returns the deterministic
// pair list plus a diagnostics report. It fails only when a collection
// directory cannot be read; everything else degrades to report entries.
func Resolve(cfg config.Config) ([]Pair, *Report, error) {
	product, err := discover(cfg.InputDir(config.CollectionProduct), config.CollectionProduct)
	if err != nil {
		return nil, nil, fmt.Errorf("discover product collection: %w", err)
	}
	selfie, err := discover(cfg.InputDir(config.CollectionSelfie), config.CollectionSelfie)
	if err != nil {
		return nil, nil, fmt.Errorf("discover selfie collection: %w", err)
	}

	pairs, report := match(product, selfie)
	return pairs, report, nil
}

// discover lists one collection directory, keeps supported media files, and
// computes identity and ordering keys. The listing is sorted by name so
// grouping order does not depend on filesystem enumeration order.
func discover(dir string, col config.Collection) ([]SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []SourceFile
	for _, e := range entries {
		if e.IsDir() || !identity.HasSupportedExt(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		files = append(files, SourceFile{
			Path:       path,
			Collection: col,
			Identity:   identity.Extract(e.Name()),
			OrderKey:   identity.OrderKey(e.Name()),
			Ext:        strings.ToLower(filepath.Ext(e.Name())),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// groups is an identity-keyed grouping that preserves first-seen insertion
// order of identities.
type groups struct {
	order []string
	byID  map[string][]SourceFile
}

func groupByIdentity(files []SourceFile) *groups {
	g := &groups{byID: make(map[string][]SourceFile)}
	for _, f := range files {
		if _, ok := g.byID[f.Identity]; !ok {
			g.order = append(g.order, f.Identity)
		}
		g.byID[f.Identity] = append(g.byID[f.Identity], f)
	}
	for id := range g.byID {
		sub := g.byID[id]
		sort.SliceStable(sub, func(i, j int) bool { return sub[i].OrderKey < sub[j].OrderKey })
	}
	return g
}

// match walks product identities in insertion order and pairs them
// positionally against same-identity selfie files. A candidate is emitted
// only when both files are unclaimed and still exist non-empty on disk;
// dropped candidates and leftover files are tallied in the report.
func match(product, selfie []SourceFile) ([]Pair, *Report) {
	ga := groupByIdentity(product)
	gb := groupByIdentity(selfie)
	usage := newUsageSet()
	report := &Report{}

	var pairs []Pair
	for _, id := range ga.order {
		subA := ga.byID[id]
		subB, ok := gb.byID[id]
		if !ok {
			report.UnmatchedProduct = append(report.UnmatchedProduct, id)
			report.SkippedProduct += len(subA)
			continue
		}

		n := len(subA)
		if len(subB) < n {
			n = len(subB)
		}
		for i := 0; i < n; i++ {
			a, b := subA[i], subB[i]
			if usage.used(a) || usage.used(b) ||
				!existsNonEmpty(a.Path) || !existsNonEmpty(b.Path) {
				report.SkippedProduct++
				report.SkippedSelfie++
				continue
			}
			usage.claim(a)
			usage.claim(b)
			pairs = append(pairs, Pair{
				SourceA:  a.Path,
				SourceB:  b.Path,
				NameA:    a.Identity,
				NameB:    b.Identity,
				Identity: id,
				Index:    len(pairs) + 1,
			})
		}

		// Group size mismatch: positional matching leaves a tail unused.
		report.SkippedProduct += len(subA) - n
		report.SkippedSelfie += len(subB) - n
	}

	for _, id := range gb.order {
		if _, ok := ga.byID[id]; !ok {
			report.UnmatchedSelfie = append(report.UnmatchedSelfie, id)
			report.SkippedSelfie += len(gb.byID[id])
		}
	}

	report.Pairs = pairs
	return pairs, report
}

// existsNonEmpty guards against candidates removed or truncated between
// discovery and emission.
func existsNonEmpty(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Size() > 0
}
