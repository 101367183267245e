package bench

import (
	"context"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/chess99/mp-lens-sub000/internal/analyzer"
	"github.com/chess99/mp-lens-sub000/internal/config"
)

// fixtureUnused is the hand-checked unused set of fixtures/miniprogram with
// assets included.
var fixtureUnused = []string{
	"assets/unused-logo.png",
	"components/old-dialog/old-dialog.js",
	"components/old-dialog/old-dialog.json",
	"components/old-dialog/old-dialog.wxml",
	"packageShop/coupon/coupon.js",
	"styles/legacy.wxss",
	"types/profile.ts",
	"utils/date.js",
}

func analyzeFixture(tb testing.TB) []string {
	tb.Helper()
	root, err := filepath.Abs(filepath.Join("..", "..", "fixtures", "miniprogram"))
	if err != nil {
		tb.Fatalf("resolve fixture: %v", err)
	}

	opts := config.Defaults()
	opts.RootDirectory = root
	opts.IncludeAssets = true

	result, err := analyzer.New(opts, nil).Analyze(context.Background())
	if err != nil {
		tb.Fatalf("analyze failed: %v", err)
	}

	out := make([]string, 0, len(result.UnusedFiles))
	for _, path := range result.UnusedFiles {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			tb.Fatalf("rel %s: %v", path, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestFixtureUnusedFiles(t *testing.T) {
	got := analyzeFixture(t)
	if !reflect.DeepEqual(got, fixtureUnused) {
		t.Fatalf("unused mismatch\nexpected: %v\ngot:      %v", fixtureUnused, got)
	}
}

func BenchmarkUnusedQuality_Fixture(b *testing.B) {
	var precision, recall float64

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		precision, recall = setMetrics(analyzeFixture(b), fixtureUnused)
	}
	b.StopTimer()

	b.ReportMetric(precision, "precision")
	b.ReportMetric(recall, "recall")
}

func setMetrics(got, expected []string) (precision, recall float64) {
	want := make(map[string]bool, len(expected))
	for _, path := range expected {
		want[path] = true
	}
	hits := 0
	for _, path := range got {
		if want[path] {
			hits++
		}
	}
	if len(got) > 0 {
		precision = float64(hits) / float64(len(got))
	}
	if len(expected) > 0 {
		recall = float64(hits) / float64(len(expected))
	}
	return precision, recall
}
