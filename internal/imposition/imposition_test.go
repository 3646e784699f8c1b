package imposition

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrintOrderFixedLayouts(t *testing.T) {
	tests := []struct {
		pageCount int
		want      []Pair
	}{
		{1, []Pair{{0, Blank}}},
		{2, []Pair{{1, 0}}},
		{4, []Pair{{3, 0}, {1, 2}}},
		{8, []Pair{{7, 0}, {1, 6}, {5, 2}, {3, 4}}},
	}
	for _, tt := range tests {
		got := PrintOrder(tt.pageCount)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("PrintOrder(%d) mismatch (-want +got):\n%s", tt.pageCount, diff)
		}
	}
}

func TestSpreadPairsFixedLayouts(t *testing.T) {
	tests := []struct {
		pageCount int
		want      []Spread
	}{
		{1, []Spread{{Pair{0, Blank}, "Single Page"}}},
		{2, []Spread{{Pair{0, 1}, "Front & Back"}}},
		{4, []Spread{
			{Pair{3, 0}, "Back Cover & Front Cover"},
			{Pair{1, 2}, "Inside Spread"},
		}},
		{8, []Spread{
			{Pair{7, 0}, "Back Cover & Front Cover"},
			{Pair{1, 2}, "First Inside Spread"},
			{Pair{3, 4}, "Center Spread"},
			{Pair{5, 6}, "Last Inside Spread"},
		}},
	}
	for _, tt := range tests {
		got := SpreadPairs(tt.pageCount)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("SpreadPairs(%d) mismatch (-want +got):\n%s", tt.pageCount, diff)
		}
	}
}

// TestFoldSimulationEightPages folds the 8-page print order the way the
// physical sheets nest and checks the result reads 0..7, then rebuilds the
// reader's spreads from the folded stack and checks they match SpreadPairs.
func TestFoldSimulationEightPages(t *testing.T) {
	const n = 8
	order := PrintOrder(n)
	if len(order) != 4 {
		t.Fatalf("PrintOrder(8) returned %d sides, want 4", len(order))
	}

	// pos[i] is the page index that ends up at reading position i after
	// nesting and folding. For sheet s (outermost first), the front side
	// contributes reading positions 2s (right half) and n-1-2s (left half);
	// the back side contributes 2s+1 (left half) and n-2-2s (right half).
	pos := make([]int, n)
	for s := 0; s < len(order)/2; s++ {
		front := order[2*s]
		back := order[2*s+1]
		pos[2*s] = front.Right
		pos[2*s+1] = back.Left
		pos[n-2-2*s] = back.Right
		pos[n-1-2*s] = front.Left
	}
	for i, p := range pos {
		if p != i {
			t.Fatalf("folded stack reads %v, want 0..%d in order", pos, n-1)
		}
	}

	// A reader first sees the closed booklet (back cover, front cover),
	// then opens spread by spread.
	folded := []Pair{{pos[n-1], pos[0]}}
	for i := 1; i+1 < n; i += 2 {
		folded = append(folded, Pair{pos[i], pos[i+1]})
	}
	spreads := SpreadPairs(n)
	if len(folded) != len(spreads) {
		t.Fatalf("folded spreads = %d, SpreadPairs = %d", len(folded), len(spreads))
	}
	for i := range folded {
		if folded[i] != spreads[i].Pair {
			t.Errorf("spread %d: folded %v, SpreadPairs %v", i, folded[i], spreads[i].Pair)
		}
	}
}

func TestGenericFallback(t *testing.T) {
	for _, n := range []int{3, 5, 6, 7, 9, 10, 12} {
		wantPairs := (n + 1) / 2
		po := PrintOrder(n)
		sp := SpreadPairs(n)
		if len(po) != wantPairs {
			t.Errorf("PrintOrder(%d): %d pairs, want %d", n, len(po), wantPairs)
		}
		if len(sp) != wantPairs {
			t.Errorf("SpreadPairs(%d): %d pairs, want %d", n, len(sp), wantPairs)
		}

		last := po[len(po)-1]
		if n%2 == 1 && last.Right != Blank {
			t.Errorf("PrintOrder(%d): odd count must end with a blank right, got %v", n, last)
		}
		if n%2 == 0 && last.Right == Blank {
			t.Errorf("PrintOrder(%d): even count must not end with a blank, got %v", n, last)
		}

		for i, p := range po {
			if p.Left != 2*i {
				t.Errorf("PrintOrder(%d) pair %d = %v, want sequential", n, i, p)
			}
			if sp[i].Pair != p {
				t.Errorf("SpreadPairs(%d) pair %d = %v, want %v", n, i, sp[i].Pair, p)
			}
		}
	}
}

func TestGenericFallbackLabels(t *testing.T) {
	sp := SpreadPairs(6)
	wantLabels := []string{"Pages 1-2", "Pages 3-4", "Pages 5-6"}
	for i, s := range sp {
		if s.Label != wantLabels[i] {
			t.Errorf("label %d = %q, want %q", i, s.Label, wantLabels[i])
		}
	}
	sp = SpreadPairs(5)
	if got := sp[len(sp)-1].Label; got != "Page 5" {
		t.Errorf("trailing unpaired label = %q, want %q", got, "Page 5")
	}
}

func TestSheetCount(t *testing.T) {
	tests := []struct{ pages, sheets int }{
		{1, 1}, {2, 1}, {4, 1}, {8, 2}, {6, 2}, {16, 4},
	}
	for _, tt := range tests {
		if got := SheetCount(tt.pages); got != tt.sheets {
			t.Errorf("SheetCount(%d) = %d, want %d", tt.pages, got, tt.sheets)
		}
	}
}
