// Package imposition maps logical page indices onto the physical sheet
// sides of a saddle-stitch booklet. Sheets nest before folding, so print
// order proceeds from the outermost sheet (the cover) inward, and each
// sheet's two sides pair pages so the folded result reads front to back.
package imposition

import "fmt"

// Blank marks a pair slot with no page on it.
const Blank = -1

// Pair is one printed sheet side: the 0-based page indices placed on the
// left and right halves. Either index may be Blank.
type Pair struct {
	Left  int
	Right int
}

// Spread is a facing-page pair as a reader sees it after folding, with a
// human-readable label for preview navigation.
type Spread struct {
	Pair
	Label string
}

// PrintOrder returns the page pairs in the order sheet sides are printed:
// alternating front/back of successive physical sheets, outermost sheet
// first. The 1/2/4/8 page layouts are fixed lookups; any other positive
// count falls back to sequential pairing, which fills sheets but is not a
// foldable booklet layout.
func PrintOrder(pageCount int) []Pair {
	switch pageCount {
	case 1:
		return []Pair{{0, Blank}}
	case 2:
		return []Pair{{1, 0}}
	case 4:
		return []Pair{
			{3, 0}, // sheet 1 front
			{1, 2}, // sheet 1 back
		}
	case 8:
		return []Pair{
			{7, 0}, // sheet 1 front
			{1, 6}, // sheet 1 back
			{5, 2}, // sheet 2 front
			{3, 4}, // sheet 2 back
		}
	default:
		return sequentialPairs(pageCount)
	}
}

// SpreadPairs returns the facing-page pairs in reading order, labelled for
// preview. Like PrintOrder it is total over positive counts, with the same
// sequential fallback outside {1, 2, 4, 8}.
func SpreadPairs(pageCount int) []Spread {
	switch pageCount {
	case 1:
		return []Spread{{Pair{0, Blank}, "Single Page"}}
	case 2:
		return []Spread{{Pair{0, 1}, "Front & Back"}}
	case 4:
		return []Spread{
			{Pair{3, 0}, "Back Cover & Front Cover"},
			{Pair{1, 2}, "Inside Spread"},
		}
	case 8:
		return []Spread{
			{Pair{7, 0}, "Back Cover & Front Cover"},
			{Pair{1, 2}, "First Inside Spread"},
			{Pair{3, 4}, "Center Spread"},
			{Pair{5, 6}, "Last Inside Spread"},
		}
	default:
		pairs := sequentialPairs(pageCount)
		spreads := make([]Spread, len(pairs))
		for i, p := range pairs {
			label := fmt.Sprintf("Pages %d-%d", p.Left+1, p.Right+1)
			if p.Right == Blank {
				label = fmt.Sprintf("Page %d", p.Left+1)
			}
			spreads[i] = Spread{p, label}
		}
		return spreads
	}
}

// SheetCount returns the number of physical sheets needed, two printed
// sides per sheet.
func SheetCount(pageCount int) int {
	return (len(PrintOrder(pageCount)) + 1) / 2
}

func sequentialPairs(pageCount int) []Pair {
	if pageCount < 1 {
		return nil
	}
	pairs := make([]Pair, 0, (pageCount+1)/2)
	for i := 0; i < pageCount; i += 2 {
		if i+1 < pageCount {
			pairs = append(pairs, Pair{i, i + 1})
		} else {
			pairs = append(pairs, Pair{i, Blank})
		}
	}
	return pairs
}
