package market

// View bundles the aligned timeframe context for one execution bar. Execution
// is mandatory; entry and structural slices are optional and fall back to the
// execution series when absent, so single-timeframe hosts still score sanely.
// Each slice is chronological and ends at the bar being evaluated.
type View struct {
	Entry      []Bar // shortest timeframe, entry timing
	Execution  []Bar // primary timeframe driving evaluation
	Structural []Bar // longest timeframe, trend context
}

// Bar returns the execution bar under evaluation (the last of the series).
func (v View) Bar() Bar {
	return v.Execution[len(v.Execution)-1]
}

// EntrySeries returns the entry-timeframe bars, or the execution bars when no
// entry series was supplied.
func (v View) EntrySeries() []Bar {
	if len(v.Entry) > 0 {
		return v.Entry
	}
	return v.Execution
}

// StructuralSeries returns the structural-timeframe bars, or the execution
// bars when no structural series was supplied.
func (v View) StructuralSeries() []Bar {
	if len(v.Structural) > 0 {
		return v.Structural
	}
	return v.Execution
}

// Last returns the final bar of a series.
func Last(bars []Bar) Bar {
	return bars[len(bars)-1]
}

// Prev returns the next-to-last bar of a series, if present.
func Prev(bars []Bar) (Bar, bool) {
	if len(bars) < 2 {
		return Bar{}, false
	}
	return bars[len(bars)-2], true
}

// Align builds one View per execution bar, pairing it with every entry and
// structural bar stamped at or before it. Execution bars with no covering
// structural bar yet simply see the shorter prefix.
func Align(entry, execution, structural []Bar) []View {
	views := make([]View, 0, len(execution))
	entryIdx, structIdx := 0, 0
	for i := range execution {
		ts := execution[i].Ts
		for entryIdx < len(entry) && !entry[entryIdx].Ts.After(ts) {
			entryIdx++
		}
		for structIdx < len(structural) && !structural[structIdx].Ts.After(ts) {
			structIdx++
		}
		views = append(views, View{
			Entry:      entry[:entryIdx],
			Execution:  execution[:i+1],
			Structural: structural[:structIdx],
		})
	}
	return views
}
