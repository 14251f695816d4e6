package xlgrid

import (
	"maps"
	"slices"
)

// MergeSet holds the merged regions of a worksheet keyed by "first:last".
type MergeSet struct {
	keys map[string]RangeAddress
}

func newMergeSet() *MergeSet {
	return &MergeSet{keys: make(map[string]RangeAddress)}
}

// Add inserts ra unless an equal key is already present.
func (m *MergeSet) Add(ra RangeAddress) {
	key := ra.String()
	if _, ok := m.keys[key]; ok {
		return
	}
	m.keys[key] = ra
}

// Remove deletes the exact key of ra; an absent key is a no-op.
func (m *MergeSet) Remove(ra RangeAddress) {
	delete(m.keys, ra.String())
}

// Contains reports whether ra is merged exactly.
func (m *MergeSet) Contains(ra RangeAddress) bool {
	_, ok := m.keys[ra.String()]
	return ok
}

func (m *MergeSet) Len() int {
	return len(m.keys)
}

// Keys returns the merge keys sorted lexically.
func (m *MergeSet) Keys() []string {
	return slices.Sorted(maps.Keys(m.keys))
}

// Ranges returns the merged regions sorted by first address, then last.
func (m *MergeSet) Ranges() []RangeAddress {
	result := slices.Collect(maps.Values(m.keys))
	slices.SortFunc(result, compareRanges)
	return result
}

// RemoveIntersecting deletes every merge sharing a cell with ra.
func (m *MergeSet) RemoveIntersecting(ra RangeAddress) int {
	var doomed []string
	for key, merged := range m.keys {
		if merged.Intersects(ra) {
			doomed = append(doomed, key)
		}
	}
	for _, key := range doomed {
		delete(m.keys, key)
	}
	return len(doomed)
}

// shiftColumns moves merges that lie in band's rows at or beyond its first
// column; a merge spanning the insertion point widens instead. A negative
// delta deletes the columns of band: merges touching them are dropped,
// merges right of them move left.
func (m *MergeSet) shiftColumns(band RangeAddress, delta, maxCol int) {
	m.shift(band, delta, maxCol, func(ra RangeAddress) (lo, hi, crossLo, crossHi int) {
		return ra.First.Col, ra.Last.Col, ra.First.Row, ra.Last.Row
	}, func(ra RangeAddress, d int) RangeAddress {
		return ra.Offset(0, d)
	}, func(ra RangeAddress, d int) RangeAddress {
		ra.Last.Col += d
		return ra
	})
}

// shiftRows mirrors shiftColumns on the row axis.
func (m *MergeSet) shiftRows(band RangeAddress, delta, maxRow int) {
	m.shift(band, delta, maxRow, func(ra RangeAddress) (lo, hi, crossLo, crossHi int) {
		return ra.First.Row, ra.Last.Row, ra.First.Col, ra.Last.Col
	}, func(ra RangeAddress, d int) RangeAddress {
		return ra.Offset(d, 0)
	}, func(ra RangeAddress, d int) RangeAddress {
		ra.Last.Row += d
		return ra
	})
}

func (m *MergeSet) shift(
	band RangeAddress,
	delta, limit int,
	axis func(RangeAddress) (lo, hi, crossLo, crossHi int),
	move, grow func(RangeAddress, int) RangeAddress,
) {
	if delta == 0 {
		return
	}
	bandLo, bandHi, bandCrossLo, bandCrossHi := axis(band)

	var toRemove []string
	var toAdd []RangeAddress
	for key, merged := range m.keys {
		lo, hi, crossLo, crossHi := axis(merged)
		if crossLo < bandCrossLo || crossHi > bandCrossHi || hi < bandLo {
			continue
		}
		if delta > 0 {
			toRemove = append(toRemove, key)
			if lo < bandLo {
				// spans the insertion point: the far edge follows the cells
				toAdd = append(toAdd, grow(merged, min(delta, limit-hi)))
			} else if hi+delta <= limit {
				toAdd = append(toAdd, move(merged, delta))
			}
			continue
		}
		// deletion of [bandLo, bandHi]
		toRemove = append(toRemove, key)
		if lo > bandHi {
			toAdd = append(toAdd, move(merged, delta))
		}
	}
	for _, key := range toRemove {
		delete(m.keys, key)
	}
	for _, ra := range toAdd {
		m.Add(ra)
	}
}

func compareRanges(a, b RangeAddress) int {
	if c := a.First.Compare(b.First); c != 0 {
		return c
	}
	return a.Last.Compare(b.Last)
}
