package xlgrid

import "slices"

// store is the sparse cell collection of one worksheet. Keys are unique;
// each cell's Address equals its key.
type store struct {
	cells map[Address]*Cell
}

func newStore() *store {
	return &store{cells: make(map[Address]*Cell)}
}

func (s *store) contains(addr Address) bool {
	_, ok := s.cells[addr]
	return ok
}

func (s *store) get(addr Address) (*Cell, bool) {
	c, ok := s.cells[addr]
	return c, ok
}

// add stores c under its own address, replacing any previous record.
func (s *store) add(c *Cell) {
	s.cells[c.Address] = c
}

// remove deletes the record at addr; an absent key is a no-op.
func (s *store) remove(addr Address) {
	delete(s.cells, addr)
}

// removeWhere deletes every record matching pred and returns how many went.
func (s *store) removeWhere(pred func(*Cell) bool) int {
	var doomed []Address
	for addr, c := range s.cells {
		if pred(c) {
			doomed = append(doomed, addr)
		}
	}
	for _, addr := range doomed {
		delete(s.cells, addr)
	}
	return len(doomed)
}

// selectWhere returns the records matching pred sorted by address order.
func (s *store) selectWhere(pred func(*Cell) bool) []*Cell {
	var result []*Cell
	for _, c := range s.cells {
		if pred(c) {
			result = append(result, c)
		}
	}
	slices.SortFunc(result, func(a, b *Cell) int {
		return a.Address.Compare(b.Address)
	})
	return result
}

func (s *store) len() int {
	return len(s.cells)
}

// bounds returns the maximal used row and column, 0 when empty.
func (s *store) bounds() (lastRow, lastCol int) {
	for addr := range s.cells {
		lastRow = max(lastRow, addr.Row)
		lastCol = max(lastCol, addr.Col)
	}
	return lastRow, lastCol
}
