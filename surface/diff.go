package surface

// Changes is the three-way diff between two key sets.
type Changes struct {
	Inserted []int64 // In current but not previous, current order
	Removed  []int64 // In previous but not current, previous order
	Retained []int64 // In both, current order
}

// Empty reports whether the key set did not change membership.
func (c Changes) Empty() bool {
	return len(c.Inserted) == 0 && len(c.Removed) == 0
}

// Diff compares the previous and current key sets.
// Duplicate keys in cur are reported once, at their first position.
func Diff(prev, cur []int64) Changes {
	before := make(map[int64]struct{}, len(prev))
	for _, id := range prev {
		before[id] = struct{}{}
	}

	c := Changes{
		Inserted: []int64{},
		Removed:  []int64{},
		Retained: []int64{},
	}
	now := make(map[int64]struct{}, len(cur))
	for _, id := range cur {
		if _, dup := now[id]; dup {
			continue
		}
		now[id] = struct{}{}
		if _, ok := before[id]; ok {
			c.Retained = append(c.Retained, id)
		} else {
			c.Inserted = append(c.Inserted, id)
		}
	}
	for _, id := range prev {
		if _, ok := now[id]; !ok {
			c.Removed = append(c.Removed, id)
		}
	}
	return c
}
