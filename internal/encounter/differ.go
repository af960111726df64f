package encounter

// Diff returns the ids present in cur but not in prev, in cur order.
// Duplicates in cur are reported once. Diff(s, s) is always empty.
func Diff(prev, cur []uint16) []uint16 {
	if len(cur) == 0 {
		return nil
	}
	seen := make(map[uint16]struct{}, len(prev))
	for _, id := range prev {
		seen[id] = struct{}{}
	}

	var added []uint16
	for _, id := range cur {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		added = append(added, id)
	}
	return added
}

// SameSet reports whether a and b hold the same ids regardless of order.
// It is the fast path that lets a tick skip diffing entirely.
func SameSet(a, b []uint16) bool {
	if len(a) == len(b) {
		same := true
		for i := range a {
			if a[i] != b[i] {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}

	sa := toSet(a)
	sb := toSet(b)
	if len(sa) != len(sb) {
		return false
	}
	for id := range sa {
		if _, ok := sb[id]; !ok {
			return false
		}
	}
	return true
}

func toSet(ids []uint16) map[uint16]struct{} {
	s := make(map[uint16]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}
