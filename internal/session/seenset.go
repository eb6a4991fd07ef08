package session

// SeenSet tracks shot ids already present in the feed buffer for the
// lifetime of one filter epoch. It never evicts: a shot seen once stays
// seen until the next Reset, which is what makes the dedup guarantee hold
// when the backing query shifts between page fetches.
type SeenSet struct {
	ids map[int64]struct{}
}

func NewSeenSet() *SeenSet {
	return &SeenSet{ids: make(map[int64]struct{})}
}

// Add records an id and reports whether it was new.
func (s *SeenSet) Add(id int64) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *SeenSet) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *SeenSet) Len() int {
	return len(s.ids)
}

func (s *SeenSet) Reset() {
	s.ids = make(map[int64]struct{})
}
