package crawl

// frontier is a FIFO of URLs that admits each URL at most once.
type frontier struct {
	pending []string
	order   []string
	seen    map[string]struct{}
	limit   int
}

func newFrontier(limit int) *frontier {
	return &frontier{seen: make(map[string]struct{}), limit: limit}
}

// push enqueues u unless it was seen before or the limit is reached.
func (f *frontier) push(u string) bool {
	if _, ok := f.seen[u]; ok || len(f.seen) >= f.limit {
		return false
	}
	f.seen[u] = struct{}{}
	f.pending = append(f.pending, u)
	f.order = append(f.order, u)
	return true
}

// pop returns the oldest pending URL.
func (f *frontier) pop() (string, bool) {
	if len(f.pending) == 0 {
		return "", false
	}
	u := f.pending[0]
	f.pending = f.pending[1:]
	return u, true
}

// all returns every admitted URL in discovery order.
func (f *frontier) all() []string {
	return f.order
}
