// Package crawl — ordered set of discovered post URLs.
package crawl

// Queue keeps URLs in discovery order and drops repeats.
type Queue struct {
	items   []string
	visited map[string]bool
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		visited: make(map[string]bool),
	}
}

// Add enqueues url unless it was seen before. It reports whether url was new.
func (q *Queue) Add(url string) bool {
	if q.visited[url] {
		return false
	}
	q.visited[url] = true
	q.items = append(q.items, url)
	return true
}

// Len returns the number of unique URLs seen.
func (q *Queue) Len() int {
	return len(q.items)
}

// All returns the URLs in the order they were first added.
func (q *Queue) All() []string {
	return q.items
}
