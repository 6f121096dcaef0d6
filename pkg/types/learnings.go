package types

import "time"

// MaxLearnings caps the number of keys in a table's learnings map. When a
// merge would exceed the cap, the entry with the oldest UpdatedAt is
// evicted first.
const MaxLearnings = 64

// LearningEntry is one accumulated note in a table's learnings map: a
// scalar or small structured value with a revision counter bumped on every
// merge of that key.
type LearningEntry struct {
	Value     any       `json:"value"`
	Revision  int       `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Learnings is the open-ended key→entry map attached to a table's
// metadata. It accumulates over time: merges replace values per key and
// never discard unrelated keys.
type Learnings map[string]LearningEntry

// Merge applies updates to the map, bumping the revision of replaced keys
// and stamping each touched entry with now. If the merge pushes the map
// past MaxLearnings, the oldest entries by UpdatedAt are evicted until the
// cap holds. Returns the receiver for chaining; a nil receiver allocates.
func (l Learnings) Merge(updates map[string]any, now time.Time) Learnings {
	if l == nil {
		l = make(Learnings, len(updates))
	}
	for key, value := range updates {
		entry := l[key]
		entry.Value = value
		entry.Revision++
		entry.UpdatedAt = now
		l[key] = entry
	}
	for len(l) > MaxLearnings {
		oldestKey := ""
		var oldest time.Time
		for key, entry := range l {
			if oldestKey == "" || entry.UpdatedAt.Before(oldest) {
				oldestKey = key
				oldest = entry.UpdatedAt
			}
		}
		delete(l, oldestKey)
	}
	return l
}
