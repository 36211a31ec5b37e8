package realtime

import "github.com/ummahhub/ummah-backend/internal/model"

// Merge appends feed messages onto an already-fetched history,
// de-duplicating by message id. The history fetch and the feed backlog
// can overlap, so a message may be seen twice; the rendered list must
// contain exactly one copy.
func Merge(history []model.Message, incoming ...model.Message) []model.Message {
	seen := make(map[uint64]struct{}, len(history)+len(incoming))
	out := make([]model.Message, 0, len(history)+len(incoming))
	for _, m := range history {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	for _, m := range incoming {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}
