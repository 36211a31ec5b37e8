package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ummahhub/ummah-backend/internal/model"
)

func msg(id uint64, body string) model.Message {
	return model.Message{ID: id, ConversationID: 1, Body: body}
}

func TestMergeDeduplicatesByID(t *testing.T) {
	history := []model.Message{msg(1, "salaam"), msg(2, "is it available?")}

	// The feed backlog replays message 2 and adds message 3.
	out := Merge(history, msg(2, "is it available?"), msg(3, "yes"))

	assert.Len(t, out, 3)
	ids := make([]uint64, 0, len(out))
	for _, m := range out {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []uint64{1, 2, 3}, ids)
}

func TestMergeKeepsHistoryOrder(t *testing.T) {
	history := []model.Message{msg(5, "a"), msg(7, "b"), msg(6, "c")}
	out := Merge(history)
	assert.Equal(t, history, out)
}

func TestMergeEmptyHistory(t *testing.T) {
	out := Merge(nil, msg(1, "a"), msg(1, "a"))
	assert.Len(t, out, 1)
}
