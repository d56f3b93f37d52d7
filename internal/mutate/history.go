package mutate

import (
	"time"

	"dayplan/internal/model"
)

func appendHistory(b *model.ItemBase, ts time.Time, content string) {
	b.History = append(b.History, model.HistoryEntry{TS: ts, Content: content})
}

func describeOld(desc string) string {
	if desc == "" {
		return "(empty)"
	}
	return desc
}
