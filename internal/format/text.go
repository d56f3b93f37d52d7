package format

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"dayplan/internal/model"
	"dayplan/internal/store"
)

// WriteText writes an indented plain-text outline of the whole tree.
func WriteText(w io.Writer, db *store.DB) error {
	bw := bufio.NewWriter(w)
	for li := range db.Lists {
		l := &db.Lists[li]
		fmt.Fprintf(bw, "%s (%s)\n", l.Name, l.ID)
		for ti := range l.Tasks {
			writeItemLine(bw, 1, &l.Tasks[ti].ItemBase)
			t := &l.Tasks[ti]
			for si := range t.Subtasks {
				writeItemLine(bw, 2, &t.Subtasks[si].ItemBase)
				st := &t.Subtasks[si]
				for ai := range st.Activities {
					writeItemLine(bw, 3, &st.Activities[ai].ItemBase)
				}
			}
		}
	}
	return bw.Flush()
}

func writeItemLine(w io.Writer, depth int, b *model.ItemBase) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	mark := " "
	if b.Status == model.StatusDone {
		mark = "x"
	}
	fmt.Fprintf(w, "%s[%s] %s (%s, %s, due %s)\n",
		indent, mark, b.Name, b.ID, b.Priority,
		b.ExpectedCompletionDate.Format(time.DateOnly))
}
