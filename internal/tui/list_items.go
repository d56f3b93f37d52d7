package tui

import (
	"fmt"
	"strings"
	"time"

	"dayplan/internal/agenda"
	"dayplan/internal/model"
	"dayplan/internal/store"

	"github.com/charmbracelet/bubbles/list"
)

type taskListItem struct {
	list model.TaskList
}

func (i taskListItem) FilterValue() string { return i.list.Name }
func (i taskListItem) Title() string       { return i.list.Name }
func (i taskListItem) Description() string {
	return fmt.Sprintf("%s · %d tasks", i.list.ID, len(i.list.Tasks))
}

// outlineItem is one row of a list's flattened tree: a task, subtask or
// activity with its depth.
type outlineItem struct {
	loc   store.Located
	depth int
}

func (i outlineItem) FilterValue() string { return i.loc.Base().Name }

func (i outlineItem) Title() string {
	b := i.loc.Base()
	indent := strings.Repeat("  ", i.depth)
	mark := "[ ]"
	if b.Status == model.StatusDone {
		mark = "[x]"
	}
	title := fmt.Sprintf("%s%s %s", indent, mark, b.Name)
	if b.Status == model.StatusDone && hasColor() {
		return doneStyle.Render(title)
	}
	return title
}

func (i outlineItem) Description() string {
	b := i.loc.Base()
	indent := strings.Repeat("  ", i.depth)
	return fmt.Sprintf("%s%s · %s · due %s", indent, b.ID, b.Priority,
		b.ExpectedCompletionDate.Format(time.DateOnly))
}

type todayRow struct {
	item agenda.Item
}

func (r todayRow) FilterValue() string { return r.item.Name }

func (r todayRow) Title() string {
	prefix := ""
	if r.item.IsOverdue {
		prefix = "! "
		if hasColor() {
			prefix = overdueStyle.Render("! ")
		}
	}
	return fmt.Sprintf("%s%s (%d)", prefix, r.item.Name, r.item.UrgencyScore)
}

func (r todayRow) Description() string {
	crumbs := []string{r.item.ListName}
	if r.item.TaskName != "" {
		crumbs = append(crumbs, r.item.TaskName)
	}
	if r.item.SubtaskName != "" {
		crumbs = append(crumbs, r.item.SubtaskName)
	}
	due := r.item.ExpectedCompletionDate.Format(time.DateOnly)
	return strings.Join(crumbs, " > ") + " · due " + due
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// A global footer and breadcrumb are rendered separately, so keep
	// list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("item", "items")
	// Bubble list defaults to quitting on ESC; here ESC is "back".
	l.KeyMap.Quit.SetKeys("q")
	return l
}
