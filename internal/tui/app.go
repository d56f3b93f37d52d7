package tui

import (
	"errors"
	"fmt"
	"time"

	"dayplan/internal/agenda"
	"dayplan/internal/model"
	"dayplan/internal/mutate"
	"dayplan/internal/store"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	viewLists view = iota
	viewOutline
	viewToday
)

type appModel struct {
	store  store.Store
	shared *store.Shared
	eng    *mutate.Engine

	width  int
	height int

	view view

	listsList   list.Model
	outlineList list.Model
	todayList   list.Model

	selectedListID string
	showDetail     bool
	statusMsg      string
}

func newAppModel(s store.Store, shared *store.Shared) appModel {
	m := appModel{
		store:  s,
		shared: shared,
		eng:    mutate.NewEngine(),
		view:   viewLists,
	}
	m.listsList = newList("Lists", []list.Item{})
	m.outlineList = newList("Outline", []list.Item{})
	m.todayList = newList("Today", []list.Item{})
	m.refreshLists()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		// Don't swallow keys while the user types a filter.
		if m.activeList().FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "t":
			m.view = viewToday
			m.refreshToday()
			return m, nil
		case "esc":
			m.statusMsg = ""
			if m.showDetail {
				m.showDetail = false
				return m, nil
			}
			switch m.view {
			case viewOutline, viewToday:
				m.view = viewLists
				m.refreshLists()
			}
			return m, nil
		case "enter":
			if m.view == viewLists {
				if it, ok := m.listsList.SelectedItem().(taskListItem); ok {
					m.selectedListID = it.list.ID
					m.view = viewOutline
					m.refreshOutline()
				}
				return m, nil
			}
			if m.view == viewOutline {
				m.showDetail = !m.showDetail
				return m, nil
			}
		case " ":
			if m.view == viewOutline {
				m.toggleDone()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case viewLists:
		m.listsList, cmd = m.listsList.Update(msg)
	case viewOutline:
		m.outlineList, cmd = m.outlineList.Update(msg)
	case viewToday:
		m.todayList, cmd = m.todayList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := headingStyle.Render(m.breadcrumb())
	body := m.activeList().View()

	var detail string
	if m.showDetail && m.view == viewOutline {
		if it, ok := m.outlineList.SelectedItem().(outlineItem); ok {
			desc := it.loc.Base().Description
			if desc == "" {
				detail = mutedStyle.Render("(no description)")
			} else {
				detail = renderMarkdown(desc, m.width-2)
			}
		}
	}

	footer := faintIfDark(footerStyle).Render(m.footerHelp())
	if m.statusMsg != "" {
		footer = overdueStyle.Render(m.statusMsg) + "\n" + footer
	}

	parts := []string{header, body}
	if detail != "" {
		parts = append(parts, detail)
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *appModel) breadcrumb() string {
	crumb := "dayplan"
	switch m.view {
	case viewOutline:
		m.shared.Read(func(db *store.DB) {
			if l, ok := db.FindList(m.selectedListID); ok {
				crumb = "dayplan > " + l.Name
			}
		})
	case viewToday:
		crumb = "dayplan > today"
	}
	return crumb
}

func (m *appModel) footerHelp() string {
	switch m.view {
	case viewLists:
		return "enter open · t today · q quit"
	case viewOutline:
		return "enter detail · space toggle done · t today · esc back · q quit"
	default:
		return "esc back · q quit"
	}
}

func (m *appModel) activeList() *list.Model {
	switch m.view {
	case viewOutline:
		return &m.outlineList
	case viewToday:
		return &m.todayList
	}
	return &m.listsList
}

func (m *appModel) resizeLists() {
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	m.listsList.SetSize(m.width, h)
	m.outlineList.SetSize(m.width, h)
	m.todayList.SetSize(m.width, h)
}

func (m *appModel) refreshLists() {
	var items []list.Item
	m.shared.Read(func(db *store.DB) {
		items = make([]list.Item, 0, len(db.Lists))
		for _, l := range db.Lists {
			items = append(items, taskListItem{list: l})
		}
	})
	m.listsList.SetItems(items)
}

func (m *appModel) refreshOutline() {
	var items []list.Item
	m.shared.Read(func(db *store.DB) {
		for _, loc := range db.Flatten() {
			if loc.List.ID != m.selectedListID {
				continue
			}
			depth := 0
			switch loc.Kind {
			case model.KindSubtask:
				depth = 1
			case model.KindActivity:
				depth = 2
			}
			items = append(items, outlineItem{loc: loc, depth: depth})
		}
	})
	m.outlineList.SetItems(items)
}

func (m *appModel) refreshToday() {
	var items []list.Item
	m.shared.Read(func(db *store.DB) {
		rows := agenda.TodayItems(db, time.Now())
		items = make([]list.Item, 0, len(rows))
		for _, r := range rows {
			items = append(items, todayRow{item: r})
		}
	})
	m.todayList.SetItems(items)
}

// toggleDone flips the selected item between todo and done, consulting
// the serial-completion gate before allowing work to start. The whole
// check-mutate-save sequence runs under the shared write lock.
func (m *appModel) toggleDone() {
	it, ok := m.outlineList.SelectedItem().(outlineItem)
	if !ok {
		return
	}
	id := it.loc.Base().ID
	err := m.shared.Update(func(db *store.DB) error {
		loc, ok := db.FindItem(id)
		if !ok {
			return fmt.Errorf("item not found: %s", id)
		}
		next := model.StatusDone
		if loc.Base().Status == model.StatusDone {
			next = model.StatusTodo
		} else {
			startable, err := m.eng.CanStartItem(db, id)
			if err != nil {
				return err
			}
			if !startable {
				return errors.New("blocked: earlier siblings must be done first")
			}
		}

		u := mutate.ItemUpdate{Status: &next}
		var err error
		switch loc.Kind {
		case model.KindTask:
			_, err = m.eng.UpdateTask(db, id, mutate.TaskUpdate{ItemUpdate: u})
		case model.KindSubtask:
			_, err = m.eng.UpdateSubtask(db, id, mutate.SubtaskUpdate{ItemUpdate: u})
		case model.KindActivity:
			_, err = m.eng.UpdateActivity(db, id, mutate.ActivityUpdate{ItemUpdate: u})
		}
		if err != nil {
			return err
		}
		if err := m.store.Save(db); err != nil {
			return fmt.Errorf("save failed: %w", err)
		}
		return nil
	})
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.statusMsg = ""
	m.refreshOutline()
}
