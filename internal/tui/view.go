package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/taskdeck/taskdeck/internal/model"
)

// View implements tea.Model
func (m Model) View() string {
	if m.mode == ModeProjectPick {
		return m.viewPicker()
	}

	cur := m.store.Current()
	if cur == nil {
		return m.styles.muted.Render("No project selected. Press p to pick one.")
	}

	var b strings.Builder
	b.WriteString(m.viewHeader(cur))
	b.WriteString("\n")

	switch m.pane {
	case PaneBoard:
		b.WriteString(m.viewBoard(cur))
	case PaneResources:
		b.WriteString(m.viewResources(cur))
	case PaneTeam:
		b.WriteString(m.viewTeam(cur))
	case PaneCalendar:
		b.WriteString(m.viewCalendar(cur))
	case PaneChat:
		b.WriteString(m.viewChat(cur))
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) viewHeader(cur *model.Project) string {
	title := m.styles.header.Render(fmt.Sprintf("%s · %s", cur.Name, cur.Status))

	var tabs []string
	for p := PaneBoard; p < paneCount; p++ {
		if p == m.pane {
			tabs = append(tabs, m.styles.tabActive.Render(p.String()))
		} else {
			tabs = append(tabs, m.styles.tab.Render(p.String()))
		}
	}
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m Model) viewBoard(cur *model.Project) string {
	colWidth := 28
	if m.width > 0 {
		if w := m.width/len(columns) - 4; w > 16 && w < colWidth {
			colWidth = w
		}
	}

	var rendered []string
	for ci, status := range columns {
		tasks := m.columnTasks(status)

		var lines []string
		lines = append(lines, m.styles.columnTitle.Render(
			fmt.Sprintf("%s (%d)", columnLabel(status), len(tasks))))
		for ti, t := range tasks {
			label := truncate(t.Title, colWidth-4)
			prio := m.styles.priorityStyle(string(t.Priority)).Render("●")
			line := prio + " " + label
			if t.IsOverdue(time.Now()) {
				line += m.styles.danger.Render(" !")
			}
			if ci == m.column && ti == m.cursor && m.mode == ModeNormal {
				lines = append(lines, m.styles.cardSelected.Render(line))
			} else {
				lines = append(lines, m.styles.card.Render(line))
			}
		}
		if len(tasks) == 0 {
			lines = append(lines, m.styles.muted.Render("—"))
		}

		rendered = append(rendered, m.styles.column.Width(colWidth).Render(strings.Join(lines, "\n")))
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if m.mode == ModeAddTask {
		out += "\n" + m.input.View()
	}
	return out
}

func (m Model) viewResources(cur *model.Project) string {
	if len(cur.Resources) == 0 {
		return m.styles.muted.Render("No resources attached.")
	}
	var lines []string
	for _, r := range cur.Resources {
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			m.styles.columnTitle.Render(string(r.Type)),
			r.Name,
			m.styles.muted.Render(r.URL)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewTeam(cur *model.Project) string {
	if len(cur.Team) == 0 {
		return m.styles.muted.Render("No team members.")
	}
	var lines []string
	for _, member := range cur.Team {
		count := 0
		for _, t := range cur.Tasks {
			for _, a := range t.AssignedTo {
				if a == member.ID {
					count++
				}
			}
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			member.Name,
			m.styles.muted.Render("<"+member.Email+">"),
			m.styles.status.Render(fmt.Sprintf("%d tasks", count))))
	}
	return strings.Join(lines, "\n")
}

// viewCalendar renders the current month with due-task counts per day
func (m Model) viewCalendar(cur *model.Project) string {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	dueByDay := map[int]int{}
	for _, t := range cur.Tasks {
		due, err := time.Parse("2006-01-02", t.DueDate)
		if err != nil {
			continue
		}
		if due.Year() == now.Year() && due.Month() == now.Month() {
			dueByDay[due.Day()]++
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.columnTitle.Render(now.Format("January 2006")) + "\n")
	b.WriteString(m.styles.muted.Render(" Mo  Tu  We  Th  Fr  Sa  Su") + "\n")

	// Monday-first offset
	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("    ", offset))

	days := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	for day := 1; day <= days; day++ {
		cell := fmt.Sprintf("%3d", day)
		switch {
		case dueByDay[day] > 0:
			cell = m.styles.warning.Render(cell) + m.styles.danger.Render("•")
		case day == now.Day():
			cell = m.styles.cardSelected.Render(cell) + " "
		default:
			cell += " "
		}
		b.WriteString(cell)
		if (offset+day)%7 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	for day := 1; day <= days; day++ {
		if n := dueByDay[day]; n > 0 {
			b.WriteString(m.styles.muted.Render(fmt.Sprintf("  %02d: %d due\n", day, n)))
		}
	}
	return b.String()
}

func (m Model) viewChat(cur *model.Project) string {
	msgs := m.chat.Messages(cur.ID)

	var b strings.Builder
	if len(msgs) == 0 {
		b.WriteString(m.styles.muted.Render("No messages this session.") + "\n")
	}
	for _, msg := range msgs {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			m.styles.muted.Render(msg.SentAt.Format("15:04")),
			m.styles.columnTitle.Render(msg.Author+":"),
			msg.Body))
	}
	if m.mode == ModeChatInput {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(m.styles.muted.Render("Press c to write a message. Messages are not saved."))
	}
	return b.String()
}

func (m Model) viewPicker() string {
	items := m.store.Items()

	var b strings.Builder
	b.WriteString(m.styles.header.Render("Select a project") + "\n\n")
	if len(items) == 0 {
		b.WriteString(m.styles.muted.Render("No projects. Create one with 'taskdeck project new'.") + "\n")
	}
	for i, p := range items {
		line := fmt.Sprintf("%-24s %s", truncate(p.Name, 24), m.styles.muted.Render(string(p.Status)))
		if i == m.pickCursor {
			b.WriteString(m.styles.cardSelected.Render("❯ "+line) + "\n")
		} else {
			b.WriteString(m.styles.card.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n" + m.styles.muted.Render("enter select · esc back · q quit"))
	return b.String()
}

func (m Model) viewFooter() string {
	if m.message != "" {
		return m.styles.danger.Render(m.message)
	}
	switch m.pane {
	case PaneBoard:
		return m.styles.status.Render("n new · enter advance · backspace retreat · d delete · tab pane · p project · q quit")
	case PaneChat:
		return m.styles.status.Render("c message · tab pane · q quit")
	default:
		return m.styles.status.Render("tab pane · p project · q quit")
	}
}

func columnLabel(s model.TaskStatus) string {
	switch s {
	case model.TaskTodo:
		return "To do"
	case model.TaskInProgress:
		return "In progress"
	case model.TaskReview:
		return "Review"
	case model.TaskDone:
		return "Done"
	}
	return string(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return s[:n-1] + "…"
}
