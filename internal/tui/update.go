package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/model"
)

// opDoneMsg reports the outcome of a store operation run off the UI loop
type opDoneMsg struct {
	err error
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			m.message = msg.err.Error()
		} else {
			m.message = ""
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddTask, ModeChatInput:
			return m.updateInput(msg)
		case ModeProjectPick:
			return m.updatePicker(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.pane = (m.pane + 1) % paneCount
		return m, nil
	case "shift+tab":
		m.pane = (m.pane + paneCount - 1) % paneCount
		return m, nil

	case "p":
		m.mode = ModeProjectPick
		m.pickCursor = 0
		return m, nil
	}

	if m.pane == PaneBoard {
		return m.updateBoard(msg)
	}
	if m.pane == PaneChat && msg.String() == "c" {
		m.mode = ModeChatInput
		m.input.Placeholder = "Message..."
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.column > 0 {
			m.column--
			m.clampCursor()
		}
	case "right", "l":
		if m.column < len(columns)-1 {
			m.column++
			m.clampCursor()
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor+1 < len(m.columnTasks(columns[m.column])) {
			m.cursor++
		}

	case "n":
		m.mode = ModeAddTask
		m.input.Placeholder = "Task title..."
		m.input.SetValue("")
		m.input.Focus()

	case "enter", "m":
		// advance the selected task one column to the right
		if task := m.selectedTask(); task != nil && m.column < len(columns)-1 {
			return m, m.patchTaskCmd(task.ID, columns[m.column+1])
		}

	case "backspace", "H":
		if task := m.selectedTask(); task != nil && m.column > 0 {
			return m, m.patchTaskCmd(task.ID, columns[m.column-1])
		}

	case "d":
		if task := m.selectedTask(); task != nil {
			id := task.ID
			return m, func() tea.Msg {
				return opDoneMsg{err: m.store.DeleteTask(context.Background(), id)}
			}
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case "enter":
		value := m.input.Value()
		mode := m.mode
		m.mode = ModeNormal
		m.input.Blur()

		if mode == ModeChatInput {
			if cur := m.store.Current(); cur != nil {
				if _, ok := m.chat.Post(cur.ID, m.user.Name, value); !ok {
					m.message = "empty messages are dropped"
				}
			}
			return m, nil
		}

		task, err := model.NewTask(value)
		if err != nil {
			m.message = err.Error()
			return m, nil
		}
		task.Status = columns[m.column]
		return m, func() tea.Msg {
			return opDoneMsg{err: m.store.UpsertTask(context.Background(), task)}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.store.Items()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.store.Current() != nil {
			m.mode = ModeNormal
		}
	case "up", "k":
		if m.pickCursor > 0 {
			m.pickCursor--
		}
	case "down", "j":
		if m.pickCursor+1 < len(items) {
			m.pickCursor++
		}
	case "enter":
		if m.pickCursor < len(items) {
			m.store.SetCurrent(items[m.pickCursor])
			logger.Debug("project selected", logger.F("id", items[m.pickCursor].ID))
			m.mode = ModeNormal
			m.pane = PaneBoard
			m.column = 0
			m.cursor = 0
		}
	}
	return m, nil
}

// patchTaskCmd moves a task to a new status via the store
func (m Model) patchTaskCmd(taskID string, status model.TaskStatus) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.store.PatchTask(context.Background(), taskID, model.TaskPatch{Status: &status})}
	}
}
