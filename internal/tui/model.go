package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/taskdeck/taskdeck/internal/chat"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/project"
)

// Pane is one of the board's tabs
type Pane int

const (
	PaneBoard Pane = iota
	PaneResources
	PaneTeam
	PaneCalendar
	PaneChat
	paneCount
)

func (p Pane) String() string {
	switch p {
	case PaneBoard:
		return "Board"
	case PaneResources:
		return "Resources"
	case PaneTeam:
		return "Team"
	case PaneCalendar:
		return "Calendar"
	case PaneChat:
		return "Chat"
	}
	return "?"
}

// Mode is the input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeChatInput
	ModeProjectPick
)

// columns in kanban order
var columns = []model.TaskStatus{
	model.TaskTodo, model.TaskInProgress, model.TaskReview, model.TaskDone,
}

// Model is the board TUI model
type Model struct {
	store *project.Store
	chat  *chat.Board
	user  model.User

	width  int
	height int

	pane   Pane
	mode   Mode
	styles styles

	// board state
	column int
	cursor int

	// project picker
	pickCursor int

	input   textinput.Model
	message string
}

// NewModel creates the board model over the shared state containers
func NewModel(store *project.Store, board *chat.Board, user model.User, theme string) Model {
	logger.Info("initializing board", logger.F("theme", theme))

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	palette := DarkTheme
	if theme == config.ThemeLight {
		palette = LightTheme
	}

	m := Model{
		store:  store,
		chat:   board,
		user:   user,
		styles: newStyles(palette),
		input:  ti,
	}
	if store.Current() == nil {
		m.mode = ModeProjectPick
	}
	return m
}

// columnTasks returns the current project's tasks for one kanban column
func (m *Model) columnTasks(status model.TaskStatus) []model.Task {
	cur := m.store.Current()
	if cur == nil {
		return nil
	}
	var out []model.Task
	for _, t := range cur.Tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// selectedTask returns the task under the cursor, or nil
func (m *Model) selectedTask() *model.Task {
	tasks := m.columnTasks(columns[m.column])
	if m.cursor < len(tasks) {
		return &tasks[m.cursor]
	}
	return nil
}

func (m *Model) clampCursor() {
	n := len(m.columnTasks(columns[m.column]))
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
