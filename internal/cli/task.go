package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/model"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks on the current project",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Long: `Add a task to the current project.

Examples:
  taskdeck task add "Write launch checklist"
  taskdeck task add "Fix login" --priority critical --due 2024-08-01 --weight 5`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks on the current project",
	RunE:    runTaskList,
}

var taskMoveCmd = &cobra.Command{
	Use:   "move [task-id] [status]",
	Short: "Move a task to another column",
	Long:  `Move a task to one of: todo, in-progress, review, done.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskMove,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskDelete,
}

var (
	taskPriority string
	taskDue      string
	taskWeight   int
	taskDesc     string
	taskAssign   []string
)

func init() {
	taskAddCmd.Flags().StringVarP(&taskPriority, "priority", "p", "medium", "Priority (low, medium, high, critical)")
	taskAddCmd.Flags().StringVar(&taskDue, "due", "", "Due date (YYYY-MM-DD)")
	taskAddCmd.Flags().IntVarP(&taskWeight, "weight", "w", model.MinWeight, "Task weight (1-10)")
	taskAddCmd.Flags().StringVar(&taskDesc, "desc", "", "Task description")
	taskAddCmd.Flags().StringSliceVar(&taskAssign, "assign", nil, "Assignee user ids")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	cur, err := ses.loadCurrent(cmd.Context())
	if err != nil {
		return err
	}

	task, err := model.NewTask(args[0])
	if err != nil {
		return err
	}
	priority := model.TaskPriority(taskPriority)
	if !priority.Valid() {
		return fmt.Errorf("invalid priority %q (want low, medium, high, critical)", taskPriority)
	}
	task.Priority = priority
	task.DueDate = taskDue
	task.Weight = taskWeight
	task.Description = taskDesc
	if taskAssign != nil {
		task.AssignedTo = taskAssign
	}
	if err := task.Validate(); err != nil {
		return err
	}

	if err := ses.projects.UpsertTask(cmd.Context(), task); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("✓ Added to %s: %s (id: %s)\n", cur.Name, task.Title, shortID(task.ID))
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	cur, err := ses.loadCurrent(cmd.Context())
	if err != nil {
		return err
	}

	if len(cur.Tasks) == 0 {
		fmt.Printf("No tasks on %s.\n", cur.Name)
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-10s  %-40s  %-12s  %-9s  %s\n", "ID", "Title", "Status", "Priority", "Due")
	fmt.Println(strings.Repeat("─", 88))
	for _, t := range cur.Tasks {
		fmt.Printf("  %-10s  %-40s  %-12s  %-9s  %s\n",
			shortID(t.ID), truncate(t.Title, 40), t.Status, t.Priority, t.DueDate)
	}
	fmt.Println()
	return nil
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	status := model.TaskStatus(args[1])
	if !status.Valid() {
		return fmt.Errorf("invalid status %q (want todo, in-progress, review, done)", args[1])
	}
	return patchTaskStatus(cmd, args[0], status)
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	return patchTaskStatus(cmd, args[0], model.TaskDone)
}

func patchTaskStatus(cmd *cobra.Command, ref string, status model.TaskStatus) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	cur, err := ses.loadCurrent(cmd.Context())
	if err != nil {
		return err
	}

	task, err := findTask(cur, ref)
	if err != nil {
		return err
	}

	if err := ses.projects.PatchTask(cmd.Context(), task.ID, model.TaskPatch{Status: &status}); err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}

	fmt.Printf("✓ %s → %s\n", task.Title, status)
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	cur, err := ses.loadCurrent(cmd.Context())
	if err != nil {
		return err
	}

	task, err := findTask(cur, args[0])
	if err != nil {
		return err
	}

	if err := ses.projects.DeleteTask(cmd.Context(), task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("Deleted task: %s\n", task.Title)
	return nil
}

// findTask matches by full id or unique short prefix
func findTask(p *model.Project, ref string) (*model.Task, error) {
	var match *model.Task
	for i := range p.Tasks {
		if p.Tasks[i].ID == ref {
			return &p.Tasks[i], nil
		}
		if strings.HasPrefix(p.Tasks[i].ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous task id: %s", ref)
			}
			match = &p.Tasks[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("task not found: %s", ref)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
