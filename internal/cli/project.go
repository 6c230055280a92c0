package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/project"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `Create, list, select and manage projects.`,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all projects",
	RunE:    runProjectList,
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new project",
	Long: `Create a new project.

Examples:
  taskdeck project new "Website relaunch"
  taskdeck project new "Q3 audit" --start 2024-07-01 --desc "external audit"`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectNew,
}

var projectSetCmd = &cobra.Command{
	Use:   "set [project]",
	Short: "Select the current project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectSet,
}

var projectClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Deselect the current project",
	RunE:  runProjectClear,
}

var projectStatusCmd = &cobra.Command{
	Use:   "status [project] [status]",
	Short: "Change a project's status",
	Long:  `Set status to one of: not-started, in-progress, on-hold, completed.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectStatus,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [project]",
	Aliases: []string{"rm"},
	Short:   "Delete a project",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

var (
	projectStart string
	projectDesc  string
)

func init() {
	projectNewCmd.Flags().StringVar(&projectStart, "start", "", "Start date (YYYY-MM-DD)")
	projectNewCmd.Flags().StringVar(&projectDesc, "desc", "", "Project description")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectSetCmd)
	projectCmd.AddCommand(projectClearCmd)
	projectCmd.AddCommand(projectStatusCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	if err := ses.requireLogin(); err != nil {
		return err
	}
	if err := ses.projects.FetchAll(cmd.Context()); err != nil {
		return err
	}
	ses.restoreCurrent()

	items := ses.projects.Items()
	if len(items) == 0 {
		fmt.Println("No projects yet. Create one with 'taskdeck project new'.")
		return nil
	}

	cur := ses.projects.Current()
	fmt.Println()
	fmt.Printf("  %-36s  %-24s  %-12s  %s\n", "ID", "Name", "Status", "Tasks")
	fmt.Println(strings.Repeat("─", 88))
	for _, p := range items {
		marker := "  "
		if cur != nil && cur.ID == p.ID {
			marker = "❯ "
		}
		done := 0
		for _, t := range p.Tasks {
			if t.Status == model.TaskDone {
				done++
			}
		}
		fmt.Printf("%s%-36s  %-24s  %-12s  %d/%d\n", marker, p.ID, p.Name, p.Status, done, len(p.Tasks))
	}
	fmt.Println()
	return nil
}

func runProjectNew(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	if err := ses.requireLogin(); err != nil {
		return err
	}

	created, err := ses.projects.Create(cmd.Context(), project.Draft{
		Name:        args[0],
		StartDate:   projectStart,
		Description: projectDesc,
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("✓ Created project: %s (id: %s)\n", created.Name, created.ID)
	return nil
}

func runProjectSet(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	if err := ses.requireLogin(); err != nil {
		return err
	}

	p, err := ses.resolveProject(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	ses.projects.SetCurrent(*p)
	if err := rememberCurrent(p.ID); err != nil {
		return fmt.Errorf("failed to remember selection: %w", err)
	}

	fmt.Printf("Switched to: %s\n", p.Name)
	return nil
}

func runProjectClear(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	ses.projects.ClearCurrent()
	if err := forgetCurrent(); err != nil {
		return err
	}
	fmt.Println("Project deselected.")
	return nil
}

func runProjectStatus(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	if err := ses.requireLogin(); err != nil {
		return err
	}

	status := model.ProjectStatus(args[1])
	if !status.Valid() {
		return fmt.Errorf("invalid status %q (want not-started, in-progress, on-hold, completed)", args[1])
	}

	p, err := ses.resolveProject(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if err := ses.projects.Update(cmd.Context(), p.ID, model.ProjectPatch{Status: &status}); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	fmt.Printf("✓ %s is now %s\n", p.Name, status)
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	if err := ses.requireLogin(); err != nil {
		return err
	}

	p, err := ses.resolveProject(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if ses.cfg.ConfirmDelete {
		answer := promptLine(fmt.Sprintf("Delete project %q and all its tasks? [y/N] ", p.Name))
		if !strings.EqualFold(answer, "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ses.restoreCurrent()
	if err := ses.projects.Delete(cmd.Context(), p.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if ses.projects.Current() == nil {
		_ = forgetCurrent()
	}

	fmt.Printf("Deleted project: %s\n", p.Name)
	return nil
}
