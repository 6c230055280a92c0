package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/project"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage team membership on the current project",
}

var teamAddCmd = &cobra.Command{
	Use:   "add [name] [email]",
	Short: "Add a team member",
	Args:  cobra.ExactArgs(2),
	RunE:  runTeamAdd,
}

var teamListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List team members on the current project",
	RunE:    runTeamList,
}

var teamRemoveCmd = &cobra.Command{
	Use:     "remove [member-id]",
	Aliases: []string{"rm"},
	Short:   "Remove a team member",
	Args:    cobra.ExactArgs(1),
	RunE:    runTeamRemove,
}

func init() {
	teamCmd.AddCommand(teamAddCmd)
	teamCmd.AddCommand(teamListCmd)
	teamCmd.AddCommand(teamRemoveCmd)
}

func runTeamAdd(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	cur, err := ses.loadCurrent(cmd.Context())
	if err != nil {
		return err
	}

	member := model.TeamMember{
		ID:    uuid.New().String(),
		Name:  args[0],
		Email: args[1],
	}
	if err := ses.projects.AddTeamMember(cmd.Context(), member); err != nil {
		if errors.Is(err, project.ErrDuplicateMember) {
			return fmt.Errorf("%s is already on %s", member.Email, cur.Name)
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	fmt.Printf("✓ Added %s to %s\n", member.Name, cur.Name)
	return nil
}

func runTeamList(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	cur, err := ses.loadCurrent(cmd.Context())
	if err != nil {
		return err
	}

	if len(cur.Team) == 0 {
		fmt.Printf("No team members on %s.\n", cur.Name)
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-10s  %-24s  %s\n", "ID", "Name", "Email")
	fmt.Println(strings.Repeat("─", 64))
	for _, m := range cur.Team {
		fmt.Printf("  %-10s  %-24s  %s\n", shortID(m.ID), truncate(m.Name, 24), m.Email)
	}
	fmt.Println()
	return nil
}

func runTeamRemove(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	cur, err := ses.loadCurrent(cmd.Context())
	if err != nil {
		return err
	}

	ref := args[0]
	var target *model.TeamMember
	for i := range cur.Team {
		if cur.Team[i].ID == ref || strings.HasPrefix(cur.Team[i].ID, ref) || cur.Team[i].Email == ref {
			target = &cur.Team[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("team member not found: %s", ref)
	}

	if err := ses.projects.RemoveTeamMember(cmd.Context(), target.ID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	fmt.Printf("Removed %s from %s\n", target.Name, cur.Name)
	return nil
}
