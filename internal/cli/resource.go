package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/model"
)

var resourceCmd = &cobra.Command{
	Use:   "resource",
	Short: "Manage resource links on the current project",
}

var resourceAddCmd = &cobra.Command{
	Use:   "add [name] [url]",
	Short: "Attach a resource link",
	Long: `Attach a resource link to the current project.

Examples:
  taskdeck resource add "Design doc" https://docs.example.com/design --type document
  taskdeck resource add "Assets" https://drive.example.com/assets --type drive`,
	Args: cobra.ExactArgs(2),
	RunE: runResourceAdd,
}

var resourceListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List resources on the current project",
	RunE:    runResourceList,
}

var resourceDeleteCmd = &cobra.Command{
	Use:     "delete [resource-id]",
	Aliases: []string{"rm"},
	Short:   "Remove a resource",
	Args:    cobra.ExactArgs(1),
	RunE:    runResourceDelete,
}

var resourceType string

func init() {
	resourceAddCmd.Flags().StringVarP(&resourceType, "type", "t", "link", "Resource type (drive, folder, document, link, other)")

	resourceCmd.AddCommand(resourceAddCmd)
	resourceCmd.AddCommand(resourceListCmd)
	resourceCmd.AddCommand(resourceDeleteCmd)
}

func runResourceAdd(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	cur, err := ses.loadCurrent(cmd.Context())
	if err != nil {
		return err
	}

	rtype := model.ResourceType(resourceType)
	if !rtype.Valid() {
		return fmt.Errorf("invalid resource type %q (want drive, folder, document, link, other)", resourceType)
	}

	res := model.Resource{Name: args[0], URL: args[1], Type: rtype}
	if err := ses.projects.AddResource(cmd.Context(), res, ses.auth.User().ID); err != nil {
		return fmt.Errorf("failed to add resource: %w", err)
	}

	fmt.Printf("✓ Attached to %s: %s\n", cur.Name, res.Name)
	return nil
}

func runResourceList(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	cur, err := ses.loadCurrent(cmd.Context())
	if err != nil {
		return err
	}

	if len(cur.Resources) == 0 {
		fmt.Printf("No resources on %s.\n", cur.Name)
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-10s  %-24s  %-10s  %s\n", "ID", "Name", "Type", "URL")
	fmt.Println(strings.Repeat("─", 80))
	for _, r := range cur.Resources {
		fmt.Printf("  %-10s  %-24s  %-10s  %s\n", shortID(r.ID), truncate(r.Name, 24), r.Type, r.URL)
	}
	fmt.Println()
	return nil
}

func runResourceDelete(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	cur, err := ses.loadCurrent(cmd.Context())
	if err != nil {
		return err
	}

	ref := args[0]
	var target *model.Resource
	for i := range cur.Resources {
		if cur.Resources[i].ID == ref || strings.HasPrefix(cur.Resources[i].ID, ref) {
			target = &cur.Resources[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("resource not found: %s", ref)
	}

	if err := ses.projects.DeleteResource(cmd.Context(), target.ID); err != nil {
		return fmt.Errorf("failed to remove resource: %w", err)
	}

	fmt.Printf("Removed resource: %s\n", target.Name)
	return nil
}
