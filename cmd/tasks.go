package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"resource-console/internal/ui"
	"resource-console/models"
)

func newTasksCmd(a *app) *cobra.Command {
	var cached bool
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and manage tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.taskService()
			items, note, err := listed(cmd.Context(), a, "tasks", cached, svc.Load, svc.Restore)
			if err != nil {
				return err
			}
			show(a.out, ui.Tasks(items))
			st := svc.Stats()
			show(a.out, strings.TrimSpace(fmt.Sprintf("%d tasks, %d completed %s", st.Total, st.Completed, note)))
			return nil
		},
	}
	cachedFlag(cmd, &cached)

	var description string
	add := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.taskService().Add(cmd.Context(), strings.Join(args, " "), description)
			if err != nil {
				return err
			}
			show(a.out, fmt.Sprintf("Created task %d", t.ID))
			return nil
		},
	}
	add.Flags().StringVarP(&description, "description", "d", "", "task description")

	var title, newDescription string
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the title or description of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc := a.taskService()
			t, err := cachedTask(cmd.Context(), a, id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				t.Title = title
			}
			if cmd.Flags().Changed("description") {
				t.Description = newDescription
			}
			if _, err := svc.Edit(cmd.Context(), id, t.Title, t.Description); err != nil {
				return err
			}
			show(a.out, fmt.Sprintf("Updated task %d", id))
			return nil
		},
	}
	edit.Flags().StringVar(&title, "title", "", "new title")
	edit.Flags().StringVarP(&newDescription, "description", "d", "", "new description")

	done := &cobra.Command{
		Use:   "done ID",
		Short: "Toggle the completion of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := cachedTask(cmd.Context(), a, id); err != nil {
				return err
			}
			t, err := a.taskService().ToggleComplete(cmd.Context(), id)
			if err != nil {
				return err
			}
			show(a.out, fmt.Sprintf("%s %s", ui.Check(t.Completed), t.Title))
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			removed, err := a.taskService().Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if removed {
				show(a.out, fmt.Sprintf("Deleted task %d", id))
			}
			return nil
		},
	}

	cmd.AddCommand(add, edit, done, rm)
	return cmd
}

// cachedTask finds task id, listing the tasks first when the cache does
// not hold it. Updates are full replacements, so the current record is
// needed.
func cachedTask(ctx context.Context, a *app, id int64) (models.Task, error) {
	svc := a.taskService()
	if t, ok := svc.Find(id); ok {
		return t, nil
	}
	if _, err := svc.Load(ctx); err != nil {
		return models.Task{}, err
	}
	t, ok := svc.Find(id)
	if !ok {
		return models.Task{}, fmt.Errorf("task %d not found", id)
	}
	return t, nil
}
