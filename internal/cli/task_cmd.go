package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/showrunner/internal/cli/formatter"
	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/service"
	"github.com/alexanderramin/showrunner/internal/views"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage event tasks",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskAddCmd(app),
		newTaskEditCmd(app),
		newTaskDoneCmd(app),
		newTaskDeleteCmd(app),
		newTaskBulkToggleCmd(app),
		newTaskBulkDeleteCmd(app),
	)

	return cmd
}

// parseRef reads "EVENT_ID/TASK_ID".
func parseRef(s string) (domain.TaskRef, error) {
	eventID, taskID, found := strings.Cut(s, "/")
	if !found || eventID == "" || taskID == "" {
		return domain.TaskRef{}, fmt.Errorf("invalid task reference %q: use EVENT_ID/TASK_ID", s)
	}
	return domain.TaskRef{EventID: eventID, TaskID: taskID}, nil
}

func parseRefs(args []string) ([]domain.TaskRef, error) {
	refs := make([]domain.TaskRef, 0, len(args))
	for _, a := range args {
		ref, err := parseRef(a)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func taskFilterFlags(cmd *cobra.Command, filter *views.TaskFilter) {
	cmd.Flags().StringVar(&filter.AssigneeID, "assignee", "", "Only tasks assigned to this person ID")
	enumFlag(cmd.Flags(), &filter.Status, "status",
		[]views.TaskStatus{views.TaskStatusAll, views.TaskStatusPending, views.TaskStatusCompleted}, "Completion filter")
}

func newTaskListCmd(app *App) *cobra.Command {
	filter := views.TaskFilter{Status: views.TaskStatusAll}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tour's tasks by event date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tasks, err := app.Tasks.List(ctx, app.tourID, filter)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks match.")
				return nil
			}
			people, err := app.Crew.List(ctx)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				rows = append(rows, []string{
					formatter.Check(t.Completed),
					formatter.Dim(t.EventID + "/" + t.ID),
					t.Text,
					views.AssigneeName(people, t.AssignedTo),
					formatter.HumanDate(t.EventDate) + " " + formatter.Dim(t.EventTitle),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"", "REF", "TASK", "ASSIGNEE", "EVENT"}, rows))
			return nil
		},
	}
	taskFilterFlags(cmd, &filter)
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var in service.TaskInput

	cmd := &cobra.Command{
		Use:   "add EVENT_ID",
		Short: "Add a task to an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tasks.Add(cmd.Context(), app.tourID, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s/%s\n", args[0], t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Text, "text", "", "Task description")
	cmd.Flags().StringVar(&in.AssignedTo, "assignee", "", "Person ID")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newTaskEditCmd(app *App) *cobra.Command {
	var text, assignee string

	cmd := &cobra.Command{
		Use:   "edit EVENT_ID/TASK_ID",
		Short: "Change a task's text or assignee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}
			var upd service.TaskUpdate
			if cmd.Flags().Changed("text") {
				upd.Text = &text
			}
			if cmd.Flags().Changed("assignee") {
				upd.AssignedTo = &assignee
			}
			t, err := app.Tasks.Update(cmd.Context(), app.tourID, ref, upd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", t.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Task description")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Person ID")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done EVENT_ID/TASK_ID",
		Short: "Mark a task complete (or pending with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}
			completed := !undo
			t, err := app.Tasks.Update(cmd.Context(), app.tourID, ref, service.TaskUpdate{Completed: &completed})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Check(t.Completed), t.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the task pending again")
	return cmd
}

func newTaskDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete EVENT_ID/TASK_ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}
			applied, err := app.Tasks.Delete(cmd.Context(), app.tourID, ref)
			return reportDelete(cmd, applied, err, "Deleted task "+args[0])
		},
	}
}

// bulkRefs takes explicit refs, or every task matching the filter flags.
func bulkRefs(cmd *cobra.Command, app *App, args []string, filter views.TaskFilter) ([]domain.TaskRef, error) {
	if len(args) > 0 {
		return parseRefs(args)
	}
	tasks, err := app.Tasks.List(cmd.Context(), app.tourID, filter)
	if err != nil {
		return nil, err
	}
	return views.TaskRefs(tasks), nil
}

func newTaskBulkToggleCmd(app *App) *cobra.Command {
	filter := views.TaskFilter{Status: views.TaskStatusAll}

	cmd := &cobra.Command{
		Use:   "bulk-toggle [EVENT_ID/TASK_ID...]",
		Short: "Complete every listed task, or reopen them when all are complete",
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := bulkRefs(cmd, app, args, filter)
			if err != nil {
				return err
			}
			completed, err := app.Tasks.BulkToggle(cmd.Context(), app.tourID, refs)
			if err != nil {
				return err
			}
			state := "pending"
			if completed {
				state = "complete"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %d tasks %s\n", len(refs), state)
			return nil
		},
	}
	taskFilterFlags(cmd, &filter)
	return cmd
}

func newTaskBulkDeleteCmd(app *App) *cobra.Command {
	filter := views.TaskFilter{Status: views.TaskStatusAll}

	cmd := &cobra.Command{
		Use:   "bulk-delete [EVENT_ID/TASK_ID...]",
		Short: "Delete every listed task",
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := bulkRefs(cmd, app, args, filter)
			if err != nil {
				return err
			}
			n, err := app.Tasks.BulkDelete(cmd.Context(), app.tourID, refs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d tasks\n", n)
			return nil
		},
	}
	taskFilterFlags(cmd, &filter)
	return cmd
}

func newCommentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Comment on events",
	}

	var text string
	add := &cobra.Command{
		Use:   "add EVENT_ID",
		Short: "Add a comment to an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Schedule.AddComment(cmd.Context(), app.tourID, args[0], text)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Comment posted at %s\n", c.Timestamp.Format("Jan 2 15:04"))
			return nil
		},
	}
	add.Flags().StringVar(&text, "text", "", "Comment text")

	cmd.AddCommand(add)
	return cmd
}
