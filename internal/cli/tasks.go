package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tgienger/kanbatryoshka/internal/nest"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands on the current board",
	}
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	cmd.AddCommand(newTasksReorderCmd(app))
	cmd.AddCommand(newTasksRemoveCmd(app))
	cmd.AddCommand(newTasksOpenCmd(app))
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <list-id> <title> [description...]",
		Short: "Add a task (and its nested board) to a list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, title, desc := args[0], args[1], strings.Join(args[2:], " ")
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				if n.CurrentBoard() == nil {
					return "", nil, errNoBoard
				}
				t := n.AddTaskToList(listID, title, desc)
				if t == nil {
					return "", nil, errNotFound("list", listID)
				}
				return fmt.Sprintf("Added task [%s] %s", t.ID, t.Title), toTaskOut(t), nil
			})
		},
	}
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Change a task's title and/or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			var titlePtr, descPtr *string
			if cmd.Flags().Changed("title") {
				titlePtr = &title
			}
			if cmd.Flags().Changed("description") {
				descPtr = &description
			}
			if titlePtr == nil && descPtr == nil {
				return writeErr(cmd, fmt.Errorf("nothing to update; pass --title and/or --description"))
			}
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				if n.CurrentBoard() == nil {
					return "", nil, errNoBoard
				}
				if !n.UpdateTask(id, titlePtr, descPtr) {
					return "", nil, errNotFound("task", id)
				}
				t, _ := n.FindTask(id)
				return fmt.Sprintf("Updated task [%s] %s", t.ID, t.Title), toTaskOut(t), nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

func newTasksMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <task-id> <source-list-id> <target-list-id>",
		Short: "Move a task to the end of another list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, src, dst := args[0], args[1], args[2]
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				if n.CurrentBoard() == nil {
					return "", nil, errNoBoard
				}
				if !n.MoveTaskBetweenLists(taskID, src, dst) {
					return "", nil, fmt.Errorf("move failed: check task %s is in list %s and list %s exists", taskID, src, dst)
				}
				return fmt.Sprintf("Moved task [%s]", taskID), map[string]string{"task": taskID, "list": dst}, nil
			})
		},
	}
}

func newTasksReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <list-id> <task-id> <index>",
		Short: "Move a task to a 0-based index within its list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, taskID := args[0], args[1]
			idx, err := strconv.Atoi(args[2])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("invalid index %q: %w", args[2], err))
			}
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				b := n.CurrentBoard()
				if b == nil {
					return "", nil, errNoBoard
				}
				if !n.ReorderTaskInList(listID, taskID, idx) {
					return "", nil, errNotFound("task", taskID)
				}
				l, _ := b.List(listID)
				return fmt.Sprintf("Task [%s] is now at position %d", taskID, l.TaskIndex(taskID)), toListOut(l), nil
			})
		},
	}
}

func newTasksRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <list-id> <task-id>",
		Short: "Remove a task whose board has no subtasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, taskID := args[0], args[1]
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				b := n.CurrentBoard()
				if b == nil {
					return "", nil, errNoBoard
				}
				l, ok := b.List(listID)
				if !ok {
					return "", nil, errNotFound("list", listID)
				}
				if _, ok := l.Task(taskID); !ok {
					return "", nil, errNotFound("task", taskID)
				}
				if n.TaskHasSubtasks(taskID) || !n.RemoveTaskFromList(listID, taskID) {
					return "", nil, errNotEmpty("task", taskID, "its board still holds subtasks")
				}
				return fmt.Sprintf("Removed task [%s]", taskID), map[string]string{"deleted": taskID}, nil
			})
		},
	}
}

func newTasksOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <list-id> <task-id>",
		Short: "Drill into a task's board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, taskID := args[0], args[1]
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				if n.CurrentBoard() == nil {
					return "", nil, errNoBoard
				}
				if !n.NavigateToTaskBoard(listID, taskID) {
					return "", nil, errNotFound("task", taskID)
				}
				b := n.CurrentBoard()
				return "Opened " + b.Title, toBoardOut(b, true), nil
			})
		},
	}
}
