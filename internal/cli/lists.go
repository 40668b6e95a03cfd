package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tgienger/kanbatryoshka/internal/nest"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "List (column) commands on the current board",
	}
	cmd.AddCommand(newListsAddCmd(app))
	cmd.AddCommand(newListsRenameCmd(app))
	cmd.AddCommand(newListsMoveCmd(app))
	cmd.AddCommand(newListsRemoveCmd(app))
	return cmd
}

func newListsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Append a list to the current board",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				l := n.AddListToCurrentBoard(strings.Join(args, " "))
				if l == nil {
					return "", nil, errNoBoard
				}
				return fmt.Sprintf("Added list [%s] %s", l.ID, l.Title), toListOut(l), nil
			})
		},
	}
}

func newListsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <list-id> <title...>",
		Short: "Rename a list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, title := args[0], strings.Join(args[1:], " ")
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				if n.CurrentBoard() == nil {
					return "", nil, errNoBoard
				}
				if !n.RenameList(id, title) {
					return "", nil, errNotFound("list", id)
				}
				return fmt.Sprintf("Renamed list [%s] to %s", id, title), map[string]string{"id": id, "title": title}, nil
			})
		},
	}
}

func newListsMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <list-id> <position>",
		Short: "Move a list to a 0-based position (clamped to the end)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("invalid position %q: %w", args[1], err))
			}
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				b := n.CurrentBoard()
				if b == nil {
					return "", nil, errNoBoard
				}
				if !n.MoveListInCurrentBoard(id, pos) {
					return "", nil, errNotFound("list", id)
				}
				return fmt.Sprintf("Moved list [%s] to position %d", id, b.ListIndex(id)), toBoardOut(b, true), nil
			})
		},
	}
}

func newListsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <list-id>",
		Short: "Remove an empty list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				b := n.CurrentBoard()
				if b == nil {
					return "", nil, errNoBoard
				}
				if _, ok := b.List(id); !ok {
					return "", nil, errNotFound("list", id)
				}
				if !n.RemoveListFromCurrentBoard(id) {
					return "", nil, errNotEmpty("list", id, "it still holds tasks")
				}
				return fmt.Sprintf("Removed list [%s]", id), map[string]string{"deleted": id}, nil
			})
		},
	}
}
