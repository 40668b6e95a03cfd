package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tgienger/kanbatryoshka/internal/nest"
)

func newBoardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Top-level board commands",
	}
	cmd.AddCommand(newBoardsCreateCmd(app))
	cmd.AddCommand(newBoardsListCmd(app))
	cmd.AddCommand(newBoardsSelectCmd(app))
	cmd.AddCommand(newBoardsDeleteCmd(app))
	return cmd
}

func newBoardsCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <title> [description...]",
		Short: "Create a top-level board (selected if no board is)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				b := n.CreateBoard(args[0], strings.Join(args[1:], " "))
				if n.CurrentBoard() == nil {
					n.SelectBoard(b.ID)
				}
				return fmt.Sprintf("Created board [%s] %s", b.ID, b.Title), toBoardOut(b, true), nil
			})
		},
	}
}

func newBoardsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List top-level boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, false, func(n *nest.Nest) (string, any, error) {
				out := []boardOut{}
				for _, b := range n.TopLevelBoards() {
					out = append(out, toBoardOut(b, false))
				}
				return renderBoardList(n), out, nil
			})
		},
	}
}

func newBoardsSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select <board-id>",
		Short: "Jump to any board, top-level or nested",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				if !n.JumpToBoard(args[0]) {
					return "", nil, errNotFound("board", args[0])
				}
				b := n.CurrentBoard()
				return "Selected board: " + b.Title, toBoardOut(b, false), nil
			})
		},
	}
}

func newBoardsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <board-id>",
		Short: "Delete an empty top-level board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				b, ok := n.Board(id)
				if !ok {
					return "", nil, errNotFound("board", id)
				}
				if !b.IsTopLevel() {
					return "", nil, errNotEmpty("board", id, "it belongs to a task; delete the task instead")
				}
				if !n.DeleteBoard(id) {
					return "", nil, errNotEmpty("board", id, "it still holds tasks")
				}
				return fmt.Sprintf("Deleted board [%s] %s", id, b.Title), map[string]string{"deleted": id}, nil
			})
		},
	}
}
