package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tgienger/kanbatryoshka/internal/nest"
)

func newBackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "back",
		Short: "Return to the parent board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				if n.Depth() == 0 {
					return "", nil, errors.New("already at the top level")
				}
				if !n.BackToParent() {
					// The stale frame was popped and is saved as such.
					return "Parent board no longer exists", map[string]any{"ok": false}, nil
				}
				b := n.CurrentBoard()
				return "Back to " + b.Title, toBoardOut(b, false), nil
			})
		},
	}
}

func newPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the board path from the root to the current board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, false, func(n *nest.Nest) (string, any, error) {
				path := n.BoardPath()
				if len(path) == 0 {
					return "No board selected.", []string{}, nil
				}
				return strings.Join(path, " > "), path, nil
			})
		},
	}
}

func newLsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [list-id]",
		Short: "Show the current board, one of its lists, or the boards when none is selected",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, false, func(n *nest.Nest) (string, any, error) {
				b := n.CurrentBoard()
				if b == nil {
					out := []boardOut{}
					for _, tb := range n.TopLevelBoards() {
						out = append(out, toBoardOut(tb, false))
					}
					return renderBoardList(n), out, nil
				}
				if len(args) == 1 {
					l, ok := b.List(args[0])
					if !ok {
						return "", nil, errNotFound("list", args[0])
					}
					return renderList(l), toListOut(l), nil
				}
				return renderBoard(n, b), toBoardOut(b, true), nil
			})
		},
	}
}
