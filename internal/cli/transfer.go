package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tgienger/kanbatryoshka/internal/nest"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the whole nest as a JSON document to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, s, err := openNest(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			if err := n.Encode(cmd.OutOrStdout()); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the nest with a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			defer f.Close()

			return run(cmd, app, true, func(n *nest.Nest) (string, any, error) {
				if err := n.Decode(f); err != nil {
					return "", nil, err
				}
				return "Imported " + args[0], map[string]int{"boards": len(n.Boards())}, nil
			})
		},
	}
}
