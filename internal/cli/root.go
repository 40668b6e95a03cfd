package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tgienger/kanbatryoshka/internal/nest"
	"github.com/tgienger/kanbatryoshka/internal/store"
	"github.com/tgienger/kanbatryoshka/internal/ui"
)

type App struct {
	File  string
	Debug bool
	JSON  bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "kanbatryoshka",
		Short:         "Kanban boards nested inside tasks, as deep as you need",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive board browser
  kanbatryoshka

  # Scriptable commands
  kanbatryoshka boards create Main
  kanbatryoshka ls
  kanbatryoshka tasks add <list-id> "Write docs"
  kanbatryoshka tasks open <list-id> <task-id>
  kanbatryoshka back
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			if err := runTUI(app); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if app.Debug {
			log.SetLevel(log.DebugLevel)
		}
		log.SetOutput(cmd.ErrOrStderr())
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.File, "file", envOr("KANBATRYOSHKA_FILE", ""), "Nest file (.json for a JSON document, anything else is sqlite; default: $XDG_DATA_HOME/kanbatryoshka/nest.db)")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", envBool("DEBUG"), "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&app.JSON, "json", false, "Write JSON output")

	cmd.AddCommand(newBoardsCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newBackCmd(app))
	cmd.AddCommand(newPathCmd(app))
	cmd.AddCommand(newLsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))

	return cmd
}

func runTUI(app *App) error {
	n, s, err := openNest(app)
	if err != nil {
		return err
	}
	defer s.Close()
	return ui.Run(n, s, app.Debug)
}

func (app *App) path() (string, error) {
	if app.File != "" {
		return app.File, nil
	}
	return store.DefaultPath()
}

// openNest opens the configured store and loads it. A store with nothing saved yet yields an empty nest.
func openNest(app *App) (*nest.Nest, store.Store, error) {
	path, err := app.path()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, nil, err
	}
	n := nest.New()
	if err := s.Load(n); err != nil && !errors.Is(err, nest.ErrNoDocument) {
		s.Close()
		return nil, nil, err
	}
	return n, s, nil
}

// run loads the nest, applies fn, saves when save is set and prints fn's result
func run(cmd *cobra.Command, app *App, save bool, fn func(n *nest.Nest) (string, any, error)) error {
	n, s, err := openNest(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	text, v, err := fn(n)
	if err != nil {
		return writeErr(cmd, err)
	}
	if save {
		if err := s.Save(n); err != nil {
			return writeErr(cmd, err)
		}
	}
	if err := writeOut(cmd, app, text, v); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string) bool {
	v, err := strconv.ParseBool(os.Getenv(k))
	return err == nil && v
}

// writeOut prints text, or v as JSON when --json is set
func writeOut(cmd *cobra.Command, app *App, text string, v any) error {
	if app.JSON {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return err
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
