package cli

import (
	"fmt"

	"github.com/arthur-debert/zapp/pkg/config"
	"github.com/arthur-debert/zapp/pkg/errors"
	"github.com/arthur-debert/zapp/pkg/filesystem"
	"github.com/arthur-debert/zapp/pkg/logging"
	"github.com/arthur-debert/zapp/pkg/paths"
	"github.com/arthur-debert/zapp/pkg/render"
	"github.com/arthur-debert/zapp/pkg/tasks"
	"github.com/spf13/cobra"
)

// workspace is a fully loaded configuration root
type workspace struct {
	paths    *paths.Paths
	config   *config.RootConfig
	context  map[string]interface{}
	renderer *render.TemplateRenderer
	root     *tasks.Task
}

// loadWorkspace resolves the configuration root and loads everything a run
// needs. Every error it returns is fatal.
func loadWorkspace(opts *options) (*workspace, error) {
	logger := logging.GetLogger("cli")
	defer logging.LogOperationStart(logger, "load configuration")()

	p, err := paths.New(opts.configDir)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}
	logger.Info().Str("config_root", p.Root()).Msg("Using configuration root")

	cfg, err := config.Load(p)
	if err != nil {
		return nil, err
	}

	context, err := config.LoadParams(p, cfg.Params)
	if err != nil {
		return nil, err
	}

	renderer, err := render.Load(p.Asset(paths.TemplatesDir, ""))
	if err != nil {
		return nil, err
	}
	logger.Debug().Strs("templates", renderer.Names()).Msg("Loaded templates")

	root, err := tasks.NewLoader(filesystem.NewOS(), p).Load(tasks.RootName, cfg.Tasks)
	if err != nil {
		return nil, err
	}

	return &workspace{
		paths:    p,
		config:   cfg,
		context:  context,
		renderer: renderer,
		root:     root,
	}, nil
}

// runTasks executes the configured tree. A root FAILURE is returned as a
// TASKS_FAILED error so the caller can pick the exit status.
func runTasks(cmd *cobra.Command, opts *options) error {
	ws, err := loadWorkspace(opts)
	if err != nil {
		return err
	}

	engine := tasks.NewEngine(tasks.Options{
		FS:       filesystem.NewOS(),
		Paths:    ws.paths,
		Renderer: ws.renderer,
		Shell:    ws.config.Shell,
		Stdin:    cmd.InOrStdin(),
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
		NoColor:  opts.noColor,
	})

	status, err := engine.Run(ws.root, tasks.NewParams(ws.context))
	if err != nil {
		return err
	}
	if status == tasks.StatusFailure {
		return errors.New(errors.ErrTasksFailed, MsgErrTasksFail)
	}
	return nil
}
