package tasks

import (
	"io"
	"os"

	"github.com/arthur-debert/zapp/pkg/filesystem"
	"github.com/arthur-debert/zapp/pkg/logging"
	"github.com/arthur-debert/zapp/pkg/paths"
	"github.com/arthur-debert/zapp/pkg/render"
	"github.com/rs/zerolog"
)

// DefaultShell is the interpreter used when Options.Shell is empty
const DefaultShell = "/bin/sh"

// Options configures an Engine
type Options struct {
	// FS is the filesystem copy, symlink and template tasks write to
	FS filesystem.FS

	// Paths resolves asset names under the configuration root
	Paths *paths.Paths

	// Renderer renders template tasks
	Renderer render.Renderer

	// Shell is the command interpreter for shell tasks
	Shell string

	// Stdin, Stdout and Stderr are connected to shell commands. The
	// status report is written to Stdout.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// NoColor disables styling of status words
	NoColor bool
}

// Engine runs task trees
type Engine struct {
	fs       filesystem.FS
	paths    *paths.Paths
	renderer render.Renderer
	shell    string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	reporter *Reporter
	logger   zerolog.Logger
}

// NewEngine creates an engine, filling unset options with the OS defaults
func NewEngine(opts Options) *Engine {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Renderer == nil {
		opts.Renderer = render.New()
	}
	if opts.Shell == "" {
		opts.Shell = DefaultShell
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	return &Engine{
		fs:       opts.FS,
		paths:    opts.Paths,
		renderer: opts.Renderer,
		shell:    opts.Shell,
		stdin:    opts.Stdin,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
		reporter: NewReporter(opts.Stdout, opts.NoColor),
		logger:   logging.GetLogger("tasks.engine"),
	}
}

// Run executes task and reports its status at p.Depth. A non-nil error is
// fatal: the run stops there and nothing more is reported.
func (e *Engine) Run(task *Task, p *Params) (Status, error) {
	var status Status

	if task.Privileged {
		// Elevation is not implemented; privileged tasks never run.
		e.logger.Warn().
			Str("task", task.Name).
			Str("kind", string(task.Kind())).
			Msg("Skipping task that requires elevated privileges")
		status = StatusSkipped
	} else {
		var err error
		status, err = e.runAction(task, p)
		if err != nil {
			e.logger.Error().Err(err).Str("task", task.Name).Msg("Fatal error, aborting run")
			return StatusFailure, err
		}
	}

	e.logger.Debug().
		Str("task", task.Name).
		Str("kind", string(task.Kind())).
		Int("depth", p.Depth).
		Stringer("status", status).
		Msg("Task finished")

	e.reporter.Report(p.Depth, task.Name, status)
	return status, nil
}

func (e *Engine) runAction(task *Task, p *Params) (Status, error) {
	switch action := task.Action.(type) {
	case *Group:
		return e.runGroup(action, p)
	case *Copy:
		return e.runCopy(action)
	case *Symlink:
		return e.runSymlink(action)
	case *Template:
		return e.runTemplate(action, p)
	case *Shell:
		return e.runShell(action)
	default:
		return StatusSkipped, nil
	}
}

// runGroup runs every child in order, one level deeper. Any child FAILURE
// makes the group FAILURE; otherwise it is SUCCESS, even when empty or
// when every child was skipped.
func (e *Engine) runGroup(g *Group, p *Params) (Status, error) {
	p.Depth++

	status := StatusSuccess
	for _, child := range g.Tasks {
		childStatus, err := e.Run(child, p)
		if err != nil {
			p.Depth--
			return StatusFailure, err
		}
		if childStatus == StatusFailure {
			status = StatusFailure
		}
	}

	p.Depth--
	return status, nil
}

// failed logs the cause of a per-task failure and returns StatusFailure
func (e *Engine) failed(err error, kind Kind, msg string) (Status, error) {
	e.logger.Debug().Err(err).Str("kind", string(kind)).Msg(msg)
	return StatusFailure, nil
}
