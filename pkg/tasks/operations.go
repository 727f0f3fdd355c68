package tasks

import (
	"errors"
	"os/exec"

	zerrors "github.com/arthur-debert/zapp/pkg/errors"
	"github.com/arthur-debert/zapp/pkg/logging"
	"github.com/arthur-debert/zapp/pkg/paths"
)

func (e *Engine) asset(dir, name string) string {
	if e.paths == nil {
		return paths.ExpandPath(name)
	}
	return e.paths.Asset(dir, name)
}

func (e *Engine) runCopy(c *Copy) (Status, error) {
	src := e.asset(paths.FilesDir, c.Source)
	dst := paths.ExpandPath(c.Destination)

	if err := paths.EnsureParent(e.fs, dst); err != nil {
		return StatusFailure, err
	}

	info, err := e.fs.Stat(src)
	if err != nil {
		return e.failed(err, KindCopy, "Cannot stat copy source")
	}
	data, err := e.fs.ReadFile(src)
	if err != nil {
		return e.failed(err, KindCopy, "Cannot read copy source")
	}
	if err := e.fs.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return e.failed(err, KindCopy, "Cannot write copy destination")
	}
	// WriteFile leaves the mode of an existing file alone
	if err := e.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return e.failed(err, KindCopy, "Cannot set copy permissions")
	}

	if err := paths.ApplyMode(e.fs, dst, c.Mode); err != nil {
		return e.failed(err, KindCopy, "Cannot apply mode")
	}
	return StatusSuccess, nil
}

func (e *Engine) runSymlink(s *Symlink) (Status, error) {
	src := e.asset(paths.FilesDir, s.Source)
	dst := paths.ExpandPath(s.Destination)

	if err := paths.EnsureParent(e.fs, dst); err != nil {
		return StatusFailure, err
	}

	if err := e.fs.Symlink(src, dst); err != nil {
		return e.failed(err, KindSymlink, "Cannot create symlink")
	}
	return StatusSuccess, nil
}

func (e *Engine) runTemplate(t *Template, p *Params) (Status, error) {
	text, err := e.renderer.Render(t.Source, p.Context)
	if err != nil {
		return e.failed(err, KindTemplate, "Cannot render template")
	}

	dst := paths.ExpandPath(t.Destination)
	if err := paths.EnsureParent(e.fs, dst); err != nil {
		return StatusFailure, err
	}

	if err := e.fs.WriteFile(dst, []byte(text), 0644); err != nil {
		return e.failed(err, KindTemplate, "Cannot write rendered template")
	}
	if err := paths.ApplyMode(e.fs, dst, t.Mode); err != nil {
		return e.failed(err, KindTemplate, "Cannot apply mode")
	}
	return StatusSuccess, nil
}

// runShell blocks until the command exits. A non-zero exit is a FAILURE;
// failing to start the interpreter at all is fatal.
func (e *Engine) runShell(s *Shell) (Status, error) {
	logging.LogCommand(e.shell, []string{"-c", s.Command})

	cmd := exec.Command(e.shell, "-c", s.Command)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	err := cmd.Run()
	if err == nil {
		return StatusSuccess, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		e.logger.Debug().Int("exitCode", exitErr.ExitCode()).Str("command", s.Command).Msg("Shell command failed")
		return StatusFailure, nil
	}

	return StatusFailure, zerrors.Wrap(err, zerrors.ErrShellLaunch, "failed to run shell command").
		WithDetail("shell", e.shell).
		WithDetail("command", s.Command)
}
