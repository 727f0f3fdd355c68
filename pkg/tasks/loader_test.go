package tasks

import (
	"io/fs"
	"testing"

	"github.com/arthur-debert/zapp/pkg/errors"
	"github.com/arthur-debert/zapp/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parseYAML(t *testing.T, src string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, yaml.Unmarshal([]byte(src), &v))
	return v
}

func groupOf(t *testing.T, task *Task) *Group {
	t.Helper()
	g, ok := task.Action.(*Group)
	require.True(t, ok, "expected group, got %T", task.Action)
	return g
}

func TestLoaderInlineEntries(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	loader := NewLoader(env.FS, env.Paths)

	root, err := loader.Load(RootName, parseYAML(t, `
- setup:
    - copy: {src: a.txt, dst: ~/a.txt, mode: "600"}
    - shell: exit 1
    - symlink: {src: b, dst: ~/b}
    - template: {src: gitconfig, dst: ~/.gitconfig, mode: 644}
- 42
- null
- [nested, list]
`))
	require.NoError(t, err)

	assert.Equal(t, "main", root.Name)
	children := groupOf(t, root).Tasks
	require.Len(t, children, 4)

	setup := children[0]
	assert.Equal(t, "setup", setup.Name)
	leaves := groupOf(t, setup).Tasks
	require.Len(t, leaves, 4)

	mode600 := fs.FileMode(0600)
	mode644 := fs.FileMode(0644)
	assert.Equal(t, &Task{Name: "copy", Action: &Copy{Source: "a.txt", Destination: "~/a.txt", Mode: &mode600}}, leaves[0])
	assert.Equal(t, &Task{Name: "shell", Action: &Shell{Command: "exit 1"}}, leaves[1])
	assert.Equal(t, &Task{Name: "symlink", Action: &Symlink{Source: "b", Destination: "~/b"}}, leaves[2])
	assert.Equal(t, &Task{Name: "template", Action: &Template{Source: "gitconfig", Destination: "~/.gitconfig", Mode: &mode644}}, leaves[3])

	for _, unknown := range children[1:] {
		assert.Equal(t, KindUnknown, unknown.Kind())
		assert.Equal(t, "unknown", unknown.Name)
	}
}

func TestLoaderNameAndSu(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	loader := NewLoader(env.FS, env.Paths)

	root, err := loader.Load(RootName, parseYAML(t, `
- name: install packages
  su: true
  shell: apt-get install -y git
- name: dotfiles
  links:
    - symlink: {src: vimrc, dst: ~/.vimrc}
- name:
    - shell: "true"
- copy: {src: a, dst: /tmp/a}
  su: false
`))
	require.NoError(t, err)
	children := groupOf(t, root).Tasks
	require.Len(t, children, 4)

	assert.Equal(t, "install packages", children[0].Name)
	assert.True(t, children[0].Privileged)
	assert.Equal(t, KindShell, children[0].Kind())

	assert.Equal(t, "dotfiles", children[1].Name, "name overrides group key")
	assert.Len(t, groupOf(t, children[1]).Tasks, 1)

	assert.Equal(t, "name", children[2].Name, "single-key mapping is always the kind key")
	assert.Equal(t, KindGroup, children[2].Kind())

	assert.Equal(t, "copy", children[3].Name)
	assert.False(t, children[3].Privileged)
}

func TestLoaderUnknownEntries(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	loader := NewLoader(env.FS, env.Paths)

	root, err := loader.Load(RootName, parseYAML(t, `
- {}
- name: only-meta
  su: true
- copy: {src: a, dst: b}
  shell: echo two kinds
- group-with-scalar: 3
- true
`))
	require.NoError(t, err)

	for _, child := range groupOf(t, root).Tasks {
		assert.Equal(t, KindUnknown, child.Kind())
	}
}

func TestLoaderTaskFiles(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteTaskFile("dev", `
- shell: echo dev
- editors
`)
	env.WriteTaskFile("editors", `
- name: vim
  symlink: {src: vimrc, dst: ~/.vimrc}
`)

	loader := NewLoader(env.FS, env.Paths)
	root, err := loader.Load(RootName, []interface{}{"dev"})
	require.NoError(t, err)

	dev := groupOf(t, root).Tasks[0]
	assert.Equal(t, "dev", dev.Name)
	devChildren := groupOf(t, dev).Tasks
	require.Len(t, devChildren, 2)
	assert.Equal(t, KindShell, devChildren[0].Kind())

	editors := devChildren[1]
	assert.Equal(t, "editors", editors.Name)
	require.Len(t, groupOf(t, editors).Tasks, 1)
	assert.Equal(t, "vim", groupOf(t, editors).Tasks[0].Name)
}

func TestLoaderReadsThroughFS(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTaskFile("dev", `
- shell: echo dev
- copy: {src: a.txt, dst: ~/a.txt}
`)

	root, err := NewLoader(env.FS, env.Paths).Load(RootName, []interface{}{"dev"})
	require.NoError(t, err)

	dev := groupOf(t, root).Tasks[0]
	assert.Equal(t, "dev", dev.Name)
	require.Len(t, groupOf(t, dev).Tasks, 2)

	_, err = NewLoader(env.FS, env.Paths).Load(RootName, []interface{}{"absent"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTaskFileOpen))
}

func TestLoaderTaskFileErrors(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		entries  string
		wantCode errors.ErrorCode
	}{
		{
			name:     "missing task file",
			entries:  "[nope]",
			wantCode: errors.ErrTaskFileOpen,
		},
		{
			name:     "unparseable task file",
			files:    map[string]string{"bad": "- shell: [unclosed"},
			entries:  "[bad]",
			wantCode: errors.ErrTaskFileParse,
		},
		{
			name:     "task file that is not a list",
			files:    map[string]string{"map": "shell: echo"},
			entries:  "[map]",
			wantCode: errors.ErrTaskFileParse,
		},
		{
			name:     "task file including itself",
			files:    map[string]string{"loop": "- other\n", "other": "- loop\n"},
			entries:  "[loop]",
			wantCode: errors.ErrTaskFileParse,
		},
		{
			name:     "invalid mode string",
			entries:  `[{copy: {src: a, dst: b, mode: "rwx"}}]`,
			wantCode: errors.ErrInvalidMode,
		},
		{
			name:     "mode with non-octal digits",
			entries:  `[{template: {src: a, dst: b, mode: 999}}]`,
			wantCode: errors.ErrInvalidMode,
		},
		{
			name:     "copy without dst",
			entries:  `[{copy: {src: a}}]`,
			wantCode: errors.ErrConfigInvalid,
		},
		{
			name:     "shell with a list",
			entries:  `[{shell: [echo, hi]}]`,
			wantCode: errors.ErrConfigInvalid,
		},
		{
			name:     "su that is not a bool",
			entries:  `[{shell: "true", su: "yes"}]`,
			wantCode: errors.ErrConfigInvalid,
		},
		{
			name:     "name that is not a string",
			entries:  `[{shell: "true", name: [a]}]`,
			wantCode: errors.ErrConfigInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
			for name, content := range tt.files {
				env.WriteTaskFile(name, content)
			}

			_, err := NewLoader(env.FS, env.Paths).Load(RootName, parseYAML(t, tt.entries))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(err), "got %v", err)
		})
	}
}

func TestLoaderRootMustBeList(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	_, err := NewLoader(env.FS, env.Paths).Load(RootName, "dev")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}
