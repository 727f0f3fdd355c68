package tasks

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/arthur-debert/zapp/pkg/errors"
	"github.com/arthur-debert/zapp/pkg/filesystem"
	"github.com/arthur-debert/zapp/pkg/logging"
	"github.com/arthur-debert/zapp/pkg/paths"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Keys of a task entry mapping that are not the task kind
const (
	keyName = "name"
	keySu   = "su"
)

// RootName is the name of the group built from config.yaml's tasks
const RootName = "main"

// Loader builds task trees from raw configuration values
type Loader struct {
	fs     filesystem.FS
	paths  *paths.Paths
	logger zerolog.Logger

	// loading holds the task files currently being expanded, to catch
	// files that reference themselves
	loading map[string]bool
}

// NewLoader creates a loader reading task files under p from fsys. A nil
// fsys reads from the OS filesystem.
func NewLoader(fsys filesystem.FS, p *paths.Paths) *Loader {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return &Loader{
		fs:      fsys,
		paths:   p,
		logger:  logging.GetLogger("tasks.loader"),
		loading: make(map[string]bool),
	}
}

// Load parses a raw task-entry sequence into a Group named name
func (l *Loader) Load(name string, entries interface{}) (*Task, error) {
	seq, ok := asSequence(entries)
	if !ok {
		return nil, errors.Newf(errors.ErrConfigInvalid, "tasks of %q must be a list", name)
	}
	return l.parseSequence(name, seq)
}

// LoadFile loads tasks/<name>.yaml into a Group named name
func (l *Loader) LoadFile(name string) (*Task, error) {
	path := l.paths.TaskFile(name)
	if l.loading[path] {
		return nil, errors.Newf(errors.ErrTaskFileParse, "task file %q includes itself", name).
			WithDetail("path", path)
	}
	l.loading[path] = true
	defer delete(l.loading, path)

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTaskFileOpen, "unable to open task file").
			WithDetail("path", path)
	}

	var entries interface{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, errors.ErrTaskFileParse, "unable to parse task file").
			WithDetail("path", path)
	}

	seq, ok := asSequence(entries)
	if !ok {
		return nil, errors.New(errors.ErrTaskFileParse, "task file must contain a list of tasks").
			WithDetail("path", path)
	}

	l.logger.Debug().Str("name", name).Str("path", path).Int("entries", len(seq)).Msg("Loaded task file")

	return l.parseSequence(name, seq)
}

func (l *Loader) parseSequence(name string, seq []interface{}) (*Task, error) {
	children := make([]*Task, 0, len(seq))
	for _, entry := range seq {
		child, err := l.parseEntry(entry)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return NewGroup(name, children...), nil
}

// parseEntry handles one element of a task-entry sequence: a bare string
// names a task file, a mapping is a leaf or an inline group, and anything
// else becomes an Unknown placeholder.
func (l *Loader) parseEntry(entry interface{}) (*Task, error) {
	if s, ok := entry.(string); ok {
		return l.LoadFile(s)
	}

	m, ok := asMap(entry)
	if !ok {
		l.logger.Warn().Interface("entry", entry).Msg("Unrecognised task entry")
		return unknownTask(), nil
	}

	key, value, meta, ok := splitEntry(m)
	if !ok {
		l.logger.Warn().Interface("entry", entry).Msg("Task entry must have exactly one kind key")
		return unknownTask(), nil
	}

	task, err := l.parseAction(key, value)
	if err != nil {
		if isLeafKind(Kind(key)) {
			return nil, errors.Wrapf(err, errors.GetErrorCode(err), "invalid %s task", key)
		}
		return nil, err
	}
	if task == nil {
		l.logger.Warn().Str("key", key).Msg("Group entry is not a list")
		return unknownTask(), nil
	}

	if err := applyMeta(task, meta); err != nil {
		return nil, err
	}
	return task, nil
}

// parseAction returns nil when key is a group whose value is not a list
func (l *Loader) parseAction(key string, value interface{}) (*Task, error) {
	switch Kind(key) {
	case KindCopy:
		body, err := fileBody(value, true)
		if err != nil {
			return nil, err
		}
		return &Task{Name: key, Action: &Copy{Source: body.src, Destination: body.dst, Mode: body.mode}}, nil

	case KindSymlink:
		body, err := fileBody(value, false)
		if err != nil {
			return nil, err
		}
		return &Task{Name: key, Action: &Symlink{Source: body.src, Destination: body.dst}}, nil

	case KindTemplate:
		body, err := fileBody(value, true)
		if err != nil {
			return nil, err
		}
		return &Task{Name: key, Action: &Template{Source: body.src, Destination: body.dst, Mode: body.mode}}, nil

	case KindShell:
		command, ok := value.(string)
		if !ok {
			return nil, errors.New(errors.ErrConfigInvalid, "shell task takes a command string")
		}
		return &Task{Name: key, Action: &Shell{Command: command}}, nil
	}

	seq, ok := asSequence(value)
	if !ok {
		return nil, nil
	}
	return l.parseSequence(key, seq)
}

// splitEntry separates the kind key from the name/su attributes. A
// single-key mapping is always a kind key, so a group may be called "name".
func splitEntry(m map[string]interface{}) (key string, value interface{}, meta map[string]interface{}, ok bool) {
	if len(m) == 1 {
		for k, v := range m {
			return k, v, nil, true
		}
	}

	meta = make(map[string]interface{})
	found := 0
	for k, v := range m {
		if k == keyName || k == keySu {
			meta[k] = v
			continue
		}
		key, value = k, v
		found++
	}
	return key, value, meta, found == 1
}

func applyMeta(task *Task, meta map[string]interface{}) error {
	if v, ok := meta[keyName]; ok {
		name, isString := v.(string)
		if !isString {
			return errors.Newf(errors.ErrConfigInvalid, "task name must be a string, got %v", v)
		}
		task.Name = name
	}
	if v, ok := meta[keySu]; ok {
		su, isBool := v.(bool)
		if !isBool {
			return errors.Newf(errors.ErrConfigInvalid, "su must be true or false, got %v", v).
				WithDetail("task", task.Name)
		}
		task.Privileged = su
	}
	return nil
}

type fileTaskBody struct {
	src  string
	dst  string
	mode *fs.FileMode
}

// fileBody decodes {src, dst[, mode]}
func fileBody(value interface{}, allowMode bool) (fileTaskBody, error) {
	var body fileTaskBody

	m, ok := asMap(value)
	if !ok {
		return body, errors.New(errors.ErrConfigInvalid, "expected a mapping with src and dst")
	}

	var err error
	if body.src, err = requiredString(m, "src"); err != nil {
		return body, err
	}
	if body.dst, err = requiredString(m, "dst"); err != nil {
		return body, err
	}

	if raw, ok := m["mode"]; ok && allowMode && raw != nil {
		mode, err := parseModeValue(raw)
		if err != nil {
			return body, err
		}
		body.mode = &mode
	}
	return body, nil
}

func requiredString(m map[string]interface{}, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", errors.Newf(errors.ErrConfigInvalid, "missing %q", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", errors.Newf(errors.ErrConfigInvalid, "%q must be a non-empty string", key)
	}
	return s, nil
}

// parseModeValue accepts "644" as well as an unquoted 644, whose decimal
// digits are read as octal
func parseModeValue(raw interface{}) (fs.FileMode, error) {
	switch v := raw.(type) {
	case string:
		return paths.ParseMode(v)
	case int:
		return paths.ParseMode(strconv.Itoa(v))
	case int64:
		return paths.ParseMode(strconv.FormatInt(v, 10))
	case uint64:
		return paths.ParseMode(strconv.FormatUint(v, 10))
	default:
		return 0, errors.Newf(errors.ErrInvalidMode, "invalid permissions %v", raw)
	}
}

func isLeafKind(k Kind) bool {
	switch k {
	case KindCopy, KindSymlink, KindTemplate, KindShell:
		return true
	}
	return false
}

func unknownTask() *Task {
	return &Task{Name: string(KindUnknown), Action: &Unknown{}}
}

func asSequence(v interface{}) ([]interface{}, bool) {
	seq, ok := v.([]interface{})
	return seq, ok
}

// asMap accepts both decoded mapping shapes yaml can produce
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
