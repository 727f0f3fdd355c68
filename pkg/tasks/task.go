package tasks

import "io/fs"

// Kind identifies a task variant
type Kind string

const (
	KindUnknown  Kind = "unknown"
	KindGroup    Kind = "group"
	KindCopy     Kind = "copy"
	KindSymlink  Kind = "symlink"
	KindTemplate Kind = "template"
	KindShell    Kind = "shell"
)

// Task is a named node of the task tree
type Task struct {
	// Name is used only for reporting
	Name string

	// Privileged marks a task as requiring elevated privileges. Elevation
	// is not implemented: privileged tasks are reported SKIPPED.
	Privileged bool

	// Action is exactly one of *Unknown, *Group, *Copy, *Symlink,
	// *Template or *Shell
	Action Action
}

// Action is the closed set of task variants
type Action interface {
	Kind() Kind
}

// Unknown stands in for an unrecognised configuration entry
type Unknown struct{}

// Group runs its children in declared order
type Group struct {
	Tasks []*Task
}

// Copy copies an asset from files/ to Destination
type Copy struct {
	Source      string
	Destination string
	Mode        *fs.FileMode
}

// Symlink links Destination to an asset in files/
type Symlink struct {
	Source      string
	Destination string
}

// Template renders the template named Source into Destination
type Template struct {
	Source      string
	Destination string
	Mode        *fs.FileMode
}

// Shell runs Command through the command interpreter with -c
type Shell struct {
	Command string
}

func (*Unknown) Kind() Kind  { return KindUnknown }
func (*Group) Kind() Kind    { return KindGroup }
func (*Copy) Kind() Kind     { return KindCopy }
func (*Symlink) Kind() Kind  { return KindSymlink }
func (*Template) Kind() Kind { return KindTemplate }
func (*Shell) Kind() Kind    { return KindShell }

// NewGroup returns a group task named name
func NewGroup(name string, children ...*Task) *Task {
	return &Task{Name: name, Action: &Group{Tasks: children}}
}

// Kind returns the kind of the task's action
func (t *Task) Kind() Kind {
	if t.Action == nil {
		return KindUnknown
	}
	return t.Action.Kind()
}

// Params is the state threaded through a run. Context is read-only;
// Depth is the current Group nesting level and is only used to indent
// report lines.
type Params struct {
	Context map[string]interface{}
	Depth   int
}

// NewParams returns run state at depth 0
func NewParams(context map[string]interface{}) *Params {
	if context == nil {
		context = map[string]interface{}{}
	}
	return &Params{Context: context}
}
