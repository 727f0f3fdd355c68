package paths

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/zapp/pkg/errors"
	"github.com/arthur-debert/zapp/pkg/filesystem"
)

// MaxMode is the largest accepted permission value (all permission,
// setuid, setgid and sticky bits)
const MaxMode = 07777

// EnsureParent makes sure the parent directory of path exists, creating it
// recursively when absent. A parent that exists as a non-directory, or that
// cannot be created, is a fatal precondition violation.
func EnsureParent(fsys filesystem.FS, path string) error {
	parent := filepath.Dir(path)

	info, err := fsys.Stat(parent)
	if err == nil {
		if !info.IsDir() {
			return errors.New(errors.ErrParentDir, "parent path is not a directory").
				WithDetail("path", parent)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return errors.Wrap(err, errors.ErrParentDir, "cannot inspect parent directory").
			WithDetail("path", parent)
	}

	if err := fsys.MkdirAll(parent, 0755); err != nil {
		return errors.Wrap(err, errors.ErrParentDir, "cannot create parent directory").
			WithDetail("path", parent)
	}
	return nil
}

// ParseMode parses an octal permission string such as "644" or "0755"
func ParseMode(s string) (fs.FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrInvalidMode, "invalid permissions %q", s)
	}
	if v > MaxMode {
		return 0, errors.Newf(errors.ErrInvalidMode, "invalid permissions %q: out of range", s)
	}
	return toFileMode(uint32(v)), nil
}

// toFileMode maps unix setuid/setgid/sticky bits onto their fs.FileMode flags
func toFileMode(v uint32) fs.FileMode {
	mode := fs.FileMode(v & 0777)
	if v&04000 != 0 {
		mode |= fs.ModeSetuid
	}
	if v&02000 != 0 {
		mode |= fs.ModeSetgid
	}
	if v&01000 != 0 {
		mode |= fs.ModeSticky
	}
	return mode
}

// ModeBits is the inverse of ParseMode: the unix octal value of mode,
// including the setuid, setgid and sticky bits
func ModeBits(mode fs.FileMode) uint32 {
	v := uint32(mode.Perm())
	if mode&fs.ModeSetuid != 0 {
		v |= 04000
	}
	if mode&fs.ModeSetgid != 0 {
		v |= 02000
	}
	if mode&fs.ModeSticky != 0 {
		v |= 01000
	}
	return v
}

// ApplyMode sets mode on path when one was specified
func ApplyMode(fsys filesystem.FS, path string, mode *fs.FileMode) error {
	if mode == nil {
		return nil
	}
	return fsys.Chmod(path, *mode)
}
