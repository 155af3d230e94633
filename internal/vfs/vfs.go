// Package vfs is the storage collaborator boundary: the device filesystem as
// the shell kernel sees it. Paths on this interface are always normalized
// absolute device paths ("/", "/home/guest", "/sd/save.dat"); how they map to
// real storage is the implementation's business.
package vfs

import "errors"

// ErrReadOnly is returned by every mutation when the medium is
// write-protected. Persistence layers treat it as a silent failure and report
// it to the user themselves.
var ErrReadOnly = errors.New("filesystem is read-only")

// Info is the subset of stat the shell cares about.
type Info struct {
	IsDir bool
	Size  int64
}

// VolumeStat mirrors statvfs for the disk-usage command.
type VolumeStat struct {
	BlockSize   int64
	TotalBlocks int64
	FreeBlocks  int64
}

// FS is the POSIX-ish surface the kernel consumes. Implementations never
// interpret "..": callers hand in normalized paths only.
type FS interface {
	List(dir string) ([]string, error)
	Stat(path string) (Info, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	// Touch creates the file if missing and leaves it untouched otherwise.
	Touch(path string) error
	Remove(path string) error
	Rmdir(path string) error
	Mkdir(path string) error
	Rename(oldPath, newPath string) error
	Statvfs(path string) (VolumeStat, error)
	// ReadOnly reports whether the primary medium is write-protected.
	ReadOnly() bool
	// SetReadOnly toggles write protection, the runtime analogue of the
	// boot-time remount.
	SetReadOnly(ro bool)
}

// Exists reports whether path names anything at all.
func Exists(fs FS, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// IsDir reports whether path names a directory. Missing paths are not
// directories.
func IsDir(fs FS, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir
}
