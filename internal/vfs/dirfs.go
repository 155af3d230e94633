package vfs

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"cardsh/internal/fspath"
)

// DirFS backs the device filesystem with a host directory tree. "/" maps to
// Root on the host; the external mount stays writable even when the primary
// medium is write-protected, matching the device where the SD card is mounted
// independently of the flash remount.
type DirFS struct {
	Root          string
	ExternalMount string
	readOnly      bool
}

// NewDirFS roots a device filesystem at dir with "/sd" as the external mount.
func NewDirFS(dir string) *DirFS {
	return &DirFS{Root: dir, ExternalMount: "/sd"}
}

// hostPath maps a normalized device path onto the host tree. The extra Clean
// guards against a caller slipping an unnormalized path past the resolver.
func (d *DirFS) hostPath(devPath string) string {
	clean := filepath.Clean("/" + strings.TrimPrefix(devPath, "/"))
	return filepath.Join(d.Root, filepath.FromSlash(clean))
}

// HostPath exposes the mapping for collaborators that hand files to host
// processes, such as the module runner.
func (d *DirFS) HostPath(devPath string) string { return d.hostPath(devPath) }

func (d *DirFS) writable(devPath string) bool {
	if !d.readOnly {
		return true
	}
	return d.ExternalMount != "" && fspath.Under(devPath, d.ExternalMount)
}

func (d *DirFS) List(dir string) ([]string, error) {
	ents, err := os.ReadDir(d.hostPath(dir))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ents))
	for i, e := range ents {
		names[i] = e.Name()
	}
	return names, nil
}

func (d *DirFS) Stat(path string) (Info, error) {
	fi, err := os.Stat(d.hostPath(path))
	if err != nil {
		return Info{}, err
	}
	return Info{IsDir: fi.IsDir(), Size: fi.Size()}, nil
}

func (d *DirFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(d.hostPath(path))
}

func (d *DirFS) WriteFile(path string, data []byte) error {
	if !d.writable(path) {
		return ErrReadOnly
	}
	return os.WriteFile(d.hostPath(path), data, 0o644)
}

func (d *DirFS) Touch(path string) error {
	if !d.writable(path) {
		return ErrReadOnly
	}
	f, err := os.OpenFile(d.hostPath(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

func (d *DirFS) Remove(path string) error {
	if !d.writable(path) {
		return ErrReadOnly
	}
	return os.Remove(d.hostPath(path))
}

func (d *DirFS) Rmdir(path string) error {
	if !d.writable(path) {
		return ErrReadOnly
	}
	// os.Remove refuses non-empty directories, same contract as rmdir.
	return os.Remove(d.hostPath(path))
}

func (d *DirFS) Mkdir(path string) error {
	if !d.writable(path) {
		return ErrReadOnly
	}
	return os.Mkdir(d.hostPath(path), 0o755)
}

func (d *DirFS) Rename(oldPath, newPath string) error {
	if !d.writable(oldPath) || !d.writable(newPath) {
		return ErrReadOnly
	}
	return os.Rename(d.hostPath(oldPath), d.hostPath(newPath))
}

func (d *DirFS) Statvfs(path string) (VolumeStat, error) {
	var st syscall.Statfs_t
	if err := syscall.Statfs(d.hostPath(path), &st); err != nil {
		return VolumeStat{}, err
	}
	return VolumeStat{
		BlockSize:   int64(st.Bsize),
		TotalBlocks: int64(st.Blocks),
		FreeBlocks:  int64(st.Bavail),
	}, nil
}

func (d *DirFS) ReadOnly() bool { return d.readOnly }

func (d *DirFS) SetReadOnly(ro bool) { d.readOnly = ro }
