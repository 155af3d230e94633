package kernel

import (
	"cardsh/internal/editbuf"
	"cardsh/internal/shellerr"
)

// EditorSession is one open file in the multi-line editor. The buffer lives
// in memory; Commit writes it back through the access check, which is
// re-evaluated at commit time because the medium may have become read-only
// since the file was opened.
type EditorSession struct {
	Path string
	Buf  *editbuf.Text

	k *Kernel
	// bypass skips the access check at commit time. Only recovery sets it,
	// since repairing a protected boot file is the whole point of recovery.
	bypass bool
}

// RecoveryEditor opens a writable editor session that ignores the access
// policy. Used by the recovery console after a dispatcher crash.
func RecoveryEditor(k *Kernel, path, content string) *EditorSession {
	return &EditorSession{
		Path:   path,
		Buf:    editbuf.NewText(content, false),
		k:      k,
		bypass: true,
	}
}

func (k *Kernel) cmdNano(args []string) (*Request, error) {
	if len(args) == 0 {
		return nil, shellerr.Usage("Usage: nano <file>")
	}
	p := k.resolve(args[0])
	if err := k.checkAccess(p, false); err != nil {
		return nil, err
	}
	// Read-only editing when the session may not write the target. A missing
	// file opens an empty buffer.
	readOnly := k.checkAccess(p, true) != nil
	content := ""
	if data, err := k.FS.ReadFile(p); err == nil {
		content = string(data)
	}
	return &Request{
		Kind: ReqEditor,
		Editor: &EditorSession{
			Path: p,
			Buf:  editbuf.NewText(content, readOnly),
			k:    k,
		},
	}, nil
}

// Commit persists the buffer. On failure the in-memory content is untouched
// and the caller reports the error in the status line.
func (e *EditorSession) Commit() error {
	if !e.bypass {
		if err := e.k.checkAccess(e.Path, true); err != nil {
			return err
		}
	}
	if err := e.k.FS.WriteFile(e.Path, []byte(e.Buf.Content())); err != nil {
		return shellerr.IO("save", err)
	}
	return nil
}
