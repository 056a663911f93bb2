package playlist

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Resolver locates a named media resource.
type Resolver interface {
	// Resolve returns the locator of name.ext, or a *MissingResourceError.
	Resolve(name, ext string) (string, error)
}

// DirResolver resolves resources inside a directory tree.
type DirResolver struct {
	fsys fs.FS
	root string
}

// NewDirResolver resolves resources relative to dir on the local
// filesystem. Returned locators are absolute so they do not depend on the
// working directory.
func NewDirResolver(dir string) *DirResolver {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &DirResolver{fsys: os.DirFS(dir), root: dir}
}

// NewFSResolver resolves resources in fsys. Returned locators are joined
// onto root.
func NewFSResolver(fsys fs.FS, root string) *DirResolver {
	return &DirResolver{fsys: fsys, root: root}
}

// Resolve implements Resolver.
func (r *DirResolver) Resolve(name, ext string) (string, error) {
	rel := name
	if ext != "" {
		rel += "." + ext
	}
	if !fs.ValidPath(rel) || path.IsAbs(rel) {
		return "", &MissingResourceError{Name: rel, Err: fs.ErrInvalid}
	}
	info, err := fs.Stat(r.fsys, rel)
	if err != nil {
		return "", &MissingResourceError{Name: rel, Err: err}
	}
	if info.IsDir() {
		return "", &MissingResourceError{Name: rel}
	}
	return filepath.Join(r.root, filepath.FromSlash(rel)), nil
}
