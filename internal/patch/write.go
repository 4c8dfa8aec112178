package patch

import (
	"os"
	"path/filepath"
	"strings"
)

// writeFileAtomic replaces path with data through a temp file in the same
// directory, keeping the original permission bits. Symlinks are resolved
// first so the link target is rewritten and the link itself survives.
func writeFileAtomic(path string, data []byte) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmpf, err := os.CreateTemp(filepath.Dir(path), ".hotfix_*")
	if err != nil {
		return err
	}
	tmp := tmpf.Name()
	defer os.Remove(tmp)

	if _, err := tmpf.Write(data); err != nil {
		_ = tmpf.Close()
		return err
	}
	if err := tmpf.Sync(); err != nil {
		_ = tmpf.Close()
		return err
	}
	if err := tmpf.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, mode); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// isCRLF reports whether every line break in s is "\r\n".
func isCRLF(s string) bool {
	lf := strings.Count(s, "\n")
	return lf > 0 && strings.Count(s, "\r\n") == lf
}

func toLF(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func toCRLF(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}
