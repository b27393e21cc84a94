package fileutil

import (
	"fmt"
	"os"
)

// OverwriteFile truncates path and writes data through the existing directory
// entry, then syncs. Symlinks are followed and the file keeps its inode, mode
// and ownership. A missing file is created with 0o644.
func OverwriteFile(path string, data []byte) error {
	if info, err := os.Stat(path); err == nil {
		if !info.Mode().IsRegular() {
			return fmt.Errorf("overwrite %s: not a regular file", path)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
