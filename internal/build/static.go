package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyStatic copies the static tree into dst and returns the number of files copied.
// When clean is set, dst is removed first.
func CopyStatic(src, dst string, clean bool) (int, error) {
	if clean {
		if err := os.RemoveAll(dst); err != nil {
			return 0, fmt.Errorf("failed to clean %s: %w", dst, err)
		}
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := os.Stat(src); os.IsNotExist(err) {
		// Nothing to copy
		return 0, nil
	}

	copied := 0
	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		if err := copyFile(path, target, info.Mode()); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("failed to copy %s: %w", src, err)
	}

	return copied, nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
