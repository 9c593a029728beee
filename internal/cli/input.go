package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ulikunitz/xz"

	"github.com/ByLCY/texscope/errors"
)

// readInput returns the contents of args[0], or stdin when it is absent or "-".
// Files ending in .xz are decompressed.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if fromStdin(args) {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "reading stdin")
		}
		return string(data), nil
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "reading %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		if r, err = xz.NewReader(f); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "opening xz stream %s", path)
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "reading %s", path)
	}
	return string(data), nil
}

func fromStdin(args []string) bool {
	return len(args) == 0 || args[0] == "-"
}

// writeOutput writes data to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "creating %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "writing %s", path)
	}
	return nil
}
