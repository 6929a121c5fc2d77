package archive

import (
	"errors"
	"fmt"
	"path/filepath"

	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/fsutil"
)

// IgnoreFileName is the ignore-rules file in the backend project.
const IgnoreFileName = ".gitignore"

// IgnoreRules is the fixed ignore policy: build output, IDE files, logs.
// Groups are separated by one blank line.
const IgnoreRules = `target/

.idea/
*.iml
.vscode/

*.log
`

// WriteIgnoreRules replaces the provider's ignore-rules file with IgnoreRules.
func WriteIgnoreRules(projectPath string) error {
	path := filepath.Join(projectPath, IgnoreFileName)
	if err := fsutil.WriteFileAtomic(path, []byte(IgnoreRules), 0o644); err != nil {
		return &oerrors.DetailError{
			Type:     "file write failed",
			Message:  fmt.Sprintf("writing ignore rules: %v", err),
			Step:     "clean",
			Location: path,
			Cause:    errors.Join(oerrors.ErrFileWrite, err),
		}
	}
	return nil
}
