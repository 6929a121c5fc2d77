package pipeline

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/initializr"
)

// checkPlatform fails with ErrEnvironment when goos is not in allowed.
// An empty allow-list accepts every platform.
func checkPlatform(goos string, allowed []string) error {
	if goos == "" {
		goos = runtime.GOOS
	}
	if len(allowed) == 0 || slices.Contains(allowed, goos) {
		return nil
	}
	return &oerrors.DetailError{
		Type:     "environment mismatch",
		Message:  fmt.Sprintf("host platform %q is not supported", goos),
		Step:     "validate",
		Location: goos,
		Context:  map[string]string{"supported": strings.Join(allowed, ", ")},
		Hint:     "Run bootstack inside the provided container image, or add the platform to `platforms` in the config file.",
		Cause:    oerrors.ErrEnvironment,
	}
}

// versionError reports a revision the provider does not offer.
func versionError(rev string, v initializr.Validation) error {
	return &oerrors.DetailError{
		Type:     "template revision not offered",
		Message:  fmt.Sprintf("the provider does not offer revision %q", rev),
		Step:     "validate",
		Location: "--boot-version",
		Context:  map[string]string{"offered": strings.Join(v.Offered, ", ")},
		Hint:     "Pick one of the offered revisions; `bootstack versions` lists them all.",
		Cause:    oerrors.ErrVersionInvalid,
	}
}

// withRootHint attaches the partial-failure hint to errors raised after the
// project root was created.
func withRootHint(err error, root string) error {
	hint := fmt.Sprintf("The project directory %s was left in place; remove it before running again.", root)

	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		if detail.Hint == "" {
			detail.Hint = hint
		} else if !strings.Contains(detail.Hint, root) {
			detail.Hint += " " + hint
		}
		return err
	}
	return &oerrors.DetailError{
		Type:     "generation failed",
		Message:  err.Error(),
		Location: root,
		Hint:     hint,
		Cause:    err,
	}
}
