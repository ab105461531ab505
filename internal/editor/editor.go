// Package editor launches the user's preferred text editor on a document.
package editor

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// lineAware lists editors that accept "+N" to open at line N.
var lineAware = map[string]bool{
	"vi": true, "vim": true, "nvim": true, "nano": true,
	"emacs": true, "emacsclient": true, "micro": true, "kak": true,
}

// Command builds the editor invocation for path. $EDITOR and $VISUAL may
// carry arguments ("code --wait"). When line > 0 and the editor is known
// to understand it, "+line" is passed before the path.
func Command(ctx context.Context, path string, line int) *exec.Cmd {
	fields := strings.Fields(detectEditor())
	name, args := fields[0], fields[1:]

	if line > 0 && lineAware[filepath.Base(name)] {
		args = append(args, "+"+strconv.Itoa(line))
	}
	args = append(args, path)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Open runs the editor on path and waits for it to exit.
func Open(ctx context.Context, path string, line int) error {
	if err := Command(ctx, path, line).Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}

// detectEditor returns the editor command to use based on environment variables
// and available binaries. Fallback chain: $EDITOR → $VISUAL → nano → vi
func detectEditor() string {
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}
	if visual := strings.TrimSpace(os.Getenv("VISUAL")); visual != "" {
		return visual
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
