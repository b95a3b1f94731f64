package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Editor represents an editor command. Besides the known editors any
// command name works, invoked in the generic +line form.
type Editor string

const (
	EditorCursor Editor = "cursor"
	EditorCode   Editor = "code"
)

// DetectEditor detects which editor is available: cursor, then VS Code,
// then whatever $EDITOR or $VISUAL names.
func DetectEditor() (Editor, error) {
	if _, err := exec.LookPath("cursor"); err == nil {
		return EditorCursor, nil
	}
	if _, err := exec.LookPath("code"); err == nil {
		return EditorCode, nil
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return Editor(env), nil
	}
	if env := os.Getenv("VISUAL"); env != "" {
		return Editor(env), nil
	}
	return "", fmt.Errorf("no editor found (cursor, code, $EDITOR or $VISUAL)")
}

// OpenAt opens a file in the editor with the cursor placed at the given
// 1-based line and column. The file is checked first so a document
// deleted or renamed since the last scan turns into an error instead of
// a confusing editor launch.
func OpenAt(ed Editor, file string, line, column int) error {
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("document no longer exists: %w", err)
	}

	var cmd *exec.Cmd
	switch ed {
	case EditorCursor, EditorCode:
		args := []string{"--goto", fmt.Sprintf("%s:%d:%d", file, line, column)}
		if runningInsideEditor() {
			// Reuse the surrounding window instead of opening a new one.
			args = append([]string{"--reuse-window"}, args...)
		}
		cmd = exec.Command(string(ed), args...)
	default:
		// Generic editors accept +line before the filename.
		cmd = exec.Command(string(ed), fmt.Sprintf("+%d", line), file)
	}

	cmd.Stdout = nil
	cmd.Stderr = nil

	// Run in the background so the TUI never blocks on the editor.
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()

	return nil
}

// runningInsideEditor reports whether the process runs in a Cursor or
// VS Code integrated terminal, where --reuse-window keeps the match in
// the window the user is already looking at.
func runningInsideEditor() bool {
	if hook := os.Getenv("VSCODE_IPC_HOOK"); hook != "" {
		if _, err := os.Stat(hook); err == nil || strings.HasSuffix(hook, ".sock") {
			return true
		}
	}
	return os.Getenv("CURSOR_PID") != "" || os.Getenv("VSCODE_PID") != "" ||
		os.Getenv("CURSOR_AGENT") != ""
}
