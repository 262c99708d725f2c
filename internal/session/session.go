// Package session adapts platform concerns (theme, haptic cues,
// confirmation prompts, user identity) behind one small surface so the
// rest of the app never talks to the terminal directly.
package session

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/taskbot-dev/taskbot/internal/clierr"
)

// HapticKind names the feedback cues the UI can request.
type HapticKind int

const (
	HapticSuccess HapticKind = iota
	HapticError
	HapticWarning
	HapticSelection
)

// Session holds the resolved environment for one run.
type Session struct {
	Theme    Theme
	Haptics  bool
	UserName string

	in  io.Reader
	out io.Writer
}

// New resolves a session from the configured preferences.
func New(themePref string, haptics bool, userName string) *Session {
	return &Session{
		Theme:    ResolveTheme(themePref),
		Haptics:  haptics,
		UserName: userName,
		in:       os.Stdin,
		out:      os.Stderr,
	}
}

// SetIO overrides the prompt streams (for testing).
func (s *Session) SetIO(in io.Reader, out io.Writer) {
	s.in = in
	s.out = out
}

// Haptic emits a terminal cue for the given kind. Selection cues are
// silent; the others ring the bell when haptics are enabled.
func (s *Session) Haptic(k HapticKind) {
	if !s.Haptics || k == HapticSelection {
		return
	}
	fmt.Fprint(s.out, "\a")
}

// Confirm prompts on the terminal and returns whether the user agreed.
// Outside a TTY it refuses rather than guessing.
func (s *Session) Confirm(prompt string) (bool, error) {
	if f, ok := s.in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	fmt.Fprintf(s.out, "%s [y/N] ", prompt)
	reader := bufio.NewReader(s.in)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}

// ToggleTheme flips between light and dark and returns the new theme
// name for persisting.
func (s *Session) ToggleTheme() string {
	s.Theme = s.Theme.Opposite()
	return s.Theme.Name
}
