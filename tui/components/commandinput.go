package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/tui/styles"
)

// CommandInputState holds the state for the command input component.
type CommandInputState struct {
	// Active indicates if command mode is active
	Active bool
	// Input is the current command input buffer
	Input []rune
	// CursorPos is the cursor position within Input
	CursorPos int
	// Result is the last result message (success or error)
	Result string
	// IsError indicates if the result is an error message
	IsError bool
}

// CommandInput renders the bottom line: the ':' prompt while command mode
// is active, otherwise the last result message.
func CommandInput(state CommandInputState, width int) string {
	lineStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Width(width)

	if state.Active {
		promptStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
		inputStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

		pos := min(state.CursorPos, len(state.Input))
		display := string(state.Input[:pos]) + "_" + string(state.Input[pos:])
		return lineStyle.Render(promptStyle.Render(":") + inputStyle.Render(display))
	}

	if state.Result != "" {
		resultStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
		if state.IsError {
			resultStyle = resultStyle.Foreground(styles.Pink)
		}
		return lineStyle.Render(" " + resultStyle.Render(state.Result))
	}
	return lineStyle.Render(" ")
}

// Open activates command mode with an empty buffer.
func (s *CommandInputState) Open() {
	s.Active = true
	s.Input = nil
	s.CursorPos = 0
	s.ClearResult()
}

// InsertRunes inserts rs at the cursor.
func (s *CommandInputState) InsertRunes(rs ...rune) {
	pos := min(s.CursorPos, len(s.Input))
	next := make([]rune, 0, len(s.Input)+len(rs))
	next = append(next, s.Input[:pos]...)
	next = append(next, rs...)
	next = append(next, s.Input[pos:]...)
	s.Input = next
	s.CursorPos = pos + len(rs)
}

// Backspace deletes the character before the cursor.
func (s *CommandInputState) Backspace() {
	if s.CursorPos <= 0 || len(s.Input) == 0 {
		return
	}
	pos := min(s.CursorPos, len(s.Input))
	s.Input = append(s.Input[:pos-1:pos-1], s.Input[pos:]...)
	s.CursorPos = pos - 1
}

// Delete deletes the character at the cursor.
func (s *CommandInputState) Delete() {
	if s.CursorPos < len(s.Input) {
		s.Input = append(s.Input[:s.CursorPos:s.CursorPos], s.Input[s.CursorPos+1:]...)
	}
}

// MoveCursorLeft moves the cursor left.
func (s *CommandInputState) MoveCursorLeft() {
	if s.CursorPos > 0 {
		s.CursorPos--
	}
}

// MoveCursorRight moves the cursor right.
func (s *CommandInputState) MoveCursorRight() {
	if s.CursorPos < len(s.Input) {
		s.CursorPos++
	}
}

// Clear clears the input buffer and deactivates command mode.
func (s *CommandInputState) Clear() {
	s.Input = nil
	s.CursorPos = 0
	s.Active = false
}

// GetCommand returns the current command and clears the input.
func (s *CommandInputState) GetCommand() string {
	cmd := string(s.Input)
	s.Clear()
	return cmd
}

// SetResult sets the result message.
func (s *CommandInputState) SetResult(msg string, isError bool) {
	s.Result = msg
	s.IsError = isError
}

// ClearResult clears the result message.
func (s *CommandInputState) ClearResult() {
	s.Result = ""
	s.IsError = false
}
