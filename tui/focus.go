package tui

// FocusTarget is the panel the arrow keys act on.
type FocusTarget int

const (
	// FocusTimeline moves and re-lanes the selected word.
	FocusTimeline FocusTarget = iota
	// FocusWords walks the word list.
	FocusWords
	// FocusFrame nudges the selected word on the video frame.
	FocusFrame
)

func (f FocusTarget) String() string {
	switch f {
	case FocusWords:
		return "Words"
	case FocusFrame:
		return "Frame"
	default:
		return "Timeline"
	}
}

// next cycles Timeline → Words → Frame.
func (f FocusTarget) next() FocusTarget {
	return (f + 1) % 3
}
