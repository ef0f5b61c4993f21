package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/user/caption-timeline-cli/pkg/timeutil"
	"github.com/user/caption-timeline-cli/transcript"
)

// WordFormResult is the raw text of the word editor fields.
type WordFormResult struct {
	Text  string
	Start string
	End   string
	// Lane is blank for automatic lane assignment
	Lane string
}

// WordFromForm pre-fills a result from w.
func WordFromForm(w transcript.Word) *WordFormResult {
	r := &WordFormResult{
		Text:  w.Text,
		Start: timeutil.FormatMs(w.Start),
		End:   timeutil.FormatMs(w.End),
	}
	if w.Lane != nil {
		r.Lane = strconv.Itoa(*w.Lane)
	}
	return r
}

// WordEdit is a parsed word form.
type WordEdit struct {
	Text  string
	Start int64
	End   int64
	Lane  *int
}

// Parse validates the fields. End must come after start.
func (r *WordFormResult) Parse() (WordEdit, error) {
	text := strings.TrimSpace(r.Text)
	if text == "" {
		return WordEdit{}, errors.New("text is required")
	}
	start, err := timeutil.ParseMs(r.Start)
	if err != nil {
		return WordEdit{}, fmt.Errorf("start: %w", err)
	}
	end, err := timeutil.ParseMs(r.End)
	if err != nil {
		return WordEdit{}, fmt.Errorf("end: %w", err)
	}
	if end <= start {
		return WordEdit{}, errors.New("end must be after start")
	}
	lane, err := parseLane(r.Lane)
	if err != nil {
		return WordEdit{}, err
	}
	return WordEdit{Text: text, Start: start, End: end, Lane: lane}, nil
}

func parseLane(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("lane must be a number from 0")
	}
	return &n, nil
}

func validTime(s string) error {
	_, err := timeutil.ParseMs(s)
	return err
}

// NewWordForm builds the word editor. Fields are bound to result.
func NewWordForm(title string, result *WordFormResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),

			huh.NewInput().
				Title("Text").
				Value(&result.Text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("text is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Start").
				Description("H:MM:SS.mmm, M:SS or seconds").
				Value(&result.Start).
				Validate(validTime),

			huh.NewInput().
				Title("End").
				Value(&result.End).
				Validate(validTime),

			huh.NewInput().
				Title("Lane").
				Description("Blank to place automatically").
				Value(&result.Lane).
				Validate(func(s string) error {
					_, err := parseLane(s)
					return err
				}),
		),
	).WithTheme(Theme())
}
