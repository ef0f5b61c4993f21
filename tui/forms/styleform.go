package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/user/caption-timeline-cli/style"
	"github.com/user/caption-timeline-cli/transcript"
)

// StyleFormResult is the raw text of the style override fields. Blank
// fields inherit from the lyric preset.
type StyleFormResult struct {
	Color      string
	FontWeight string
	FontSize   string
	Transform  string
	Opacity    string
	ApplyAll   bool
}

// StyleFromOverride pre-fills a result from an existing override.
func StyleFromOverride(o *transcript.StyleOverride) *StyleFormResult {
	r := &StyleFormResult{}
	if o == nil {
		return r
	}
	if o.Color != nil {
		r.Color = *o.Color
	}
	if o.FontWeight != nil {
		r.FontWeight = strconv.Itoa(*o.FontWeight)
	}
	if o.FontSizePx != nil {
		r.FontSize = strconv.FormatFloat(*o.FontSizePx, 'f', -1, 64)
	}
	if o.TextTransform != nil {
		r.Transform = *o.TextTransform
	}
	if o.Opacity != nil {
		r.Opacity = strconv.FormatFloat(*o.Opacity, 'f', -1, 64)
	}
	return r
}

// Override converts the fields to a sparse override.
func (r *StyleFormResult) Override() (transcript.StyleOverride, error) {
	var o transcript.StyleOverride
	if c := strings.TrimSpace(r.Color); c != "" {
		rgba, err := style.ParseHex(c)
		if err != nil {
			return o, err
		}
		o = o.WithColor(rgba.Hex())
	}
	if s := strings.TrimSpace(r.FontWeight); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 100 || n > 900 {
			return o, errors.New("font weight must be 100 to 900")
		}
		o.FontWeight = &n
	}
	if s := strings.TrimSpace(r.FontSize); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return o, errors.New("font size must be a positive number")
		}
		o.FontSizePx = &v
	}
	if r.Transform != "" {
		t := r.Transform
		o.TextTransform = &t
	}
	if s := strings.TrimSpace(r.Opacity); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 || v > 1 {
			return o, errors.New("opacity must be between 0 and 1")
		}
		o.Opacity = &v
	}
	return o, nil
}

func optional(check func(string) error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return check(s)
	}
}

// NewStyleForm builds the style override editor.
func NewStyleForm(title string, result *StyleFormResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title).Description("Leave a field blank to use the preset"),

			huh.NewInput().
				Title("Colour").
				Placeholder("#FFFFFF").
				Value(&result.Color).
				Validate(optional(func(s string) error {
					_, err := style.ParseHex(s)
					return err
				})),

			huh.NewInput().
				Title("Font weight").
				Placeholder("700").
				Value(&result.FontWeight),

			huh.NewInput().
				Title("Font size (px)").
				Value(&result.FontSize).
				Validate(optional(func(s string) error {
					if v, err := strconv.ParseFloat(s, 64); err != nil || v <= 0 {
						return fmt.Errorf("not a size: %s", s)
					}
					return nil
				})),

			huh.NewSelect[string]().
				Title("Transform").
				Options(
					huh.NewOption("Preset", ""),
					huh.NewOption("UPPERCASE", "uppercase"),
					huh.NewOption("lowercase", "lowercase"),
					huh.NewOption("Capitalize", "capitalize"),
					huh.NewOption("None", "none"),
				).
				Value(&result.Transform),

			huh.NewInput().
				Title("Opacity").
				Placeholder("1").
				Value(&result.Opacity),

			huh.NewConfirm().
				Title("Apply to every word").
				Value(&result.ApplyAll),
		),
	).WithTheme(Theme())
}
