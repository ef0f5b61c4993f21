package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/user/caption-timeline-cli/pkg/timeutil"
	"github.com/user/caption-timeline-cli/transcript"
	"github.com/user/caption-timeline-cli/tui/forms"
)

func (m *Model) openForm(kind formKind, f *huh.Form) tea.Cmd {
	m.cancelPointer()
	m.form = f
	m.formKind = kind
	return f.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.formKind = formNone
	m.wordForm = nil
	m.styleForm = nil
	m.presetForm = nil
}

// openAddForm asks for a new word starting at the playhead.
func (m *Model) openAddForm() tea.Cmd {
	now := m.session.Now()
	m.formTarget = transcript.NoSelection
	m.wordForm = &forms.WordFormResult{
		Start: timeutil.FormatMs(now),
		End:   timeutil.FormatMs(now + transcript.DefaultWordDurationMs),
	}
	return m.openForm(formWord, forms.NewWordForm("Add word @ "+timeutil.FormatShort(now), m.wordForm))
}

func (m *Model) openEditForm() tea.Cmd {
	w, _ := m.session.SelectedWord()
	m.formTarget = m.session.Selected()
	m.wordForm = forms.WordFromForm(w)
	return m.openForm(formWord, forms.NewWordForm(fmt.Sprintf("Edit word #%d", m.formTarget), m.wordForm))
}

func (m *Model) openStyleForm() tea.Cmd {
	m.formTarget = m.session.Selected()
	title := "Style every word"
	if w, ok := m.session.SelectedWord(); ok {
		m.styleForm = forms.StyleFromOverride(w.Style)
		title = fmt.Sprintf("Style %q", w.Text)
	} else {
		m.styleForm = &forms.StyleFormResult{ApplyAll: true}
	}
	return m.openForm(formStyle, forms.NewStyleForm(title, m.styleForm))
}

func (m *Model) openPresetForm() tea.Cmd {
	m.presetForm = &forms.PresetFormResult{Lyric: m.session.LyricID(), Layout: m.session.LayoutID()}
	return m.openForm(formPreset, forms.NewPresetForm(m.session.Lyrics(), m.presetForm))
}

func (m *Model) openQuitForm() tea.Cmd {
	m.quitAnswer = false
	return m.openForm(formQuit, forms.NewConfirmForm(
		"Quit with unsaved changes?",
		"The last save failed. Changes since then may be lost.",
		"Quit", "Keep editing", &m.quitAnswer))
}

// updateForm routes a message to the open form. Esc closes it without
// applying anything.
func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.finishForm()
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// finishForm applies a submitted form to the session.
func (m *Model) finishForm() (tea.Model, tea.Cmd) {
	kind := m.formKind
	wordForm, styleForm, presetForm := m.wordForm, m.styleForm, m.presetForm
	m.closeForm()

	s := m.session
	var err error
	switch kind {
	case formWord:
		var edit forms.WordEdit
		if edit, err = wordForm.Parse(); err != nil {
			break
		}
		if m.formTarget == transcript.NoSelection {
			s.AddWord(edit.Text)
		} else {
			s.Select(m.formTarget)
			s.UpdateSelectedText(edit.Text)
		}
		s.SetSelectedTiming(edit.Start, edit.End)
		s.SetSelectedLane(edit.Lane)

	case formStyle:
		var o transcript.StyleOverride
		if o, err = styleForm.Override(); err != nil {
			break
		}
		if styleForm.ApplyAll {
			s.ApplyStyleAll(o)
			break
		}
		s.Select(m.formTarget)
		if !s.SetSelectedStyle(o) {
			err = fmt.Errorf("no word selected")
		}

	case formPreset:
		if err = s.SetLyricPreset(presetForm.Lyric); err != nil {
			break
		}
		err = s.SetLayoutPreset(presetForm.Layout)

	case formQuit:
		if m.quitAnswer {
			m.hideOverlay()
			m.quitting = true
			return m, tea.Quit
		}
	}

	m.refreshStatus()
	if err != nil {
		return m, m.flash("Error: "+err.Error(), true)
	}
	return m, nil
}
