// Package export reads and writes transcripts in the formats the CLI hands
// to and from other tools: transcript JSON, SRT and ASS.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/caption-timeline-cli/ass"
	"github.com/user/caption-timeline-cli/transcript"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatSRT  Format = "srt"
	FormatASS  Format = "ass"
)

// ErrUnknownFormat is returned for formats other than json, srt and ass.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat maps a name to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatSRT, FormatASS:
		return f, nil
	case "ssa":
		return FormatASS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Options configure Write.
type Options struct {
	Format Format
	ASS    ass.DocumentOptions
	SRT    SRTOptions
}

// Write encodes t to w in opts.Format.
func Write(w io.Writer, t transcript.Transcript, opts Options) error {
	switch opts.Format {
	case FormatJSON, "":
		return WriteTranscript(w, t)
	case FormatSRT:
		_, err := io.WriteString(w, SRT(t, opts.SRT))
		return err
	case FormatASS:
		_, err := io.WriteString(w, ass.Document(t, opts.ASS))
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
}

// WriteFile writes t to path, replacing any existing file only once the new
// content is complete.
func WriteFile(path string, t transcript.Transcript, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, t, opts); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// WriteTranscript encodes t as indented transcript JSON.
func WriteTranscript(w io.Writer, t transcript.Transcript) error {
	if t == nil {
		t = transcript.Transcript{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// ReadTranscript decodes transcript JSON and repairs it with
// transcript.Normalize.
//
// Three shapes are accepted: an array of lines, an object wrapping that
// array under "transcript" or "lines", and a flat array of words, which
// becomes a single line.
func ReadTranscript(r io.Reader) (transcript.Transcript, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("transcript: empty input")
	}

	if data[0] == '{' {
		var wrapped struct {
			Transcript json.RawMessage `json:"transcript"`
			Lines      json.RawMessage `json:"lines"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("transcript: %w", err)
		}
		switch {
		case len(wrapped.Transcript) > 0:
			data = wrapped.Transcript
		case len(wrapped.Lines) > 0:
			data = wrapped.Lines
		default:
			return nil, errors.New(`transcript: object has no "transcript" or "lines" field`)
		}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("transcript: %w", err)
	}
	if len(raw) == 0 {
		return transcript.Transcript{}, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw[0], &probe); err != nil {
		return nil, fmt.Errorf("transcript: %w", err)
	}
	if _, isLine := probe["words"]; isLine {
		var t transcript.Transcript
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("transcript: %w", err)
		}
		return transcript.Normalize(t), nil
	}

	var words []transcript.Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("transcript: %w", err)
	}
	return transcript.Normalize(transcript.Transcript{{Words: words}}), nil
}

// ReadFile reads a transcript JSON file.
func ReadFile(path string) (transcript.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadTranscript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
