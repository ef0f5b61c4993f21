// Package deps checks for the external programs the editor drives.
package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Dependency is an external program.
type Dependency struct {
	Name       string
	InstallURL string
	Purpose    string
	// Required programs are needed to edit; optional ones enable extras.
	Required bool
}

var (
	Mpv    = Dependency{Name: "mpv", InstallURL: MpvInstallURL, Purpose: "video playback and caption overlay", Required: true}
	Ffmpeg = Dependency{Name: "ffmpeg", InstallURL: FfmpegInstallURL, Purpose: "preview renders with burned-in captions"}
)

// All lists every dependency in display order.
func All() []Dependency {
	return []Dependency{Mpv, Ffmpeg}
}

// Check returns a DependencyError when d is not on PATH.
func (d Dependency) Check() error {
	if _, err := lookPath(d.Name); err != nil {
		return &DependencyError{Name: d.Name, InstallURL: d.InstallURL}
	}
	return nil
}

// CheckMpv checks if mpv is installed and available in PATH
func CheckMpv() error { return Mpv.Check() }

// CheckFfmpeg checks if ffmpeg is installed and available in PATH
func CheckFfmpeg() error { return Ffmpeg.Check() }

// Status is the result of probing one dependency.
type Status struct {
	Dependency
	Path string
	Err  error
}

// Probe checks every dependency and reports where each was found.
func Probe() []Status {
	var out []Status
	for _, d := range All() {
		s := Status{Dependency: d}
		path, err := lookPath(d.Name)
		if err != nil {
			s.Err = &DependencyError{Name: d.Name, InstallURL: d.InstallURL}
		} else {
			s.Path = path
		}
		out = append(out, s)
	}
	return out
}

// CheckRequired returns the errors for missing required dependencies.
func CheckRequired() []error {
	var errs []error
	for _, s := range Probe() {
		if s.Required && s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errs
}
