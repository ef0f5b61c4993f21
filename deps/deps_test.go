package deps

import (
	"errors"
	"os/exec"
	"testing"
)

func withPath(t *testing.T, found map[string]string) {
	t.Helper()
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if p, ok := found[name]; ok {
			return p, nil
		}
		return "", exec.ErrNotFound
	}
	t.Cleanup(func() { lookPath = orig })
}

func TestProbeReportsMissing(t *testing.T) {
	withPath(t, map[string]string{"mpv": "/usr/bin/mpv"})
	statuses := Probe()
	if len(statuses) != 2 {
		t.Fatalf("statuses = %d", len(statuses))
	}
	if statuses[0].Path != "/usr/bin/mpv" || statuses[0].Err != nil {
		t.Fatalf("mpv = %+v", statuses[0])
	}
	var de *DependencyError
	if !errors.As(statuses[1].Err, &de) || de.Name != "ffmpeg" {
		t.Fatalf("ffmpeg = %+v", statuses[1])
	}
	if errs := CheckRequired(); len(errs) != 0 {
		t.Fatalf("ffmpeg is optional, got %v", errs)
	}
}

func TestCheckMpvMissing(t *testing.T) {
	withPath(t, nil)
	err := CheckMpv()
	var de *DependencyError
	if !errors.As(err, &de) || de.InstallURL != MpvInstallURL {
		t.Fatalf("err = %v", err)
	}
	if len(CheckRequired()) != 1 {
		t.Fatal("missing mpv should be reported as required")
	}
}
