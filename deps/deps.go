package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Dependency is an external binary the clipper can use.
type Dependency struct {
	Name string
	// Binary is the command looked up on PATH (or an explicit path).
	Binary     string
	InstallURL string
	// Required is false for binaries only some commands need.
	Required bool
}

// Check returns a *DependencyError if the binary cannot be found.
func (d Dependency) Check() error {
	if _, err := exec.LookPath(d.Binary); err != nil {
		return &DependencyError{Name: d.Name, InstallURL: d.InstallURL}
	}
	return nil
}

// Ffmpeg returns the ffmpeg dependency for the given binary.
func Ffmpeg(binary string) Dependency {
	return Dependency{Name: "ffmpeg", Binary: orDefault(binary, "ffmpeg"), InstallURL: FfmpegInstallURL, Required: true}
}

// Ffprobe returns the ffprobe dependency; it ships with ffmpeg.
func Ffprobe(binary string) Dependency {
	return Dependency{Name: "ffprobe", Binary: orDefault(binary, "ffprobe"), InstallURL: FfmpegInstallURL, Required: true}
}

// Mpv returns the mpv dependency, used only for previews.
func Mpv(binary string) Dependency {
	return Dependency{Name: "mpv", Binary: orDefault(binary, "mpv"), InstallURL: MpvInstallURL}
}

// CheckAll checks all dependencies and returns a slice of errors for missing ones
func CheckAll(deps ...Dependency) []error {
	var errors []error
	for _, d := range deps {
		if err := d.Check(); err != nil {
			errors = append(errors, err)
		}
	}
	return errors
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
