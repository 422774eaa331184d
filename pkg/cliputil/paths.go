package cliputil

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/user/video-clipper-cli/pkg/timeutil"
)

// DefaultExtension is used when no media extension is configured.
const DefaultExtension = "mp4"

// unitMarkers are dropped from batch output names.
var unitMarkers = strings.NewReplacer("年", "", "月", "", "日", "", "点", "", "分", "", "秒", "")

// SanitizeLabel keeps letters, digits, space, hyphen and underscore, then trims.
func SanitizeLabel(label string) string {
	var b strings.Builder
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// BatchOutputName derives a file name (without extension) for a batch entry.
// "2025-11-18 15:37:15" with label "goal" becomes "2025-11-18_15-37-15_goal".
// Each whitespace rune becomes one underscore. Full-width digits and colons
// are normalized first so names stay ASCII.
func BatchOutputName(expr, label string) string {
	name := timeutil.Normalize(strings.TrimSpace(expr))
	name = strings.ReplaceAll(name, ":", "-")
	name = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
	name = unitMarkers.Replace(name)

	if safe := SanitizeLabel(label); safe != "" {
		name += "_" + safe
	}
	return name
}

// SingleOutputName derives the file name (without extension) of a single-mode clip.
func SingleOutputName(target string) string {
	return strings.ReplaceAll(strings.TrimSpace(target), ":", "-")
}

// FileName joins a name and a media extension; ext may carry a leading dot.
func FileName(name, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = DefaultExtension
	}
	return name + "." + ext
}

// GetOutputDir returns the default clips directory next to the video.
// For example, "/path/to/match.mp4" returns "/path/to/match-clips".
func GetOutputDir(videoPath string) string {
	dir := filepath.Dir(videoPath)
	base := filepath.Base(videoPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, name+"-clips")
}
