package clip

import (
	"context"

	"github.com/user/video-clipper-cli/pkg/cliputil"
)

// Cutter writes the part of src covered by w to out.
type Cutter interface {
	Cut(ctx context.Context, src string, w cliputil.Window, out string) error
}

// Prober reports the total duration of a media file in seconds.
type Prober interface {
	Duration(ctx context.Context, src string) (float64, error)
}

// FrameGrabber returns a JPEG still of src at the given offset.
type FrameGrabber interface {
	Frame(ctx context.Context, src string, at float64) ([]byte, error)
}
