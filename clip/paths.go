package clip

import (
	"fmt"
	"path/filepath"

	"github.com/user/video-clipper-cli/pkg/cliputil"
)

// namer hands out file names that are unique within one run.
// A repeated name gets a numeric suffix: "10-01-00", "10-01-00_2", ...
// Suffixed names are reserved too, so a later entry whose own name is
// "10-01-00_2" becomes "10-01-00_2_2".
type namer struct {
	dir  string
	ext  string
	seen map[string]int
}

func newNamer(dir, ext string) *namer {
	return &namer{dir: dir, ext: ext, seen: make(map[string]int)}
}

// next returns the file name and full path for base.
func (n *namer) next(base string) (name, path string) {
	candidate := base
	if c := n.seen[base]; c > 0 {
		for {
			c++
			candidate = fmt.Sprintf("%s_%d", base, c)
			if n.seen[candidate] == 0 {
				break
			}
		}
		n.seen[base] = c
	} else {
		n.seen[base] = 1
	}
	if candidate != base {
		n.seen[candidate]++
	}

	name = cliputil.FileName(candidate, n.ext)
	return name, filepath.Join(n.dir, name)
}
