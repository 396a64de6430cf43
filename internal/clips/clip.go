package clips

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clip is a final, buffer-expanded, merged, duration-filtered segment
// selected for extraction. Transient: created and consumed within one
// video's processing pass.
type Clip struct {
	ID     string
	Source string
	Start  time.Duration
	End    time.Duration
	Output string
}

// New creates a clip with a fresh identity for logs and reports.
func New(source string, start, end time.Duration) *Clip {
	return &Clip{
		ID:     uuid.NewString(),
		Source: source,
		Start:  start,
		End:    end,
	}
}

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	return c.End - c.Start
}

// OutputName derives a collision-free file name for a clip. The timestamp is
// the wall-clock moment the motion happened (source mtime + start offset),
// the index disambiguates clips landing in the same second, and the source
// container extension is kept since extraction is a stream copy.
func OutputName(source string, sourceModTime time.Time, start time.Duration, index int) string {
	ext := filepath.Ext(source)
	base := strings.TrimSuffix(filepath.Base(source), ext)
	stamp := sourceModTime.Add(start).Format("2006-01-02_15-04-05")
	return fmt.Sprintf("%s_%s_%02d%s", base, stamp, index+1, ext)
}

// ThumbnailName derives the JPEG thumbnail name next to a clip output name.
func ThumbnailName(outputName string) string {
	ext := filepath.Ext(outputName)
	return strings.TrimSuffix(outputName, ext) + ".jpg"
}
