package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const keyPrefix = "videos/"

// objectKey builds a unique storage key of the form
// videos/<epoch-millis>-<uuid><ext>. The timestamp plus random UUID makes
// collisions vanishingly unlikely even for same-millisecond uploads.
func objectKey(originalFilename string, now time.Time) string {
	return fmt.Sprintf("%s%d-%s%s", keyPrefix, now.UnixMilli(), uuid.New(), fileExtension(originalFilename))
}

// fileExtension returns the filename's suffix from the last dot onward,
// dot included, or "" when the filename is empty or has no dot.
func fileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return filename[idx:]
}
