package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Asset references follow the form "image-<name>-<ext>" so the stored
// filename "<name>.<ext>" can be derived from the reference alone, without a
// metadata lookup.

// NewAssetRef mints a reference and its backing filename for an upload with
// the given extension (without the leading dot).
func NewAssetRef(ext string) (ref, filename string) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		ext = "bin"
	}
	name := randomName()
	return fmt.Sprintf("image-%s-%s", name, ext), fmt.Sprintf("%s.%s", name, ext)
}

// FilenameForRef resolves an asset reference back to its stored filename. It
// returns empty for references that do not follow the expected form.
func FilenameForRef(ref string) string {
	rest, ok := strings.CutPrefix(ref, "image-")
	if !ok {
		return ""
	}
	idx := strings.LastIndex(rest, "-")
	if idx <= 0 || idx == len(rest)-1 {
		return ""
	}
	return rest[:idx] + "." + rest[idx+1:]
}

func randomName() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
