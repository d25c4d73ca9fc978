package schema

import (
	"path/filepath"
	"strings"
)

// VideoSource is an opaque handle to a decodable video. Exactly two
// implementations exist: PathSource and BytesSource. The pipeline never
// assumes the source outlives the call.
type VideoSource interface {
	videoSource()
}

// PathSource points at an already-materialized video file.
type PathSource struct {
	Path string
}

// BytesSource carries a raw video buffer plus a filename hint whose
// extension selects the decode path when the buffer is materialized.
type BytesSource struct {
	Data []byte
	Hint string // Original filename, e.g. "clip.mp4"
}

func (PathSource) videoSource()  {}
func (BytesSource) videoSource() {}

// Ext returns the lowercase file extension implied by the hint,
// defaulting to ".mp4" when the hint has none.
func (s BytesSource) Ext() string {
	if ext := filepath.Ext(s.Hint); ext != "" {
		return strings.ToLower(ext)
	}
	return ".mp4"
}

// ValidateSource rejects unusable sources before any decoding begins.
func ValidateSource(src VideoSource) error {
	switch v := src.(type) {
	case PathSource:
		if v.Path == "" {
			return &InputError{Reason: "video path is empty"}
		}
	case BytesSource:
		if len(v.Data) == 0 {
			return &InputError{Reason: "video buffer is empty"}
		}
	case nil:
		return &InputError{Reason: "video source is nil"}
	default:
		return &InputError{Reason: "video source is neither a path nor a byte buffer"}
	}
	return nil
}
