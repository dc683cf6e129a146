package classify

import (
	"bytes"
	"io"
	"os"
	"unicode/utf8"

	"github.com/h2non/filetype"
)

type Kind string

const (
	KindScript  Kind = "script"
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindAudio   Kind = "audio"
	KindVideo   Kind = "video"
	KindArchive Kind = "archive"
	KindBinary  Kind = "binary"
	KindEmpty   Kind = "empty"
)

const headerSize = 512

// Detect classifies a file by content: shebang scripts first, then magic
// numbers, then a printable-text heuristic for everything the magic table
// doesn't know.
func Detect(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, headerSize)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	buf = buf[:n]

	if n == 0 {
		return KindEmpty, nil
	}
	if hasShebang(buf) {
		return KindScript, nil
	}

	if t, err := filetype.Match(buf); err == nil {
		switch {
		case filetype.IsImage(buf):
			return KindImage, nil
		case filetype.IsAudio(buf):
			return KindAudio, nil
		case filetype.IsVideo(buf):
			return KindVideo, nil
		case filetype.IsArchive(buf):
			return KindArchive, nil
		case t != filetype.Unknown:
			return KindBinary, nil
		}
	}

	if looksTextual(buf) {
		return KindText, nil
	}
	return KindBinary, nil
}

// IsScript reports whether the file begins with a shebang line. Unreadable
// files are simply not scripts.
func IsScript(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	var head [2]byte
	if _, err := io.ReadFull(f, head[:]); err != nil {
		return false
	}
	return head[0] == '#' && head[1] == '!'
}

func hasShebang(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == '#' && buf[1] == '!'
}

func looksTextual(buf []byte) bool {
	if bytes.IndexByte(buf, 0) >= 0 {
		return false
	}
	if utf8.Valid(buf) {
		return true
	}
	// The sample may have been cut mid-rune; retry without the partial tail.
	for i := 1; i < utf8.UTFMax && i < len(buf); i++ {
		if utf8.Valid(buf[:len(buf)-i]) {
			return true
		}
	}
	return false
}
