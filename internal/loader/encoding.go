package loader

import (
	"fmt"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// detectSampleSize is how many leading bytes feed the charset detector.
const detectSampleSize = 2048

// Decode converts raw file bytes to UTF-8 text. An empty encoding name
// auto-detects from the leading bytes; an explicit name that is not
// supported is an error. Auto-detection that lands on an unrecognized
// charset falls back to UTF-8 rather than refusing the file.
func Decode(data []byte, encoding string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	auto := name == ""
	if auto {
		name = detect(data)
	}

	if cm := charmapFor(name); cm != nil {
		out, _, err := transform.Bytes(cm.NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", name, err)
		}
		return string(out), nil
	}

	switch name {
	case "utf-8", "utf8", "utf-8-sig", "ascii", "us-ascii":
		return string(data), nil
	}

	if auto {
		return string(data), nil
	}
	return "", fmt.Errorf("unsupported encoding %q", encoding)
}

// charmapFor maps supported single-byte encoding names to their decoder.
func charmapFor(name string) *charmap.Charmap {
	switch name {
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1
	case "windows-1251", "cp1251":
		return charmap.Windows1251
	case "windows-1252", "cp1252":
		return charmap.Windows1252
	}
	return nil
}

// detect guesses the charset of data from its leading bytes.
func detect(data []byte) string {
	sample := data
	if len(sample) > detectSampleSize {
		sample = sample[:detectSampleSize]
	}
	if len(sample) == 0 {
		return "utf-8"
	}

	best, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || best == nil {
		return "utf-8"
	}
	return strings.ToLower(best.Charset)
}
