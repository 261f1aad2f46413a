package scan

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// textChunkSize is the read granularity of the binary/text heuristic.
const textChunkSize = 1024

// IsTextFile reports whether every 1KB chunk of the file decodes as valid
// UTF-8 on its own. The first invalid chunk marks the file binary and stops
// the read. Multibyte runes straddling a chunk boundary fail validation;
// that misclassification is long-standing behavior and is kept as-is.
func IsTextFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, textChunkSize)
	for {
		n, err := io.ReadFull(f, buf)
		if n > 0 && !utf8.Valid(buf[:n]) {
			return false, nil
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return true, nil
		}
		if err != nil {
			return false, fmt.Errorf("cannot read %s: %w", path, err)
		}
	}
}
