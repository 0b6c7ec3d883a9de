package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"stardate/internal/config"
)

// maxLineBytes caps a single script line. Scene descriptions in the corpus run
// long but stay well below this.
const maxLineBytes = 1 << 20

func decoderFor(name string) (transform.Transformer, error) {
	var enc encoding.Encoding
	switch name {
	case "", config.EncodingUTF8:
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case config.EncodingWindows1252:
		enc = charmap.Windows1252
	case config.EncodingISO88591:
		enc = charmap.ISO8859_1
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc.NewDecoder(), nil
}

// ReadLines decodes r from the named encoding and splits it into lines.
// Trailing carriage returns are removed so CRLF files scan the same as LF.
func ReadLines(r io.Reader, encodingName string) ([]string, error) {
	decoder, err := decoderFor(encodingName)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
