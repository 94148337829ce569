package extractor

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeText converts raw upload bytes to a UTF-8 string. UTF-8 and UTF-16
// byte order marks are honoured; invalid UTF-8 falls back to Windows-1252,
// which is what spreadsheet tools on Windows usually export.
func decodeText(data []byte) (string, error) {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return string(data[3:]), nil
	}

	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		decoded, _, err := transform.Bytes(decoder, data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}

	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		decoder := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		decoded, _, err := transform.Bytes(decoder, data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoder := charmap.Windows1252.NewDecoder()
	decoded, _, err := transform.Bytes(decoder, data)
	if err == nil {
		return string(decoded), nil
	}

	decoder = charmap.ISO8859_1.NewDecoder()
	decoded, _, err = transform.Bytes(decoder, data)
	if err == nil {
		return string(decoded), nil
	}

	return string(data), nil
}

// ValidateText checks if the data appears to be text rather than binary.
// UTF-16 input is accepted by its byte order mark.
func ValidateText(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty file")
	}

	if len(data) >= 2 && ((data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF)) {
		return nil
	}

	printableCount := 0
	sampleSize := 512
	if len(data) < sampleSize {
		sampleSize = len(data)
	}

	for i := 0; i < sampleSize; i++ {
		b := data[i]
		// Printable ASCII, tabs, newlines, carriage returns, and high bytes of
		// UTF-8 or Windows-1252 text.
		if (b >= 32 && b <= 126) || b == '\t' || b == '\n' || b == '\r' || b >= 0x80 {
			printableCount++
		}
	}

	if float64(printableCount)/float64(sampleSize) < 0.8 {
		return fmt.Errorf("file does not appear to be valid text")
	}

	return nil
}
