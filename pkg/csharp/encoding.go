package csharp

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding records how a source file was stored so it can be written back
// the same way
type Encoding int

const (
	UTF8 Encoding = iota
	UTF8BOM
	UTF16LE
	UTF16BE
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF8BOM:
		return "utf-8-bom"
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	default:
		return "unknown"
	}
}

// DetectEncoding inspects the byte order mark of src
func DetectEncoding(src []byte) Encoding {
	switch {
	case bytes.HasPrefix(src, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(src, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(src, bomUTF16BE):
		return UTF16BE
	default:
		return UTF8
	}
}

// Decode returns the text of src without its byte order mark. UTF-8 input
// is passed through byte for byte.
func Decode(src []byte) (string, Encoding, error) {
	enc := DetectEncoding(src)
	switch enc {
	case UTF8:
		return string(src), enc, nil
	case UTF8BOM:
		return string(src[len(bomUTF8):]), enc, nil
	}
	out, _, err := transform.Bytes(utf16Encoding(enc).NewDecoder(), src)
	if err != nil {
		return "", enc, err
	}
	return string(out), enc, nil
}

// Encode converts text back to the encoding it was decoded from
func Encode(text string, enc Encoding) ([]byte, error) {
	var e *encoding.Encoder
	switch enc {
	case UTF8BOM:
		e = unicode.UTF8BOM.NewEncoder()
	case UTF16LE, UTF16BE:
		e = utf16Encoding(enc).NewEncoder()
	default:
		return []byte(text), nil
	}
	out, _, err := transform.Bytes(e, []byte(text))
	if err != nil {
		return nil, err
	}
	return out, nil
}

func utf16Encoding(enc Encoding) encoding.Encoding {
	if enc == UTF16BE {
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	}
	return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
}
