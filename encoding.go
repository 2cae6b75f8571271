package readability

import (
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// decodeHTML converts raw bytes to a UTF-8 string for ParseBytes. A
// declared <meta charset> wins; otherwise chardet sniffs the byte
// stream. Anything chardet can't decode confidently falls back to
// treating the bytes as UTF-8 already, matching spec.md §7's policy
// that encoding heuristics fail silently rather than erroring out.
func decodeHTML(data []byte) string {
	if enc := metaCharsetEncoding(data); enc != nil {
		if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
			return string(decoded)
		}
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result.Confidence < 80 {
		return string(data)
	}

	enc := encodingByName(result.Charset)
	if enc == nil {
		return string(data)
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

func metaCharsetEncoding(data []byte) encoding.Encoding {
	search := data
	if len(search) > 1024 {
		search = data[:1024]
	}
	content := strings.ToLower(string(search))
	idx := strings.Index(content, "charset=")
	if idx == -1 {
		return nil
	}
	start := idx + len("charset=")
	end := start
	for end < len(content) && content[end] != '"' && content[end] != '\'' && content[end] != '>' && content[end] != ' ' {
		end++
	}
	if end <= start {
		return nil
	}
	return encodingByName(content[start:end])
}

func encodingByName(charset string) encoding.Encoding {
	charset = strings.ToLower(strings.ReplaceAll(charset, "_", "-"))
	switch charset {
	case "utf-8", "utf8":
		return unicode.UTF8
	case "utf-16", "utf16", "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1
	case "iso-8859-2", "latin2":
		return charmap.ISO8859_2
	case "iso-8859-15", "latin9":
		return charmap.ISO8859_15
	case "windows-1250", "cp1250":
		return charmap.Windows1250
	case "windows-1251", "cp1251":
		return charmap.Windows1251
	case "windows-1252", "cp1252":
		return charmap.Windows1252
	case "shift-jis", "shift_jis", "sjis":
		return japanese.ShiftJIS
	case "euc-jp", "eucjp":
		return japanese.EUCJP
	case "euc-kr", "euckr":
		return korean.EUCKR
	case "gbk":
		return simplifiedchinese.GBK
	case "gb18030", "gb2312", "gb-2312":
		return simplifiedchinese.GB18030
	case "big5":
		return traditionalchinese.Big5
	case "koi8-r":
		return charmap.KOI8R
	default:
		return nil
	}
}
