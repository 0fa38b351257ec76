package sfnt

import (
	"encoding/binary"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const (
	// nameHeaderLen covers the format, count, and string-storage offset
	// fields of the name table.
	nameHeaderLen = 6
	// nameRecordLen is one name record: platform, encoding, language,
	// name ID, length, offset.
	nameRecordLen = 12
)

const (
	platformMacintosh  = 1
	platformWindows    = 3
	encodingUnicodeBMP = 1
)

var (
	utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	latin1  = charmap.ISO8859_1
)

// readNames decodes the name table at tableOffset into a name ID to string
// map. Windows platform Unicode BMP strings always win: they overwrite any
// value stored earlier for the same ID. Macintosh platform strings are
// decoded as Latin-1 and fill IDs that are still unset. Records for other
// platform and encoding combinations are recognized but store nothing. A
// table whose header or record array runs past the data yields nil.
func readNames(data []byte, tableOffset int) map[uint16]string {
	// tableOffset+0 is the format field; both format 0 and the format 1
	// language-tag extension keep the fields below at the same positions.
	count, ok := readU16(data, tableOffset+2)
	if !ok {
		return nil
	}
	storage, ok := readU16(data, tableOffset+4)
	if !ok {
		return nil
	}
	recBase := tableOffset + nameHeaderLen
	if recBase+int(count)*nameRecordLen > len(data) {
		return nil
	}
	storageBase := tableOffset + int(storage)

	names := make(map[uint16]string, count)
	for i := 0; i < int(count); i++ {
		rec := recBase + i*nameRecordLen
		platform := binary.BigEndian.Uint16(data[rec:])
		encoding := binary.BigEndian.Uint16(data[rec+2:])
		// rec+4 holds the language ID, which identity resolution ignores.
		id := binary.BigEndian.Uint16(data[rec+6:])
		length := int(binary.BigEndian.Uint16(data[rec+8:]))
		offset := int(binary.BigEndian.Uint16(data[rec+10:]))

		if _, taken := names[id]; taken && platform != platformWindows {
			// Only a Windows record may replace a stored value.
			continue
		}

		value := clampSlice(data, storageBase+offset, length)
		switch {
		case platform == platformWindows && encoding == encodingUnicodeBMP:
			names[id] = decodeUTF16BE(value)
		case platform == platformMacintosh:
			names[id] = decodeLatin1(value)
		}
	}
	return names
}

// clampSlice returns the in-range portion of data[off:off+length]. String
// storage in the wild is sometimes shorter than its records claim; the
// readable portion is still worth decoding.
func clampSlice(data []byte, off, length int) []byte {
	if off < 0 || off >= len(data) || length <= 0 {
		return nil
	}
	if off+length > len(data) {
		return data[off:]
	}
	return data[off : off+length]
}

// decodeUTF16BE decodes big-endian UTF-16 bytes. Invalid sequences and odd
// trailing bytes decode to U+FFFD rather than failing.
func decodeUTF16BE(b []byte) string {
	decoded, _ := utf16BE.NewDecoder().Bytes(b)
	return string(decoded)
}

// decodeLatin1 decodes ISO 8859-1 bytes. Every byte maps to a rune, so
// decoding cannot fail.
func decodeLatin1(b []byte) string {
	decoded, _ := latin1.NewDecoder().Bytes(b)
	return string(decoded)
}
