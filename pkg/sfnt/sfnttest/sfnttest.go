// Package sfnttest builds OpenType containers in memory for tests. The
// builders produce just enough structure for identity extraction: an sfnt
// table directory, a name table, and a filler head table so directory
// scans have something to step over. Offsets follow the real format,
// including file-absolute table offsets inside collections.
package sfnttest

import (
	"encoding/binary"
	"unicode/utf16"
)

// NameRecord describes one record in a built name table. Value is encoded
// according to the platform: UTF-16BE for Windows, Latin-1 for Macintosh.
// Raw, when set, is stored verbatim instead of Value.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      string
	Raw        []byte
}

// WindowsRecord returns a Windows platform, Unicode BMP, US English record.
func WindowsRecord(nameID uint16, value string) NameRecord {
	return NameRecord{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: nameID, Value: value}
}

// MacRecord returns a Macintosh platform, Roman encoding record.
func MacRecord(nameID uint16, value string) NameRecord {
	return NameRecord{PlatformID: 1, NameID: nameID, Value: value}
}

// Font describes one sfnt font to build. A zero Version means 0x00010000.
type Font struct {
	Version uint32
	Names   []NameRecord
}

// Identity returns a font with Windows records for name IDs 1, 2, and 5.
func Identity(family, subfamily, version string) Font {
	return Font{Names: []NameRecord{
		WindowsRecord(1, family),
		WindowsRecord(2, subfamily),
		WindowsRecord(5, version),
	}}
}

// BuildFont serializes a single standalone sfnt container.
func BuildFont(f Font) []byte {
	return appendFont(nil, f)
}

// BuildCollection serializes a TrueType Collection holding the given
// fonts. Each font keeps its own table directory and name table; table
// offsets are absolute from the start of the returned buffer.
func BuildCollection(fonts ...Font) []byte {
	buf := make([]byte, 12+4*len(fonts))
	binary.BigEndian.PutUint32(buf[0:], 0x74746366) // "ttcf"
	binary.BigEndian.PutUint32(buf[4:], 0x00010000)
	binary.BigEndian.PutUint32(buf[8:], uint32(len(fonts)))
	for i, f := range fonts {
		binary.BigEndian.PutUint32(buf[12+4*i:], uint32(len(buf)))
		buf = appendFont(buf, f)
	}
	return buf
}

// appendFont appends one font block to buf: offset table, two table
// records (head, name), head filler, then the name table.
func appendFont(buf []byte, f Font) []byte {
	base := len(buf)
	version := f.Version
	if version == 0 {
		version = 0x00010000
	}
	nameTable := buildNameTable(f.Names)
	headData := []byte{0, 1, 0, 0}

	const numTables = 2
	headOffset := base + 12 + numTables*16
	nameOffset := headOffset + len(headData)

	header := make([]byte, 12)
	binary.BigEndian.PutUint32(header[0:], version)
	binary.BigEndian.PutUint16(header[4:], numTables)
	// searchRange, entrySelector, rangeShift for two tables.
	binary.BigEndian.PutUint16(header[6:], 32)
	binary.BigEndian.PutUint16(header[8:], 1)
	binary.BigEndian.PutUint16(header[10:], 0)
	buf = append(buf, header...)

	buf = appendTableRecord(buf, "head", headOffset, len(headData))
	buf = appendTableRecord(buf, "name", nameOffset, len(nameTable))
	buf = append(buf, headData...)
	buf = append(buf, nameTable...)
	return buf
}

func appendTableRecord(buf []byte, tag string, offset, length int) []byte {
	rec := make([]byte, 16)
	copy(rec[0:4], tag)
	// rec[4:8] is the checksum, which readers skip.
	binary.BigEndian.PutUint32(rec[8:], uint32(offset))
	binary.BigEndian.PutUint32(rec[12:], uint32(length))
	return append(buf, rec...)
}

// buildNameTable serializes a format 0 name table with the records in the
// given order. Record order is significant for override tests.
func buildNameTable(records []NameRecord) []byte {
	storageOffset := 6 + 12*len(records)
	table := make([]byte, storageOffset)
	// table[0:2] is the format field, left at zero.
	binary.BigEndian.PutUint16(table[2:], uint16(len(records)))
	binary.BigEndian.PutUint16(table[4:], uint16(storageOffset))

	var storage []byte
	for i, r := range records {
		value := r.Raw
		if value == nil {
			value = encodeValue(r)
		}
		rec := table[6+12*i:]
		binary.BigEndian.PutUint16(rec[0:], r.PlatformID)
		binary.BigEndian.PutUint16(rec[2:], r.EncodingID)
		binary.BigEndian.PutUint16(rec[4:], r.LanguageID)
		binary.BigEndian.PutUint16(rec[6:], r.NameID)
		binary.BigEndian.PutUint16(rec[8:], uint16(len(value)))
		binary.BigEndian.PutUint16(rec[10:], uint16(len(storage)))
		storage = append(storage, value...)
	}
	return append(table, storage...)
}

func encodeValue(r NameRecord) []byte {
	if r.PlatformID == 3 {
		return EncodeUTF16BE(r.Value)
	}
	return encodeLatin1(r.Value)
}

// EncodeUTF16BE encodes s as big-endian UTF-16 without a BOM.
func EncodeUTF16BE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 2*len(units))
	for i, u := range units {
		binary.BigEndian.PutUint16(out[2*i:], u)
	}
	return out
}

func encodeLatin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xff {
			r = '?'
		}
		out = append(out, byte(r))
	}
	return out
}
