// Package sfnt extracts identity metadata from OpenType and TrueType font
// containers, including TrueType Collections. It reads only the table
// directory and the name table; glyph data and layout tables are never
// touched.
//
// Reference: https://learn.microsoft.com/en-us/typography/opentype/spec/otff
package sfnt

import (
	"encoding/binary"
	"errors"
	"strings"
)

// Record holds the identity strings of one logical font. Subfamily and
// Version are empty when the font does not declare them.
type Record struct {
	Family    string
	Subfamily string
	Version   string
}

// Container-level parse failures. Individually malformed fonts inside a
// collection are skipped, not reported.
var (
	ErrNotFont   = errors.New("sfnt: unrecognized container format")
	ErrTruncated = errors.New("sfnt: truncated container header")
)

const (
	verTrueType = 0x00010000 // OpenType with TrueType outlines
	verOTTO     = 0x4f54544f // "OTTO", OpenType with CFF outlines
	verAppleTT  = 0x74727565 // "true", legacy Apple TrueType
	verTyp1     = 0x74797031 // "typ1", legacy Apple PostScript
	ttcTag      = 0x74746366 // "ttcf"
	nameTag     = 0x6e616d65 // "name"
)

const (
	// ttcHeaderLen covers the ttcf tag, the version, and the font count.
	ttcHeaderLen = 12
	// offsetTableLen covers the sfnt version, the table count, and the
	// binary-search fields preceding the table records.
	offsetTableLen = 12
	// tableRecordLen is one table directory record: tag, checksum, offset,
	// length.
	tableRecordLen = 16
)

// Name IDs used for identity resolution.
const (
	nameIDFamily               = 1
	nameIDSubfamily            = 2
	nameIDVersion              = 5
	nameIDTypographicFamily    = 16
	nameIDTypographicSubfamily = 17
)

// ReadRecords extracts one Record per logical font in data. Extraction is
// best effort: malformed input of any kind yields no records. Callers that
// need to distinguish failure kinds should use Parse.
func ReadRecords(data []byte) []Record {
	records, err := Parse(data)
	if err != nil {
		return nil
	}
	return records
}

// Parse extracts one Record per logical font in data, in the order the
// fonts appear. A file that is not a recognized container yields
// ErrNotFont; a collection whose header or offset array is cut short
// yields ErrTruncated. Past the container frame, extraction degrades per
// font: a font with a malformed table directory, no name table, or no
// resolvable family name contributes nothing. A collection declaring zero
// fonts parses to an empty result.
func Parse(data []byte) ([]Record, error) {
	if len(data) < 4 {
		return nil, ErrTruncated
	}
	tag := binary.BigEndian.Uint32(data)
	if tag != ttcTag {
		if !recognizedVersion(tag) {
			return nil, ErrNotFont
		}
		if rec, ok := readFont(data, 0); ok {
			return []Record{rec}, nil
		}
		return nil, nil
	}

	if len(data) < ttcHeaderLen {
		return nil, ErrTruncated
	}
	numFonts := binary.BigEndian.Uint32(data[8:])
	if uint64(len(data)) < ttcHeaderLen+4*uint64(numFonts) {
		return nil, ErrTruncated
	}

	var records []Record
	for i := 0; i < int(numFonts); i++ {
		offset := binary.BigEndian.Uint32(data[ttcHeaderLen+4*i:])
		if int64(offset) >= int64(len(data)) {
			continue
		}
		if rec, ok := readFont(data, int(offset)); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// readFont reads the table directory rooted at base and resolves the name
// table into a Record. ok is false when the font is malformed, carries no
// name table, or resolves no family name; such a font contributes nothing.
func readFont(data []byte, base int) (Record, bool) {
	version, ok := readU32(data, base)
	if !ok || !recognizedVersion(version) {
		return Record{}, false
	}
	numTables, ok := readU16(data, base+4)
	if !ok {
		return Record{}, false
	}

	nameOffset := -1
	for i := 0; i < int(numTables); i++ {
		recOff := base + offsetTableLen + i*tableRecordLen
		tag, ok := readU32(data, recOff)
		if !ok {
			return Record{}, false
		}
		if tag != nameTag {
			continue
		}
		// Table record offsets are absolute from the start of the file,
		// even for fonts embedded in a collection. Do not add base here.
		off, ok := readU32(data, recOff+8)
		if !ok || int64(off) >= int64(len(data)) {
			return Record{}, false
		}
		nameOffset = int(off)
		break
	}
	if nameOffset < 0 {
		return Record{}, false
	}

	names := readNames(data, nameOffset)
	family := names[nameIDTypographicFamily]
	if family == "" {
		family = names[nameIDFamily]
	}
	if family == "" {
		return Record{}, false
	}
	subfamily := names[nameIDTypographicSubfamily]
	if subfamily == "" {
		subfamily = names[nameIDSubfamily]
	}
	return Record{
		Family:    family,
		Subfamily: subfamily,
		Version:   strings.TrimSpace(names[nameIDVersion]),
	}, true
}

// recognizedVersion reports whether tag names a table directory this
// package understands: OpenType with TrueType or CFF outlines, plus the
// legacy Apple "true" and "typ1" containers.
func recognizedVersion(tag uint32) bool {
	switch tag {
	case verTrueType, verOTTO, verAppleTT, verTyp1:
		return true
	}
	return false
}

func readU16(data []byte, off int) (uint16, bool) {
	if off < 0 || off+2 > len(data) {
		return 0, false
	}
	return binary.BigEndian.Uint16(data[off:]), true
}

func readU32(data []byte, off int) (uint32, bool) {
	if off < 0 || off+4 > len(data) {
		return 0, false
	}
	return binary.BigEndian.Uint32(data[off:]), true
}
