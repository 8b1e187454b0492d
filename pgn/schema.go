// Package pgn contains the compiled-in PGN schema catalog and schema driven codec that maps
// raw NMEA2000 payloads to and from typed field values.
package pgn

import (
	"errors"
	"fmt"

	n2k "github.com/openmarine/go-n2k"
)

// FieldType tells codec how raw bits of a field are to be interpreted.
type FieldType string

const (
	// FieldTypeNumber - little-endian binary number, signed ones as two's complement. Most
	// positive values are reserved as "no data" / "out of range" / "reserved" markers.
	FieldTypeNumber FieldType = "NUMBER"
	// FieldTypeLookup - number where each value encodes a distinct meaning given by field enumeration
	FieldTypeLookup FieldType = "LOOKUP"
	// FieldTypeBitLookup - number where each set bit encodes a distinct meaning
	FieldTypeBitLookup FieldType = "BITLOOKUP"
	// FieldTypeTime - duration, seconds since midnight scaled by resolution
	FieldTypeTime FieldType = "TIME"
	// FieldTypeDate - 16 bit count of days since 1 January 1970
	FieldTypeDate FieldType = "DATE"
	// FieldTypeStringFix - fixed length string of single byte codepoints, 0xFF padded
	FieldTypeStringFix FieldType = "STRING_FIX"
	// FieldTypeBinary - unspecified content of any number of bits
	FieldTypeBinary FieldType = "BINARY"
	// FieldTypeReserved - reserved field, all bits shall be 1
	FieldTypeReserved FieldType = "RESERVED"
	// FieldTypeSpare - spare field, all bits shall be 0
	FieldTypeSpare FieldType = "SPARE"
	// FieldTypeMMSI - 32 bit number that is always printed as 9 digit string
	FieldTypeMMSI FieldType = "MMSI"
)

// PacketType tells which transport framing the PGN uses on the bus.
type PacketType string

const (
	PacketTypeSingle PacketType = "Single"
	PacketTypeFast   PacketType = "Fast" // up to 223 bytes of payload
)

var (
	// ErrUnknownPGN indicates that no schema is registered for the PGN
	ErrUnknownPGN = errors.New("unknown PGN, no schema registered")

	ErrUnsupportedFieldType = errors.New("unsupported field type")
)

// Field is one of many values packed into PGN payload.
type Field struct {
	ID   string
	Name string

	BitOffset  uint16
	BitLength  uint16
	Signed     bool
	Resolution float64 // scale factor for raw value. result = Offset + (rawValue * Resolution)
	Offset     int32
	Unit       string

	FieldType   FieldType
	Enumeration map[uint32]string // for LOOKUP/BITLOOKUP fields
}

func (f *Field) resolution() float64 {
	if f.Resolution == 0 {
		return 1
	}
	return f.Resolution
}

func (f *Field) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("field has empty ID")
	}
	if f.BitLength == 0 {
		return fmt.Errorf("field %v has zero bit length", f.ID)
	}
	switch f.FieldType {
	case FieldTypeNumber, FieldTypeTime, FieldTypeBinary, FieldTypeReserved, FieldTypeSpare:
	case FieldTypeDate:
		if f.BitLength != 16 {
			return fmt.Errorf("field %v of type DATE bit length is not 16", f.ID)
		}
	case FieldTypeMMSI:
		if f.BitLength != 32 {
			return fmt.Errorf("field %v of type MMSI bit length is not 32", f.ID)
		}
	case FieldTypeStringFix:
		if f.BitLength%8 != 0 {
			return fmt.Errorf("field %v of type STRING_FIX is not byte aligned", f.ID)
		}
	case FieldTypeLookup, FieldTypeBitLookup:
		if len(f.Enumeration) == 0 {
			return fmt.Errorf("field %v of type %v has no enumeration", f.ID, f.FieldType)
		}
	default:
		return fmt.Errorf("field %v: %w: %v", f.ID, ErrUnsupportedFieldType, f.FieldType)
	}
	return nil
}

// Schema describes field layout of single PGN.
type Schema struct {
	PGN         uint32
	Description string
	Type        PacketType

	// Length is payload byte length of the fixed part of the message. PGNs with a repeating
	// field set grow by RepeatingFieldSetSize stride per repetition.
	Length uint16

	Fields []Field

	// RepeatingFieldSetStartField is 1-based index of first field belonging to the repeating
	// group, 0 when PGN has none. Group spans RepeatingFieldSetSize consecutive fields and
	// repeats the count given by RepeatingFieldSetCountField, or until payload is exhausted
	// when RepeatingFieldSetCountField is 0.
	RepeatingFieldSetStartField int
	RepeatingFieldSetSize       int
	RepeatingFieldSetCountField int
}

// IsFastPacket reports whether PGN payload is framed with the fast-packet protocol.
func (s *Schema) IsFastPacket() bool {
	return s.Type == PacketTypeFast
}

// repeatingSetStride is bit width of one repetition of the repeating field group.
func (s *Schema) repeatingSetStride() uint16 {
	if s.RepeatingFieldSetStartField == 0 {
		return 0
	}
	stride := uint16(0)
	for i := s.RepeatingFieldSetStartField - 1; i < s.RepeatingFieldSetStartField-1+s.RepeatingFieldSetSize; i++ {
		stride += s.Fields[i].BitLength
	}
	return stride
}

func (s *Schema) Validate() error {
	if s.PGN == 0 {
		return fmt.Errorf("schema has zero PGN")
	}
	if s.Type != PacketTypeSingle && s.Type != PacketTypeFast {
		return fmt.Errorf("PGN %v has unknown packet type: %v", s.PGN, s.Type)
	}
	if s.Type == PacketTypeSingle && s.Length > 8 {
		return fmt.Errorf("PGN %v single frame schema exceeds 8 bytes", s.PGN)
	}
	if s.Length > n2k.FastPacketMaxSize {
		return fmt.Errorf("PGN %v schema exceeds fast-packet maximum size", s.PGN)
	}

	seen := map[string]struct{}{}
	bitOffset := uint16(0)
	for i, f := range s.Fields {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("PGN %v: %w", s.PGN, err)
		}
		if _, ok := seen[f.ID]; ok {
			return fmt.Errorf("PGN %v has duplicate field ID: %v", s.PGN, f.ID)
		}
		seen[f.ID] = struct{}{}

		// fields must be contiguous, offsets are part of the catalog to keep layouts reviewable
		if f.BitOffset != bitOffset {
			return fmt.Errorf("PGN %v field %v bit offset %v does not match expected %v", s.PGN, f.ID, f.BitOffset, bitOffset)
		}
		bitOffset += f.BitLength

		if s.RepeatingFieldSetCountField == i+1 && f.FieldType != FieldTypeNumber {
			return fmt.Errorf("PGN %v field %v with non NUMBER type as repeating set count field", s.PGN, f.ID)
		}
	}

	if s.RepeatingFieldSetStartField > 0 {
		if s.RepeatingFieldSetSize <= 0 {
			return fmt.Errorf("PGN %v has repeating set without size", s.PGN)
		}
		if s.RepeatingFieldSetStartField-1+s.RepeatingFieldSetSize > len(s.Fields) {
			return fmt.Errorf("PGN %v repeating set exceeds field list", s.PGN)
		}
		if s.RepeatingFieldSetCountField >= s.RepeatingFieldSetStartField {
			return fmt.Errorf("PGN %v repeating set count field is not before start field", s.PGN)
		}
		// fixed part ends where the repeating group starts
		fixedBits := s.Fields[s.RepeatingFieldSetStartField-1].BitOffset
		if fixedBits != s.Length*8 {
			return fmt.Errorf("PGN %v fixed part bit length %v does not match declared length %v bytes", s.PGN, fixedBits, s.Length)
		}
	} else if bitOffset != s.Length*8 {
		return fmt.Errorf("PGN %v fields bit length %v does not match declared length %v bytes", s.PGN, bitOffset, s.Length)
	}
	return nil
}
