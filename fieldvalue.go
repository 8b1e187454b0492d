package n2k

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf16"
)

// NMEA2000 number fields reserve their most positive values as special markers. For example for
// 8-bit unsigned fields 0xFF means "no data", 0xFE "out of range" and 0xFD "reserved". Signed
// fields reserve 0x7F, 0x7E, 0x7D respectively.
var (
	// ErrValueNoData indicates that field has no data (for example 8bits uint8=>0xFF, int8=>0x7F)
	ErrValueNoData = errors.New("field value has no data")
	// ErrValueOutOfRange indicates that field value is out of valid range (for example 8bits uint8=>0xFE, int8=>0x7E)
	ErrValueOutOfRange = errors.New("field value out of range")
	// ErrValueReserved indicates that field is reserved (for example 8bits uint8=>0xFD, int8=>0x7D)
	ErrValueReserved = errors.New("field value is reserved")
)

var epoch = time.Unix(0, 0).UTC()

// FieldValues is slice of FieldValue
type FieldValues []FieldValue

// FieldValue holds extracted and processed value for single PGN field
type FieldValue struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	// normalized to:
	// * string,
	// * float64,
	// * int64,
	// * uint64,
	// * []byte,
	// * time.Duration,
	// * time.Time,
	// * []n2k.FieldValues <-- for repeating fieldsets
	Value interface{} `json:"value"`
}

// AsFloat64 converts value to float64 if it is possible.
func (f FieldValue) AsFloat64() (float64, bool) {
	switch v := f.Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case time.Duration:
		return float64(v), true
	case time.Time:
		return float64(v.UnixNano()), true
	}
	return 0, false
}

func (fvs FieldValues) FindByID(ID string) (FieldValue, bool) {
	for _, f := range fvs {
		if f.ID == ID {
			return f, true
		}
	}
	return FieldValue{}, false
}

// RawData is payload of single assembled message. Bit and byte order on the wire is little-endian.
type RawData []byte

// DecodeBytes extracts bitLength bits starting at bitOffset as byte slice. Extracted bits are
// shifted down to start of first result byte.
func (d *RawData) DecodeBytes(bitOffset uint16, bitLength uint16, isVariableSize bool) ([]byte, uint16, error) {
	rawData := []byte(*d)

	endByteIndex := (bitOffset + bitLength - 1) / 8
	if int(endByteIndex) > len(rawData)-1 {
		if isVariableSize { // variable length caps bit length to packet end so we can read shorter data
			endByteIndex = uint16(len(rawData) - 1)
			bitLength -= (bitOffset + bitLength) - uint16(len(rawData)*8)
		} else {
			return nil, 0, fmt.Errorf("bitoffset is out of bounds of data")
		}
	}

	length := (bitLength + 7) / 8
	result := make([]byte, length)

	startByteIndex := bitOffset / 8
	startBitIndex := bitOffset % 8
	if startByteIndex == endByteIndex { // single byte, everything starts and ends at the same byte
		result[0] = rawData[startByteIndex] >> startBitIndex
		if unnecessaryBits := bitLength % 8; unnecessaryBits != 0 {
			result[0] &= 0xFF >> (8 - unnecessaryBits)
		}
	} else if startBitIndex != 0 { // multibyte, shift leading bits off and pull the rest of each result byte from the next data byte
		for i := uint16(0); i < length; i++ {
			b := rawData[startByteIndex+i] >> startBitIndex
			// the last field byte may end before the next data byte, never read past it
			if startByteIndex+i < endByteIndex {
				b |= rawData[startByteIndex+i+1] << (8 - startBitIndex)
			}
			result[i] = b
		}
		if unnecessaryBits := bitLength % 8; unnecessaryBits != 0 {
			result[len(result)-1] &= 0xFF >> (8 - unnecessaryBits)
		}
	} else { // multibyte, but starts exactly at byte border
		copy(result, rawData[startByteIndex:endByteIndex+1])
		unnecessaryBits := bitLength % 8
		if unnecessaryBits != 0 {
			result[len(result)-1] &= 0xFF >> (8 - unnecessaryBits)
		}
	}

	return result, bitLength, nil
}

func (d *RawData) DecodeVariableUint(bitOffset uint16, bitLength uint16) (uint64, error) {
	return d.decodeVariableInt(bitOffset, bitLength, false)
}

func (d *RawData) DecodeVariableInt(bitOffset uint16, bitLength uint16) (int64, error) {
	variableUInt, err := d.decodeVariableInt(bitOffset, bitLength, true)
	return int64(variableUInt), err
}

func (d *RawData) decodeVariableInt(bitOffset uint16, bitLength uint16, signed bool) (uint64, error) {
	if bitLength > 64 {
		return 0, fmt.Errorf("bit length larger than can be decoded")
	}
	startByteIndex := bitOffset / 8
	endByteIndex := ((bitOffset + bitLength + 7) / 8) - 1
	rawData := []byte(*d)
	if int(endByteIndex) >= len(rawData) {
		return 0, fmt.Errorf("bitoffset is out of bounds of data")
	}

	rawBytes := make([]byte, 8)
	copy(rawBytes, rawData[startByteIndex:endByteIndex+1])
	result := binary.LittleEndian.Uint64(rawBytes)

	// in case we do not start at byte border the rightmost bits are what interest us, clear leading bits off
	result >>= bitOffset % 8
	mask := (^uint64(0)) >> (64 - bitLength)
	// in case we do not end exactly at the end of last byte, clear those bits at the end
	result = result & mask

	isNegative := false
	if signed {
		// check if at current bit length MSB is set so cast to int64 would have correct sign
		isNegative = result&(1<<(bitLength-1)) != 0
		mask = mask >> 1 // for special value checking
	}

	if bitLength >= 4 { // 2 and 3 bit number fields only reserve the all-ones "no data" marker
		if result == mask {
			return 0, ErrValueNoData
		} else if result == (mask - 1) {
			return 0, ErrValueOutOfRange
		} else if result == (mask - 2) {
			return 0, ErrValueReserved
		}
	} else if bitLength >= 2 && result == mask {
		return 0, ErrValueNoData
	}

	if isNegative {
		// negative numbers have all higher bits toggled
		negativeMask := ^((^uint64(0)) >> (64 - bitLength))
		result |= negativeMask
	}
	return result, nil
}

// DecodeTime decodes duration field. Absolute times in NMEA2000 are expressed as seconds since
// midnight (in an undefined timezone).
func (d *RawData) DecodeTime(bitOffset uint16, bitLength uint16, resolution float64) (time.Duration, error) {
	rawSeconds, err := d.DecodeVariableUint(bitOffset, bitLength)
	if err != nil {
		return 0, err
	}

	result := time.Duration(uint64(float64(rawSeconds)*resolution)) * time.Second
	if resolution < 1 { // we need to extract decimal parts as smaller than seconds units
		// 1 / resolution => 1 / 0.001 => 1 second is 1000 units (millisecond)
		unitsInSecond := uint64(1 / resolution)
		fraction := rawSeconds % unitsInSecond
		// convert fraction to nanoseconds and then add to result
		result += time.Duration((uint64(time.Second) / unitsInSecond) * fraction)
	}

	return result, nil
}

// DecodeDate decodes 16 bit date field expressed as days since 1 January 1970.
func (d *RawData) DecodeDate(bitOffset uint16, bitLength uint16) (time.Time, error) {
	if bitLength != 16 {
		return time.Time{}, fmt.Errorf("can only decode date with 16 bits")
	}
	rawBytes, _, err := d.DecodeBytes(bitOffset, bitLength, false)
	if err != nil {
		return time.Time{}, err
	}
	daysSinceEpoch := binary.LittleEndian.Uint16(rawBytes)

	if daysSinceEpoch == math.MaxUint16 {
		return time.Time{}, ErrValueNoData
	} else if daysSinceEpoch == (math.MaxUint16 - 1) {
		return time.Time{}, ErrValueOutOfRange
	} else if daysSinceEpoch == (math.MaxUint16 - 2) {
		return time.Time{}, ErrValueReserved
	}

	return epoch.AddDate(0, 0, int(daysSinceEpoch)), nil
}

// DecodeStringFix decodes fixed length string field. Trailing bytes have been observed
// as '@', ' ', 0x0 or 0xff.
func (d *RawData) DecodeStringFix(bitOffset uint16, bitLength uint16) (string, error) {
	rawBytes, _, err := d.DecodeBytes(bitOffset, bitLength, false)
	if err != nil {
		return "", err
	}
	length := 0
	for length < len(rawBytes) {
		b := rawBytes[length]
		if b == 0xFF || b == 0x0 || b == '@' {
			break
		}
		length++
	}
	if length == 0 {
		if len(rawBytes) > 0 && rawBytes[0] == 0xFF {
			// 0xFF filled field carries no value, unlike empty string padded with 0x0 or '@'
			return "", ErrValueNoData
		}
		return "", nil
	} else if length == len(rawBytes) {
		return string(rawBytes), nil
	}
	return string(rawBytes[0:length]), nil
}

// DecodeStringLAU decodes variable length string field. First byte is total length including the
// two header bytes, second byte is encoding (0 = UTF-16, 1 = ASCII/UTF-8). Returns number of bits
// read so that the caller can locate the following field.
func (d *RawData) DecodeStringLAU(bitOffset uint16) (string, uint16, error) {
	headerBytes, _, err := d.DecodeBytes(bitOffset, 16, false)
	if err != nil {
		return "", 0, err
	}
	length := uint16(headerBytes[0])
	if length == 2 {
		return "", 16, nil
	} else if length < 2 {
		return "", 0, fmt.Errorf("lau string length is below its 2 byte header")
	}
	length -= 2
	encoding := headerBytes[1]
	rawBytes, readBits, err := d.DecodeBytes(bitOffset+16, length*8, true)
	if err != nil {
		return "", 0, err
	}
	readBits += 16 // put length and encoding bits back to report correct read size

	switch encoding {
	case 0: // utf16, optionally lead by a byte order mark
		if len(rawBytes) >= 2 && rawBytes[0] == 0xFF && rawBytes[1] == 0xFE {
			s, err := decodeUtf16(rawBytes[2:], binary.LittleEndian)
			return s, readBits, err
		}
		if len(rawBytes) >= 2 && rawBytes[0] == 0xFE && rawBytes[1] == 0xFF {
			s, err := decodeUtf16(rawBytes[2:], binary.BigEndian)
			return s, readBits, err
		}
		s, err := decodeUtf16(rawBytes, binary.LittleEndian)
		return s, readBits, err
	case 1: // ascii/utf8, trailing 0x0 and 0xFF mean no data
		end := 0
		for _, b := range rawBytes {
			if b == 0 || b == 0xFF {
				break
			}
			end++
		}
		return string(rawBytes[:end]), readBits, nil
	}
	return "", 0, fmt.Errorf("lau string has invalid encoding: %v", encoding)
}

func decodeUtf16(b []byte, order binary.ByteOrder) (string, error) {
	ints := make([]uint16, len(b)/2)
	if err := binary.Read(bytes.NewReader(b), order, &ints); err != nil {
		return "", fmt.Errorf("failed to decode utf16 string, err: %w", err)
	}
	return string(utf16.Decode(ints)), nil
}

// PutVariableUint writes value into bitLength bits starting at bitOffset. Fails with
// ErrFieldOverflow before touching the buffer when value does not fit.
func (d *RawData) PutVariableUint(bitOffset uint16, bitLength uint16, value uint64) error {
	if bitLength > 64 {
		return fmt.Errorf("bit length larger than can be encoded")
	}
	mask := (^uint64(0)) >> (64 - bitLength)
	if value > mask {
		return ErrFieldOverflow
	}
	return d.putBits(bitOffset, bitLength, value)
}

// PutVariableInt writes signed value as two's complement into bitLength bits starting at bitOffset.
func (d *RawData) PutVariableInt(bitOffset uint16, bitLength uint16, value int64) error {
	if bitLength > 64 {
		return fmt.Errorf("bit length larger than can be encoded")
	}
	maxValue := int64((^uint64(0))>>(64-bitLength)) >> 1
	minValue := -maxValue - 1
	if value > maxValue || value < minValue {
		return ErrFieldOverflow
	}
	mask := (^uint64(0)) >> (64 - bitLength)
	return d.putBits(bitOffset, bitLength, uint64(value)&mask)
}

// PutNoData writes the "no data" marker pattern (all ones for unsigned, max positive for signed).
// Fields wider than 64 bits (fixed strings, binary blobs) are byte aligned and get 0xFF fill.
func (d *RawData) PutNoData(bitOffset uint16, bitLength uint16, signed bool) error {
	if bitLength > 64 {
		if bitOffset%8 != 0 || bitLength%8 != 0 {
			return fmt.Errorf("fields wider than 64 bits must be byte aligned")
		}
		rawData := []byte(*d)
		startByteIndex := int(bitOffset / 8)
		endByteIndex := startByteIndex + int(bitLength/8)
		if endByteIndex > len(rawData) {
			return fmt.Errorf("bitoffset is out of bounds of data")
		}
		for i := startByteIndex; i < endByteIndex; i++ {
			rawData[i] = 0xFF
		}
		return nil
	}
	pattern := (^uint64(0)) >> (64 - bitLength)
	if signed {
		pattern = pattern >> 1
	}
	return d.putBits(bitOffset, bitLength, pattern)
}

func (d *RawData) putBits(bitOffset uint16, bitLength uint16, value uint64) error {
	rawData := []byte(*d)
	endByteIndex := ((bitOffset + bitLength + 7) / 8) - 1
	if int(endByteIndex) >= len(rawData) {
		return fmt.Errorf("bitoffset is out of bounds of data")
	}

	bit := bitOffset
	remaining := bitLength
	for remaining > 0 {
		byteIndex := bit / 8
		bitIndex := bit % 8
		chunk := 8 - bitIndex
		if chunk > remaining {
			chunk = remaining
		}
		chunkMask := byte((uint16(1)<<chunk)-1) << bitIndex
		rawData[byteIndex] = (rawData[byteIndex] &^ chunkMask) | (byte(value)<<bitIndex)&chunkMask

		value >>= chunk
		bit += chunk
		remaining -= chunk
	}
	return nil
}

// PutStringFix writes fixed length string field padding unused trailing bytes with 0xFF.
func (d *RawData) PutStringFix(bitOffset uint16, bitLength uint16, value string) error {
	if bitOffset%8 != 0 || bitLength%8 != 0 {
		return fmt.Errorf("fixed string fields must be byte aligned")
	}
	byteLength := int(bitLength / 8)
	if len(value) > byteLength {
		return ErrFieldOverflow
	}
	rawData := []byte(*d)
	startByteIndex := int(bitOffset / 8)
	if startByteIndex+byteLength > len(rawData) {
		return fmt.Errorf("bitoffset is out of bounds of data")
	}
	copy(rawData[startByteIndex:], value)
	for i := startByteIndex + len(value); i < startByteIndex+byteLength; i++ {
		rawData[i] = 0xFF
	}
	return nil
}

// PutBytes writes raw bytes into byte aligned field.
func (d *RawData) PutBytes(bitOffset uint16, bitLength uint16, value []byte) error {
	if bitOffset%8 != 0 || bitLength%8 != 0 {
		return fmt.Errorf("binary fields must be byte aligned")
	}
	byteLength := int(bitLength / 8)
	if len(value) > byteLength {
		return ErrFieldOverflow
	}
	rawData := []byte(*d)
	startByteIndex := int(bitOffset / 8)
	if startByteIndex+byteLength > len(rawData) {
		return fmt.Errorf("bitoffset is out of bounds of data")
	}
	copy(rawData[startByteIndex:], value)
	return nil
}

func (d *RawData) AsHex() string {
	if d == nil {
		return ""
	}
	return hex.EncodeToString(*d)
}

// EnumValue is value+code pair for lookup type fields.
type EnumValue struct {
	Value uint32 `json:"value"`
	Code  string `json:"code"`
}
