package pgn

import (
	"errors"
	"fmt"

	n2k "github.com/openmarine/go-n2k"
)

// FieldSetID is field value ID under which decoded repeating groups are reported.
const FieldSetID = "fieldset"

type DecoderConfig struct {
	// DecodeReservedFields instructs Decoder to include reserved type fields in output
	DecodeReservedFields bool
	// DecodeSpareFields instructs Decoder to include spare type fields in output
	DecodeSpareFields bool
	// DecodeLookupsToEnumType instructs Decoder to convert lookup numbers to value+code pairs
	DecodeLookupsToEnumType bool
}

// Decoder decodes assembled raw messages into typed field values using registry schemas.
type Decoder struct {
	config   DecoderConfig
	registry *Registry
}

// NewDecoder creates decoder over given schema registry.
func NewDecoder(registry *Registry) *Decoder {
	return &Decoder{registry: registry}
}

// NewDecoderWithConfig creates decoder over given schema registry with given config.
func NewDecoderWithConfig(registry *Registry, config DecoderConfig) *Decoder {
	d := NewDecoder(registry)
	d.config = config
	return d
}

var errValueIgnored = errors.New("field value ignored")

// Decode decodes raw message payload into Message with typed field values. Fields whose raw
// bits equal the "no data" marker are left out of the result instead of reporting a bogus number.
func (d *Decoder) Decode(raw n2k.RawMessage) (n2k.Message, error) {
	schema, err := d.registry.Lookup(raw.Header.PGN)
	if err != nil {
		return n2k.Message{}, err
	}

	fields, err := d.decodeFields(schema, raw.Data)
	if err != nil {
		return n2k.Message{}, err
	}
	return n2k.Message{
		Header: raw.Header,
		Fields: fields,
	}, nil
}

func (d *Decoder) decodeFields(schema Schema, data n2k.RawData) (n2k.FieldValues, error) {
	messageBitCount := uint16(len(data) * 8)
	fields := make(n2k.FieldValues, 0, len(schema.Fields))

	fixedEnd := len(schema.Fields)
	if schema.RepeatingFieldSetStartField > 0 {
		fixedEnd = schema.RepeatingFieldSetStartField - 1
	}

	repetitions := -1 // -1 means repeat until payload is exhausted
	bitOffset := uint16(0)
	for i := 0; i < fixedEnd; i++ {
		f := schema.Fields[i]
		if bitOffset+f.BitLength > messageBitCount {
			// trailing fields are optional, shorter payload simply does not carry them
			return fields, nil
		}

		fv, err := d.decodeSingleField(f, data, bitOffset)
		bitOffset += f.BitLength
		if err == errValueIgnored {
			if i+1 == schema.RepeatingFieldSetCountField {
				repetitions = 0 // count "no data" means no repetitions
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		if i+1 == schema.RepeatingFieldSetCountField {
			count, ok := fv.Value.(uint64)
			if !ok {
				return nil, fmt.Errorf("repeating set count field %v is not a number", f.ID)
			}
			repetitions = int(count)
		}
		fields = append(fields, fv)
	}

	if schema.RepeatingFieldSetStartField == 0 {
		return fields, nil
	}

	stride := schema.repeatingSetStride()
	groups := make([]n2k.FieldValues, 0)
	for r := 0; repetitions < 0 || r < repetitions; r++ {
		if bitOffset+stride > messageBitCount {
			break
		}
		group := make(n2k.FieldValues, 0, schema.RepeatingFieldSetSize)
		for i := schema.RepeatingFieldSetStartField - 1; i < schema.RepeatingFieldSetStartField-1+schema.RepeatingFieldSetSize; i++ {
			f := schema.Fields[i]
			fv, err := d.decodeSingleField(f, data, bitOffset)
			bitOffset += f.BitLength
			if err == errValueIgnored {
				continue
			}
			if err != nil {
				return nil, err
			}
			group = append(group, fv)
		}
		groups = append(groups, group)
	}
	if len(groups) > 0 {
		fields = append(fields, n2k.FieldValue{
			ID:    FieldSetID,
			Type:  "FIELDSET",
			Value: groups,
		})
	}
	return fields, nil
}

func (d *Decoder) decodeSingleField(f Field, data n2k.RawData, bitOffset uint16) (n2k.FieldValue, error) {
	if (f.FieldType == FieldTypeReserved && !d.config.DecodeReservedFields) ||
		(f.FieldType == FieldTypeSpare && !d.config.DecodeSpareFields) {
		return n2k.FieldValue{}, errValueIgnored
	}

	fv, err := f.Decode(data, bitOffset)
	if err != nil {
		if err == n2k.ErrValueNoData || err == n2k.ErrValueOutOfRange || err == n2k.ErrValueReserved {
			return n2k.FieldValue{}, errValueIgnored
		}
		return n2k.FieldValue{}, fmt.Errorf("failed to decode field: %v, err: %w", f.ID, err)
	}
	if d.config.DecodeLookupsToEnumType && (f.FieldType == FieldTypeLookup || f.FieldType == FieldTypeBitLookup) {
		return f.toEnum(fv)
	}
	return fv, nil
}

// Decode extracts field value starting at given bit offset. Offset is passed explicitly as
// fields belonging to a repeating group occur at different offsets per repetition.
func (f *Field) Decode(data n2k.RawData, bitOffset uint16) (n2k.FieldValue, error) {
	switch f.FieldType {
	case FieldTypeNumber:
		return f.decodeNumber(data, bitOffset)
	case FieldTypeLookup, FieldTypeBitLookup:
		value, err := data.DecodeVariableUint(bitOffset, f.BitLength)
		if err != nil {
			return n2k.FieldValue{}, err
		}
		return n2k.FieldValue{ID: f.ID, Type: "UINT64", Value: value}, nil
	case FieldTypeTime:
		value, err := data.DecodeTime(bitOffset, f.BitLength, f.resolution())
		if err != nil {
			return n2k.FieldValue{}, err
		}
		return n2k.FieldValue{ID: f.ID, Type: "DURATION", Value: value}, nil
	case FieldTypeDate:
		value, err := data.DecodeDate(bitOffset, f.BitLength)
		if err != nil {
			return n2k.FieldValue{}, err
		}
		return n2k.FieldValue{ID: f.ID, Type: "DATE", Value: value}, nil
	case FieldTypeStringFix:
		value, err := data.DecodeStringFix(bitOffset, f.BitLength)
		if err != nil {
			return n2k.FieldValue{}, err
		}
		return n2k.FieldValue{ID: f.ID, Type: "STRING", Value: value}, nil
	case FieldTypeMMSI:
		value, err := data.DecodeVariableUint(bitOffset, f.BitLength)
		if err != nil {
			return n2k.FieldValue{}, err
		}
		return n2k.FieldValue{ID: f.ID, Type: "UINT64", Value: value}, nil
	case FieldTypeBinary, FieldTypeReserved, FieldTypeSpare:
		value, _, err := data.DecodeBytes(bitOffset, f.BitLength, false)
		if err != nil {
			return n2k.FieldValue{}, err
		}
		return n2k.FieldValue{ID: f.ID, Type: "BYTES", Value: value}, nil
	}
	return n2k.FieldValue{}, fmt.Errorf("field type: %v, err: %w", f.FieldType, ErrUnsupportedFieldType)
}

func (f *Field) decodeNumber(data n2k.RawData, bitOffset uint16) (n2k.FieldValue, error) {
	if f.Signed {
		value, err := data.DecodeVariableInt(bitOffset, f.BitLength)
		if err != nil {
			return n2k.FieldValue{}, err
		}
		value += int64(f.Offset)
		if f.resolution() == 1 {
			return n2k.FieldValue{ID: f.ID, Type: "INT64", Value: value}, nil
		}
		return n2k.FieldValue{ID: f.ID, Type: "FLOAT64", Value: float64(value) * f.resolution()}, nil
	}
	value, err := data.DecodeVariableUint(bitOffset, f.BitLength)
	if err != nil {
		return n2k.FieldValue{}, err
	}
	value += uint64(f.Offset)
	if f.resolution() == 1 {
		return n2k.FieldValue{ID: f.ID, Type: "UINT64", Value: value}, nil
	}
	return n2k.FieldValue{ID: f.ID, Type: "FLOAT64", Value: float64(value) * f.resolution()}, nil
}

func (f *Field) toEnum(fv n2k.FieldValue) (n2k.FieldValue, error) {
	value, ok := fv.Value.(uint64)
	if !ok {
		return n2k.FieldValue{}, fmt.Errorf("failed to convert enum value to uint64, field: %v", f.ID)
	}
	value32 := uint32(value)

	if f.FieldType == FieldTypeBitLookup {
		evs := make([]n2k.EnumValue, 0)
		for bit := uint32(0); bit < uint32(f.BitLength); bit++ {
			if value32&(1<<bit) == 0 {
				continue
			}
			code, ok := f.Enumeration[bit]
			if !ok {
				code = "UNKNOWN BIT ENUM VALUE"
			}
			evs = append(evs, n2k.EnumValue{Value: bit, Code: code})
		}
		fv.Type = "ENUMS"
		fv.Value = evs
		return fv, nil
	}

	code, ok := f.Enumeration[value32]
	if !ok {
		code = "UNKNOWN ENUM VALUE"
	}
	fv.Type = "ENUM"
	fv.Value = n2k.EnumValue{Value: value32, Code: code}
	return fv, nil
}
