package pgn

import (
	"fmt"
	"math"
	"time"

	n2k "github.com/openmarine/go-n2k"
)

var epoch = time.Unix(0, 0).UTC()

// Encoder encodes typed field values into raw payload bytes using registry schemas. It is the
// exact inverse of Decoder: decoding an encoded payload yields the input fields back.
type Encoder struct {
	registry *Registry
}

// NewEncoder creates encoder over given schema registry.
func NewEncoder(registry *Registry) *Encoder {
	return &Encoder{registry: registry}
}

// Encode builds payload for given PGN. Missing fields are written as the "no data" marker,
// reserved fields as all ones and spare fields as all zeros. Values that do not fit their field
// bit length fail with ErrFieldOverflow and no payload is produced. Repeating groups are given
// as FieldValue with ID FieldSetID holding []n2k.FieldValues, one per repetition.
func (e *Encoder) Encode(pgn uint32, fields n2k.FieldValues) (n2k.RawData, error) {
	schema, err := e.registry.Lookup(pgn)
	if err != nil {
		return nil, err
	}

	var groups []n2k.FieldValues
	if fieldSet, ok := fields.FindByID(FieldSetID); ok {
		groups, ok = fieldSet.Value.([]n2k.FieldValues)
		if !ok {
			return nil, fmt.Errorf("PGN %v fieldset value is not []n2k.FieldValues", pgn)
		}
		if schema.RepeatingFieldSetStartField == 0 {
			return nil, fmt.Errorf("PGN %v schema has no repeating field set", pgn)
		}
	}

	stride := schema.repeatingSetStride()
	data := make(n2k.RawData, int(schema.Length)+len(groups)*int(stride/8))

	fixedEnd := len(schema.Fields)
	if schema.RepeatingFieldSetStartField > 0 {
		fixedEnd = schema.RepeatingFieldSetStartField - 1
	}

	bitOffset := uint16(0)
	for i := 0; i < fixedEnd; i++ {
		f := schema.Fields[i]

		if i+1 == schema.RepeatingFieldSetCountField && groups != nil {
			// count field mirrors the number of repetitions given in the fieldset
			if err := data.PutVariableUint(bitOffset, f.BitLength, uint64(len(groups))); err != nil {
				return nil, fmt.Errorf("failed to encode field: %v, err: %w", f.ID, err)
			}
			bitOffset += f.BitLength
			continue
		}

		value, ok := fields.FindByID(f.ID)
		if err := e.encodeSingleField(f, data, bitOffset, value, ok); err != nil {
			return nil, err
		}
		bitOffset += f.BitLength
	}

	for _, group := range groups {
		for i := schema.RepeatingFieldSetStartField - 1; i < schema.RepeatingFieldSetStartField-1+schema.RepeatingFieldSetSize; i++ {
			f := schema.Fields[i]
			value, ok := group.FindByID(f.ID)
			if err := e.encodeSingleField(f, data, bitOffset, value, ok); err != nil {
				return nil, err
			}
			bitOffset += f.BitLength
		}
	}
	return data, nil
}

func (e *Encoder) encodeSingleField(f Field, data n2k.RawData, bitOffset uint16, value n2k.FieldValue, hasValue bool) error {
	var err error
	switch {
	case f.FieldType == FieldTypeReserved:
		err = data.PutNoData(bitOffset, f.BitLength, false) // reserved bits shall be all ones
	case f.FieldType == FieldTypeSpare:
		err = data.PutVariableUint(bitOffset, f.BitLength, 0) // spare bits shall be all zeros
	case !hasValue:
		err = data.PutNoData(bitOffset, f.BitLength, f.Signed)
	default:
		err = f.Encode(data, bitOffset, value.Value)
	}
	if err != nil {
		if err == n2k.ErrFieldOverflow {
			return fmt.Errorf("field: %v, err: %w", f.ID, err)
		}
		return fmt.Errorf("failed to encode field: %v, err: %w", f.ID, err)
	}
	return nil
}

// Encode writes field value at given bit offset. Offset is passed explicitly as fields belonging
// to a repeating group occur at different offsets per repetition.
func (f *Field) Encode(data n2k.RawData, bitOffset uint16, value interface{}) error {
	switch f.FieldType {
	case FieldTypeNumber:
		return f.encodeNumber(data, bitOffset, value)
	case FieldTypeLookup, FieldTypeBitLookup, FieldTypeMMSI:
		raw, err := lookupToRaw(value)
		if err != nil {
			return err
		}
		if raw > f.maxValidRaw() {
			return n2k.ErrFieldOverflow
		}
		return data.PutVariableUint(bitOffset, f.BitLength, raw)
	case FieldTypeTime:
		d, ok := value.(time.Duration)
		if !ok {
			return fmt.Errorf("time field value is not time.Duration")
		}
		raw := uint64(math.Round(float64(d) / (f.resolution() * float64(time.Second))))
		if raw > f.maxValidRaw() {
			return n2k.ErrFieldOverflow
		}
		return data.PutVariableUint(bitOffset, f.BitLength, raw)
	case FieldTypeDate:
		t, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("date field value is not time.Time")
		}
		days := int64(t.UTC().Sub(epoch) / (24 * time.Hour))
		if days < 0 || uint64(days) > f.maxValidRaw() {
			return n2k.ErrFieldOverflow
		}
		return data.PutVariableUint(bitOffset, f.BitLength, uint64(days))
	case FieldTypeStringFix:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("string field value is not string")
		}
		return data.PutStringFix(bitOffset, f.BitLength, s)
	case FieldTypeBinary:
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("binary field value is not []byte")
		}
		return data.PutBytes(bitOffset, f.BitLength, b)
	}
	return fmt.Errorf("field type: %v, err: %w", f.FieldType, ErrUnsupportedFieldType)
}

// maxValidRaw is the largest raw value that does not collide with the "no data" / "out of range" /
// "reserved" markers packed into the most positive values of the field. Fields of 2 and 3 bits only
// reserve the all-ones marker, single bit fields reserve nothing.
func (f *Field) maxValidRaw() uint64 {
	pattern := (^uint64(0)) >> (64 - f.BitLength)
	if f.Signed {
		pattern = pattern >> 1
	}
	if f.BitLength >= 4 {
		return pattern - 3
	}
	if f.BitLength >= 2 {
		return pattern - 1
	}
	return pattern
}

func (f *Field) encodeNumber(data n2k.RawData, bitOffset uint16, value interface{}) error {
	scaled, err := numericToFloat(value)
	if err != nil {
		return err
	}
	raw := math.Round(scaled/f.resolution()) - float64(f.Offset)

	if f.Signed {
		maxValid := int64(f.maxValidRaw())
		if raw > float64(maxValid) {
			return n2k.ErrFieldOverflow
		}
		return data.PutVariableInt(bitOffset, f.BitLength, int64(raw))
	}

	if raw < 0 {
		return n2k.ErrFieldOverflow
	}
	if uint64(raw) > f.maxValidRaw() {
		return n2k.ErrFieldOverflow
	}
	return data.PutVariableUint(bitOffset, f.BitLength, uint64(raw))
}

func numericToFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	}
	return 0, fmt.Errorf("field value is not numeric: %T", value)
}

func lookupToRaw(value interface{}) (uint64, error) {
	switch v := value.(type) {
	case uint64:
		return v, nil
	case uint32:
		return uint64(v), nil
	case int:
		if v < 0 {
			return 0, n2k.ErrFieldOverflow
		}
		return uint64(v), nil
	case n2k.EnumValue:
		return uint64(v.Value), nil
	}
	return 0, fmt.Errorf("lookup field value is not a number or EnumValue: %T", value)
}
