package pgn

import (
	"testing"
	"time"

	n2k "github.com/openmarine/go-n2k"
	test_test "github.com/openmarine/go-n2k/test"
	"github.com/stretchr/testify/assert"
)

var testHeader = n2k.CanBusHeader{
	PGN:         130306,
	Priority:    2,
	Source:      0x23,
	Destination: n2k.AddressGlobal,
}

func TestDecoder_Decode_windData(t *testing.T) {
	d := NewDecoder(StandardRegistry())

	raw := n2k.RawMessage{
		Header: testHeader,
		Data: n2k.RawData{
			0x01,       // sid
			0xFA, 0x00, // wind speed, 250 * 0.01 = 2.5 m/s
			0xB8, 0x7A, // wind angle, 31416 * 0.0001 = 3.1416 rad
			0b11111_010, // reference 2 (apparent) + 5 bits of reserved
			0xFF, 0xFF, // reserved
		},
	}

	msg, err := d.Decode(raw)

	assert.NoError(t, err)
	assert.Equal(t, testHeader, msg.Header)
	test_test.AssertFieldValues(t, n2k.FieldValues{
		{ID: "sid", Type: "UINT64", Value: uint64(1)},
		{ID: "windSpeed", Type: "FLOAT64", Value: 2.5},
		{ID: "windAngle", Type: "FLOAT64", Value: 3.1416},
		{ID: "reference", Type: "UINT64", Value: uint64(2)},
	}, msg.Fields, 0.0001)
}

func TestDecoder_Decode_noDataFieldsAreOmitted(t *testing.T) {
	d := NewDecoder(StandardRegistry())

	raw := n2k.RawMessage{
		Header: testHeader,
		Data: n2k.RawData{
			0x01,       // sid
			0xFF, 0xFF, // wind speed, no data
			0xB8, 0x7A, // wind angle
			0b11111_111, // reference, no data
			0xFF, 0xFF,
		},
	}

	msg, err := d.Decode(raw)

	assert.NoError(t, err)
	test_test.AssertFieldValues(t, n2k.FieldValues{
		{ID: "sid", Type: "UINT64", Value: uint64(1)},
		{ID: "windAngle", Type: "FLOAT64", Value: 3.1416},
	}, msg.Fields, 0.0001)
}

func TestDecoder_Decode_lookupsToEnumType(t *testing.T) {
	d := NewDecoderWithConfig(StandardRegistry(), DecoderConfig{DecodeLookupsToEnumType: true})

	raw := n2k.RawMessage{
		Header: testHeader,
		Data: n2k.RawData{
			0x01,
			0xFA, 0x00,
			0xB8, 0x7A,
			0b11111_010,
			0xFF, 0xFF,
		},
	}

	msg, err := d.Decode(raw)

	assert.NoError(t, err)
	reference, ok := msg.Fields.FindByID("reference")
	assert.True(t, ok)
	assert.Equal(t, "ENUM", reference.Type)
	assert.Equal(t, n2k.EnumValue{Value: 2, Code: "Apparent"}, reference.Value)
}

func TestDecoder_Decode_reservedFields(t *testing.T) {
	d := NewDecoderWithConfig(StandardRegistry(), DecoderConfig{DecodeReservedFields: true})

	// reserved field at bit offset 43 runs to the last payload bit
	raw := n2k.RawMessage{
		Header: testHeader,
		Data: n2k.RawData{
			0x01,
			0xFA, 0x00,
			0xB8, 0x7A,
			0b11111_010,
			0xFF, 0xFF,
		},
	}

	msg, err := d.Decode(raw)

	assert.NoError(t, err)
	reserved, ok := msg.Fields.FindByID("reserved")
	assert.True(t, ok)
	assert.Equal(t, "BYTES", reserved.Type)
	assert.Equal(t, []byte{0xFF, 0xFF, 0x1F}, reserved.Value)
}

func TestDecoder_Decode_unknownPGN(t *testing.T) {
	d := NewDecoder(StandardRegistry())

	_, err := d.Decode(n2k.RawMessage{
		Header: n2k.CanBusHeader{PGN: 1},
		Data:   n2k.RawData{0x01},
	})
	assert.ErrorIs(t, err, ErrUnknownPGN)
}

func TestDecoder_Decode_shortPayloadDropsTrailingFields(t *testing.T) {
	d := NewDecoder(StandardRegistry())

	// System Time cut after the date field, time field is simply not carried
	raw := n2k.RawMessage{
		Header: n2k.CanBusHeader{PGN: 126992, Priority: 3, Source: 0x05, Destination: n2k.AddressGlobal},
		Data: n2k.RawData{
			0x07,        // sid
			0b1111_0000, // source GPS + reserved
			0x4B, 0x4B, // date, 19275 days
		},
	}

	msg, err := d.Decode(raw)

	assert.NoError(t, err)
	test_test.AssertFieldValues(t, n2k.FieldValues{
		{ID: "sid", Type: "UINT64", Value: uint64(7)},
		{ID: "source", Type: "UINT64", Value: uint64(0)},
		{ID: "date", Type: "DATE", Value: time.Date(2022, time.October, 10, 0, 0, 0, 0, time.UTC)},
	}, msg.Fields, 0)
}

func TestDecoder_Decode_repeatingFieldSets(t *testing.T) {
	d := NewDecoder(StandardRegistry())

	satellite := func(prn uint8, elevation int16, azimuth uint16, snr uint16, residual int32, status uint8) []byte {
		result := make(n2k.RawData, 12)
		result[0] = prn
		_ = result.PutVariableInt(8, 16, int64(elevation))
		_ = result.PutVariableUint(24, 16, uint64(azimuth))
		_ = result.PutVariableUint(40, 16, uint64(snr))
		_ = result.PutVariableInt(56, 32, int64(residual))
		result[11] = 0xF0 | status
		return result
	}

	data := n2k.RawData{
		0x07,        // sid
		0b111111_00, // range residual mode 0 + reserved
		0x02,      // sats in view
	}
	data = append(data, satellite(12, 5000, 10000, 3000, 100000, 2)...)
	data = append(data, satellite(25, 7853, 31415, 2500, -50000, 5)...)

	raw := n2k.RawMessage{
		Header: n2k.CanBusHeader{PGN: 129540, Priority: 6, Source: 0x11, Destination: n2k.AddressGlobal},
		Data:   data,
	}

	msg, err := d.Decode(raw)
	assert.NoError(t, err)

	fieldSet, ok := msg.Fields.FindByID(FieldSetID)
	assert.True(t, ok)
	groups, ok := fieldSet.Value.([]n2k.FieldValues)
	assert.True(t, ok)
	assert.Len(t, groups, 2)

	test_test.AssertFieldValues(t, n2k.FieldValues{
		{ID: "prn", Type: "UINT64", Value: uint64(12)},
		{ID: "elevation", Type: "FLOAT64", Value: 0.5},
		{ID: "azimuth", Type: "FLOAT64", Value: 1.0},
		{ID: "snr", Type: "FLOAT64", Value: 30.0},
		{ID: "rangeResiduals", Type: "FLOAT64", Value: 1.0},
		{ID: "status", Type: "UINT64", Value: uint64(2)},
	}, groups[0], 0.0001)

	test_test.AssertFieldValues(t, n2k.FieldValues{
		{ID: "prn", Type: "UINT64", Value: uint64(25)},
		{ID: "elevation", Type: "FLOAT64", Value: 0.7853},
		{ID: "azimuth", Type: "FLOAT64", Value: 3.1415},
		{ID: "snr", Type: "FLOAT64", Value: 25.0},
		{ID: "rangeResiduals", Type: "FLOAT64", Value: -0.5},
		{ID: "status", Type: "UINT64", Value: uint64(5)},
	}, groups[1], 0.0001)
}

func TestDecoder_Decode_repeatingCountLimitsGroups(t *testing.T) {
	d := NewDecoder(StandardRegistry())

	// count says one repetition even though payload could carry two
	data := n2k.RawData{0x07, 0b111111_00, 0x01}
	group := make(n2k.RawData, 24)
	for i := range group {
		group[i] = 0x01
	}
	data = append(data, group...)

	raw := n2k.RawMessage{
		Header: n2k.CanBusHeader{PGN: 129540, Priority: 6, Source: 0x11, Destination: n2k.AddressGlobal},
		Data:   data,
	}

	msg, err := d.Decode(raw)
	assert.NoError(t, err)

	fieldSet, ok := msg.Fields.FindByID(FieldSetID)
	assert.True(t, ok)
	groups := fieldSet.Value.([]n2k.FieldValues)
	assert.Len(t, groups, 1)
}
