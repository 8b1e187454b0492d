package n2k

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRawData_DecodeVariableUint(t *testing.T) {
	var testCases = []struct {
		name        string
		given       RawData
		bitOffset   uint16
		bitLength   uint16
		expect      uint64
		expectError error
	}{
		{
			name:      "ok, 8 bits at byte border",
			given:     RawData{0x01, 0x7B, 0x03},
			bitOffset: 8,
			bitLength: 8,
			expect:    0x7B,
		},
		{
			name:      "ok, 16 bits are little-endian",
			given:     RawData{0x34, 0x12, 0xFF},
			bitOffset: 0,
			bitLength: 16,
			expect:    0x1234,
		},
		{
			name:      "ok, 4 bits mid byte",
			given:     RawData{0b1011_0100},
			bitOffset: 4,
			bitLength: 4,
			expect:    0b1011,
		},
		{
			name:      "ok, 12 bits crossing byte border",
			given:     RawData{0b0101_0000, 0b1010_1100, 0xFF},
			bitOffset: 4,
			bitLength: 12,
			expect:    0b1010_1100_0101,
		},
		{
			name:        "nok, all ones is no data marker",
			given:       RawData{0xFF},
			bitOffset:   0,
			bitLength:   8,
			expectError: ErrValueNoData,
		},
		{
			name:        "nok, max minus one is out of range marker",
			given:       RawData{0xFE},
			bitOffset:   0,
			bitLength:   8,
			expectError: ErrValueOutOfRange,
		},
		{
			name:        "nok, max minus two is reserved marker",
			given:       RawData{0xFD},
			bitOffset:   0,
			bitLength:   8,
			expectError: ErrValueReserved,
		},
		{
			name:      "ok, 3 bit field reserves only the all-ones marker",
			given:     RawData{0b0000_0110},
			bitOffset: 0,
			bitLength: 3,
			expect:    6,
		},
		{
			name:        "nok, 3 bit field all ones is no data",
			given:       RawData{0b0000_0111},
			bitOffset:   0,
			bitLength:   3,
			expectError: ErrValueNoData,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.given.DecodeVariableUint(tc.bitOffset, tc.bitLength)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, result)
		})
	}

	t.Run("nok, offset out of bounds", func(t *testing.T) {
		data := RawData{0x01}
		_, err := data.DecodeVariableUint(8, 8)
		assert.Error(t, err)
	})
}

func TestRawData_DecodeBytes(t *testing.T) {
	var testCases = []struct {
		name        string
		given       RawData
		bitOffset   uint16
		bitLength   uint16
		expect      []byte
		expectError bool
	}{
		{
			name:      "ok, aligned bytes are copied as is",
			given:     RawData{0x01, 0x02, 0x03, 0x04},
			bitOffset: 8,
			bitLength: 16,
			expect:    []byte{0x02, 0x03},
		},
		{
			name:      "ok, unaligned bits crossing byte border",
			given:     RawData{0b0101_0000, 0b1010_1100},
			bitOffset: 4,
			bitLength: 12,
			expect:    []byte{0b1100_0101, 0b0000_1010},
		},
		{
			name:      "ok, unaligned field ending at last payload byte",
			given:     RawData{0x01, 0xFA, 0x00, 0xB8, 0x7A, 0b1111_1010, 0xFF, 0xFF},
			bitOffset: 43,
			bitLength: 21,
			expect:    []byte{0xFF, 0xFF, 0x1F},
		},
		{
			name:        "nok, field extends past payload",
			given:       RawData{0x01, 0x02},
			bitOffset:   8,
			bitLength:   16,
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, readBits, err := tc.given.DecodeBytes(tc.bitOffset, tc.bitLength, false)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, result)
			assert.Equal(t, tc.bitLength, readBits)
		})
	}

	t.Run("ok, variable size caps read at payload end", func(t *testing.T) {
		data := RawData{0x01, 0x02}
		result, readBits, err := data.DecodeBytes(8, 16, true)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x02}, result)
		assert.Equal(t, uint16(8), readBits)
	})
}

func TestRawData_DecodeVariableInt(t *testing.T) {
	var testCases = []struct {
		name        string
		given       RawData
		bitOffset   uint16
		bitLength   uint16
		expect      int64
		expectError error
	}{
		{
			name:      "ok, positive",
			given:     RawData{0x12},
			bitOffset: 0,
			bitLength: 8,
			expect:    0x12,
		},
		{
			name:      "ok, negative two's complement",
			given:     RawData{0xFF}, // -1 as int8, signed fields halve the marker space
			bitOffset: 0,
			bitLength: 8,
			expect:    -1,
		},
		{
			name:      "ok, 16 bit negative",
			given:     RawData{0x18, 0xFC}, // -1000
			bitOffset: 0,
			bitLength: 16,
			expect:    -1000,
		},
		{
			name:        "nok, max positive is no data marker",
			given:       RawData{0x7F},
			bitOffset:   0,
			bitLength:   8,
			expectError: ErrValueNoData,
		},
		{
			name:        "nok, out of range marker",
			given:       RawData{0x7E},
			bitOffset:   0,
			bitLength:   8,
			expectError: ErrValueOutOfRange,
		},
		{
			name:        "nok, reserved marker",
			given:       RawData{0x7D},
			bitOffset:   0,
			bitLength:   8,
			expectError: ErrValueReserved,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.given.DecodeVariableInt(tc.bitOffset, tc.bitLength)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, result)
		})
	}
}

func TestRawData_PutVariableUint(t *testing.T) {
	t.Run("ok, round trips at odd offset", func(t *testing.T) {
		data := make(RawData, 3)
		assert.NoError(t, data.PutVariableUint(5, 12, 0b1010_1100_0101))

		result, err := data.DecodeVariableUint(5, 12)
		assert.NoError(t, err)
		assert.Equal(t, uint64(0b1010_1100_0101), result)
	})

	t.Run("nok, overflow leaves buffer untouched", func(t *testing.T) {
		data := RawData{0x11, 0x22}
		err := data.PutVariableUint(0, 8, 256)

		assert.ErrorIs(t, err, ErrFieldOverflow)
		assert.Equal(t, RawData{0x11, 0x22}, data)
	})

	t.Run("ok, does not disturb neighbouring bits", func(t *testing.T) {
		data := RawData{0xFF, 0xFF}
		assert.NoError(t, data.PutVariableUint(4, 8, 0))
		assert.Equal(t, RawData{0x0F, 0xF0}, data)
	})
}

func TestRawData_PutVariableInt(t *testing.T) {
	t.Run("ok, negative round trips", func(t *testing.T) {
		data := make(RawData, 2)
		assert.NoError(t, data.PutVariableInt(0, 16, -1000))

		result, err := data.DecodeVariableInt(0, 16)
		assert.NoError(t, err)
		assert.Equal(t, int64(-1000), result)
	})

	t.Run("nok, below minimum", func(t *testing.T) {
		data := make(RawData, 1)
		assert.ErrorIs(t, data.PutVariableInt(0, 8, -129), ErrFieldOverflow)
	})

	t.Run("nok, above maximum", func(t *testing.T) {
		data := make(RawData, 1)
		assert.ErrorIs(t, data.PutVariableInt(0, 8, 128), ErrFieldOverflow)
	})
}

func TestRawData_PutNoData(t *testing.T) {
	t.Run("ok, unsigned marker decodes as no data", func(t *testing.T) {
		data := make(RawData, 2)
		assert.NoError(t, data.PutNoData(3, 10, false))

		_, err := data.DecodeVariableUint(3, 10)
		assert.ErrorIs(t, err, ErrValueNoData)
	})

	t.Run("ok, signed marker decodes as no data", func(t *testing.T) {
		data := make(RawData, 2)
		assert.NoError(t, data.PutNoData(0, 16, true))

		_, err := data.DecodeVariableInt(0, 16)
		assert.ErrorIs(t, err, ErrValueNoData)
	})

	t.Run("ok, wide string field gets full 0xFF fill", func(t *testing.T) {
		data := make(RawData, 36)
		assert.NoError(t, data.PutNoData(32, 256, false))

		for i := 4; i < 36; i++ {
			assert.Equal(t, byte(0xFF), data[i], "byte %v", i)
		}
		assert.Equal(t, byte(0x00), data[0]) // preceding field untouched

		_, err := data.DecodeStringFix(32, 256)
		assert.ErrorIs(t, err, ErrValueNoData)
	})

	t.Run("nok, wide field must be byte aligned", func(t *testing.T) {
		data := make(RawData, 36)
		assert.Error(t, data.PutNoData(4, 256, false))
	})

	t.Run("nok, wide field out of bounds", func(t *testing.T) {
		data := make(RawData, 8)
		assert.Error(t, data.PutNoData(0, 256, false))
	})
}

func TestRawData_StringFix(t *testing.T) {
	t.Run("ok, round trips with 0xFF padding", func(t *testing.T) {
		data := make(RawData, 8)
		assert.NoError(t, data.PutStringFix(0, 64, "WIMEA"))
		assert.Equal(t, RawData{'W', 'I', 'M', 'E', 'A', 0xFF, 0xFF, 0xFF}, data)

		result, err := data.DecodeStringFix(0, 64)
		assert.NoError(t, err)
		assert.Equal(t, "WIMEA", result)
	})

	t.Run("nok, too long for field", func(t *testing.T) {
		data := make(RawData, 4)
		assert.ErrorIs(t, data.PutStringFix(0, 32, "TOO LONG"), ErrFieldOverflow)
	})

	t.Run("ok, decode stops at `@` padding", func(t *testing.T) {
		data := RawData{'A', 'B', '@', '@'}
		result, err := data.DecodeStringFix(0, 32)
		assert.NoError(t, err)
		assert.Equal(t, "AB", result)
	})

	t.Run("ok, `@` filled field is empty string", func(t *testing.T) {
		data := RawData{'@', '@', '@', '@'}
		result, err := data.DecodeStringFix(0, 32)
		assert.NoError(t, err)
		assert.Equal(t, "", result)
	})

	t.Run("nok, 0xFF filled field has no data", func(t *testing.T) {
		data := RawData{0xFF, 0xFF, 0xFF, 0xFF}
		_, err := data.DecodeStringFix(0, 32)
		assert.ErrorIs(t, err, ErrValueNoData)
	})
}

func TestRawData_DecodeStringLAU(t *testing.T) {
	var testCases = []struct {
		name           string
		given          RawData
		bitOffset      uint16
		expect         string
		expectReadBits uint16
		expectError    string
	}{
		{
			name:           "ok, ascii",
			given:          RawData{7, 1, 'd', 'a', 'y', 0xFF, 0xFF},
			bitOffset:      0,
			expect:         "day",
			expectReadBits: 56,
		},
		{
			name:           "ok, ascii at offset",
			given:          RawData{0xAA, 0xAA, 4, 1, 'o', 'k'},
			bitOffset:      16,
			expect:         "ok",
			expectReadBits: 32,
		},
		{
			name:           "ok, header only is empty string",
			given:          RawData{2, 1},
			bitOffset:      0,
			expect:         "",
			expectReadBits: 16,
		},
		{
			name:           "ok, utf16 with little-endian byte order mark",
			given:          RawData{8, 0, 0xFF, 0xFE, 0x41, 0x00, 0x42, 0x00},
			bitOffset:      0,
			expect:         "AB",
			expectReadBits: 64,
		},
		{
			name:           "ok, utf16 with big-endian byte order mark",
			given:          RawData{8, 0, 0xFE, 0xFF, 0x00, 0x41, 0x00, 0x42},
			bitOffset:      0,
			expect:         "AB",
			expectReadBits: 64,
		},
		{
			name:        "nok, length below header size",
			given:       RawData{1, 1, 'x'},
			bitOffset:   0,
			expectError: "lau string length is below its 2 byte header",
		},
		{
			name:        "nok, unknown encoding",
			given:       RawData{4, 9, 'o', 'k'},
			bitOffset:   0,
			expectError: "lau string has invalid encoding: 9",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, readBits, err := tc.given.DecodeStringLAU(tc.bitOffset)
			if tc.expectError != "" {
				assert.EqualError(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, result)
			assert.Equal(t, tc.expectReadBits, readBits)
		})
	}

	t.Run("ok, read size locates the following field", func(t *testing.T) {
		data := RawData{5, 1, 'o', 'n', 'e', 4, 1, 't', 'w'}
		first, read, err := data.DecodeStringLAU(0)
		assert.NoError(t, err)
		assert.Equal(t, "one", first)

		second, _, err := data.DecodeStringLAU(read)
		assert.NoError(t, err)
		assert.Equal(t, "tw", second)
	})
}

func TestRawData_DecodeTime(t *testing.T) {
	t.Run("ok, resolution 1 is whole seconds", func(t *testing.T) {
		data := make(RawData, 4)
		assert.NoError(t, data.PutVariableUint(0, 32, 3600))

		result, err := data.DecodeTime(0, 32, 1)
		assert.NoError(t, err)
		assert.Equal(t, 1*time.Hour, result)
	})

	t.Run("ok, fractional resolution keeps sub second part", func(t *testing.T) {
		data := make(RawData, 4)
		assert.NoError(t, data.PutVariableUint(0, 32, 15*10000+1)) // 15.0001 seconds at 0.0001 resolution

		result, err := data.DecodeTime(0, 32, 0.0001)
		assert.NoError(t, err)
		assert.Equal(t, 15*time.Second+100*time.Microsecond, result)
	})

	t.Run("nok, no data marker", func(t *testing.T) {
		data := RawData{0xFF, 0xFF, 0xFF, 0xFF}
		_, err := data.DecodeTime(0, 32, 0.0001)
		assert.ErrorIs(t, err, ErrValueNoData)
	})
}

func TestRawData_DecodeDate(t *testing.T) {
	t.Run("ok, days since unix epoch", func(t *testing.T) {
		data := RawData{0x4B, 0x4B} // 19275 days
		result, err := data.DecodeDate(0, 16)
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2022, time.October, 10, 0, 0, 0, 0, time.UTC), result)
	})

	t.Run("nok, no data marker", func(t *testing.T) {
		data := RawData{0xFF, 0xFF}
		_, err := data.DecodeDate(0, 16)
		assert.ErrorIs(t, err, ErrValueNoData)
	})
}

func TestFieldValues_FindByID(t *testing.T) {
	fields := FieldValues{
		{ID: "sid", Type: "UINT64", Value: uint64(1)},
		{ID: "windSpeed", Type: "FLOAT64", Value: 5.5},
	}

	fv, ok := fields.FindByID("windSpeed")
	assert.True(t, ok)
	assert.Equal(t, 5.5, fv.Value)

	_, ok = fields.FindByID("missing")
	assert.False(t, ok)
}
