package n2k

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFragmenter_singleFrame(t *testing.T) {
	f := NewFragmenter([]uint32{126996})

	header := CanBusHeader{PGN: 130306, Priority: 2, Source: 0x23, Destination: AddressGlobal}
	frames, err := f.Fragment(header, []byte{0x01, 0x02, 0x03})

	assert.NoError(t, err)
	assert.Len(t, frames, 1)
	assert.Equal(t, header, frames[0].Header)
	assert.Equal(t, uint8(3), frames[0].Length)
	assert.Equal(t, [8]byte{0x01, 0x02, 0x03, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, frames[0].Data)
}

func TestFragmenter_fastPacketFraming(t *testing.T) {
	f := NewFragmenter([]uint32{130824})

	header := CanBusHeader{PGN: 130824, Priority: 6, Source: 0x42, Destination: AddressGlobal}
	payload := []byte{
		0x10, 0x11, 0x12, 0x13, 0x14, 0x15,
		0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26,
		0x30, 0x31,
	}
	frames, err := f.Fragment(header, payload)

	assert.NoError(t, err)
	assert.Len(t, frames, 3)
	assert.Equal(t, [8]byte{0b000_00000, 15, 0x10, 0x11, 0x12, 0x13, 0x14, 0x15}, frames[0].Data)
	assert.Equal(t, [8]byte{0b000_00001, 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26}, frames[1].Data)
	assert.Equal(t, [8]byte{0b000_00010, 0x30, 0x31, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, frames[2].Data)
	for _, frame := range frames {
		assert.Equal(t, header, frame.Header)
		assert.Equal(t, uint8(8), frame.Length)
	}
}

func TestFragmenter_shortFastPacketStillUsesFastFraming(t *testing.T) {
	f := NewFragmenter([]uint32{130824})

	header := CanBusHeader{PGN: 130824, Priority: 6, Source: 0x42, Destination: AddressGlobal}
	frames, err := f.Fragment(header, []byte{0xAA, 0xBB})

	assert.NoError(t, err)
	assert.Len(t, frames, 1)
	assert.Equal(t, [8]byte{0b000_00000, 2, 0xAA, 0xBB, 0xFF, 0xFF, 0xFF, 0xFF}, frames[0].Data)
}

func TestFragmenter_sequenceCounterRollsOver(t *testing.T) {
	f := NewFragmenter([]uint32{130824})

	header := CanBusHeader{PGN: 130824, Priority: 6, Source: 0x42, Destination: AddressGlobal}
	for i := 0; i < 9; i++ {
		frames, err := f.Fragment(header, []byte{0x01})
		assert.NoError(t, err)
		assert.Equal(t, uint8(i%8)<<5, frames[0].Data[0], "message %v", i)
	}
}

func TestFragmenter_errors(t *testing.T) {
	var testCases = []struct {
		name    string
		pgn     uint32
		payload []byte
	}{
		{name: "nok, empty payload", pgn: 130824, payload: []byte{}},
		{name: "nok, payload over fast-packet maximum", pgn: 130824, payload: make([]byte, FastPacketMaxSize+1)},
		{name: "nok, multi frame payload for single frame PGN", pgn: 130306, payload: make([]byte, 9)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFragmenter([]uint32{130824})

			frames, err := f.Fragment(CanBusHeader{PGN: tc.pgn, Priority: 6, Source: 0x42}, tc.payload)
			assert.Error(t, err)
			assert.Nil(t, frames)
		})
	}
}

func TestFragmentAssembleRoundTrip(t *testing.T) {
	f := NewFragmenter([]uint32{130824})
	a := NewFastPacketAssembler([]uint32{130824})
	header := CanBusHeader{PGN: 130824, Priority: 6, Source: 0x42, Destination: AddressGlobal}

	for size := 1; size <= FastPacketMaxSize; size++ {
		t.Run(fmt.Sprintf("payload of %v bytes", size), func(t *testing.T) {
			payload := make([]byte, size)
			for i := range payload {
				payload[i] = byte(i * 7)
			}

			frames, err := f.Fragment(header, payload)
			assert.NoError(t, err)

			var to RawMessage
			for i, frame := range frames {
				frame.Time = testTime
				complete, err := a.Assemble(frame, &to)
				assert.NoError(t, err)
				assert.Equal(t, i == len(frames)-1, complete, "frame %v", i)
			}
			assert.Equal(t, payload, []byte(to.Data))
			assert.Equal(t, header, to.Header)
		})
	}
}
