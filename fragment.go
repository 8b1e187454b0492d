package n2k

import (
	"fmt"
	"sync"
)

// Fragmenter is inverse of FastPacketAssembler. It splits outbound payloads into ordered CAN
// frames ready to be written to transport. Payloads of up to 8 bytes for ordinary PGNs fit a
// single frame, everything else is sent with the fast-packet protocol.
type Fragmenter struct {
	pgns map[uint32]struct{}
	// sequences holds per PGN rolling counter (0-7) so that consecutive messages of the same PGN
	// can be told apart by receivers even when frames interleave on the bus
	sequences map[uint32]uint8
	lock      sync.Mutex
}

// NewFragmenter creates fragmenter that always sends given PGNs with fast-packet framing, even
// when their payload would fit a single frame.
func NewFragmenter(fpPGNs []uint32) *Fragmenter {
	pgns := make(map[uint32]struct{}, len(fpPGNs))
	for _, pgn := range fpPGNs {
		pgns[pgn] = struct{}{}
	}
	return &Fragmenter{
		pgns:      pgns,
		sequences: make(map[uint32]uint8),
	}
}

// Fragment splits payload into ordered frames carrying given header. Assembling the result
// yields the exact original payload.
func (f *Fragmenter) Fragment(header CanBusHeader, payload []byte) ([]RawFrame, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("can not fragment empty payload")
	}
	if len(payload) > FastPacketMaxSize {
		return nil, fmt.Errorf("payload length %v exceeds fast-packet maximum %v", len(payload), FastPacketMaxSize)
	}

	_, isFastPacket := f.pgns[header.PGN]
	if !isFastPacket && len(payload) > 8 {
		return nil, fmt.Errorf("payload length %v exceeds single frame for non fast-packet PGN %v", len(payload), header.PGN)
	}
	if !isFastPacket {
		frame := RawFrame{
			Header: header,
			Length: uint8(len(payload)),
		}
		copy(frame.Data[:], payload)
		for i := len(payload); i < 8; i++ {
			frame.Data[i] = 0xFF // bus idles high, unused bytes are all ones
		}
		return []RawFrame{frame}, nil
	}

	sequence := f.nextSequence(header.PGN)

	frameCount := 1
	if len(payload) > 6 {
		frameCount += (len(payload) - 6 + 6) / 7
	}
	frames := make([]RawFrame, 0, frameCount)

	first := RawFrame{Header: header, Length: 8}
	first.Data[0] = sequence << 5 // frame index 0
	first.Data[1] = uint8(len(payload))
	n := copy(first.Data[2:], payload)
	for i := 2 + n; i < 8; i++ {
		first.Data[i] = 0xFF
	}
	frames = append(frames, first)

	for index, offset := uint8(1), n; offset < len(payload); index++ {
		frame := RawFrame{Header: header, Length: 8}
		frame.Data[0] = sequence<<5 | index
		n := copy(frame.Data[1:], payload[offset:])
		for i := 1 + n; i < 8; i++ {
			frame.Data[i] = 0xFF
		}
		frames = append(frames, frame)
		offset += n
	}
	return frames, nil
}

func (f *Fragmenter) nextSequence(pgn uint32) uint8 {
	f.lock.Lock()
	defer f.lock.Unlock()

	sequence := f.sequences[pgn]
	f.sequences[pgn] = (sequence + 1) & 0x7
	return sequence
}
