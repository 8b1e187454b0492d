package n2k

import (
	"context"
	"errors"
	"time"
)

// FastPacketMaxSize is maximum size of fast-packet payload assembled from multiple frames.
//
// NMEA2000 frame is 8 bytes and to send longer payloads the `Fast packet` protocol is used. In that case
// a message consists of multiple frames where:
// * first frame of message has 2 first bytes reserved and up to 6 following bytes for actual payload
//   - first byte (data[0]) identifies sequence counter (upper 3 bits) and frame index (lower 5 bits) for that PGN.
//     Sequence counter distinguishes simultaneously sent messages. Frame index is always 0 for the first frame.
//   - second byte (data[1]) is message total size in bytes
//
// * second and consecutive frames reserve 1 byte for sequence counter and frame index and carry up to 7 bytes of payload
//
// Maximum payload size 223 comes from the fact that first frame can have only 6 bytes of data and following
// frames 7 bytes. As frame index is 5 bits (0-31) we get maximum of 6 + 31 * 7 = 223 bytes.
const FastPacketMaxSize = 223

const (
	// AddressGlobal is broadcast address. As destination it means all nodes on the bus.
	AddressGlobal = uint8(255)
	// AddressNull is address used by nodes that have not yet claimed an address. Not valid as ordinary source.
	AddressNull = uint8(254)
)

// PGNs the engine itself knows about. Everything else comes from the pgn package catalog.
const (
	PGNISORequest      = uint32(59904)
	PGNISOAddressClaim = uint32(60928)
	PGNProductInfo     = uint32(126996)
	PGNConfigInfo      = uint32(126998)
)

var (
	// ErrInvalidHeader indicates malformed CAN identifier or header fields that can not be encoded into one.
	ErrInvalidHeader = errors.New("invalid can bus header")
	// ErrMalformedFastPacket indicates fast-packet frame that does not fit the currently open assembly session
	// (sequence or index mismatch, length overrun). The open session is discarded when this occurs.
	ErrMalformedFastPacket = errors.New("malformed fast-packet frame")
	// ErrFieldOverflow indicates encode-time value that does not fit into field bit length.
	ErrFieldOverflow = errors.New("field value overflows field bit length")
)

// RawFrame is single CAN bus frame. Up to 8 bytes of data.
type RawFrame struct {
	// Time is when frame was read from the bus. Filled by transport.
	Time time.Time

	Header CanBusHeader
	Length uint8 // 1-8
	Data   [8]byte
}

// RawMessage is complete message assembled from single or multiple raw frames. Fast-packet messages
// can carry up to 223 bytes of data.
type RawMessage struct {
	// Time is when last frame of the message was read from the bus.
	Time time.Time

	Header CanBusHeader
	Data   RawData
}

// Message is decoded value of PGN payload.
type Message struct {
	Header CanBusHeader `json:"header"`
	Fields FieldValues  `json:"fields"`
}

// Assembler assembles multi-frame PGNs into single raw message. Single frame PGNs pass through as is.
type Assembler interface {
	Assemble(frame RawFrame, to *RawMessage) (bool, error)
}

// RawFrameReader is the receiving side of a transport collaborator. The engine does not manage bus
// timing or arbitration, it only consumes frames.
type RawFrameReader interface {
	ReadRawFrame(ctx context.Context) (RawFrame, error)
	Initialize() error
	Close() error
}

// RawFrameWriter is the sending side of a transport collaborator.
type RawFrameWriter interface {
	WriteRawFrame(frame RawFrame) error
	Close() error
}

// RawFrameReaderWriter is transport that can both read and write frames.
type RawFrameReaderWriter interface {
	RawFrameReader
	RawFrameWriter
}
