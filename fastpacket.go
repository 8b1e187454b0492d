package n2k

import (
	"sync"
	"time"
)

// DefaultAssemblyTimeout is inactivity window after which incomplete fast-packet session is
// considered abandoned and is discarded.
const DefaultAssemblyTimeout = 750 * time.Millisecond

type sessionKey struct {
	pgn    uint32
	source uint8
}

// fastPacketSession is in-flight multi-frame message. At most one session exists per
// (PGN, source) pair at a time.
type fastPacketSession struct {
	header CanBusHeader

	lastFrameTime time.Time
	// sequence is rolling counter (0-7) from upper 3 bits of every frame's first byte. Frames
	// belonging to the same message all carry the same value.
	sequence uint8
	// length of complete payload in bytes, from second byte of first frame
	length uint8
	// nextFrameIndex is frame index (lower 5 bits of first byte) the session expects next.
	// The protocol has no retransmission so any gap invalidates the whole message.
	nextFrameIndex uint8
	receivedBytes  uint8

	// first frame carries 6 payload bytes, consecutive frames 7. 6 + 31 * 7 = 223.
	data [FastPacketMaxSize]byte
}

// FastPacketAssembler assembles fast-packet frames into complete raw messages. Sessions are keyed
// by (PGN, source address) and require frames to arrive strictly in order. Frames for PGNs not
// registered as fast-packet pass through as single frame messages.
type FastPacketAssembler struct {
	pgns       map[uint32]struct{}
	inTransfer map[sessionKey]*fastPacketSession

	timeout time.Duration
	now     func() time.Time
	lock    sync.Mutex
}

// NewFastPacketAssembler creates assembler that treats given PGNs as fast-packet.
func NewFastPacketAssembler(fpPGNs []uint32) *FastPacketAssembler {
	pgns := make(map[uint32]struct{}, len(fpPGNs))
	for _, pgn := range fpPGNs {
		pgns[pgn] = struct{}{}
	}
	return &FastPacketAssembler{
		pgns:       pgns,
		inTransfer: make(map[sessionKey]*fastPacketSession),

		timeout: DefaultAssemblyTimeout,
		now:     time.Now,
	}
}

// SetTimeout changes inactivity window for incomplete sessions.
func (a *FastPacketAssembler) SetTimeout(timeout time.Duration) {
	a.lock.Lock()
	a.timeout = timeout
	a.lock.Unlock()
}

// Assemble consumes single frame. When frame completes a message, `to` is filled and true is
// returned. Returned error is informational: ErrMalformedFastPacket means the frame did not fit
// the open session and both the frame and the session were discarded. Processing of frames for
// other (PGN, source) pairs is not affected.
func (a *FastPacketAssembler) Assemble(frame RawFrame, to *RawMessage) (bool, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	if _, ok := a.pgns[frame.Header.PGN]; !ok {
		// single frame PGN, complete payload is the frame data
		if cap(to.Data) < int(frame.Length) {
			to.Data = make([]byte, frame.Length)
		}
		to.Data = to.Data[:frame.Length]
		copy(to.Data, frame.Data[0:frame.Length])
		to.Time = frame.Time
		to.Header = frame.Header
		return true, nil
	}

	if frame.Length < 2 {
		return false, ErrMalformedFastPacket
	}
	sequence := frame.Data[0] >> 5        // upper 3 bits (sequence counter range is 0-7)
	frameIndex := frame.Data[0] & 0b11111 // lower 5 bits

	key := sessionKey{pgn: frame.Header.PGN, source: frame.Header.Source}
	session, ok := a.inTransfer[key]
	if ok && frame.Time.Sub(session.lastFrameTime) > a.timeout {
		// session is too old to belong to this frame
		delete(a.inTransfer, key)
		session = nil
		ok = false
	}

	if frameIndex == 0 {
		// first frame always starts fresh session. Incomplete previous session for same key is
		// superseded, the counterpart of its first frame is gone for good anyway.
		length := frame.Data[1]
		if length == 0 || length > FastPacketMaxSize {
			delete(a.inTransfer, key)
			return false, ErrMalformedFastPacket
		}
		session = &fastPacketSession{
			header:         frame.Header,
			lastFrameTime:  frame.Time,
			sequence:       sequence,
			length:         length,
			nextFrameIndex: 1,
		}
		n := copy(session.data[0:], frame.Data[2:frame.Length])
		if n > int(length) {
			n = int(length)
		}
		session.receivedBytes = uint8(n)
		if session.receivedBytes >= session.length {
			// superseded incomplete session must not survive the completed message either
			delete(a.inTransfer, key)
			session.to(to)
			return true, nil
		}
		a.inTransfer[key] = session
		return false, nil
	}

	if !ok {
		// orphan frame, its first frame was never seen or has already expired
		return false, ErrMalformedFastPacket
	}
	if session.sequence != sequence || session.nextFrameIndex != frameIndex {
		// out-of-order or interleaved fragment. There is no retransmission so the in-progress
		// message can never complete, discard it together with the frame.
		delete(a.inTransfer, key)
		return false, ErrMalformedFastPacket
	}

	start := 6 + (int(frameIndex)-1)*7
	remaining := int(session.length) - start
	if remaining <= 0 {
		delete(a.inTransfer, key)
		return false, ErrMalformedFastPacket
	}
	n := copy(session.data[start:int(session.length)], frame.Data[1:frame.Length])
	session.receivedBytes += uint8(n)
	session.nextFrameIndex++
	session.lastFrameTime = frame.Time

	if session.receivedBytes >= session.length {
		session.to(to)
		delete(a.inTransfer, key)
		return true, nil
	}
	return false, nil
}

func (s *fastPacketSession) to(to *RawMessage) {
	to.Time = s.lastFrameTime
	to.Header = s.header

	if cap(to.Data) < int(s.length) {
		to.Data = make([]byte, s.length)
	}
	to.Data = to.Data[:s.length]
	copy(to.Data, s.data[0:s.length])
}

// HasSession reports whether incomplete session exists for given (PGN, source) pair. Session that
// has exceeded the inactivity window is reported as absent.
func (a *FastPacketAssembler) HasSession(pgn uint32, source uint8) bool {
	a.lock.Lock()
	defer a.lock.Unlock()

	session, ok := a.inTransfer[sessionKey{pgn: pgn, source: source}]
	if !ok {
		return false
	}
	return a.now().Sub(session.lastFrameTime) <= a.timeout
}

// ExpireStale removes sessions that have not received a frame within the inactivity window.
// Assemble does the same check lazily per key, this is for callers that want a periodic sweep.
func (a *FastPacketAssembler) ExpireStale() int {
	a.lock.Lock()
	defer a.lock.Unlock()

	threshold := a.now().Add(-a.timeout)
	expired := 0
	for key, session := range a.inTransfer {
		if session.lastFrameTime.Before(threshold) {
			delete(a.inTransfer, key)
			expired++
		}
	}
	return expired
}
