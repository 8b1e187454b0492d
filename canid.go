package n2k

// CanBusHeader is NMEA2000 header decoded from 29-bit CAN identifier.
type CanBusHeader struct {
	PGN         uint32 `json:"pgn"`
	Priority    uint8  `json:"priority"`
	Source      uint8  `json:"source"`
	Destination uint8  `json:"destination"`
}

// CANID encodes header fields into 29-bit CAN identifier. It is the exact inverse of ParseCANID
// for every header it accepts.
func (h CanBusHeader) CANID() (uint32, error) {
	if h.Priority > 7 {
		return 0, ErrInvalidHeader
	}
	if h.PGN > 0x3FFFF { // PGN is 18 bits (data page + PDU format + PDU specific)
		return 0, ErrInvalidHeader
	}
	if h.Source == AddressGlobal {
		return 0, ErrInvalidHeader
	}

	canID := uint32(h.Source)                // bits 0-7
	canID |= uint32(h.Priority&0x7) << 26    // bits 26,27,28
	pduFormat := uint8(h.PGN >> 8)           // bits 16-23 of identifier
	if pduFormat < 240 {                     // PDU1, destination is part of identifier
		if h.PGN&0xFF != 0 { // PDU1 PGNs have zero low byte, that space carries the destination
			return 0, ErrInvalidHeader
		}
		canID |= uint32(h.Destination) << 8 // bits 8-15
		canID |= h.PGN << 8
	} else { // PDU2, low byte of PGN occupies bits 8-15 and destination is implied broadcast
		canID |= h.PGN << 8
	}
	return canID, nil
}

// ParseCANID parses bus header fields from CAN identifier (29 bits of 32 bit).
func ParseCANID(canID uint32) CanBusHeader {
	result := CanBusHeader{
		Priority: uint8((canID >> 26) & 0x7), // bit 26,27,28
		Source:   uint8(canID),               // bit 0-7
	}
	ps := uint8(canID >> 8)         // bits 8-15
	pduFormat := uint8(canID >> 16) // bits 16-23
	rAndDP := uint8(canID>>24) & 3  // bits 24,25
	pgn := (uint32(rAndDP) << 16) + uint32(pduFormat)<<8
	if pduFormat < 240 { // PDU1, PS byte is the destination address
		result.Destination = ps
		result.PGN = pgn
	} else { // PDU2, PS byte extends the PGN and destination is everyone
		result.Destination = AddressGlobal
		result.PGN = pgn + uint32(ps)
	}
	return result
}
