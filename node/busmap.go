package node

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	n2k "github.com/openmarine/go-n2k"
)

const busMapRequestQueueSize = 20

// DeviceName holds information to identify a device on the NMEA bus. Is acquired from PGN 60928
// (ISO Address Claim) broadcasts. Related info about SAE1939 addresses
// https://embeddedflakes.com/network-management-in-sae-j1939/
type DeviceName struct { // PGN 60928 payload is 64 bits
	UniqueNumber        uint32 // ISO Identity Number (21 bits)
	Manufacturer        uint16 // Device Manufacturer (11 bits)
	DeviceInstanceLower uint8  // J1939 ECU Instance (3 bits)
	DeviceInstanceUpper uint8  // J1939 Function Instance (5 bits)
	DeviceFunction      uint8  // (8 bits)
	// reserved (1 bit)
	DeviceClass    uint8 // (7 bits)
	SystemInstance uint8 // ISO Device Class Instance (4 bits)
	IndustryGroup  uint8 // (3 bits)

	// ArbitraryAddressCapable tells whether device resolves address claim conflicts by picking
	// another address from range 128 to 247 when it loses the claim.
	ArbitraryAddressCapable uint8 // (1 bit)
}

// Bytes is little-endian wire form of the name, exact inverse of ParseDeviceName. Byte 7 holds
// the most significant fields so NAME claim priority compares as plain little-endian uint64.
func (n DeviceName) Bytes() []byte {
	return []byte{
		uint8(n.UniqueNumber & 0xff),                                      // 0
		uint8(n.UniqueNumber >> 8 & 0xff),                                 // 1
		uint8(n.UniqueNumber>>16&0b11111) | uint8(n.Manufacturer&0b111)<<5, // 2
		uint8(n.Manufacturer >> 3 & 0xff),                                 // 3
		n.DeviceInstanceLower&0b111 | (n.DeviceInstanceUpper&0b11111)<<3,  // 4
		n.DeviceFunction,   // 5
		n.DeviceClass << 1, // 6
		n.SystemInstance&0b1111 | (n.IndustryGroup&0b111)<<4 | n.ArbitraryAddressCapable<<7, // 7
	}
}

func (n DeviceName) Uint64() uint64 {
	return binary.LittleEndian.Uint64(n.Bytes())
}

// ParseDeviceName extracts device name fields from PGN 60928 (ISO Address Claim) message.
func ParseDeviceName(raw n2k.RawMessage) (DeviceName, error) {
	if raw.Header.PGN != n2k.PGNISOAddressClaim {
		return DeviceName{}, errors.New("device name can only be created from rawMessage with PGN 60928")
	}
	b := raw.Data
	if len(b) != 8 {
		return DeviceName{}, errors.New("rawMessage has invalid length to be ISO Address claim")
	}
	return DeviceName{
		UniqueNumber:            uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2]&0b11111)<<16, // 21 bits
		Manufacturer:            uint16(b[3])<<3 | uint16(b[2]>>5),                         // 11 bits
		DeviceInstanceLower:     b[4] & 0b111,                                              // 3 bits
		DeviceInstanceUpper:     b[4] >> 3,                                                 // 5 bits
		DeviceFunction:          b[5],                                                      // 8 bits
		DeviceClass:             b[6] >> 1,                                                 // 7 bits + 1 reserved bit
		SystemInstance:          b[7] & 0b1111,                                             // 4 bits
		IndustryGroup:           (b[7] >> 4) & 0b111,                                       // 3 bits
		ArbitraryAddressCapable: b[7] >> 7,                                                 // 1 bit
	}, nil
}

// ProductInfo is decoded PGN 126996 (Product Information) payload.
type ProductInfo struct {
	NMEA2000Version uint16
	ProductCode     uint16

	ModelID             string // (32 bytes)
	SoftwareVersionCode string // (32 bytes)
	ModelVersion        string // (32 bytes)
	ModelSerialCode     string // (32 bytes)

	CertificationLevel uint8
	LoadEquivalency    uint8
}

// ParseProductInfo extracts product info from assembled PGN 126996 message.
func ParseProductInfo(raw n2k.RawMessage) (ProductInfo, error) {
	if raw.Header.PGN != n2k.PGNProductInfo {
		return ProductInfo{}, errors.New("product info can only be created from rawMessage with PGN 126996")
	}
	b := raw.Data
	if len(b) != 134 {
		return ProductInfo{}, errors.New("rawMessage has invalid length to be product info")
	}

	nmea2000Version, err := b.DecodeVariableUint(0, 16)
	if err != nil && err != n2k.ErrValueNoData {
		return ProductInfo{}, fmt.Errorf("failed to extract NMEA2000 version for product info, err: %w", err)
	}
	productCode, err := b.DecodeVariableUint(16, 16)
	if err != nil && err != n2k.ErrValueNoData {
		return ProductInfo{}, fmt.Errorf("failed to extract product code for product info, err: %w", err)
	}

	modelID, err := b.DecodeStringFix(32, 256)
	if err != nil && err != n2k.ErrValueNoData {
		return ProductInfo{}, fmt.Errorf("failed to extract model id for product info, err: %w", err)
	}
	softwareVersionCode, err := b.DecodeStringFix(288, 256)
	if err != nil && err != n2k.ErrValueNoData {
		return ProductInfo{}, fmt.Errorf("failed to extract software version code for product info, err: %w", err)
	}
	modelVersion, err := b.DecodeStringFix(544, 256)
	if err != nil && err != n2k.ErrValueNoData {
		return ProductInfo{}, fmt.Errorf("failed to extract model version for product info, err: %w", err)
	}
	modelSerialCode, err := b.DecodeStringFix(800, 256)
	if err != nil && err != n2k.ErrValueNoData {
		return ProductInfo{}, fmt.Errorf("failed to extract model serial code for product info, err: %w", err)
	}

	return ProductInfo{
		NMEA2000Version: uint16(nmea2000Version),
		ProductCode:     uint16(productCode),

		ModelID:             modelID,
		SoftwareVersionCode: softwareVersionCode,
		ModelVersion:        modelVersion,
		ModelSerialCode:     modelSerialCode,

		CertificationLevel: b[132],
		LoadEquivalency:    b[133],
	}, nil
}

// ConfigInfo is decoded PGN 126998 (Configuration Information) payload. Free-form installer
// provided texts describing where and how the device is fitted.
type ConfigInfo struct {
	InstallationDescription1 string
	InstallationDescription2 string
	ManufacturerInfo         string
}

// ParseConfigInfo extracts configuration info from assembled PGN 126998 message.
func ParseConfigInfo(raw n2k.RawMessage) (ConfigInfo, error) {
	if raw.Header.PGN != n2k.PGNConfigInfo {
		return ConfigInfo{}, errors.New("configuration info can only be created from rawMessage with PGN 126998")
	}
	installationDescription1, read, err := raw.Data.DecodeStringLAU(0)
	if err != nil {
		return ConfigInfo{}, fmt.Errorf("failed to extract installation description 1 for configuration info, err: %w", err)
	}
	offset := read
	installationDescription2, read, err := raw.Data.DecodeStringLAU(offset)
	if err != nil {
		return ConfigInfo{}, fmt.Errorf("failed to extract installation description 2 for configuration info, err: %w", err)
	}
	offset += read
	manufacturerInfo, _, err := raw.Data.DecodeStringLAU(offset)
	if err != nil {
		return ConfigInfo{}, fmt.Errorf("failed to extract manufacturer info for configuration info, err: %w", err)
	}
	return ConfigInfo{
		InstallationDescription1: installationDescription1,
		InstallationDescription2: installationDescription2,
		ManufacturerInfo:         manufacturerInfo,
	}, nil
}

// BusDevice is single device seen on the bus.
type BusDevice struct {
	Source uint8

	NAME      uint64
	Name      DeviceName
	ValidName bool

	ProductInfo      ProductInfo
	ValidProductInfo bool

	ConfigInfo      ConfigInfo
	ValidConfigInfo bool
}

type busSlot struct {
	device  *BusDevice
	claimed time.Time

	productInfoRequested time.Time
	configInfoRequested  time.Time

	lastPacket time.Time
}

// BusMap keeps track of devices seen on the bus and which source address each one currently
// holds. Addresses are claimed with the J1939 claim procedure so the mapping changes over time,
// the device with the lower NAME wins a contested address.
type BusMap struct {
	mutex sync.Mutex

	// when new device is detected requests for additional PGNs describing that device are queued
	// here until the caller drains them to the bus
	requests *queue[n2k.RawMessage]

	requestsEnabled bool

	knownDevices   map[uint64]*BusDevice
	address2device [255]*busSlot

	now func() time.Time
}

func NewBusMap() *BusMap {
	return &BusMap{
		requests:     newQueue[n2k.RawMessage](busMapRequestQueueSize),
		knownDevices: make(map[uint64]*BusDevice),
		now:          time.Now,
	}
}

// EnableRequests makes BusMap queue ISO requests for information about newly seen devices.
// Drain them with PendingRequests. Disabled by default for listen-only use.
func (m *BusMap) EnableRequests(enabled bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.requestsEnabled = enabled
}

// BroadcastAddressClaimRequest queues ISO request asking all devices on the bus to (re)send
// their address claims.
func (m *BusMap) BroadcastAddressClaimRequest() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.requests.Enqueue(ISORequest(n2k.PGNISOAddressClaim, n2k.AddressGlobal))
}

// PendingRequests drains queued ISO requests. Caller is expected to fragment and write them to
// the bus.
func (m *BusMap) PendingRequests() []n2k.RawMessage {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := make([]n2k.RawMessage, 0)
	for {
		msg, ok := m.requests.Dequeue()
		if !ok {
			return result
		}
		result = append(result, msg)
	}
}

// Process inspects assembled message and updates device bookkeeping. Returns true when the
// source address to device mapping changed.
func (m *BusMap) Process(raw n2k.RawMessage) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	source := raw.Header.Source
	var slot *busSlot
	if source >= n2k.AddressNull { // addresses 254 and 255 have special meaning and do not represent actual device address
		slot = new(busSlot)
	} else {
		slot = m.address2device[source]
		if slot == nil {
			slot = new(busSlot)
			m.address2device[source] = slot
		}
		slot.lastPacket = raw.Time
	}

	switch raw.Header.PGN {
	case n2k.PGNISOAddressClaim:
		return m.processAddressClaim(slot, raw)
	case n2k.PGNProductInfo:
		return false, m.processProductInfo(slot, raw)
	case n2k.PGNConfigInfo:
		return false, m.processConfigInfo(slot, raw)
	}
	return false, nil
}

func (m *BusMap) processAddressClaim(slot *busSlot, raw n2k.RawMessage) (bool, error) {
	name, err := ParseDeviceName(raw)
	if err != nil {
		return false, err
	}
	source := raw.Header.Source
	NAME := binary.LittleEndian.Uint64(raw.Data)

	device, ok := m.knownDevices[NAME]
	if !ok {
		device = &BusDevice{
			Source:    source,
			NAME:      NAME,
			Name:      name,
			ValidName: true,
		}
		m.knownDevices[NAME] = device
	}

	changed := false
	if slot.device == nil {
		// we probably started listening on an already settled bus, assume this name is the
		// owner of the address
		device.Source = source
		slot.device = device
		slot.claimed = m.now()
		changed = true
	} else if slot.device.ValidName && device.NAME < slot.device.NAME {
		slot.device.Source = n2k.AddressNull // unassign source from the losing device

		// by J1939 address claim logic this device now owns the slot as its name is lower
		device.Source = source
		slot.device = device
		slot.claimed = m.now()
		changed = true
	}

	if m.requestsEnabled && slot.productInfoRequested.IsZero() {
		slot.productInfoRequested = m.now()
		m.requests.Enqueue(ISORequest(n2k.PGNProductInfo, source))
	}
	return changed, nil
}

func (m *BusMap) processProductInfo(slot *busSlot, raw n2k.RawMessage) error {
	if slot.device == nil || slot.device.ValidProductInfo {
		return nil
	}

	info, err := ParseProductInfo(raw)
	if err != nil {
		return err
	}
	slot.device.ProductInfo = info
	slot.device.ValidProductInfo = true

	if m.requestsEnabled && slot.configInfoRequested.IsZero() {
		slot.configInfoRequested = m.now()
		m.requests.Enqueue(ISORequest(n2k.PGNConfigInfo, raw.Header.Source))
	}
	return nil
}

func (m *BusMap) processConfigInfo(slot *busSlot, raw n2k.RawMessage) error {
	if slot.device == nil || slot.device.ValidConfigInfo {
		return nil
	}

	info, err := ParseConfigInfo(raw)
	if err != nil {
		return err
	}
	slot.device.ConfigInfo = info
	slot.device.ValidConfigInfo = true
	return nil
}

// Devices returns all known (current and previously seen) devices from the bus.
func (m *BusMap) Devices() []BusDevice {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := make([]BusDevice, 0, len(m.knownDevices))
	for _, d := range m.knownDevices {
		result = append(result, *d)
	}
	return result
}

// DevicesInUseBySource returns devices that currently hold a valid source address.
func (m *BusMap) DevicesInUseBySource() map[uint8]BusDevice {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := make(map[uint8]BusDevice)
	for _, d := range m.knownDevices {
		if d.Source >= n2k.AddressNull {
			continue
		}
		result[d.Source] = *d
	}
	return result
}

// ISORequest builds PGN 59904 (ISO Request) message asking destination to send given PGN.
func ISORequest(forPGN uint32, destination uint8) n2k.RawMessage {
	return n2k.RawMessage{
		Header: n2k.CanBusHeader{
			PGN:      n2k.PGNISORequest,
			Priority: 6,
			// https://copperhilltech.com/blog/sae-j1939-address-claim-procedure-sae-j193981-network-management/
			// "A node, that has not yet claimed an address, must use the NULL address (254) as the source address
			//  when sending a Request for Address Claimed message."
			Source:      n2k.AddressNull,
			Destination: destination,
		},
		Data: []byte{ // order as little endian
			uint8(forPGN & 0xff),
			uint8((forPGN >> 8) & 0xff),
			uint8((forPGN >> 16) & 0xff),
		},
	}
}

type queue[T any] struct {
	items  []T
	length int
}

func newQueue[T any](length int) *queue[T] {
	return &queue[T]{
		items:  make([]T, 0, length),
		length: length,
	}
}

func (q *queue[T]) Enqueue(item T) bool {
	if len(q.items) == q.length {
		return false
	}
	q.items = append(q.items, item)
	return true
}

func (q *queue[T]) Dequeue() (T, bool) {
	var empty T
	if len(q.items) == 0 {
		return empty, false
	}
	value := q.items[0]

	q.items[0] = empty

	q.items = q.items[1:]
	return value, true
}
