package node

import (
	"encoding/binary"
	"testing"

	n2k "github.com/openmarine/go-n2k"
	"github.com/stretchr/testify/assert"
)

func claimMessage(source uint8, name DeviceName) n2k.RawMessage {
	return n2k.RawMessage{
		Time: testTime,
		Header: n2k.CanBusHeader{
			PGN:         n2k.PGNISOAddressClaim,
			Priority:    6,
			Source:      source,
			Destination: n2k.AddressGlobal,
		},
		Data: name.Bytes(),
	}
}

func TestParseDeviceName(t *testing.T) {
	given := DeviceName{
		UniqueNumber:            0x1F40FF, // full 21 bits carried on the wire
		Manufacturer:            358,
		DeviceInstanceLower:     2,
		DeviceInstanceUpper:     5,
		DeviceFunction:          130,
		DeviceClass:             25,
		SystemInstance:          1,
		IndustryGroup:           4,
		ArbitraryAddressCapable: 1,
	}

	t.Run("ok, Bytes round trips", func(t *testing.T) {
		result, err := ParseDeviceName(claimMessage(0x10, given))
		assert.NoError(t, err)
		assert.Equal(t, given, result)
	})

	t.Run("ok, NAME compares little-endian", func(t *testing.T) {
		// byte 7 fields (industry group etc) outrank the unique number in claim priority
		low := DeviceName{UniqueNumber: 0x1FFFFF, IndustryGroup: 1}
		high := DeviceName{UniqueNumber: 0x000001, IndustryGroup: 4}
		assert.Less(t, low.Uint64(), high.Uint64())
	})

	t.Run("nok, wrong PGN", func(t *testing.T) {
		msg := claimMessage(0x10, given)
		msg.Header.PGN = 130306
		_, err := ParseDeviceName(msg)
		assert.Error(t, err)
	})

	t.Run("nok, wrong payload length", func(t *testing.T) {
		msg := claimMessage(0x10, given)
		msg.Data = msg.Data[0:4]
		_, err := ParseDeviceName(msg)
		assert.Error(t, err)
	})
}

func TestBusMap_Process_addressClaim(t *testing.T) {
	m := NewBusMap()

	lowName := DeviceName{UniqueNumber: 0x01, Manufacturer: 100}
	highName := DeviceName{UniqueNumber: 0x02, Manufacturer: 400}

	t.Run("ok, first claim takes the address", func(t *testing.T) {
		changed, err := m.Process(claimMessage(0x10, highName))
		assert.NoError(t, err)
		assert.True(t, changed)

		devices := m.DevicesInUseBySource()
		assert.Len(t, devices, 1)
		assert.Equal(t, highName, devices[0x10].Name)
	})

	t.Run("ok, lower NAME wins contested address", func(t *testing.T) {
		changed, err := m.Process(claimMessage(0x10, lowName))
		assert.NoError(t, err)
		assert.True(t, changed)

		devices := m.DevicesInUseBySource()
		assert.Equal(t, lowName, devices[0x10].Name)
	})

	t.Run("ok, higher NAME does not take over", func(t *testing.T) {
		changed, err := m.Process(claimMessage(0x10, highName))
		assert.NoError(t, err)
		assert.False(t, changed)

		devices := m.DevicesInUseBySource()
		assert.Equal(t, lowName, devices[0x10].Name)
	})

	t.Run("ok, losing device is still known without an address", func(t *testing.T) {
		assert.Len(t, m.Devices(), 2)
		assert.Len(t, m.DevicesInUseBySource(), 1)
	})
}

func TestBusMap_Process_ignoresSpecialSourceAddresses(t *testing.T) {
	m := NewBusMap()

	name := DeviceName{UniqueNumber: 0x01}
	changed, err := m.Process(claimMessage(n2k.AddressNull, name))
	assert.NoError(t, err)
	assert.True(t, changed) // device is learned but holds no bus address

	assert.Len(t, m.DevicesInUseBySource(), 0)
}

func TestBusMap_requests(t *testing.T) {
	m := NewBusMap()
	m.EnableRequests(true)

	_, err := m.Process(claimMessage(0x10, DeviceName{UniqueNumber: 0x01}))
	assert.NoError(t, err)

	requests := m.PendingRequests()
	assert.Len(t, requests, 1)
	assert.Equal(t, n2k.PGNISORequest, requests[0].Header.PGN)
	assert.Equal(t, uint8(0x10), requests[0].Header.Destination)
	assert.Equal(t, n2k.RawData{0x14, 0xF0, 0x01}, requests[0].Data) // 126996 little-endian

	// drained queue is empty, repeated claims do not request twice
	_, err = m.Process(claimMessage(0x10, DeviceName{UniqueNumber: 0x01}))
	assert.NoError(t, err)
	assert.Empty(t, m.PendingRequests())

	// product info answer triggers one configuration info request
	data := make(n2k.RawData, 134)
	for i := range data {
		data[i] = 0xFF
	}
	_, err = m.Process(n2k.RawMessage{
		Time:   testTime,
		Header: n2k.CanBusHeader{PGN: n2k.PGNProductInfo, Priority: 6, Source: 0x10, Destination: n2k.AddressGlobal},
		Data:   data,
	})
	assert.NoError(t, err)

	requests = m.PendingRequests()
	assert.Len(t, requests, 1)
	assert.Equal(t, n2k.RawData{0x16, 0xF0, 0x01}, requests[0].Data) // 126998 little-endian
}

func lauString(s string) []byte {
	result := []byte{uint8(len(s) + 2), 1} // total length including header, ascii encoding
	return append(result, s...)
}

func TestBusMap_Process_configInfo(t *testing.T) {
	m := NewBusMap()

	_, err := m.Process(claimMessage(0x10, DeviceName{UniqueNumber: 0x01}))
	assert.NoError(t, err)

	data := make(n2k.RawData, 0)
	data = append(data, lauString("bow thruster")...)
	data = append(data, lauString("port side")...)
	data = append(data, lauString("ACME Marine")...)

	_, err = m.Process(n2k.RawMessage{
		Time:   testTime,
		Header: n2k.CanBusHeader{PGN: n2k.PGNConfigInfo, Priority: 6, Source: 0x10, Destination: n2k.AddressGlobal},
		Data:   data,
	})
	assert.NoError(t, err)

	device := m.DevicesInUseBySource()[0x10]
	assert.True(t, device.ValidConfigInfo)
	assert.Equal(t, ConfigInfo{
		InstallationDescription1: "bow thruster",
		InstallationDescription2: "port side",
		ManufacturerInfo:         "ACME Marine",
	}, device.ConfigInfo)
}

func TestBusMap_Process_productInfo(t *testing.T) {
	m := NewBusMap()

	name := DeviceName{UniqueNumber: 0x01}
	_, err := m.Process(claimMessage(0x10, name))
	assert.NoError(t, err)

	data := make(n2k.RawData, 134)
	binary.LittleEndian.PutUint16(data[0:2], 2100)
	binary.LittleEndian.PutUint16(data[2:4], 1957)
	assert.NoError(t, data.PutStringFix(32, 256, "Compass"))
	assert.NoError(t, data.PutStringFix(288, 256, "1.2.3"))
	assert.NoError(t, data.PutStringFix(544, 256, "Mk II"))
	assert.NoError(t, data.PutStringFix(800, 256, "SN-001"))
	data[132] = 2
	data[133] = 1

	_, err = m.Process(n2k.RawMessage{
		Time:   testTime,
		Header: n2k.CanBusHeader{PGN: n2k.PGNProductInfo, Priority: 6, Source: 0x10, Destination: n2k.AddressGlobal},
		Data:   data,
	})
	assert.NoError(t, err)

	device := m.DevicesInUseBySource()[0x10]
	assert.True(t, device.ValidProductInfo)
	assert.Equal(t, ProductInfo{
		NMEA2000Version:     2100,
		ProductCode:         1957,
		ModelID:             "Compass",
		SoftwareVersionCode: "1.2.3",
		ModelVersion:        "Mk II",
		ModelSerialCode:     "SN-001",
		CertificationLevel:  2,
		LoadEquivalency:     1,
	}, device.ProductInfo)
}
