// Package slcan reads and writes NMEA2000 frames over serial CAN adapters speaking the
// SLCAN (LAWICEL) ascii protocol. These are common USB sticks like CANable or USBtin.
package slcan

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"time"

	n2k "github.com/openmarine/go-n2k"
	"github.com/tarm/serial"
)

type Config struct {
	// Port is serial device path. For example: /dev/ttyACM0
	Port string
	// BaudRate defaults to 115200 when 0
	BaudRate int
	// ReadTimeout is max block time for single serial read. Keep it small so context cancellation
	// is noticed. Defaults to 100ms when 0.
	ReadTimeout time.Duration
}

// Device is frame level access to NMEA2000 bus over SLCAN serial adapter. Implements
// n2k.RawFrameReaderWriter.
type Device struct {
	config  Config
	port    *serial.Port
	reader  *bufio.Reader
	timeNow func() time.Time
}

func NewDevice(config Config) *Device {
	if config.BaudRate == 0 {
		config.BaudRate = 115200
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = 100 * time.Millisecond
	}
	return &Device{
		config:  config,
		timeNow: time.Now,
	}
}

func (d *Device) Initialize() error {
	port, err := serial.OpenPort(&serial.Config{
		Name:        d.config.Port,
		Baud:        d.config.BaudRate,
		ReadTimeout: d.config.ReadTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to open slcan serial port: %w", err)
	}
	d.port = port
	d.reader = bufio.NewReader(port)

	// S5 = 250 kbit/s, the NMEA2000 bus rate. O opens the channel.
	if _, err := port.Write([]byte("C\rS5\rO\r")); err != nil {
		return fmt.Errorf("failed to open slcan channel: %w", err)
	}
	return nil
}

func (d *Device) Close() error {
	if d.port == nil {
		return nil
	}
	_, _ = d.port.Write([]byte("C\r")) // close channel, best effort
	return d.port.Close()
}

// WriteRawFrame sends single frame as extended frame format command, for example
// `T1DEFFF0022AA\r` (T + 8 hex id + length digit + hex data).
func (d *Device) WriteRawFrame(frame n2k.RawFrame) error {
	canID, err := frame.Header.CANID()
	if err != nil {
		return err
	}
	line := fmt.Sprintf("T%08X%d%X\r", canID, frame.Length, frame.Data[:frame.Length])
	if _, err := d.port.Write([]byte(line)); err != nil {
		return fmt.Errorf("failed to write slcan frame: %w", err)
	}
	return nil
}

// ReadRawFrame reads lines off the serial port until an extended data frame arrives or ctx is
// cancelled. Standard 11bit frames and adapter status responses are skipped as NMEA2000 only
// uses extended frames.
func (d *Device) ReadRawFrame(ctx context.Context) (n2k.RawFrame, error) {
	for {
		select {
		case <-ctx.Done():
			return n2k.RawFrame{}, ctx.Err()
		default:
		}

		line, err := d.reader.ReadBytes('\r')
		if err != nil {
			// serial read timeout surfaces as io.EOF from bufio, try again until ctx is done
			continue
		}
		frame, ok, err := parseFrame(line, d.timeNow())
		if err != nil {
			return n2k.RawFrame{}, err
		}
		if ok {
			return frame, nil
		}
	}
}

func parseFrame(line []byte, now time.Time) (n2k.RawFrame, bool, error) {
	if len(line) == 0 || line[0] != 'T' {
		return n2k.RawFrame{}, false, nil
	}
	line = line[:len(line)-1] // strip '\r'
	if len(line) < 10 {
		return n2k.RawFrame{}, false, fmt.Errorf("slcan frame line too short: %v", len(line))
	}

	var canID uint32
	if _, err := fmt.Sscanf(string(line[1:9]), "%08X", &canID); err != nil {
		return n2k.RawFrame{}, false, fmt.Errorf("failed to parse slcan CAN ID: %w", err)
	}
	length := int(line[9] - '0')
	if length < 0 || length > 8 {
		return n2k.RawFrame{}, false, fmt.Errorf("slcan frame has invalid length: %v", length)
	}
	if len(line) < 10+length*2 {
		return n2k.RawFrame{}, false, fmt.Errorf("slcan frame data is shorter than its length field")
	}

	frame := n2k.RawFrame{
		Time:   now,
		Header: n2k.ParseCANID(canID),
		Length: uint8(length),
	}
	if _, err := hex.Decode(frame.Data[:length], line[10:10+length*2]); err != nil {
		return n2k.RawFrame{}, false, fmt.Errorf("failed to parse slcan frame data: %w", err)
	}
	return frame, true, nil
}
