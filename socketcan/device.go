package socketcan

import (
	"context"
	"errors"
	"time"

	n2k "github.com/openmarine/go-n2k"
)

// Device is frame level access to NMEA2000 bus over SocketCAN interface. Implements
// n2k.RawFrameReaderWriter.
type Device struct {
	conn *connection

	// ifName is SocketCAN interface name. For example: can0
	ifName string

	// receiveDataTimeout limits the amount of time reads can result in no data, to fail the
	// connection when there is no traffic on the bus. This is different from the per-read socket
	// timeout which is kept small so that context cancellation is noticed during blocking reads.
	receiveDataTimeout time.Duration

	timeNow func() time.Time
}

func NewDevice(ifName string) *Device {
	return &Device{
		conn: nil,

		ifName:             ifName,
		timeNow:            time.Now,
		receiveDataTimeout: 5 * time.Second,
	}
}

func (d *Device) Initialize() error {
	conn, err := newConnection(d.ifName)
	if err != nil {
		return err
	}
	d.conn = conn

	return nil
}

func (d *Device) Close() error {
	return d.conn.Close()
}

// WriteRawFrame sends single frame to the bus.
func (d *Device) WriteRawFrame(frame n2k.RawFrame) error {
	return d.conn.SendFrame(frame)
}

// ReadRawFrame reads single frame off the bus. Blocks until a frame arrives, ctx is cancelled or
// the bus has been silent for longer than the receive data timeout.
func (d *Device) ReadRawFrame(ctx context.Context) (n2k.RawFrame, error) {
	start := d.timeNow()
	for {
		select {
		case <-ctx.Done():
			return n2k.RawFrame{}, ctx.Err()
		default:
		}

		if err := d.conn.SetReadTimeout(50 * time.Millisecond); err != nil { // max 50ms block time for read per iteration
			return n2k.RawFrame{}, err
		}
		frame, err := d.conn.ReceiveFrame()
		if err != nil {
			if errors.Is(err, errReadTimeout) {
				if d.timeNow().Sub(start) > d.receiveDataTimeout {
					return n2k.RawFrame{}, err
				}
				continue
			}
			return n2k.RawFrame{}, err
		}
		return frame, nil
	}
}
