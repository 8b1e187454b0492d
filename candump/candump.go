// Package candump reads frames from log files written by the can-utils `candump -L` tool. This
// allows replaying recorded bus traffic through the same pipeline that live transports feed.
package candump

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	n2k "github.com/openmarine/go-n2k"
)

// Reader reads raw frames from a candump log file. Lines look like:
//
//	(1665488842.123456) can0 09FD0223#0102030405060708
//
// Standard (11bit) identifier frames and remote frames are skipped as NMEA2000 traffic uses
// extended identifiers only. Reader is not safe for concurrent use.
type Reader struct {
	path   string
	file   *os.File
	reader *bufio.Reader
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

func (r *Reader) Initialize() error {
	file, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("failed to open candump log: %w", err)
	}
	r.file = file
	r.reader = bufio.NewReader(file)
	return nil
}

func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// ReadRawFrame returns next NMEA2000 frame from the log. Returns io.EOF when the log is
// exhausted.
func (r *Reader) ReadRawFrame(ctx context.Context) (n2k.RawFrame, error) {
	for {
		if err := ctx.Err(); err != nil {
			return n2k.RawFrame{}, err
		}

		line, err := r.reader.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return n2k.RawFrame{}, io.EOF
			}
			return n2k.RawFrame{}, fmt.Errorf("failed to read candump log line: %w", err)
		}

		frame, skip, err := parseLine(strings.TrimSpace(line))
		if err != nil {
			return n2k.RawFrame{}, err
		}
		if skip {
			continue
		}
		return frame, nil
	}
}

func parseLine(line string) (frame n2k.RawFrame, skip bool, err error) {
	if line == "" {
		return n2k.RawFrame{}, true, nil
	}
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return n2k.RawFrame{}, false, fmt.Errorf("candump log line has %v fields, expected 3", len(parts))
	}

	at, err := parseTimestamp(parts[0])
	if err != nil {
		return n2k.RawFrame{}, false, err
	}

	idPart, dataPart, found := strings.Cut(parts[2], "#")
	if !found {
		return n2k.RawFrame{}, false, fmt.Errorf("candump log line is missing frame separator: %v", parts[2])
	}
	if len(idPart) != 8 {
		return n2k.RawFrame{}, true, nil // standard identifier, not NMEA2000
	}
	if strings.HasPrefix(dataPart, "R") {
		return n2k.RawFrame{}, true, nil // remote frame carries no data
	}

	canID, err := strconv.ParseUint(idPart, 16, 32)
	if err != nil {
		return n2k.RawFrame{}, false, fmt.Errorf("candump log line has invalid identifier: %w", err)
	}
	if len(dataPart)%2 != 0 || len(dataPart) > 16 {
		return n2k.RawFrame{}, false, fmt.Errorf("candump log line has invalid data length: %v", len(dataPart))
	}

	frame = n2k.RawFrame{
		Time:   at,
		Header: n2k.ParseCANID(uint32(canID)),
		Length: uint8(len(dataPart) / 2),
	}
	if _, err := hex.Decode(frame.Data[:], []byte(dataPart)); err != nil {
		return n2k.RawFrame{}, false, fmt.Errorf("candump log line has invalid data: %w", err)
	}
	return frame, false, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(raw, "("), ")")
	sec, usec, found := strings.Cut(trimmed, ".")
	if !found {
		return time.Time{}, fmt.Errorf("candump log line has invalid timestamp: %v", raw)
	}
	seconds, err := strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("candump log line has invalid timestamp: %w", err)
	}
	micros, err := strconv.ParseInt(usec, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("candump log line has invalid timestamp: %w", err)
	}
	return time.Unix(seconds, micros*1000).In(time.UTC), nil
}
