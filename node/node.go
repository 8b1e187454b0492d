// Package node ties the frame codec, fast-packet assembly and PGN field codec together into a
// single bus participant that turns raw frames into decoded messages and typed field values
// back into wire frames.
package node

import (
	"context"
	"errors"
	"fmt"
	"time"

	n2k "github.com/openmarine/go-n2k"
	"github.com/openmarine/go-n2k/pgn"
	"go.uber.org/zap"
)

type Config struct {
	// Source is our address on the bus used for outgoing frames. Defaults to n2k.AddressNull
	// which is what listen-only participants without a claimed address must use.
	Source uint8
	// Registry defaults to pgn.StandardRegistry()
	Registry *pgn.Registry
	// DecoderConfig is passed to the field decoder as is
	DecoderConfig pgn.DecoderConfig
	// AssemblyTimeout defaults to n2k.DefaultAssemblyTimeout
	AssemblyTimeout time.Duration
	// Logger defaults to zap.NewNop()
	Logger *zap.Logger
	// RawHandler is called from Run for every assembled raw message, before decoding. This is
	// the place to observe PGNs that have no schema in the registry, like ISO address claims.
	RawHandler func(raw n2k.RawMessage)
}

// Node is single NMEA2000 bus participant.
type Node struct {
	source     uint8
	registry   *pgn.Registry
	assembler  *n2k.FastPacketAssembler
	fragmenter *n2k.Fragmenter
	decoder    *pgn.Decoder
	encoder    *pgn.Encoder
	logger     *zap.Logger
	rawHandler func(raw n2k.RawMessage)
}

func New(config Config) *Node {
	if config.Registry == nil {
		config.Registry = pgn.StandardRegistry()
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Source == 0 {
		config.Source = n2k.AddressNull
	}

	fastPGNs := config.Registry.FastPacketPGNs()
	assembler := n2k.NewFastPacketAssembler(fastPGNs)
	if config.AssemblyTimeout > 0 {
		assembler.SetTimeout(config.AssemblyTimeout)
	}

	return &Node{
		source:     config.Source,
		registry:   config.Registry,
		assembler:  assembler,
		fragmenter: n2k.NewFragmenter(fastPGNs),
		decoder:    pgn.NewDecoderWithConfig(config.Registry, config.DecoderConfig),
		encoder:    pgn.NewEncoder(config.Registry),
		logger:     config.Logger,
		rawHandler: config.RawHandler,
	}
}

// AssembleFrame feeds single frame into assembly. Returns assembled raw message when the frame
// completes one, nil when more frames are needed.
func (n *Node) AssembleFrame(frame n2k.RawFrame) (*n2k.RawMessage, error) {
	var raw n2k.RawMessage
	complete, err := n.assembler.Assemble(frame, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble frame for PGN: %v, err: %w", frame.Header.PGN, err)
	}
	if !complete {
		return nil, nil
	}
	return &raw, nil
}

// OnFrame feeds single frame into assembly. Returns decoded message when the frame completes
// one, nil when more frames are needed. Frames for PGNs without a registered schema fail with
// pgn.ErrUnknownPGN after assembly.
func (n *Node) OnFrame(frame n2k.RawFrame) (*n2k.Message, error) {
	raw, err := n.AssembleFrame(frame)
	if err != nil || raw == nil {
		return nil, err
	}

	msg, err := n.decoder.Decode(*raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode message for PGN: %v, err: %w", raw.Header.PGN, err)
	}
	return &msg, nil
}

// BuildFrames encodes field values into wire frames ready to be sent. Outgoing frames carry
// the node's own source address.
func (n *Node) BuildFrames(pgnNr uint32, priority uint8, destination uint8, fields n2k.FieldValues) ([]n2k.RawFrame, error) {
	data, err := n.encoder.Encode(pgnNr, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message for PGN: %v, err: %w", pgnNr, err)
	}
	header := n2k.CanBusHeader{
		PGN:         pgnNr,
		Priority:    priority,
		Source:      n.source,
		Destination: destination,
	}
	return n.fragmenter.Fragment(header, data)
}

// Send encodes field values and writes resulting frames to given writer.
func (n *Node) Send(writer n2k.RawFrameWriter, pgnNr uint32, priority uint8, destination uint8, fields n2k.FieldValues) error {
	frames, err := n.BuildFrames(pgnNr, priority, destination, fields)
	if err != nil {
		return err
	}
	for _, frame := range frames {
		if err := writer.WriteRawFrame(frame); err != nil {
			return fmt.Errorf("failed to write frame for PGN: %v, err: %w", pgnNr, err)
		}
	}
	return nil
}

// SendRaw fragments already encoded raw message and writes resulting frames to given writer.
// The message header is sent as is, source address included.
func (n *Node) SendRaw(writer n2k.RawFrameWriter, msg n2k.RawMessage) error {
	frames, err := n.fragmenter.Fragment(msg.Header, msg.Data)
	if err != nil {
		return fmt.Errorf("failed to fragment message for PGN: %v, err: %w", msg.Header.PGN, err)
	}
	for _, frame := range frames {
		if err := writer.WriteRawFrame(frame); err != nil {
			return fmt.Errorf("failed to write frame for PGN: %v, err: %w", msg.Header.PGN, err)
		}
	}
	return nil
}

// Run reads frames off the device until ctx is cancelled and calls handler for every decoded
// message. Frame and decode errors are logged and skipped, only device errors end the run.
// Stale assembly sessions are swept periodically so abandoned transfers do not pile up.
func (n *Node) Run(ctx context.Context, device n2k.RawFrameReader, handler func(n2k.Message)) error {
	sweep := time.NewTicker(5 * time.Second)
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sweep.C:
			if expired := n.assembler.ExpireStale(); expired > 0 {
				n.logger.Debug("expired stale fast-packet sessions", zap.Int("count", expired))
			}
		default:
		}

		frame, err := device.ReadRawFrame(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return fmt.Errorf("failed to read frame from device, err: %w", err)
		}

		raw, err := n.AssembleFrame(frame)
		if err != nil {
			n.logger.Warn("failed to assemble frame",
				zap.Uint32("pgn", frame.Header.PGN),
				zap.Uint8("source", frame.Header.Source),
				zap.Error(err),
			)
			continue
		}
		if raw == nil {
			continue
		}
		if n.rawHandler != nil {
			n.rawHandler(*raw)
		}

		msg, err := n.decoder.Decode(*raw)
		if err != nil {
			if errors.Is(err, pgn.ErrUnknownPGN) {
				n.logger.Debug("skipping unknown PGN",
					zap.Uint32("pgn", raw.Header.PGN),
					zap.Uint8("source", raw.Header.Source),
				)
				continue
			}
			n.logger.Warn("failed to decode message",
				zap.Uint32("pgn", raw.Header.PGN),
				zap.Uint8("source", raw.Header.Source),
				zap.Error(err),
			)
			continue
		}
		handler(msg)
	}
}
