// n2kdump reads NMEA2000 bus over SocketCAN, SLCAN serial adapter or a candump log file and
// prints decoded messages to stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	n2k "github.com/openmarine/go-n2k"
	"github.com/openmarine/go-n2k/candump"
	"github.com/openmarine/go-n2k/node"
	"github.com/openmarine/go-n2k/pgn"
	"github.com/openmarine/go-n2k/slcan"
	"github.com/openmarine/go-n2k/socketcan"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	var filterFlag []uint
	flags := defaultConfig()

	cmd := &cobra.Command{
		Use:          "n2kdump",
		Short:        "dump decoded NMEA2000 traffic from a CAN bus",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			// flags set explicitly on command line override config file values
			if cmd.Flags().Changed("transport") {
				conf.Transport = flags.Transport
			}
			if cmd.Flags().Changed("interface") {
				conf.Interface = flags.Interface
			}
			if cmd.Flags().Changed("port") {
				conf.Port = flags.Port
			}
			if cmd.Flags().Changed("baud") {
				conf.BaudRate = flags.BaudRate
			}
			if cmd.Flags().Changed("file") {
				conf.File = flags.File
			}
			if cmd.Flags().Changed("output") {
				conf.Output = flags.Output
			}
			if cmd.Flags().Changed("filter") {
				conf.Filter = make([]uint32, 0, len(filterFlag))
				for _, p := range filterFlag {
					conf.Filter = append(conf.Filter, uint32(p))
				}
			}
			if cmd.Flags().Changed("requests") {
				conf.Requests = flags.Requests
			}
			if cmd.Flags().Changed("debug") {
				conf.Debug = flags.Debug
			}
			if err := conf.validate(); err != nil {
				return err
			}
			return run(conf)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to yaml config file")
	cmd.Flags().StringVarP(&flags.Transport, "transport", "t", flags.Transport, "bus transport (socketcan, slcan, file)")
	cmd.Flags().StringVarP(&flags.Interface, "interface", "i", flags.Interface, "SocketCAN interface name")
	cmd.Flags().StringVarP(&flags.Port, "port", "p", flags.Port, "serial device path for slcan adapter")
	cmd.Flags().IntVarP(&flags.BaudRate, "baud", "b", flags.BaudRate, "slcan serial baud rate")
	cmd.Flags().StringVarP(&flags.File, "file", "f", flags.File, "candump log path for the file transport")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", flags.Output, "output format (json, hex, cbor)")
	cmd.Flags().UintSliceVar(&filterFlag, "filter", nil, "comma separated list of PGNs to print")
	cmd.Flags().BoolVar(&flags.Requests, "requests", flags.Requests, "query newly seen devices for product info")
	cmd.Flags().BoolVar(&flags.Debug, "debug", flags.Debug, "enable debug logging")

	return cmd
}

func run(conf config) error {
	logger, err := newLogger(conf.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	format, err := newFormatter(conf.Output)
	if err != nil {
		return err
	}

	var device n2k.RawFrameReader
	var writer n2k.RawFrameWriter
	switch conf.Transport {
	case "socketcan":
		d := socketcan.NewDevice(conf.Interface)
		device, writer = d, d
	case "slcan":
		d := slcan.NewDevice(slcan.Config{Port: conf.Port, BaudRate: conf.BaudRate})
		device, writer = d, d
	case "file":
		device = candump.NewReader(conf.File)
		if conf.Requests {
			logger.Warn("file transport can not send requests, disabling")
			conf.Requests = false
		}
	}

	logger.Info("initializing device", zap.String("transport", conf.Transport))
	if err := device.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize device: %w", err)
	}
	defer device.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	busMap := node.NewBusMap()
	busMap.EnableRequests(conf.Requests)

	registry := pgn.StandardRegistry()
	var busNode *node.Node
	busNode = node.New(node.Config{
		Registry: registry,
		Logger:   logger,
		RawHandler: func(raw n2k.RawMessage) {
			if changed, err := busMap.Process(raw); err != nil {
				logger.Warn("bus map processing failed", zap.Error(err))
			} else if changed {
				logger.Info("bus address mapping changed", zap.Int("devices", len(busMap.Devices())))
			}
			if writer == nil {
				return
			}
			for _, req := range busMap.PendingRequests() {
				if err := busNode.SendRaw(writer, req); err != nil {
					logger.Warn("failed to send ISO request", zap.Error(err))
				}
			}
		},
	})
	if conf.Requests {
		go func() {
			// give the device a moment to settle, then ask everything on the bus to identify itself
			select {
			case <-ctx.Done():
				return
			case <-time.After(1 * time.Second):
				busMap.BroadcastAddressClaimRequest()
			}
		}()
	}

	filter := make(map[uint32]struct{}, len(conf.Filter))
	for _, p := range conf.Filter {
		filter[p] = struct{}{}
	}

	logger.Info("starting to read bus", zap.Int("known PGNs", len(registry.PGNs())))
	err = busNode.Run(ctx, device, func(msg n2k.Message) {
		if len(filter) > 0 {
			if _, ok := filter[msg.Header.PGN]; !ok {
				return
			}
		}
		out, err := format(msg)
		if err != nil {
			logger.Warn("failed to format message", zap.Uint32("pgn", msg.Header.PGN), zap.Error(err))
			return
		}
		fmt.Printf("%s\n", out)
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	conf := zap.NewProductionConfig()
	conf.OutputPaths = []string{"stderr"} // stdout is reserved for decoded messages
	return conf.Build()
}
