package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type config struct {
	// Transport selects bus access: socketcan or slcan
	Transport string `yaml:"transport"`
	// Interface is SocketCAN interface name, for example can0
	Interface string `yaml:"interface"`
	// Port is serial device path for slcan adapters, for example /dev/ttyACM0
	Port string `yaml:"port"`
	// BaudRate for slcan serial port
	BaudRate int `yaml:"baudRate"`
	// File is candump log path for the file transport
	File string `yaml:"file"`

	// Output format: json, hex or cbor
	Output string `yaml:"output"`
	// Filter limits output to listed PGNs, empty means everything
	Filter []uint32 `yaml:"filter"`
	// Requests enables querying newly seen devices for their product info
	Requests bool `yaml:"requests"`
	// Debug enables debug level logging
	Debug bool `yaml:"debug"`
}

func defaultConfig() config {
	return config{
		Transport: "socketcan",
		Interface: "can0",
		Port:      "/dev/ttyACM0",
		BaudRate:  115200,
		Output:    "json",
	}
}

func loadConfig(path string) (config, error) {
	result := defaultConfig()
	if path == "" {
		return result, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &result); err != nil {
		return config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return result, nil
}

func (c config) validate() error {
	switch c.Transport {
	case "socketcan", "slcan":
	case "file":
		if c.File == "" {
			return fmt.Errorf("file transport requires a log file path")
		}
	default:
		return fmt.Errorf("unknown transport: %v", c.Transport)
	}
	switch c.Output {
	case "json", "hex", "cbor":
	default:
		return fmt.Errorf("unknown output format: %v", c.Output)
	}
	return nil
}
