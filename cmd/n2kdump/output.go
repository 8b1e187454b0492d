package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	n2k "github.com/openmarine/go-n2k"
)

type formatter func(msg n2k.Message) ([]byte, error)

func newFormatter(output string) (formatter, error) {
	switch output {
	case "json":
		return func(msg n2k.Message) ([]byte, error) {
			return json.Marshal(msg)
		}, nil
	case "cbor":
		return func(msg n2k.Message) ([]byte, error) {
			return cbor.Marshal(msg)
		}, nil
	case "hex":
		// CBOR encoding printed as hex, compact binary form that is still terminal safe
		return func(msg n2k.Message) ([]byte, error) {
			raw, err := cbor.Marshal(msg)
			if err != nil {
				return nil, err
			}
			return []byte(hex.EncodeToString(raw)), nil
		}, nil
	}
	return nil, fmt.Errorf("unknown output format: %v", output)
}
