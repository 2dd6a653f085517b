package main

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec 用encoding/json编解码普通结构体，替换connect内置的protojson
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string {
	return "json"
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
