package repo

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// SnapshotCodec stores values as zstd-compressed JSON. It is safe for
// concurrent use.
type SnapshotCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewSnapshotCodec() (*SnapshotCodec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &SnapshotCodec{encoder: encoder, decoder: decoder}, nil
}

func (c *SnapshotCodec) Encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return c.encoder.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

func (c *SnapshotCodec) Decode(data []byte, v any) error {
	raw, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("decompress snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return nil
}

func (c *SnapshotCodec) Close() {
	_ = c.encoder.Close()
	c.decoder.Close()
}
