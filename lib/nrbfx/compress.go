// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbfx

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies the algorithm framing an exported blob.
// Stored as the first byte of the blob Compress produces.
type CompressionTag uint8

const (
	// CompressionNone stores the exported document unchanged. Selected
	// automatically when compression would not shrink the blob.
	CompressionNone CompressionTag = 0

	// CompressionLZ4 is the fast default: lower ratio than zstd, much
	// cheaper to decode.
	CompressionLZ4 CompressionTag = 1

	// CompressionZstd gives the best ratio on the JSON and CBOR
	// projections this package produces — both are text-like or
	// field-tag-repetitive enough that zstd's larger window pays off.
	CompressionZstd CompressionTag = 2
)

func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(tag))
	}
}

// zstdEncoder and zstdDecoder are reused across calls; both are safe
// for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("nrbfx: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("nrbfx: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress frames data as a self-describing blob: a one-byte
// CompressionTag, the uncompressed length as a little-endian uint64,
// then the (possibly compressed) payload. Decompress reverses this.
//
// Pass CompressionNone to store data unframed-but-tagged, useful when
// the caller already knows the content won't compress (e.g. a
// previously sealed blob). For CompressionLZ4/CompressionZstd, if
// compression does not shrink the payload the blob falls back to
// CompressionNone automatically.
func Compress(tag CompressionTag, data []byte) ([]byte, error) {
	var payload []byte
	switch tag {
	case CompressionNone:
		payload = data
	case CompressionLZ4:
		compressed, err := compressLZ4(data)
		if err != nil {
			return nil, err
		}
		if compressed == nil || len(compressed) >= len(data) {
			tag, payload = CompressionNone, data
		} else {
			payload = compressed
		}
	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(data, nil)
		if len(compressed) >= len(data) {
			tag, payload = CompressionNone, data
		} else {
			payload = compressed
		}
	default:
		return nil, fmt.Errorf("nrbfx: unsupported compression tag %d", tag)
	}

	out := make([]byte, 9+len(payload))
	out[0] = byte(tag)
	binary.LittleEndian.PutUint64(out[1:9], uint64(len(data)))
	copy(out[9:], payload)
	return out, nil
}

// Decompress reverses a blob produced by Compress.
func Decompress(blob []byte) ([]byte, error) {
	if len(blob) < 9 {
		return nil, fmt.Errorf("nrbfx: compressed blob too short (%d bytes)", len(blob))
	}
	tag := CompressionTag(blob[0])
	uncompressedSize := binary.LittleEndian.Uint64(blob[1:9])
	payload := blob[9:]

	switch tag {
	case CompressionNone:
		if uint64(len(payload)) != uncompressedSize {
			return nil, fmt.Errorf("nrbfx: uncompressed blob: size %d does not match header %d", len(payload), uncompressedSize)
		}
		return payload, nil
	case CompressionLZ4:
		return decompressLZ4(payload, int(uncompressedSize))
	case CompressionZstd:
		result, err := zstdDecoder.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("nrbfx: zstd decompress: %w", err)
		}
		if uint64(len(result)) != uncompressedSize {
			return nil, fmt.Errorf("nrbfx: zstd decompress: got %d bytes, expected %d", len(result), uncompressedSize)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("nrbfx: unsupported compression tag %d", tag)
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(data))
	destination := make([]byte, bound)
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("nrbfx: lz4 compress: %w", err)
	}
	if written == 0 {
		return nil, nil
	}
	return destination[:written], nil
}

func decompressLZ4(compressed []byte, uncompressedSize int) ([]byte, error) {
	destination := make([]byte, uncompressedSize)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("nrbfx: lz4 decompress: %w", err)
	}
	if read != uncompressedSize {
		return nil, fmt.Errorf("nrbfx: lz4 decompress: got %d bytes, expected %d", read, uncompressedSize)
	}
	return destination, nil
}
