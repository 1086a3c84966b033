package index

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/hightemp/isocountry/internal/config"
	"github.com/hightemp/isocountry/internal/countries"
)

const (
	// Magic bytes for index file
	Magic = "ISOCCIDX"
	// Header size in bytes
	HeaderSize = 72
)

// Flags for index file, one per optional table
const (
	FlagCapitals uint32 = 1 << iota
	FlagRegions
	FlagAlpha2
	FlagAlpha3
)

// Header represents the index file header.
type Header struct {
	Magic      [8]byte
	Version    uint32
	Flags      uint32
	Records    uint32
	_          uint32
	PayloadLen uint64
	RawLen     uint64
	Checksum   [32]byte
}

type tableData struct {
	Keys   []string `cbor:"1,keyasint"`
	Groups [][]int  `cbor:"2,keyasint"`
}

type payload struct {
	Records  []countries.Record `cbor:"1,keyasint"`
	Names    *tableData         `cbor:"2,keyasint"`
	Capitals *tableData         `cbor:"3,keyasint,omitempty"`
	Regions  *tableData         `cbor:"4,keyasint,omitempty"`
	Alpha2   *tableData         `cbor:"5,keyasint,omitempty"`
	Alpha3   *tableData         `cbor:"6,keyasint,omitempty"`
}

var (
	encMode     cbor.EncMode
	decMode     cbor.DecMode
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("index: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("index: CBOR decoder initialization failed: " + err.Error())
	}

	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		panic("index: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("index: zstd decoder initialization failed: " + err.Error())
	}
}

// Flags returns the header flags describing which tables idx carries.
func Flags(idx *Index) uint32 {
	var flags uint32
	if idx.Capitals != nil {
		flags |= FlagCapitals
	}
	if idx.Regions != nil {
		flags |= FlagRegions
	}
	if idx.Alpha2 != nil {
		flags |= FlagAlpha2
	}
	if idx.Alpha3 != nil {
		flags |= FlagAlpha3
	}
	return flags
}

// Save writes idx to path. The file is replaced atomically.
func Save(path string, idx *Index) error {
	raw, err := encMode.Marshal(toPayload(idx))
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	compressed := zstdEncoder.EncodeAll(raw, nil)

	header := Header{
		Version:    config.IndexFormatVersion,
		Flags:      Flags(idx),
		Records:    uint32(len(idx.Records)),
		PayloadLen: uint64(len(compressed)),
		RawLen:     uint64(len(raw)),
		Checksum:   blake3.Sum256(compressed),
	}
	copy(header.Magic[:], Magic)

	var buf bytes.Buffer
	buf.Grow(HeaderSize + len(compressed))
	if err := binary.Write(&buf, binary.LittleEndian, &header); err != nil {
		return err
	}
	buf.Write(compressed)

	return config.WriteFileAtomic(path, buf.Bytes())
}

// Load reads an index written by Save and seals its tables.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(data)

	// Read header
	var header Header
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	// Validate magic
	if string(header.Magic[:]) != Magic {
		return nil, fmt.Errorf("invalid magic: %q", header.Magic[:])
	}

	// Validate version
	if header.Version != config.IndexFormatVersion {
		return nil, fmt.Errorf("unsupported index version %d (expected %d)", header.Version, config.IndexFormatVersion)
	}

	compressed := data[HeaderSize:]
	if uint64(len(compressed)) != header.PayloadLen {
		return nil, fmt.Errorf("payload length %d, header says %d", len(compressed), header.PayloadLen)
	}
	if blake3.Sum256(compressed) != header.Checksum {
		return nil, fmt.Errorf("index checksum mismatch")
	}

	raw, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, header.RawLen))
	if err != nil {
		return nil, fmt.Errorf("decompress index: %w", err)
	}
	if uint64(len(raw)) != header.RawLen {
		return nil, fmt.Errorf("decompressed %d bytes, header says %d", len(raw), header.RawLen)
	}

	var p payload
	if err := decMode.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}

	idx := fromPayload(&p)
	if uint32(len(idx.Records)) != header.Records {
		return nil, fmt.Errorf("index has %d records, header says %d", len(idx.Records), header.Records)
	}
	if Flags(idx) != header.Flags {
		return nil, fmt.Errorf("index tables %b do not match header flags %b", Flags(idx), header.Flags)
	}
	if err := checkPositions(idx); err != nil {
		return nil, err
	}
	if err := idx.Seal(); err != nil {
		return nil, fmt.Errorf("seal index: %w", err)
	}

	return idx, nil
}

func toPayload(idx *Index) *payload {
	return &payload{
		Records:  idx.Records,
		Names:    toTableData(idx.Names),
		Capitals: toTableData(idx.Capitals),
		Regions:  toTableData(idx.Regions),
		Alpha2:   toTableData(idx.Alpha2),
		Alpha3:   toTableData(idx.Alpha3),
	}
}

func toTableData(t *Table) *tableData {
	if t == nil {
		return nil
	}
	return &tableData{Keys: t.keys, Groups: t.groups}
}

func fromPayload(p *payload) *Index {
	return &Index{
		Records:  p.Records,
		Names:    fromTableData(p.Names),
		Capitals: fromTableData(p.Capitals),
		Regions:  fromTableData(p.Regions),
		Alpha2:   fromTableData(p.Alpha2),
		Alpha3:   fromTableData(p.Alpha3),
	}
}

func fromTableData(d *tableData) *Table {
	if d == nil {
		return nil
	}
	t := NewTable()
	for i, key := range d.Keys {
		if i >= len(d.Groups) {
			break
		}
		for _, rec := range d.Groups[i] {
			t.Add(key, rec)
		}
	}
	return t
}

func checkPositions(idx *Index) error {
	for _, kind := range Kinds {
		for _, group := range idx.Table(kind).Groups() {
			for _, p := range group {
				if p < 0 || p >= len(idx.Records) {
					return fmt.Errorf("%s table references record %d of %d", kind, p, len(idx.Records))
				}
			}
		}
	}
	return nil
}
