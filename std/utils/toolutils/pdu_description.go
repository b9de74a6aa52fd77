package toolutils

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spacepackets-go/spacepackets/std/cfdp"
	"github.com/spacepackets-go/spacepackets/std/cfdp/checksum"
	"github.com/spacepackets-go/spacepackets/std/types/optional"
)

// PduDescription is the YAML form of a single PDU, used both as encoder
// input and as decoder output.
type PduDescription struct {
	Config ConfigDescription `json:"config"`
	Pdu    BodyDescription   `json:"pdu"`
}

type ConfigDescription struct {
	SourceEntityId uint64 `json:"source_entity_id"`
	DestEntityId   uint64 `json:"dest_entity_id"`
	// Width of both entity IDs in octets (default 1)
	EntityIdWidth int    `json:"entity_id_width,omitempty"`
	SeqNum        uint64 `json:"seq_num"`
	// Width of the sequence number in octets (default 1)
	SeqNumWidth         int    `json:"seq_num_width,omitempty"`
	Mode                string `json:"mode,omitempty"`
	Crc                 bool   `json:"crc,omitempty"`
	LargeFile           bool   `json:"large_file,omitempty"`
	SegmentationControl bool   `json:"segmentation_control,omitempty"`
}

// BodyDescription holds the fields of every PDU variant. Type selects the
// variant and only the fields of that variant are used.
type BodyDescription struct {
	Type string `json:"type"`

	// Metadata
	ClosureRequested bool             `json:"closure_requested,omitempty"`
	ChecksumType     string           `json:"checksum_type,omitempty"`
	SourceFile       string           `json:"source_file,omitempty"`
	DestFile         string           `json:"dest_file,omitempty"`
	Options          []TlvDescription `json:"options,omitempty"`

	// Metadata, EOF
	FileSize uint64 `json:"file_size,omitempty"`

	// EOF, Finished, ACK
	Condition     string  `json:"condition,omitempty"`
	FileChecksum  uint32  `json:"file_checksum,omitempty"`
	FaultLocation *uint64 `json:"fault_location,omitempty"`
	// Width of the fault location entity ID (default: entity ID width)
	FaultLocationWidth int `json:"fault_location_width,omitempty"`

	// Finished
	Delivery           string                         `json:"delivery,omitempty"`
	FileStatus         string                         `json:"file_status,omitempty"`
	FilestoreResponses []FilestoreResponseDescription `json:"filestore_responses,omitempty"`

	// ACK
	Acked             string `json:"acked,omitempty"`
	TransactionStatus string `json:"transaction_status,omitempty"`

	// NAK
	ScopeStart uint64               `json:"scope_start,omitempty"`
	ScopeEnd   uint64               `json:"scope_end,omitempty"`
	Segments   []SegmentDescription `json:"segments,omitempty"`

	// Prompt
	ResponseRequired bool `json:"response_required,omitempty"`

	// Keep alive
	Progress uint64 `json:"progress,omitempty"`

	// File data
	Offset          uint64                      `json:"offset,omitempty"`
	Data            string                      `json:"data,omitempty"`
	SegmentMetadata *SegmentMetadataDescription `json:"segment_metadata,omitempty"`
}

type TlvDescription struct {
	Type string `json:"type"`
	// Hex encoded value
	Value string `json:"value,omitempty"`
	// Reserved CFDP message type, informational only
	Reserved string `json:"reserved,omitempty"`
}

type FilestoreResponseDescription struct {
	Action     string `json:"action"`
	Status     uint8  `json:"status,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	SecondName string `json:"second_name,omitempty"`
	Message    string `json:"message,omitempty"`
}

type SegmentDescription struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

type SegmentMetadataDescription struct {
	RecordContinuation uint8 `json:"record_continuation,omitempty"`
	// Hex encoded metadata
	Metadata string `json:"metadata,omitempty"`
}

// Build converts the description into a header configuration and a body.
func (d PduDescription) Build() (cfdp.PduConfig, cfdp.Body, error) {
	cfg, err := d.Config.Build()
	if err != nil {
		return cfdp.PduConfig{}, nil, err
	}
	body, err := d.Pdu.Build(cfg)
	if err != nil {
		return cfdp.PduConfig{}, nil, err
	}
	return cfg, body, nil
}

func (c ConfigDescription) Build() (cfdp.PduConfig, error) {
	idWidth := c.EntityIdWidth
	if idWidth == 0 {
		idWidth = 1
	}
	seqWidth := c.SeqNumWidth
	if seqWidth == 0 {
		seqWidth = 1
	}

	src, err := cfdp.NewUintField(c.SourceEntityId, idWidth)
	if err != nil {
		return cfdp.PduConfig{}, fmt.Errorf("source entity id: %w", err)
	}
	dst, err := cfdp.NewUintField(c.DestEntityId, idWidth)
	if err != nil {
		return cfdp.PduConfig{}, fmt.Errorf("destination entity id: %w", err)
	}
	seq, err := cfdp.NewUintField(c.SeqNum, seqWidth)
	if err != nil {
		return cfdp.PduConfig{}, fmt.Errorf("sequence number: %w", err)
	}

	cfg := cfdp.NewPduConfig(src, dst, seq)
	if cfg.TransmissionMode, err = parseName("transmission mode", c.Mode,
		cfdp.Acknowledged, cfdp.Unacknowledged); err != nil {
		return cfdp.PduConfig{}, err
	}
	if c.Crc {
		cfg.Crc = cfdp.CrcPresent
	}
	if c.LargeFile {
		cfg.LargeFile = cfdp.LargeFile
	}
	if c.SegmentationControl {
		cfg.SegmentationControl = cfdp.RecordBoundaries
	}
	return cfg, nil
}

func (b BodyDescription) Build(cfg cfdp.PduConfig) (cfdp.Body, error) {
	switch strings.ToLower(b.Type) {
	case "metadata":
		return asBody(b.buildMetadata())
	case "file-data":
		return asBody(b.buildFileData())
	case "eof":
		return asBody(b.buildEof(cfg))
	case "finished":
		return asBody(b.buildFinished(cfg))
	case "ack":
		return asBody(b.buildAck())
	case "nak":
		return b.buildNak(), nil
	case "prompt":
		return &cfdp.Prompt{ResponseRequired: b.ResponseRequired}, nil
	case "keep-alive":
		return &cfdp.KeepAlive{Progress: b.Progress}, nil
	}
	return nil, fmt.Errorf("unknown PDU type %q", b.Type)
}

func (b BodyDescription) buildMetadata() (*cfdp.Metadata, error) {
	var err error
	m := &cfdp.Metadata{
		ClosureRequested: b.ClosureRequested,
		FileSize:         b.FileSize,
	}
	if b.ChecksumType != "" {
		if m.ChecksumType, err = checksum.ParseType(b.ChecksumType); err != nil {
			return nil, err
		}
	}
	if m.SourceFileName, err = cfdp.LvFromString(b.SourceFile); err != nil {
		return nil, fmt.Errorf("source file: %w", err)
	}
	if m.DestFileName, err = cfdp.LvFromString(b.DestFile); err != nil {
		return nil, fmt.Errorf("destination file: %w", err)
	}
	for _, opt := range b.Options {
		tlv, err := opt.Build()
		if err != nil {
			return nil, err
		}
		m.Options = append(m.Options, tlv)
	}
	return m, nil
}

func (b BodyDescription) buildFileData() (*cfdp.FileData, error) {
	data, err := hex.DecodeString(b.Data)
	if err != nil {
		return nil, fmt.Errorf("file data: %w", err)
	}
	fd := &cfdp.FileData{Offset: b.Offset, Data: data}
	if sm := b.SegmentMetadata; sm != nil {
		meta, err := hex.DecodeString(sm.Metadata)
		if err != nil {
			return nil, fmt.Errorf("segment metadata: %w", err)
		}
		if sm.RecordContinuation > uint8(cfdp.StartAndEnd) {
			return nil, fmt.Errorf("record continuation state %d out of range", sm.RecordContinuation)
		}
		fd.SegmentMetadata = optional.Some(cfdp.SegmentMetadata{
			RecordContinuationState: cfdp.RecordContinuationState(sm.RecordContinuation),
			Metadata:                meta,
		})
	}
	return fd, nil
}

func (b BodyDescription) buildEof(cfg cfdp.PduConfig) (*cfdp.Eof, error) {
	cc, err := b.condition()
	if err != nil {
		return nil, err
	}
	loc, err := b.faultLocation(cfg)
	if err != nil {
		return nil, err
	}
	return &cfdp.Eof{
		ConditionCode: cc,
		FileChecksum:  cfdp.FileChecksumFromUint32(b.FileChecksum),
		FileSize:      b.FileSize,
		FaultLocation: loc,
	}, nil
}

func (b BodyDescription) buildFinished(cfg cfdp.PduConfig) (*cfdp.Finished, error) {
	cc, err := b.condition()
	if err != nil {
		return nil, err
	}
	f := &cfdp.Finished{ConditionCode: cc}
	if f.DeliveryCode, err = parseName("delivery code", b.Delivery,
		cfdp.DataComplete, cfdp.DataIncomplete); err != nil {
		return nil, err
	}
	if f.FileStatus, err = parseName("file status", b.FileStatus,
		cfdp.DiscardedDeliberately, cfdp.DiscardedFilestore,
		cfdp.FileRetained, cfdp.FileStatusUnreported); err != nil {
		return nil, err
	}
	for _, r := range b.FilestoreResponses {
		resp, err := r.Build()
		if err != nil {
			return nil, err
		}
		f.FilestoreResponses = append(f.FilestoreResponses, resp)
	}
	if f.FaultLocation, err = b.faultLocation(cfg); err != nil {
		return nil, err
	}
	return f, nil
}

func (b BodyDescription) buildAck() (*cfdp.Ack, error) {
	if b.Acked == "" {
		return nil, fmt.Errorf("ACK requires the acknowledged directive")
	}
	acked, err := parseName("acknowledged directive", b.Acked,
		cfdp.DirectiveEof, cfdp.DirectiveFinished)
	if err != nil {
		return nil, err
	}
	cc, err := b.condition()
	if err != nil {
		return nil, err
	}
	status, err := parseName("transaction status", b.TransactionStatus,
		cfdp.TransactionUndefined, cfdp.TransactionActive,
		cfdp.TransactionTerminated, cfdp.TransactionUnrecognized)
	if err != nil {
		return nil, err
	}
	return cfdp.NewAck(acked, cc, status)
}

func (b BodyDescription) buildNak() *cfdp.Nak {
	nak := &cfdp.Nak{StartOfScope: b.ScopeStart, EndOfScope: b.ScopeEnd}
	for _, s := range b.Segments {
		nak.SegmentRequests = append(nak.SegmentRequests, cfdp.SegmentRequest{Start: s.Start, End: s.End})
	}
	return nak
}

func (b BodyDescription) condition() (cfdp.ConditionCode, error) {
	if b.Condition == "" {
		return cfdp.NoError, nil
	}
	return cfdp.ParseConditionCode(strings.ToLower(b.Condition))
}

// Fault locations are entity IDs. Their TLV carries its own width, which
// defaults to the configured entity ID width.
func (b BodyDescription) faultLocation(cfg cfdp.PduConfig) (optional.Optional[cfdp.UintField], error) {
	if b.FaultLocation == nil {
		return optional.None[cfdp.UintField](), nil
	}
	width := b.FaultLocationWidth
	if width == 0 {
		width = cfg.EntityIdWidth()
	}
	loc, err := cfdp.NewUintField(*b.FaultLocation, width)
	if err != nil {
		return optional.None[cfdp.UintField](), fmt.Errorf("fault location: %w", err)
	}
	return optional.Some(loc), nil
}

func (t TlvDescription) Build() (cfdp.Tlv, error) {
	typ, err := cfdp.ParseTlvType(strings.ToLower(t.Type))
	if err != nil {
		return cfdp.Tlv{}, err
	}
	value, err := hex.DecodeString(t.Value)
	if err != nil {
		return cfdp.Tlv{}, fmt.Errorf("%s value: %w", typ, err)
	}
	return cfdp.NewTlv(typ, value)
}

func (r FilestoreResponseDescription) Build() (resp cfdp.FilestoreResponse, err error) {
	actions := make([]cfdp.FilestoreActionCode, 0, int(cfdp.FilestoreDenyDirectory)+1)
	for a := cfdp.FilestoreCreateFile; a <= cfdp.FilestoreDenyDirectory; a++ {
		actions = append(actions, a)
	}
	if resp.Action, err = parseName("filestore action", r.Action, actions...); err != nil {
		return resp, err
	}
	resp.Status = r.Status
	if resp.FirstName, err = cfdp.LvFromString(r.FirstName); err != nil {
		return resp, err
	}
	if resp.SecondName, err = cfdp.LvFromString(r.SecondName); err != nil {
		return resp, err
	}
	if resp.Message, err = cfdp.LvFromString(r.Message); err != nil {
		return resp, err
	}
	return resp, nil
}

func asBody[B cfdp.Body](body B, err error) (cfdp.Body, error) {
	if err != nil {
		return nil, err
	}
	return body, nil
}

// parseName matches s against the String form of each candidate. An empty
// name selects the first candidate.
func parseName[T fmt.Stringer](what string, s string, all ...T) (T, error) {
	if s == "" {
		return all[0], nil
	}
	for _, v := range all {
		if strings.EqualFold(v.String(), s) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", what, s)
}
