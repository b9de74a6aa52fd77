package cfdp

import "github.com/spacepackets-go/spacepackets/std/cfdp/checksum"

// Metadata opens a file transfer. Transfers without file data leave both
// file names empty and carry only options.
type Metadata struct {
	ClosureRequested bool
	ChecksumType     checksum.Type
	FileSize         uint64
	SourceFileName   Lv
	DestFileName     Lv
	Options          []Tlv
}

func (*Metadata) isBody()                      {}
func (*Metadata) PduType() PduType             { return PduTypeFileDirective }
func (*Metadata) Direction() Direction         { return TowardReceiver }
func (*Metadata) DirectiveCode() DirectiveCode { return DirectiveMetadata }

// HasFileTransfer reports whether the transfer moves file data.
func (m *Metadata) HasFileTransfer() bool {
	return !m.SourceFileName.IsEmpty() || !m.DestFileName.IsEmpty()
}

func (m *Metadata) PackBody(cfg PduConfig) ([]byte, error) {
	if m.ChecksumType > 0x0f {
		return nil, errParam("checksum type %d", m.ChecksumType)
	}
	b := make([]byte, 0, 2+cfg.LargeFile.FssWidth()+m.SourceFileName.PackedLen()+
		m.DestFileName.PackedLen()+tlvsLen(m.Options))
	var closure byte
	if m.ClosureRequested {
		closure = 1
	}
	b = append(b, byte(DirectiveMetadata), closure<<6|byte(m.ChecksumType))
	b, err := appendFss(b, m.FileSize, cfg.LargeFile)
	if err != nil {
		return nil, err
	}
	if b, err = m.SourceFileName.AppendTo(b); err != nil {
		return nil, err
	}
	if b, err = m.DestFileName.AppendTo(b); err != nil {
		return nil, err
	}
	for _, opt := range m.Options {
		if b, err = opt.AppendTo(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func UnpackMetadataBody(hdr PduHeader, body []byte) (*Metadata, error) {
	buf, err := directiveParams(hdr, body, DirectiveMetadata)
	if err != nil {
		return nil, err
	}
	if err := needLen(buf, 1); err != nil {
		return nil, err
	}
	m := &Metadata{
		ClosureRequested: buf[0]>>6&1 == 1,
		ChecksumType:     checksum.Type(buf[0] & 0x0f),
	}
	buf = buf[1:]
	if m.FileSize, err = readFss(buf, hdr.Config.LargeFile); err != nil {
		return nil, err
	}
	buf = buf[hdr.Config.LargeFile.FssWidth():]
	var n int
	if m.SourceFileName, n, err = UnpackLv(buf); err != nil {
		return nil, err
	}
	buf = buf[n:]
	if m.DestFileName, n, err = UnpackLv(buf); err != nil {
		return nil, err
	}
	if m.Options, err = unpackTlvs(buf[n:]); err != nil {
		return nil, err
	}
	return m, nil
}
