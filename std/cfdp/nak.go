package cfdp

import "fmt"

// SegmentRequest is a missing byte range [Start, End) of the file.
type SegmentRequest struct {
	Start uint64
	End   uint64
}

// Nak requests retransmission of the listed segments within a scope.
type Nak struct {
	StartOfScope    uint64
	EndOfScope      uint64
	SegmentRequests []SegmentRequest
}

func (*Nak) isBody()                      {}
func (*Nak) PduType() PduType             { return PduTypeFileDirective }
func (*Nak) Direction() Direction         { return TowardSender }
func (*Nak) DirectiveCode() DirectiveCode { return DirectiveNak }

func (n *Nak) PackBody(cfg PduConfig) ([]byte, error) {
	fss := cfg.LargeFile.FssWidth()
	b := make([]byte, 0, 1+2*fss*(1+len(n.SegmentRequests)))
	b = append(b, byte(DirectiveNak))
	b, err := appendFss(b, n.StartOfScope, cfg.LargeFile)
	if err != nil {
		return nil, err
	}
	if b, err = appendFss(b, n.EndOfScope, cfg.LargeFile); err != nil {
		return nil, err
	}
	for _, r := range n.SegmentRequests {
		if b, err = appendFss(b, r.Start, cfg.LargeFile); err != nil {
			return nil, err
		}
		if b, err = appendFss(b, r.End, cfg.LargeFile); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func UnpackNakBody(hdr PduHeader, body []byte) (*Nak, error) {
	buf, err := directiveParams(hdr, body, DirectiveNak)
	if err != nil {
		return nil, err
	}
	flag := hdr.Config.LargeFile
	fss := flag.FssWidth()
	if err := needLen(buf, 2*fss); err != nil {
		return nil, err
	}
	n := &Nak{
		StartOfScope: getUint(buf, fss),
		EndOfScope:   getUint(buf[fss:], fss),
	}
	buf = buf[2*fss:]
	if len(buf)%(2*fss) != 0 {
		return nil, fmt.Errorf("%w: %d octets after scope, pairs of %d expected", ErrMalformedNakSegments, len(buf), 2*fss)
	}
	if len(buf) > 0 {
		n.SegmentRequests = make([]SegmentRequest, 0, len(buf)/(2*fss))
	}
	for ; len(buf) > 0; buf = buf[2*fss:] {
		n.SegmentRequests = append(n.SegmentRequests, SegmentRequest{
			Start: getUint(buf, fss),
			End:   getUint(buf[fss:], fss),
		})
	}
	return n, nil
}
