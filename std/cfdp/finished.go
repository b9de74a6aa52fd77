package cfdp

import "github.com/spacepackets-go/spacepackets/std/types/optional"

// Finished reports the outcome of a transaction to the sender.
type Finished struct {
	ConditionCode      ConditionCode
	DeliveryCode       DeliveryCode
	FileStatus         FileStatus
	FilestoreResponses []FilestoreResponse
	// FaultLocation is only encoded for condition codes other than NoError
	// and UnsupportedChecksumType.
	FaultLocation optional.Optional[UintField]
}

func (*Finished) isBody()                      {}
func (*Finished) PduType() PduType             { return PduTypeFileDirective }
func (*Finished) Direction() Direction         { return TowardSender }
func (*Finished) DirectiveCode() DirectiveCode { return DirectiveFinished }

// MayHaveFaultLocation reports whether the condition code allows a fault
// location.
func (f *Finished) MayHaveFaultLocation() bool {
	return f.ConditionCode != NoError && f.ConditionCode != UnsupportedChecksumType
}

func (f *Finished) PackBody(cfg PduConfig) ([]byte, error) {
	if err := checkCondition(f.ConditionCode); err != nil {
		return nil, err
	}
	if f.DeliveryCode > DataIncomplete || f.FileStatus > FileStatusUnreported {
		return nil, errParam("delivery code %d, file status %d", f.DeliveryCode, f.FileStatus)
	}
	b := []byte{
		byte(DirectiveFinished),
		byte(f.ConditionCode)<<4 | byte(f.DeliveryCode)<<2 | byte(f.FileStatus),
	}
	for _, r := range f.FilestoreResponses {
		tlv, err := r.Tlv()
		if err != nil {
			return nil, err
		}
		if b, err = tlv.AppendTo(b); err != nil {
			return nil, err
		}
	}
	if loc, ok := f.FaultLocation.Get(); ok {
		if !f.MayHaveFaultLocation() {
			return nil, errParam("fault location with condition code %s", f.ConditionCode)
		}
		return appendFaultLocation(b, loc)
	}
	return b, nil
}

func UnpackFinishedBody(hdr PduHeader, body []byte) (*Finished, error) {
	buf, err := directiveParams(hdr, body, DirectiveFinished)
	if err != nil {
		return nil, err
	}
	if err := needLen(buf, 1); err != nil {
		return nil, err
	}
	f := &Finished{
		DeliveryCode: DeliveryCode(buf[0] >> 2 & 1),
		FileStatus:   FileStatus(buf[0] & 0b11),
	}
	if f.ConditionCode, err = conditionFromNibble(buf[0] >> 4); err != nil {
		return nil, err
	}
	buf = buf[1:]
	for len(buf) > 0 {
		tlv, n, err := UnpackTlv(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tlv.Type {
		case TlvFilestoreResponse:
			if f.FaultLocation.IsSet() {
				return nil, errLength("filestore response after fault location")
			}
			r, err := ParseFilestoreResponse(tlv)
			if err != nil {
				return nil, err
			}
			f.FilestoreResponses = append(f.FilestoreResponses, r)
		case TlvEntityId:
			if !f.MayHaveFaultLocation() || f.FaultLocation.IsSet() {
				return nil, &UnexpectedTlvError{Found: tlv.Type, Expected: TlvFilestoreResponse}
			}
			loc, err := EntityIdFromTlv(tlv)
			if err != nil {
				return nil, err
			}
			f.FaultLocation = optional.Some(loc)
		default:
			return nil, &UnexpectedTlvError{Found: tlv.Type, Expected: TlvFilestoreResponse}
		}
	}
	return f, nil
}
