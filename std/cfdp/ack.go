package cfdp

// Ack acknowledges an EOF or a Finished PDU.
type Ack struct {
	AckedDirective DirectiveCode
	// DirectiveSubtype is derived from AckedDirective when packing. Decoding
	// rejects a subtype that does not match.
	DirectiveSubtype  uint8
	ConditionCode     ConditionCode
	TransactionStatus TransactionStatus
}

// NewAck builds an ACK with the subtype the acknowledged directive requires.
func NewAck(acked DirectiveCode, cc ConditionCode, status TransactionStatus) (*Ack, error) {
	sub, err := ackSubtype(acked)
	if err != nil {
		return nil, err
	}
	return &Ack{
		AckedDirective:    acked,
		DirectiveSubtype:  sub,
		ConditionCode:     cc,
		TransactionStatus: status,
	}, nil
}

func ackSubtype(acked DirectiveCode) (uint8, error) {
	switch acked {
	case DirectiveFinished:
		return 0b0001, nil
	case DirectiveEof:
		return 0b0000, nil
	}
	return 0, &InvalidDirectiveError{Code: acked}
}

func (*Ack) isBody()                      {}
func (*Ack) PduType() PduType             { return PduTypeFileDirective }
func (*Ack) DirectiveCode() DirectiveCode { return DirectiveAck }

// Direction is toward the sender for acknowledged EOFs and toward the
// receiver for acknowledged Finished PDUs.
func (a *Ack) Direction() Direction {
	if a.AckedDirective == DirectiveFinished {
		return TowardReceiver
	}
	return TowardSender
}

func (a *Ack) PackBody(PduConfig) ([]byte, error) {
	sub, err := ackSubtype(a.AckedDirective)
	if err != nil {
		return nil, err
	}
	if err := checkCondition(a.ConditionCode); err != nil {
		return nil, err
	}
	if a.TransactionStatus > TransactionUnrecognized {
		return nil, errParam("transaction status %d", a.TransactionStatus)
	}
	return []byte{
		byte(DirectiveAck),
		byte(a.AckedDirective)<<4 | sub,
		byte(a.ConditionCode)<<4 | byte(a.TransactionStatus),
	}, nil
}

func UnpackAckBody(hdr PduHeader, body []byte) (*Ack, error) {
	buf, err := directiveParams(hdr, body, DirectiveAck)
	if err != nil {
		return nil, err
	}
	if err := needLen(buf, 2); err != nil {
		return nil, err
	}
	if err := noTrailing(buf[2:], "ACK"); err != nil {
		return nil, err
	}
	a := &Ack{
		AckedDirective:    DirectiveCode(buf[0] >> 4),
		DirectiveSubtype:  buf[0] & 0x0f,
		TransactionStatus: TransactionStatus(buf[1] & 0b11),
	}
	sub, err := ackSubtype(a.AckedDirective)
	if err != nil {
		return nil, err
	}
	if a.DirectiveSubtype != sub {
		return nil, errParam("ACK of %s with directive subtype %d", a.AckedDirective, a.DirectiveSubtype)
	}
	if a.ConditionCode, err = conditionFromNibble(buf[1] >> 4); err != nil {
		return nil, err
	}
	return a, nil
}
