package cfdp

// Prompt asks the receiver for a NAK or a keep alive.
type Prompt struct {
	// ResponseRequired is false for NAK, true for keep alive.
	ResponseRequired bool
}

func (*Prompt) isBody()                      {}
func (*Prompt) PduType() PduType             { return PduTypeFileDirective }
func (*Prompt) Direction() Direction         { return TowardReceiver }
func (*Prompt) DirectiveCode() DirectiveCode { return DirectivePrompt }

func (p *Prompt) PackBody(PduConfig) ([]byte, error) {
	var bit byte
	if p.ResponseRequired {
		bit = 1
	}
	return []byte{byte(DirectivePrompt), bit << 7}, nil
}

func UnpackPromptBody(hdr PduHeader, body []byte) (*Prompt, error) {
	buf, err := directiveParams(hdr, body, DirectivePrompt)
	if err != nil {
		return nil, err
	}
	if err := needLen(buf, 1); err != nil {
		return nil, err
	}
	if err := noTrailing(buf[1:], "Prompt"); err != nil {
		return nil, err
	}
	return &Prompt{ResponseRequired: buf[0]>>7 == 1}, nil
}
