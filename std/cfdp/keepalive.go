package cfdp

// KeepAlive reports the receiver's progress through the file.
type KeepAlive struct {
	Progress uint64
}

func (*KeepAlive) isBody()                      {}
func (*KeepAlive) PduType() PduType             { return PduTypeFileDirective }
func (*KeepAlive) Direction() Direction         { return TowardSender }
func (*KeepAlive) DirectiveCode() DirectiveCode { return DirectiveKeepAlive }

func (k *KeepAlive) PackBody(cfg PduConfig) ([]byte, error) {
	return appendFss([]byte{byte(DirectiveKeepAlive)}, k.Progress, cfg.LargeFile)
}

func UnpackKeepAliveBody(hdr PduHeader, body []byte) (*KeepAlive, error) {
	buf, err := directiveParams(hdr, body, DirectiveKeepAlive)
	if err != nil {
		return nil, err
	}
	progress, err := readFss(buf, hdr.Config.LargeFile)
	if err != nil {
		return nil, err
	}
	if err := noTrailing(buf[hdr.Config.LargeFile.FssWidth():], "KeepAlive"); err != nil {
		return nil, err
	}
	return &KeepAlive{Progress: progress}, nil
}
