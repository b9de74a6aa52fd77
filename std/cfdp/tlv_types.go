package cfdp

import "fmt"

// NewEntityIdTlv wraps an entity ID, e.g. the fault location of EOF and
// Finished PDUs.
func NewEntityIdTlv(id UintField) (Tlv, error) {
	if err := checkWidth(id.width); err != nil {
		return Tlv{}, err
	}
	return Tlv{Type: TlvEntityId, Value: id.Bytes()}, nil
}

// EntityIdFromTlv reads the entity ID carried by an entity ID TLV. The
// field width is the TLV length.
func EntityIdFromTlv(t Tlv) (UintField, error) {
	if err := expectTlv(t, TlvEntityId); err != nil {
		return UintField{}, err
	}
	return DecodeUintField(t.Value, len(t.Value))
}

func NewMessageToUserTlv(msg []byte) (Tlv, error) {
	return NewTlv(TlvMessageToUser, msg)
}

func NewFlowLabelTlv(label []byte) (Tlv, error) {
	return NewTlv(TlvFlowLabel, label)
}

// FaultHandlerOverride selects the handler an entity runs for a condition.
type FaultHandlerOverride struct {
	ConditionCode ConditionCode
	HandlerCode   FaultHandlerCode
}

func (f FaultHandlerOverride) Tlv() (Tlv, error) {
	if err := checkCondition(f.ConditionCode); err != nil {
		return Tlv{}, err
	}
	if f.HandlerCode > 0x0f {
		return Tlv{}, errParam("fault handler code %d", f.HandlerCode)
	}
	return Tlv{
		Type:  TlvFaultHandlerOverride,
		Value: []byte{byte(f.ConditionCode)<<4 | byte(f.HandlerCode)},
	}, nil
}

func ParseFaultHandlerOverride(t Tlv) (FaultHandlerOverride, error) {
	if err := expectTlv(t, TlvFaultHandlerOverride); err != nil {
		return FaultHandlerOverride{}, err
	}
	if len(t.Value) != 1 {
		return FaultHandlerOverride{}, errLength("fault handler override of %d octets", len(t.Value))
	}
	cc, err := conditionFromNibble(t.Value[0] >> 4)
	if err != nil {
		return FaultHandlerOverride{}, err
	}
	return FaultHandlerOverride{
		ConditionCode: cc,
		HandlerCode:   FaultHandlerCode(t.Value[0] & 0x0f),
	}, nil
}

type FilestoreActionCode uint8

const (
	FilestoreCreateFile      FilestoreActionCode = 0b0000
	FilestoreDeleteFile      FilestoreActionCode = 0b0001
	FilestoreRenameFile      FilestoreActionCode = 0b0010
	FilestoreAppendFile      FilestoreActionCode = 0b0011
	FilestoreReplaceFile     FilestoreActionCode = 0b0100
	FilestoreCreateDirectory FilestoreActionCode = 0b0101
	FilestoreRemoveDirectory FilestoreActionCode = 0b0110
	FilestoreDenyFile        FilestoreActionCode = 0b0111
	FilestoreDenyDirectory   FilestoreActionCode = 0b1000
)

var filestoreActionNames = []string{
	"create-file", "delete-file", "rename-file", "append-file", "replace-file",
	"create-directory", "remove-directory", "deny-file", "deny-directory",
}

func (a FilestoreActionCode) String() string {
	if int(a) < len(filestoreActionNames) {
		return filestoreActionNames[a]
	}
	return fmt.Sprintf("unknown(%d)", uint8(a))
}

func (a FilestoreActionCode) Valid() bool {
	return a <= FilestoreDenyDirectory
}

// HasSecondName reports whether the action takes a second file name.
func (a FilestoreActionCode) HasSecondName() bool {
	return a == FilestoreRenameFile || a == FilestoreAppendFile || a == FilestoreReplaceFile
}

// Filestore response status codes shared by all actions. The remaining
// values are action specific.
const (
	FilestoreSuccess      uint8 = 0b0000
	FilestoreNotPerformed uint8 = 0b1111
)

type FilestoreRequest struct {
	Action     FilestoreActionCode
	FirstName  Lv
	SecondName Lv
}

func (r FilestoreRequest) Tlv() (Tlv, error) {
	value, err := appendFilestoreCommon(nil, r.Action, 0, r.FirstName, r.SecondName)
	if err != nil {
		return Tlv{}, err
	}
	return NewTlv(TlvFilestoreRequest, value)
}

func ParseFilestoreRequest(t Tlv) (FilestoreRequest, error) {
	if err := expectTlv(t, TlvFilestoreRequest); err != nil {
		return FilestoreRequest{}, err
	}
	action, _, first, second, n, err := parseFilestoreCommon(t.Value)
	if err != nil {
		return FilestoreRequest{}, err
	}
	if n != len(t.Value) {
		return FilestoreRequest{}, errLength("%d trailing octets in filestore request", len(t.Value)-n)
	}
	return FilestoreRequest{Action: action, FirstName: first, SecondName: second}, nil
}

type FilestoreResponse struct {
	Action     FilestoreActionCode
	Status     uint8
	FirstName  Lv
	SecondName Lv
	Message    Lv
}

func (r FilestoreResponse) Tlv() (Tlv, error) {
	if r.Status > 0x0f {
		return Tlv{}, errParam("filestore status code %d", r.Status)
	}
	value, err := appendFilestoreCommon(nil, r.Action, r.Status, r.FirstName, r.SecondName)
	if err != nil {
		return Tlv{}, err
	}
	if value, err = r.Message.AppendTo(value); err != nil {
		return Tlv{}, err
	}
	return NewTlv(TlvFilestoreResponse, value)
}

func ParseFilestoreResponse(t Tlv) (FilestoreResponse, error) {
	if err := expectTlv(t, TlvFilestoreResponse); err != nil {
		return FilestoreResponse{}, err
	}
	action, status, first, second, n, err := parseFilestoreCommon(t.Value)
	if err != nil {
		return FilestoreResponse{}, err
	}
	msg, m, err := UnpackLv(t.Value[n:])
	if err != nil {
		return FilestoreResponse{}, err
	}
	if n+m != len(t.Value) {
		return FilestoreResponse{}, errLength("%d trailing octets in filestore response", len(t.Value)-n-m)
	}
	return FilestoreResponse{
		Action:     action,
		Status:     status,
		FirstName:  first,
		SecondName: second,
		Message:    msg,
	}, nil
}

func appendFilestoreCommon(b []byte, action FilestoreActionCode, status uint8, first, second Lv) ([]byte, error) {
	if !action.Valid() {
		return nil, errParam("filestore action code %d", action)
	}
	b = append(b, byte(action)<<4|status)
	b, err := first.AppendTo(b)
	if err != nil {
		return nil, err
	}
	if action.HasSecondName() {
		return second.AppendTo(b)
	}
	return b, nil
}

func parseFilestoreCommon(buf []byte) (action FilestoreActionCode, status uint8, first, second Lv, n int, err error) {
	if len(buf) < 1 {
		return 0, 0, Lv{}, Lv{}, 0, errShort(1, 0)
	}
	action = FilestoreActionCode(buf[0] >> 4)
	if !action.Valid() {
		return 0, 0, Lv{}, Lv{}, 0, errParam("filestore action code %d", action)
	}
	status = buf[0] & 0x0f
	n = 1
	first, m, err := UnpackLv(buf[n:])
	if err != nil {
		return 0, 0, Lv{}, Lv{}, 0, err
	}
	n += m
	if action.HasSecondName() {
		if second, m, err = UnpackLv(buf[n:]); err != nil {
			return 0, 0, Lv{}, Lv{}, 0, err
		}
		n += m
	}
	return action, status, first, second, n, nil
}
