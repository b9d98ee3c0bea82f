package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgPointer
	MsgKey
	MsgPanelSelect
	MsgPanelControl
	MsgShutdown
	MsgConsoleWrite
	MsgConsoleClear
	MsgWheel
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgPointer:
		return "pointer"
	case MsgKey:
		return "key"
	case MsgPanelSelect:
		return "panel_select"
	case MsgPanelControl:
		return "panel_control"
	case MsgShutdown:
		return "shutdown"
	case MsgConsoleWrite:
		return "console_write"
	case MsgConsoleClear:
		return "console_clear"
	case MsgWheel:
		return "wheel"
	default:
		return "unknown"
	}
}
