package proto

// PanelID identifies a demo panel in the panel manager.
type PanelID uint8

const (
	PanelNone    PanelID = 0
	PanelSpin    PanelID = 1
	PanelPinch   PanelID = 2
	PanelTilt    PanelID = 3
	PanelConsole PanelID = 4
)

func (id PanelID) String() string {
	switch id {
	case PanelSpin:
		return "spin"
	case PanelPinch:
		return "pinch"
	case PanelTilt:
		return "tilt"
	case PanelConsole:
		return "console"
	default:
		return "none"
	}
}

// PanelOp is a control operation addressed to a panel task.
type PanelOp uint8

const (
	PanelPause PanelOp = iota
	PanelResume
	PanelReset
)

func (op PanelOp) String() string {
	switch op {
	case PanelPause:
		return "pause"
	case PanelResume:
		return "resume"
	case PanelReset:
		return "reset"
	default:
		return "unknown"
	}
}

// PanelSelectPayload encodes a panel activation request.
//
// Payload format:
//
//	b[0] : PanelID
func PanelSelectPayload(id PanelID) []byte {
	return []byte{byte(id)}
}

func DecodePanelSelectPayload(b []byte) (id PanelID, ok bool) {
	if len(b) != 1 {
		return 0, false
	}
	return PanelID(b[0]), true
}

// PanelControlPayload encodes a pause/resume/reset command.
//
// Payload format:
//
//	b[0] : PanelOp
func PanelControlPayload(op PanelOp) []byte {
	return []byte{byte(op)}
}

func DecodePanelControlPayload(b []byte) (op PanelOp, ok bool) {
	if len(b) != 1 {
		return 0, false
	}
	op = PanelOp(b[0])
	if op > PanelReset {
		return 0, false
	}
	return op, true
}
