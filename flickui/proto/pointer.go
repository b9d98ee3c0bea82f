package proto

import "encoding/binary"

// PointerPhase is the wire encoding of a pointer transition. Values match
// flickui/gesture.Phase.
type PointerPhase uint8

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerPayload encodes a MsgPointer payload.
//
// Payload format (little-endian):
//
//	b[0]    : phase
//	b[1]    : pointer ID
//	b[2:4]  : i16 x (screen pixels)
//	b[4:6]  : i16 y (screen pixels)
//	b[6:10] : u32 timestamp, milliseconds
func PointerPayload(phase PointerPhase, id uint8, x, y int16, millis uint32) []byte {
	buf := make([]byte, 10)
	buf[0] = byte(phase)
	buf[1] = id
	binary.LittleEndian.PutUint16(buf[2:4], uint16(x))
	binary.LittleEndian.PutUint16(buf[4:6], uint16(y))
	binary.LittleEndian.PutUint32(buf[6:10], millis)
	return buf
}

// DecodePointerPayload decodes a PointerPayload.
func DecodePointerPayload(b []byte) (phase PointerPhase, id uint8, x, y int16, millis uint32, ok bool) {
	if len(b) != 10 {
		return 0, 0, 0, 0, 0, false
	}
	phase = PointerPhase(b[0])
	if phase > PointerCancel {
		return 0, 0, 0, 0, 0, false
	}
	id = b[1]
	x = int16(binary.LittleEndian.Uint16(b[2:4]))
	y = int16(binary.LittleEndian.Uint16(b[4:6]))
	millis = binary.LittleEndian.Uint32(b[6:10])
	return phase, id, x, y, millis, true
}

// WheelPayload encodes a MsgWheel payload. dy is one step per notch,
// positive away from the user.
//
// Payload format (little-endian):
//
//	b[0]   : i8 dy
//	b[1:3] : i16 x (cursor, screen pixels)
//	b[3:5] : i16 y (cursor, screen pixels)
func WheelPayload(dy int8, x, y int16) []byte {
	buf := make([]byte, 5)
	buf[0] = byte(dy)
	binary.LittleEndian.PutUint16(buf[1:3], uint16(x))
	binary.LittleEndian.PutUint16(buf[3:5], uint16(y))
	return buf
}

// DecodeWheelPayload decodes a WheelPayload.
func DecodeWheelPayload(b []byte) (dy int8, x, y int16, ok bool) {
	if len(b) != 5 {
		return 0, 0, 0, false
	}
	dy = int8(b[0])
	x = int16(binary.LittleEndian.Uint16(b[1:3]))
	y = int16(binary.LittleEndian.Uint16(b[3:5]))
	return dy, x, y, true
}
