package proto

import "encoding/binary"

// KeyPayload encodes a MsgKey payload.
//
// Payload format (little-endian):
//
//	b[0:2] : u16 key code (hal.KeyCode)
//	b[2]   : 1 press, 0 release
//	b[3:7] : i32 rune (0 when none)
func KeyPayload(code uint16, press bool, r rune) []byte {
	buf := make([]byte, 7)
	binary.LittleEndian.PutUint16(buf[0:2], code)
	if press {
		buf[2] = 1
	}
	binary.LittleEndian.PutUint32(buf[3:7], uint32(r))
	return buf
}

// DecodeKeyPayload decodes a KeyPayload.
func DecodeKeyPayload(b []byte) (code uint16, press bool, r rune, ok bool) {
	if len(b) != 7 {
		return 0, false, 0, false
	}
	code = binary.LittleEndian.Uint16(b[0:2])
	press = b[2] != 0
	r = rune(int32(binary.LittleEndian.Uint32(b[3:7])))
	return code, press, r, true
}
