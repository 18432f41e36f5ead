package mercury

import (
	"encoding/base64"
	"encoding/binary"
)

// scvString is the ScValType discriminant of SCV_STRING.
const scvString uint32 = 14

// Topic names used by token contracts.
const (
	TopicTransfer = "transfer"
	TopicMint     = "mint"
)

// EncodeTopic returns the base64 XDR encoding of s as an SCV_STRING ScVal,
// the form the indexing service expects in topic filters.
//
// Layout: uint32 discriminant, uint32 length, bytes zero padded to 4.
func EncodeTopic(s string) string {
	padded := (len(s) + 3) &^ 3

	buf := make([]byte, 8+padded) //nolint:mnd
	binary.BigEndian.PutUint32(buf[0:4], scvString)
	binary.BigEndian.PutUint32(buf[4:8], uint32(len(s))) //nolint:gosec
	copy(buf[8:], s)

	return base64.StdEncoding.EncodeToString(buf)
}
