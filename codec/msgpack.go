package codec

import (
	"bytes"

	msgpack "github.com/hashicorp/go-msgpack/codec"
)

// Msgpack is a MessagePack codec backed by github.com/hashicorp/go-msgpack,
// the encoding serf and memberlist use on the wire.
//
// Struct fields are keyed by their Go name unless a `codec` tag says
// otherwise; json tags are ignored.
type Msgpack struct{}

// Marshal encodes the value to MessagePack.
func (Msgpack) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf, &msgpack.MsgpackHandle{})
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes the MessagePack data into v.
func (Msgpack) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data), &msgpack.MsgpackHandle{})
	return dec.Decode(v)
}

// Name returns the unique name of the codec ("msgpack").
func (Msgpack) Name() string { return "msgpack" }
