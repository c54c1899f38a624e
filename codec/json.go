package codec

import "encoding/json"

// JSON is the encoding/json codec. Records written with it are readable by
// any JSON tooling; it exists mainly so such data can be decoded by name.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (JSON) Name() string { return "json" }
