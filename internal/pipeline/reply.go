package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind tells how a reply body was interpreted.
type Kind int

// Reply kinds.
const (
	// KindObject is a structured JSON reply other than a string.
	KindObject Kind = iota
	// KindMessage is a plain-text status message. An empty body is the empty message.
	KindMessage
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindMessage:
		return "message"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrNotObject is returned by Decode for replies that carry no structured body.
var ErrNotObject = errors.New("reply is not a structured object")

// Reply is the normalized result of a pipeline call.
type Reply struct {
	Kind    Kind
	Message string
	Body    json.RawMessage
}

// IsMessage reports whether the reply is a plain-text status message.
func (r Reply) IsMessage() bool {
	return r.Kind == KindMessage
}

// Decode unmarshals a structured body into v.
func (r Reply) Decode(v any) error {
	if r.Kind != KindObject {
		return fmt.Errorf("%w: %s", ErrNotObject, r.Kind)
	}
	return json.Unmarshal(r.Body, v)
}

// normalize interprets raw bytes the way a browser client does: valid JSON other
// than a string literal is structured; a JSON string literal or anything that is
// not JSON, an empty body included, is a status message.
func normalize(body []byte) Reply {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return Reply{Kind: KindMessage, Message: string(body)}
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return Reply{Kind: KindMessage, Message: s}
		}
	}
	return Reply{Kind: KindObject, Body: json.RawMessage(trimmed)}
}
