// Package ipn implements the Instant Payment Notification engine:
// decoding the raw notification body, confirming it with the processor and
// dispatching it to handlers keyed by txn_type.
package ipn

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TxnTypeField is the routing key used by Registry.Process.
const TxnTypeField = "txn_type"

// Field is a single decoded name/value pair.
type Field struct {
	Name  string
	Value string
	// RawValue is the value exactly as it appeared in the body.
	RawValue string
}

// Message is a decoded notification. Fields keep the order in which they
// first appeared in the body.
type Message struct {
	fields []Field
	index  map[string]int
	raw    strings.Builder
}

// Decode turns a form-urlencoded body into a Message. It never fails:
// tokens that do not split into exactly one name and one value are dropped.
// A value that itself contains '=' is therefore dropped as well.
func Decode(raw []byte) *Message {
	m := &Message{index: make(map[string]int)}

	for _, token := range strings.Split(string(raw), "&") {
		parts := strings.Split(token, "=")
		if len(parts) != 2 {
			continue
		}
		m.set(parts[0], parts[1])
		m.raw.WriteString(parts[0] + "=" + parts[1] + ";")
	}

	return m
}

func (m *Message) set(name, rawValue string) {
	f := Field{Name: name, Value: formUnescape(rawValue), RawValue: rawValue}
	if i, ok := m.index[name]; ok {
		m.fields[i] = f
		return
	}
	m.index[name] = len(m.fields)
	m.fields = append(m.fields, f)
}

// Get returns the decoded value of the named field.
func (m *Message) Get(name string) (string, bool) {
	i, ok := m.index[name]
	if !ok {
		return "", false
	}
	return m.fields[i].Value, true
}

// TxnType returns the txn_type field.
func (m *Message) TxnType() (string, bool) {
	return m.Get(TxnTypeField)
}

// Fields returns a copy of the fields in stored order.
func (m *Message) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Len returns the number of distinct fields.
func (m *Message) Len() int {
	return len(m.fields)
}

// Raw returns the accepted tokens as "name=value;" in arrival order,
// undecoded and including overwritten duplicates. Used for audit lines.
func (m *Message) Raw() string {
	return m.raw.String()
}

// MarshalJSON encodes the message as a JSON object in field order.
func (m *Message) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
