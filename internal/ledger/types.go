package ledger

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/objectledger/custodian/internal/domain"
)

// ObjectData is the wire representation of an on-ledger object as returned
// by the node's object query. Field values keep the node's loose typing and
// are decoded on demand.
type ObjectData struct {
	ID      string                     `json:"id"`
	Type    string                     `json:"type"`
	Owner   string                     `json:"owner"`
	Version uint64                     `json:"version"`
	Fields  map[string]json.RawMessage `json:"fields"`
}

// StringField decodes a string field, returning "" when absent or malformed
func (o *ObjectData) StringField(name string) string {
	raw, ok := o.Fields[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// BoolField decodes a boolean field, returning false when absent or malformed
func (o *ObjectData) BoolField(name string) bool {
	raw, ok := o.Fields[name]
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}

// Uint64Field decodes an integer field through the loose-balance normalizer
func (o *ObjectData) Uint64Field(name string) (uint64, error) {
	raw, ok := o.Fields[name]
	if !ok {
		return 0, nil
	}
	return domain.NormalizeBalance(raw)
}

// TimeField decodes a millisecond-timestamp field, zero time when absent
func (o *ObjectData) TimeField(name string) time.Time {
	ms, err := o.Uint64Field(name)
	if err != nil || ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(ms)).UTC()
}

// HasType reports whether the object's type ends with the given
// module::Struct suffix, ignoring the package address prefix.
func (o *ObjectData) HasType(suffix string) bool {
	return strings.HasSuffix(o.Type, suffix)
}

// DynamicField is one entry under a parent object's sparse field table.
// For wallet balance entries Name is the token type string and ObjectID
// points at the stored fund object.
type DynamicField struct {
	ObjectID string `json:"object_id"`
	Name     string `json:"name"`
}

// Event is an entry from the ledger's event log
type Event struct {
	Type        string                     `json:"type"`
	TxDigest    string                     `json:"tx_digest"`
	TimestampMs uint64                     `json:"timestamp_ms"`
	ParsedJSON  map[string]json.RawMessage `json:"parsed_json"`
}

// StringAttr decodes a string attribute from the event payload
func (e *Event) StringAttr(name string) string {
	raw, ok := e.ParsedJSON[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Uint64Attr decodes an integer attribute from the event payload
func (e *Event) Uint64Attr(name string) (uint64, error) {
	raw, ok := e.ParsedJSON[name]
	if !ok {
		return 0, nil
	}
	return domain.NormalizeBalance(raw)
}

// CoinMetadata describes a fungible token as registered on the ledger
type CoinMetadata struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int32  `json:"decimals"`
}

// ObjectChange describes one object created, mutated or deleted by a
// committed mutation
type ObjectChange struct {
	Type       string `json:"type"` // created, mutated, deleted, transferred
	ObjectType string `json:"object_type"`
	ObjectID   string `json:"object_id"`
}

// Result is the resolved outcome of a committed mutation
type Result struct {
	Digest        string         `json:"digest"`
	Events        []Event        `json:"events"`
	ObjectChanges []ObjectChange `json:"object_changes"`
}

// CreatedObjectID returns the id of the first created object whose type ends
// with the given suffix
func (r *Result) CreatedObjectID(typeSuffix string) (domain.ObjectID, bool) {
	for _, change := range r.ObjectChanges {
		if change.Type == "created" && strings.HasSuffix(change.ObjectType, typeSuffix) {
			return domain.ObjectID(change.ObjectID), true
		}
	}
	return "", false
}

// EventOfType returns the first result event whose type ends with the given
// suffix
func (r *Result) EventOfType(typeSuffix string) (*Event, bool) {
	for i := range r.Events {
		if strings.HasSuffix(r.Events[i].Type, typeSuffix) {
			return &r.Events[i], true
		}
	}
	return nil, false
}
