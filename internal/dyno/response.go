package dyno

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
)

// Document wraps a raw daemon response. The daemon promises no schema
// beyond "one JSON object", so access is by key with explicit found flags
// instead of a struct decode that would reject unknown daemons.
type Document struct {
	raw []byte
}

func NewDocument(raw []byte) Document {
	return Document{raw: raw}
}

// Raw returns the response bytes exactly as received.
func (d Document) Raw() []byte {
	return d.raw
}

// String returns the string value at key, and whether the key was present.
func (d Document) String(key string) (string, bool) {
	value, err := jsonparser.GetString(d.raw, key)
	if err != nil {
		return "", false
	}
	return value, true
}

// Int returns the integer value at key, and whether the key was present.
func (d Document) Int(key string) (int64, bool) {
	value, err := jsonparser.GetInt(d.raw, key)
	if err != nil {
		return 0, false
	}
	return value, true
}

// Field is one top-level response entry rendered for display. Scalars keep
// their literal form; nested values stay compact JSON.
type Field struct {
	Key   string
	Value string
}

// Fields returns the top-level entries in document order.
func (d Document) Fields() ([]Field, error) {
	var fields []Field
	err := jsonparser.ObjectEach(d.raw, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		rendered := string(value)
		if dataType == jsonparser.Null {
			rendered = "null"
		}
		fields = append(fields, Field{Key: string(key), Value: rendered})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse response object: %w", err)
	}
	return fields, nil
}

// MatchedProcesses returns the PIDs the daemon matched for a trace request.
func (d Document) MatchedProcesses() ([]int64, error) {
	value, dataType, _, err := jsonparser.Get(d.raw, "processesMatched")
	if err != nil {
		return nil, fmt.Errorf("response has no processesMatched field: %w", err)
	}
	if dataType != jsonparser.Array {
		return nil, fmt.Errorf("processesMatched is %s, want array", dataType)
	}

	var pids []int64
	var parseErr error
	_, err = jsonparser.ArrayEach(value, func(item []byte, itemType jsonparser.ValueType, _ int, _ error) {
		if parseErr != nil {
			return
		}
		pid, err := jsonparser.ParseInt(item)
		if err != nil {
			parseErr = fmt.Errorf("processesMatched entry %q: %w", item, err)
			return
		}
		pids = append(pids, pid)
	})
	if err != nil {
		return nil, fmt.Errorf("parse processesMatched: %w", err)
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return pids, nil
}

// Pretty returns the response indented for human display, falling back to
// the raw bytes when they are not valid JSON.
func (d Document) Pretty() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, d.raw, "", "  "); err != nil {
		return string(d.raw)
	}
	return buf.String()
}
