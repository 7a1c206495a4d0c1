package redisprovider

import (
	"encoding/json"
	"strconv"
)

// userSnapshot is the JSON shape persisted per user. Groups/Perms use the
// same "<value> <unix_ts>" wire convention authority.Core.CreateUser
// accepts for temp entries (timestamp 0 means permanent).
type userSnapshot struct {
	Immunity int      `json:"immunity"`
	Groups   []string `json:"groups"`
	Perms    []string `json:"perms"`
}

// groupSnapshot is the JSON shape persisted per group.
type groupSnapshot struct {
	Perms    []string `json:"perms"`
	Priority int      `json:"priority"`
	Parent   string   `json:"parent,omitempty"`
}

func encodeTemporal(value string, timestamp int64) string {
	if timestamp == 0 {
		return value
	}
	return value + " " + strconv.FormatInt(timestamp, 10)
}

func marshalUser(s userSnapshot) ([]byte, error) { return json.Marshal(s) }
func marshalGroup(s groupSnapshot) ([]byte, error) { return json.Marshal(s) }

func unmarshalUser(data []byte) (userSnapshot, error) {
	var s userSnapshot
	err := json.Unmarshal(data, &s)
	return s, err
}

func unmarshalGroup(data []byte) (groupSnapshot, error) {
	var s groupSnapshot
	err := json.Unmarshal(data, &s)
	return s, err
}

// upsertTemporal replaces the entry for value in entries (matching on the
// part before any " <ts>" suffix) or appends it if absent.
func upsertTemporal(entries []string, value string, timestamp int64) []string {
	encoded := encodeTemporal(value, timestamp)
	for i, e := range entries {
		if temporalValue(e) == value {
			entries[i] = encoded
			return entries
		}
	}
	return append(entries, encoded)
}

// removeTemporal drops the entry matching value, ignoring any " <ts>" suffix.
func removeTemporal(entries []string, value string) []string {
	out := entries[:0]
	for _, e := range entries {
		if temporalValue(e) != value {
			out = append(out, e)
		}
	}
	return out
}

func temporalValue(entry string) string {
	for i := len(entry) - 1; i >= 0; i-- {
		if entry[i] == ' ' {
			if _, err := strconv.ParseInt(entry[i+1:], 10, 64); err == nil {
				return entry[:i]
			}
			break
		}
	}
	return entry
}
