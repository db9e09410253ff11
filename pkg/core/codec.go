package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the persisted timestamp format: ISO-8601, UTC, millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// noteRecord is the wire shape of a persisted note. Field order matches the
// historical layout so existing collections stay byte-compatible.
type noteRecord struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Tags      []string `json:"tags"`
}

// rawRecord is used while decoding so that missing and mistyped fields can be told apart.
type rawRecord struct {
	ID        *string         `json:"id"`
	Title     *string         `json:"title"`
	Content   *string         `json:"content"`
	CreatedAt *string         `json:"createdAt"`
	UpdatedAt *string         `json:"updatedAt"`
	Tags      json.RawMessage `json:"tags"`
}

// RecordError describes a persisted record that was dropped during decoding.
type RecordError struct {
	Index  int
	Reason string
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

// EncodeNotes serializes the collection as a JSON array.
func EncodeNotes(notes []Note) (string, error) {
	records := make([]noteRecord, 0, len(notes))
	for _, n := range notes {
		tags := n.Tags
		if tags == nil {
			tags = []string{}
		}
		records = append(records, noteRecord{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: formatTimestamp(n.CreatedAt),
			UpdatedAt: formatTimestamp(n.UpdatedAt),
			Tags:      tags,
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode notes: %w", err)
	}
	return string(data), nil
}

// DecodeNotes parses a persisted collection, validating every record.
// Records that fail validation are skipped and reported; a payload that is
// not a JSON array fails with ErrMalformed.
func DecodeNotes(data string) ([]Note, []RecordError, error) {
	if strings.TrimSpace(data) == "" {
		return []Note{}, nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	notes := make([]Note, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	var dropped []RecordError

	for i, item := range items {
		n, reason := decodeRecord(item)
		if reason == "" {
			if _, dup := seen[n.ID]; dup {
				reason = fmt.Sprintf("duplicate id %q", n.ID)
			}
		}
		if reason != "" {
			dropped = append(dropped, RecordError{Index: i, Reason: reason})
			continue
		}
		seen[n.ID] = struct{}{}
		notes = append(notes, n)
	}

	return notes, dropped, nil
}

func decodeRecord(item json.RawMessage) (Note, string) {
	if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
		return Note{}, "null record"
	}

	var raw rawRecord
	if err := json.Unmarshal(item, &raw); err != nil {
		return Note{}, err.Error()
	}

	if raw.ID == nil || strings.TrimSpace(*raw.ID) == "" {
		return Note{}, "missing id"
	}
	if raw.Title == nil || strings.TrimSpace(*raw.Title) == "" {
		return Note{}, "missing title"
	}
	if raw.CreatedAt == nil || raw.UpdatedAt == nil {
		return Note{}, "missing timestamps"
	}

	createdAt, err := parseTimestamp(*raw.CreatedAt)
	if err != nil {
		return Note{}, fmt.Sprintf("invalid createdAt: %v", err)
	}
	updatedAt, err := parseTimestamp(*raw.UpdatedAt)
	if err != nil {
		return Note{}, fmt.Sprintf("invalid updatedAt: %v", err)
	}
	if updatedAt.Before(createdAt) {
		return Note{}, "updatedAt precedes createdAt"
	}

	tags := []string{}
	if len(raw.Tags) > 0 && !bytes.Equal(bytes.TrimSpace(raw.Tags), []byte("null")) {
		if err := json.Unmarshal(raw.Tags, &tags); err != nil {
			return Note{}, "tags must be an array of strings"
		}
	}

	n := Note{
		ID:        *raw.ID,
		Title:     *raw.Title,
		Tags:      tags,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if raw.Content != nil {
		n.Content = *raw.Content
	}
	return n, ""
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
