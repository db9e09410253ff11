package core

import (
	"slices"
	"strings"
	"time"
)

// Note is the central entity of the domain.
// It represents a user-authored piece of text identified by an ID.
// It is agnostic to storage format.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Tags      []string  `json:"tags" yaml:"tags"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// ParseTags splits a comma-separated tag list, trims every entry and drops empties.
// Order is preserved and duplicates are kept.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags is the inverse of ParseTags, used when a note is edited.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// Matches reports whether the note's title, content or one of its tags
// contains query, ignoring case. An empty query matches every note.
func (n Note) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	return slices.ContainsFunc(n.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), q)
	})
}

// clone returns a copy that shares no slice memory with n.
func (n Note) clone() Note {
	n.Tags = slices.Clone(n.Tags)
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return n
}
