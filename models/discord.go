package models

import "unicode/utf8"

// Discord webhook limits
const (
	MaxContentLength    = 2000
	MaxFieldValueLength = 1024
	MaxEmbedFields      = 25
)

// WebhookMessage is the JSON body posted to a Discord webhook
type WebhookMessage struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed is a Discord rich embed
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
}

// EmbedField is a name/value pair inside an embed
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// EmbedFooter is the small text under an embed
type EmbedFooter struct {
	Text string `json:"text"`
}

// IsEmpty reports whether the message has nothing to post
func (m *WebhookMessage) IsEmpty() bool {
	return m == nil || (m.Content == "" && len(m.Embeds) == 0)
}

// Truncate cuts s to at most max runes
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
