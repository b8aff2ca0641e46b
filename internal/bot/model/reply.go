package model

import "fmt"

// Attachment is one image card attached to an outgoing reply.
type Attachment struct {
	Title     string `json:"title,omitempty"`
	ImageURL  string `json:"image_url"`
	SourceURL string `json:"source_url,omitempty"`
}

// Reply is one outgoing message payload. The hosting layer decides how to
// render it on the wire.
type Reply struct {
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// TextReply builds a plain text reply.
func TextReply(format string, args ...any) Reply {
	if len(args) == 0 {
		return Reply{Text: format}
	}
	return Reply{Text: fmt.Sprintf(format, args...)}
}

// PictureReply renders a set of search hits as a single reply with one
// attachment per hit, preserving the backend's ordering.
func PictureReply(text string, hits []SearchHit) Reply {
	reply := Reply{Text: text, Attachments: make([]Attachment, 0, len(hits))}
	for _, hit := range hits {
		reply.Attachments = append(reply.Attachments, Attachment{
			Title:     hit.Title,
			ImageURL:  hit.ImageURL,
			SourceURL: hit.SourceURL,
		})
	}
	return reply
}
