package model

import "strings"

// Document is a unit of raw text submitted to the text matching endpoint.
// Each document becomes one context of the token stream.
type Document struct {
	DocumentID string `json:"documentID"`
	Text       string `json:"text"`
}

// GetDocumentID returns the trimmed documentID, if one is set.
func (d Document) GetDocumentID() (string, bool) {
	id := strings.TrimSpace(d.DocumentID)
	return id, id != ""
}
