package services

import (
	"strings"

	"github.com/google/uuid"
)

// LinkBuilder maps public resource ids to share URLs. Pure; no lookups,
// no side effects.
type LinkBuilder struct {
	baseURL string
}

// NewLinkBuilder takes the server's public base URL, used only for the
// fully-qualified download link.
func NewLinkBuilder(baseURL string) *LinkBuilder {
	return &LinkBuilder{baseURL: strings.TrimRight(baseURL, "/")}
}

func (l *LinkBuilder) FolderURL(id uuid.UUID) string {
	return "/folders/" + id.String()
}

func (l *LinkBuilder) FileURL(id uuid.UUID) string {
	return "/files/" + id.String()
}

func (l *LinkBuilder) FileDownloadURL(id uuid.UUID) string {
	return l.baseURL + "/api/public/files/" + id.String() + "/download"
}
