package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLinkBuilder(t *testing.T) {
	id := uuid.New()
	links := NewLinkBuilder("https://skylock.example.com")

	assert.Equal(t, "/folders/"+id.String(), links.FolderURL(id))
	assert.Equal(t, "/files/"+id.String(), links.FileURL(id))
	assert.Equal(t, "https://skylock.example.com/api/public/files/"+id.String()+"/download", links.FileDownloadURL(id))
}

func TestLinkBuilderTrimsTrailingSlash(t *testing.T) {
	id := uuid.New()
	links := NewLinkBuilder("http://localhost:8080/")

	assert.Equal(t, "http://localhost:8080/api/public/files/"+id.String()+"/download", links.FileDownloadURL(id))
}
