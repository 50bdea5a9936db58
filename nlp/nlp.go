package nlp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"google.golang.org/api/option"
)

// ErrNoCredentials is returned when NATURAL_LANGUAGE_CREDENTIALS is not configured.
var ErrNoCredentials = errors.New("NATURAL_LANGUAGE_CREDENTIALS environment variable not set")

// languageClient a singleton languageClient instance.
var (
	languageClient *language.Client
	clientOnce     sync.Once
	clientErr      error
)

// InitLanguageClient initializes and returns a language client from the
// base64-encoded service account in NATURAL_LANGUAGE_CREDENTIALS.
func InitLanguageClient(ctx context.Context) (*language.Client, error) {
	clientOnce.Do(func() {
		encodedCreds := os.Getenv("NATURAL_LANGUAGE_CREDENTIALS")
		if encodedCreds == "" {
			clientErr = ErrNoCredentials
			return
		}

		creds, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			clientErr = fmt.Errorf("decode natural language credentials: %w", err)
			return
		}

		opt := option.WithCredentialsJSON(creds)
		languageClient, clientErr = language.NewClient(ctx, opt)
		if clientErr != nil {
			log.Printf("Failed to create Natural Language client: %v", clientErr)
		}
	})

	return languageClient, clientErr
}

func CloseLanguageClient() {
	if languageClient != nil {
		languageClient.Close()
	}
}

// LocationExtractor pulls place names out of free text with the Cloud
// Natural Language entity API.
type LocationExtractor struct {
	client *language.Client
}

func NewLocationExtractor(client *language.Client) *LocationExtractor {
	return &LocationExtractor{client: client}
}

// Locations returns LOCATION and ADDRESS entity names found in text, in the
// order the API reports them.
func (e *LocationExtractor) Locations(ctx context.Context, text string) ([]string, error) {
	req := &languagepb.AnalyzeEntitiesRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{
				Content: text,
			},
			Type: languagepb.Document_PLAIN_TEXT,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}

	resp, err := e.client.AnalyzeEntities(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("AnalyzeEntities error: %w", err)
	}

	return locationNames(resp.Entities), nil
}

// locationNames keeps place-like entities, dropping blanks and duplicates.
func locationNames(entities []*languagepb.Entity) []string {
	var names []string
	seen := make(map[string]bool)

	for _, e := range entities {
		switch e.Type {
		case languagepb.Entity_LOCATION, languagepb.Entity_ADDRESS:
		default:
			continue
		}
		name := strings.TrimSpace(e.Name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}

	return names
}
