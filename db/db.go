package db

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

// ErrNoCredentials is returned when FIREBASE_CREDENTIALS is unset.
var ErrNoCredentials = errors.New("FIREBASE_CREDENTIALS environment variable not set")

// HashString hashes a given string using SHA-256 and returns its hex representation.
func HashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// FirestoreClient is a singleton Firestore client instance.
var (
	client     *firestore.Client
	clientErr  error
	clientOnce sync.Once
)

// InitFirestore initializes and returns a Firestore client from the
// base64-encoded service account in FIREBASE_CREDENTIALS.
func InitFirestore(ctx context.Context) (*firestore.Client, error) {
	clientOnce.Do(func() {
		encodedCreds := os.Getenv("FIREBASE_CREDENTIALS")
		if encodedCreds == "" {
			clientErr = ErrNoCredentials
			return
		}

		// Decode credentials
		creds, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			clientErr = fmt.Errorf("decode firestore credentials: %w", err)
			return
		}

		// Initialize Firebase App
		app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(creds))
		if err != nil {
			clientErr = fmt.Errorf("initialize firebase app: %w", err)
			return
		}

		// Get Firestore Client
		client, clientErr = app.Firestore(ctx)
		if clientErr != nil {
			clientErr = fmt.Errorf("get firestore client: %w", clientErr)
			return
		}
		log.Println("Firestore client initialized")
	})

	return client, clientErr
}

// CloseFirestore closes the Firestore client.
func CloseFirestore() {
	if client != nil {
		client.Close()
	}
}
