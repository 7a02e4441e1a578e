package services

import (
	"context"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

const defaultFirebaseCredentials = "firebase-service-account.json"

// InitFirebase builds the Admin SDK auth client used to verify ID
// tokens and mint session cookies. An empty credPath falls back to
// FIREBASE_CREDENTIALS_PATH, then to the local service-account file.
func InitFirebase(credPath string) (*auth.Client, error) {
	if credPath == "" {
		credPath = os.Getenv("FIREBASE_CREDENTIALS_PATH")
	}
	if credPath == "" {
		credPath = defaultFirebaseCredentials
	}

	app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsFile(credPath))
	if err != nil {
		return nil, err
	}
	return app.Auth(context.Background())
}
