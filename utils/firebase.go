// utils/firebase.go
package utils

import (
	"context"
	"log"

	"rentora/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMClient delivers push alerts; nil when push delivery is disabled.
var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client. With no
// credentials configured, push alerts degrade to log-only delivery.
func FirebaseInit() {
	if config.AppConfig.FirebaseCredentials == "" {
		log.Println("firebase: no credentials configured, push alerts disabled")
		return
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentials)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}

	FCMClient = client
}
