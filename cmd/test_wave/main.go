package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/Bruno200000/LOKI-sub001/internal/services"
)

// Manual gateway probe: creates a small checkout session and reads it
// back, to verify credentials and connectivity.
func main() {
	amount := flag.String("amount", "100", "Amount to charge (string, XOF)")
	sessionID := flag.String("session", "", "Existing session id to look up instead of creating one")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found")
	}

	wave := services.NewWaveService()
	if !wave.Configured() {
		log.Fatal("WAVE_API_KEY is not set")
	}

	ctx := context.Background()

	if *sessionID == "" {
		session, err := wave.CreateCheckoutSession(ctx, &services.CreateCheckoutSessionRequest{
			Amount:     *amount,
			Currency:   "XOF",
			SuccessURL: "http://localhost:8080/payment/success",
			ErrorURL:   "http://localhost:8080/payment/error",
		})
		if err != nil {
			log.Fatalf("Failed to create checkout session: %v", err)
		}
		log.Printf("Created session %s (status %s)", session.ID, session.CheckoutStatus)
		log.Printf("Launch URL: %s", session.WaveLaunchURL)
		*sessionID = session.ID
	}

	session, err := wave.GetCheckoutSession(ctx, *sessionID)
	if err != nil {
		log.Fatalf("Failed to fetch checkout session: %v", err)
	}
	log.Printf("Session %s: checkout_status=%s payment_status=%s amount=%s %s",
		session.ID, session.CheckoutStatus, session.PaymentStatus, session.Amount, session.Currency)
}
