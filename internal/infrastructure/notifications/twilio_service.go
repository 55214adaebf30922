package notifications

import (
	"context"
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers text messages
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// TwilioSMSSender sends SMS through the Twilio messages API
type TwilioSMSSender struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewTwilioService creates a new Twilio SMS sender. With an empty
// fromNumber messages are logged instead of sent.
func NewTwilioService(accountSID, authToken, fromNumber string) *TwilioSMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSMSSender{
		client:     client,
		fromNumber: fromNumber,
	}
}

// SendSMS implements SMSSender
func (t *TwilioSMSSender) SendSMS(ctx context.Context, to, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// If credentials are not configured, log instead of sending
	if t.fromNumber == "" {
		log.Printf("[MOCK SMS] To: %s, Message: %s", to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	if resp.Sid != nil {
		log.Printf("sms queued: sid=%s to=%s", *resp.Sid, to)
	}
	return nil
}
