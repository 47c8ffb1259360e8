package mail

import (
	"bytes"
	"strings"
	"testing"

	gomail "gopkg.in/gomail.v2"
)

func TestSendBuildsMultipartMessage(t *testing.T) {
	var captured bytes.Buffer
	s := &Sender{
		settings: Settings{From: "reports@example.com", To: []string{"family@example.com"}},
		dial: func(msg *gomail.Message) error {
			_, err := msg.WriteTo(&captured)
			return err
		},
	}

	err := s.Send("Portfolio Report", "total: $100.00", "<html><body>total</body></html>")
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	raw := captured.String()
	for _, want := range []string{
		"From: reports@example.com",
		"To: family@example.com",
		"Subject: Portfolio Report",
		"text/plain",
		"text/html",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestSendTextOnly(t *testing.T) {
	var captured bytes.Buffer
	s := &Sender{
		settings: Settings{From: "reports@example.com", To: []string{"family@example.com"}},
		dial: func(msg *gomail.Message) error {
			_, err := msg.WriteTo(&captured)
			return err
		},
	}

	if err := s.Send("Portfolio Report", "total: $100.00", ""); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if strings.Contains(captured.String(), "text/html") {
		t.Error("text-only message should not carry an html part")
	}
}

func TestSendRequiresAddresses(t *testing.T) {
	s := NewSender(Settings{Host: "smtp.example.com", Port: 587})
	if err := s.Send("subject", "body", ""); err == nil {
		t.Fatal("expected an error without from/to addresses")
	}
}
