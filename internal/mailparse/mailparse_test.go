package mailparse

import (
	"strings"
	"testing"
)

func TestParseMessageSinglePart(t *testing.T) {
	raw := "Message-ID: <abc@mail.example>\r\n" +
		"From: Alice <alice@example.com>\r\n" +
		"To: bob@example.com\r\n" +
		"Subject: Hello\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Just checking in.\r\n"

	email, err := ParseMessage(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseMessage() error: %v", err)
	}

	if email.MessageID != "abc@mail.example" {
		t.Errorf("MessageID = %q, want %q", email.MessageID, "abc@mail.example")
	}
	if email.From != "Alice <alice@example.com>" {
		t.Errorf("From = %q", email.From)
	}
	if email.Subject != "Hello" {
		t.Errorf("Subject = %q", email.Subject)
	}
	if !strings.Contains(email.BodyPlain, "Just checking in.") {
		t.Errorf("BodyPlain = %q", email.BodyPlain)
	}
	if email.BodyHTML != "" {
		t.Errorf("BodyHTML should be empty, got %q", email.BodyHTML)
	}
}

func TestParseMessageSinglePartHTML(t *testing.T) {
	raw := "From: alice@example.com\r\n" +
		"To: bob@example.com\r\n" +
		"Subject: Hi\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>Hi there</p>\r\n"

	email, err := ParseMessage(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseMessage() error: %v", err)
	}
	if !strings.Contains(email.BodyHTML, "<p>Hi there</p>") {
		t.Errorf("BodyHTML = %q", email.BodyHTML)
	}
	if email.BodyPlain != "" {
		t.Errorf("BodyPlain should be empty, got %q", email.BodyPlain)
	}
}

func TestParseMessageMultipart(t *testing.T) {
	raw := "From: alice@example.com\r\n" +
		"To: bob@example.com\r\n" +
		"Subject: Report\r\n" +
		"Content-Type: multipart/mixed; boundary=outer\r\n" +
		"\r\n" +
		"--outer\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"See the attachment.\r\n" +
		"--outer\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>See the attachment.</p>\r\n" +
		"--outer\r\n" +
		"Content-Type: application/pdf\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"Content-Disposition: attachment; filename=\"report.pdf\"\r\n" +
		"\r\n" +
		"aGVsbG8gd29ybGQ=\r\n" +
		"--outer--\r\n"

	email, err := ParseMessage(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseMessage() error: %v", err)
	}

	if !strings.Contains(email.BodyPlain, "See the attachment.") {
		t.Errorf("BodyPlain = %q", email.BodyPlain)
	}
	if !strings.Contains(email.BodyHTML, "<p>See the attachment.</p>") {
		t.Errorf("BodyHTML = %q", email.BodyHTML)
	}
	if len(email.Attachments) != 1 {
		t.Fatalf("expected one attachment, got %d", len(email.Attachments))
	}
	attachment := email.Attachments[0]
	if attachment.Filename != "report.pdf" {
		t.Errorf("attachment Filename = %q", attachment.Filename)
	}
	if attachment.ContentType != "application/pdf" {
		t.Errorf("attachment ContentType = %q", attachment.ContentType)
	}
	if string(attachment.Data) != "hello world" {
		t.Errorf("attachment Data = %q, want decoded base64", attachment.Data)
	}
}

func TestParseMessageNestedMultipart(t *testing.T) {
	raw := "From: alice@example.com\r\n" +
		"To: bob@example.com\r\n" +
		"Subject: Nested\r\n" +
		"Content-Type: multipart/mixed; boundary=outer\r\n" +
		"\r\n" +
		"--outer\r\n" +
		"Content-Type: multipart/alternative; boundary=inner\r\n" +
		"\r\n" +
		"--inner\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"plain body\r\n" +
		"--inner\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<b>html body</b>\r\n" +
		"--inner--\r\n" +
		"--outer--\r\n"

	email, err := ParseMessage(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseMessage() error: %v", err)
	}
	if !strings.Contains(email.BodyPlain, "plain body") {
		t.Errorf("BodyPlain = %q", email.BodyPlain)
	}
	if !strings.Contains(email.BodyHTML, "<b>html body</b>") {
		t.Errorf("BodyHTML = %q", email.BodyHTML)
	}
}

func TestParseMessageInvalid(t *testing.T) {
	if _, err := ParseMessage(strings.NewReader("this is not an rfc 5322 message")); err == nil {
		t.Error("expected an error for a malformed message")
	}
}

func TestParseMessageHeadersCaptured(t *testing.T) {
	raw := "From: list@example.com\r\n" +
		"To: bob@example.com\r\n" +
		"Subject: Newsletter\r\n" +
		"Precedence: bulk\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"monthly update\r\n"

	email, err := ParseMessage(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseMessage() error: %v", err)
	}
	if email.Headers["Precedence"] != "bulk" {
		t.Errorf("Headers[Precedence] = %q, want bulk", email.Headers["Precedence"])
	}
}
