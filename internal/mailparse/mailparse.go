package mailparse

import (
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"

	"github.com/phishguard/phishguard/internal/core"
)

// ParseMessage reads an RFC 5322 message and materializes it into the
// engine's input model: headers, plain and HTML body parts, and attachment
// metadata with decoded bytes
func ParseMessage(r io.Reader) (*core.Email, error) {
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return nil, err
	}

	email := &core.Email{
		MessageID: strings.Trim(msg.Header.Get("Message-ID"), "<>"),
		Subject:   msg.Header.Get("Subject"),
		From:      msg.Header.Get("From"),
		To:        msg.Header.Get("To"),
		Cc:        msg.Header.Get("Cc"),
		Headers:   make(map[string]string),
	}
	for key := range msg.Header {
		email.Headers[key] = msg.Header.Get(key)
	}

	contentType := msg.Header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		// Single-part message: the whole body is one text part
		body, err := io.ReadAll(msg.Body)
		if err != nil {
			return nil, err
		}
		if strings.Contains(strings.ToLower(contentType), "text/html") {
			email.BodyHTML = string(body)
		} else {
			email.BodyPlain = string(body)
		}
		return email, nil
	}

	boundary, ok := params["boundary"]
	if !ok {
		body, err := io.ReadAll(msg.Body)
		if err != nil {
			return nil, err
		}
		email.BodyPlain = string(body)
		return email, nil
	}

	walkParts(multipart.NewReader(msg.Body, boundary), email)
	return email, nil
}

// walkParts collects text bodies and attachments from a multipart reader,
// recursing into nested multipart containers. Unreadable parts are skipped;
// a single bad part must not lose the rest of the message.
func walkParts(mr *multipart.Reader, email *core.Email) {
	for {
		part, err := mr.NextPart()
		if err != nil {
			return
		}

		partType := part.Header.Get("Content-Type")
		mediaType, params, typeErr := mime.ParseMediaType(partType)
		if typeErr != nil {
			mediaType = strings.ToLower(strings.TrimSpace(strings.Split(partType, ";")[0]))
		}

		if strings.HasPrefix(mediaType, "multipart/") {
			if nested, ok := params["boundary"]; ok {
				walkParts(multipart.NewReader(part, nested), email)
			}
			continue
		}

		filename := part.FileName()
		data, err := io.ReadAll(part)
		if err != nil {
			continue
		}

		if filename == "" && mediaType == "text/plain" {
			email.BodyPlain += string(data)
			continue
		}
		if filename == "" && mediaType == "text/html" {
			email.BodyHTML += string(data)
			continue
		}
		if filename == "" {
			continue
		}

		if strings.EqualFold(part.Header.Get("Content-Transfer-Encoding"), "base64") {
			cleaned := strings.NewReplacer("\r", "", "\n", "").Replace(string(data))
			if decoded, decErr := base64.StdEncoding.DecodeString(cleaned); decErr == nil {
				data = decoded
			}
		}

		email.Attachments = append(email.Attachments, core.Attachment{
			Filename:    filename,
			ContentType: mediaType,
			Data:        data,
		})
	}
}
