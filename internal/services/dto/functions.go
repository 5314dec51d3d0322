package dto

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf16"

	"collabex_backend/internal/models"
)

// Messages returned by the function endpoints on a malformed body.
const (
	MsgInvalidBody         = "Invalid request body"
	MsgInvalidRecipient    = "Invalid recipientUserId - must be a valid UUID"
	MsgInvalidType         = "Invalid type - must be collab_request, collab_accepted, collab_completed, or collab_interest"
	MsgInvalidTitle        = "Invalid title - must be 1-200 characters"
	MsgInvalidMessage      = "Invalid message - must be 1-1000 characters"
	MsgInvalidSenderName   = "Invalid senderName - must be 1-100 characters"
	MsgInvalidData         = "Invalid data - must be an object"
	MsgInvalidPlatformID   = "Invalid platformId - must be a valid UUID"
	MsgInvalidPlatformName = "Invalid platformName - must be 1-50 characters"
	MsgInvalidHandle       = "Invalid handle - must be max 100 characters"
	MsgInvalidURLLength    = "Invalid url - must be max 500 characters"
	MsgInvalidURLScheme    = "Invalid url - must start with http:// or https://"
)

var uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsUUID reports whether s is a canonical 8-4-4-4-12 hex UUID.
func IsUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

// textLen counts UTF-16 code units, the unit browsers use for length limits.
func textLen(s string) int {
	return len(utf16.Encode([]rune(s)))
}

type rawFields map[string]json.RawMessage

func decodeObject(body []byte) (rawFields, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var fields rawFields
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

// str returns the field as a string; ok is false when absent or not a string.
func (f rawFields) str(key string) (string, bool) {
	raw, present := f[key]
	if !present {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// ParseSendNotificationRequest decodes and validates a send-notification
// body. On failure the second result is the client message.
func ParseSendNotificationRequest(body []byte) (*SendNotificationRequest, string) {
	fields, ok := decodeObject(body)
	if !ok {
		return nil, MsgInvalidBody
	}

	req := &SendNotificationRequest{}
	var present bool

	req.RecipientUserID, present = fields.str("recipientUserId")
	if !present || !IsUUID(req.RecipientUserID) {
		return nil, MsgInvalidRecipient
	}

	typ, present := fields.str("type")
	req.Type = models.NotificationType(typ)
	if !present || !req.Type.Valid() {
		return nil, MsgInvalidType
	}

	if req.Title, present = fields.str("title"); !present {
		return nil, MsgInvalidTitle
	}
	if req.Message, present = fields.str("message"); !present {
		return nil, MsgInvalidMessage
	}
	if req.SenderName, present = fields.str("senderName"); !present {
		return nil, MsgInvalidSenderName
	}
	if raw, has := fields["data"]; has {
		req.Data = raw
	}

	if msg := ValidateSendNotification(req); msg != "" {
		return nil, msg
	}
	return req, ""
}

// ValidateSendNotification checks the field limits of an already decoded
// request. It returns "" when the request is valid.
func ValidateSendNotification(req *SendNotificationRequest) string {
	switch {
	case !IsUUID(req.RecipientUserID):
		return MsgInvalidRecipient
	case !req.Type.Valid():
		return MsgInvalidType
	case textLen(req.Title) < 1 || textLen(req.Title) > 200:
		return MsgInvalidTitle
	case textLen(req.Message) < 1 || textLen(req.Message) > 1000:
		return MsgInvalidMessage
	case textLen(req.SenderName) < 1 || textLen(req.SenderName) > 100:
		return MsgInvalidSenderName
	}

	if req.Data != nil {
		trimmed := bytes.TrimSpace(req.Data)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return MsgInvalidData
		}
	}
	return ""
}

// ParseVerifyPlatformRequest decodes and validates a verify-social-platform
// body. handle and url are optional; non-string values count as absent.
func ParseVerifyPlatformRequest(body []byte) (*VerifyPlatformRequest, string) {
	fields, ok := decodeObject(body)
	if !ok {
		return nil, MsgInvalidBody
	}

	req := &VerifyPlatformRequest{}
	var present bool

	req.PlatformID, present = fields.str("platformId")
	if !present || !IsUUID(req.PlatformID) {
		return nil, MsgInvalidPlatformID
	}

	req.PlatformName, present = fields.str("platformName")
	if !present || textLen(req.PlatformName) < 1 || textLen(req.PlatformName) > 50 {
		return nil, MsgInvalidPlatformName
	}

	req.Handle, _ = fields.str("handle")
	if textLen(req.Handle) > 100 {
		return nil, MsgInvalidHandle
	}

	req.URL, _ = fields.str("url")
	if textLen(req.URL) > 500 {
		return nil, MsgInvalidURLLength
	}
	if req.URL != "" && !strings.HasPrefix(req.URL, "https://") && !strings.HasPrefix(req.URL, "http://") {
		return nil, MsgInvalidURLScheme
	}

	return req, ""
}
