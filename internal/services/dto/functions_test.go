package dto

import (
	"strings"
	"testing"

	"collabex_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipientID = "3f2b8c1e-9d4a-4b6e-8f1a-2c3d4e5f6a7b"

func TestParseSendNotificationRequest(t *testing.T) {
	valid := `{"recipientUserId":"` + recipientID + `","type":"collab_request","title":"Hi","message":"Let's talk","senderName":"Ana","data":{"collaborationId":"c1"}}`

	req, msg := ParseSendNotificationRequest([]byte(valid))
	require.Empty(t, msg)
	assert.Equal(t, recipientID, req.RecipientUserID)
	assert.Equal(t, models.NotificationCollabRequest, req.Type)
	assert.Equal(t, "Ana", req.SenderName)
	assert.JSONEq(t, `{"collaborationId":"c1"}`, string(req.Data))
}

func TestParseSendNotificationRequestErrors(t *testing.T) {
	base := map[string]string{
		"recipientUserId": `"` + recipientID + `"`,
		"type":            `"collab_accepted"`,
		"title":           `"Title"`,
		"message":         `"Body"`,
		"senderName":      `"Ana"`,
	}
	build := func(overrides map[string]string) string {
		parts := []string{}
		for _, key := range []string{"recipientUserId", "type", "title", "message", "senderName", "data"} {
			value, ok := base[key]
			if o, has := overrides[key]; has {
				value, ok = o, o != ""
			}
			if ok {
				parts = append(parts, `"`+key+`":`+value)
			}
		}
		return "{" + strings.Join(parts, ",") + "}"
	}

	tests := []struct {
		name string
		body string
		want string
	}{
		{"not json", "nope", MsgInvalidBody},
		{"array body", "[]", MsgInvalidBody},
		{"empty body", "", MsgInvalidBody},
		{"bad uuid", build(map[string]string{"recipientUserId": `"not-a-uuid"`}), MsgInvalidRecipient},
		{"missing recipient", build(map[string]string{"recipientUserId": ""}), MsgInvalidRecipient},
		{"numeric recipient", build(map[string]string{"recipientUserId": `42`}), MsgInvalidRecipient},
		{"unknown type", build(map[string]string{"type": `"collab_spam"`}), MsgInvalidType},
		{"empty title", build(map[string]string{"title": `""`}), MsgInvalidTitle},
		{"long title", build(map[string]string{"title": `"` + strings.Repeat("a", 201) + `"`}), MsgInvalidTitle},
		{"missing message", build(map[string]string{"message": ""}), MsgInvalidMessage},
		{"long message", build(map[string]string{"message": `"` + strings.Repeat("m", 1001) + `"`}), MsgInvalidMessage},
		{"long sender", build(map[string]string{"senderName": `"` + strings.Repeat("s", 101) + `"`}), MsgInvalidSenderName},
		{"array data", build(map[string]string{"data": `[1,2]`}), MsgInvalidData},
		{"string data", build(map[string]string{"data": `"x"`}), MsgInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, msg := ParseSendNotificationRequest([]byte(tt.body))
			assert.Nil(t, req)
			assert.Equal(t, tt.want, msg)
		})
	}
}

func TestTitleLengthCountsUTF16Units(t *testing.T) {
	// Each emoji is two UTF-16 code units.
	req := &SendNotificationRequest{
		RecipientUserID: recipientID,
		Type:            models.NotificationCollabInterest,
		Title:           strings.Repeat("😀", 100),
		Message:         "m",
		SenderName:      "s",
	}
	assert.Empty(t, ValidateSendNotification(req))

	req.Title += "a"
	assert.Equal(t, MsgInvalidTitle, ValidateSendNotification(req))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID(recipientID))
	assert.True(t, IsUUID(strings.ToUpper(recipientID)))
	assert.False(t, IsUUID(strings.ReplaceAll(recipientID, "-", "")))
	assert.False(t, IsUUID(recipientID+"0"))
}

func TestParseVerifyPlatformRequest(t *testing.T) {
	req, msg := ParseVerifyPlatformRequest([]byte(`{"platformId":"` + recipientID + `","platformName":"instagram","url":"https://instagram.com/ana","handle":7}`))
	require.Empty(t, msg)
	assert.Equal(t, "instagram", req.PlatformName)
	assert.Equal(t, "https://instagram.com/ana", req.URL)
	assert.Empty(t, req.Handle)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", "{", MsgInvalidBody},
		{"bad platform id", `{"platformId":"abc","platformName":"x"}`, MsgInvalidPlatformID},
		{"missing name", `{"platformId":"` + recipientID + `"}`, MsgInvalidPlatformName},
		{"long name", `{"platformId":"` + recipientID + `","platformName":"` + strings.Repeat("p", 51) + `"}`, MsgInvalidPlatformName},
		{"long handle", `{"platformId":"` + recipientID + `","platformName":"x","handle":"` + strings.Repeat("h", 101) + `"}`, MsgInvalidHandle},
		{"long url", `{"platformId":"` + recipientID + `","platformName":"x","url":"https://` + strings.Repeat("u", 500) + `"}`, MsgInvalidURLLength},
		{"ftp url", `{"platformId":"` + recipientID + `","platformName":"x","url":"ftp://host/ana"}`, MsgInvalidURLScheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, msg := ParseVerifyPlatformRequest([]byte(tt.body))
			assert.Nil(t, req)
			assert.Equal(t, tt.want, msg)
		})
	}
}
