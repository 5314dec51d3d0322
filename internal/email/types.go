package email

// CategoryHeader tags outgoing mail with the notification type so mailbox
// rules and the SMTP relay can sort it.
const CategoryHeader = "X-CollabEx-Category"

// Email is one outgoing message. Body is the plain-text alternative of
// HTMLBody and may be empty.
type Email struct {
	From     string
	To       []string
	ReplyTo  string
	Subject  string
	Body     string
	HTMLBody string
	Category string
}

// TemplateData is passed to templates.
type TemplateData map[string]interface{}
