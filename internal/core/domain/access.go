package domain

type RecipientType string

const (
	RecipientUser RecipientType = "user"
	RecipientOrg  RecipientType = "org"
)

func (t RecipientType) Valid() bool {
	return t == RecipientUser || t == RecipientOrg
}

// UploadAccess grants read access on an upload to a user or to every member
// of an organization. At most one grant exists per (upload, recipient, type).
type UploadAccess struct {
	UploadID      int64         `json:"upload_id"`
	RecipientID   string        `json:"recipient_id"`
	RecipientType RecipientType `json:"recipient_type"`
}

// Recipient is a grant resolved for display: user grants show the recipient's
// email, org grants show the organization id itself.
type Recipient struct {
	RecipientID   string        `json:"recipient_id"`
	RecipientType RecipientType `json:"recipient_type"`
	DisplayName   string        `json:"display_name"`
}
