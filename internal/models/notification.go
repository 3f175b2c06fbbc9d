package models

// VideoNotification is the message published to NATS after a successful
// upload. Field names are the wire contract consumed by the video worker;
// do not rename them without coordinating a worker release.
type VideoNotification struct {
	S3Key       string `json:"s3Key"`
	S3URL       string `json:"s3Url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UploadedAt  string `json:"uploadedAt"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
}

// UserInfo carries the identity claims extracted from a verified bearer
// token. Email may be empty when the token carries no email claim.
type UserInfo struct {
	Username string
	Email    string
}
