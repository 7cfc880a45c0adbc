package domain

// OTP delivery channels. The channel is part of the record key, so a phone
// code and an email code for the same contact string never collide.
const (
	ChannelPhone = "phone"
	ChannelEmail = "email"
)

// OTP is a one-time passcode bound to a phone number or email address.
// PK: otp_key (the contact string), SK: channel.
// At most one outstanding code per (key, channel); re-issuing overwrites.
// ExpiresAt doubles as the DynamoDB TTL attribute, but expiry is enforced
// lazily on verify; the TTL sweep is only a janitor.
type OTP struct {
	Key       string `json:"key" dynamodbav:"otp_key"`
	Channel   string `json:"channel" dynamodbav:"channel"`
	Code      string `json:"code" dynamodbav:"code"`
	CreatedAt int64  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
