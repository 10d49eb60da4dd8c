package models

import "time"

type UserProfile struct {
	Address          string    `json:"address"`
	Username         *string   `json:"username"`
	AvatarURL        *string   `json:"avatar_url"`
	CreatedAt        time.Time `json:"created_at"`
	TransactionCount int64     `json:"transaction_count"`
}

const (
	ColUsername         = "username"
	ColAvatarURL        = "avatar_url"
	ColTransactionCount = "transaction_count"
)
