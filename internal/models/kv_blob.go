package models

import "time"

// KVBlob is one persisted JSON collection keyed by name.
type KVBlob struct {
	Key       string    `json:"key" gorm:"primaryKey;size:191"`
	Value     []byte    `json:"value" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVBlob) TableName() string {
	return "kv_blobs"
}
