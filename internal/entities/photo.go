package entities

import "time"

type Photo struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	TankID string `gorm:"index;size:36" json:"tank_id"`
	UserID string `gorm:"index;size:36" json:"user_id"`

	Filename    string `gorm:"size:255" json:"filename"`
	Caption     string `gorm:"size:500" json:"caption,omitempty"`
	ContentType string `gorm:"size:100" json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`

	// FilePath is where the bytes live in local mode; remote mode
	// leaves it empty and serves bytes through the photo endpoint.
	FilePath string `gorm:"size:1024" json:"-"`

	TakenDate *time.Time `gorm:"index" json:"taken_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Photo) TableName() string {
	return "photos"
}
