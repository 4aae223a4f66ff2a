package rooms

import "time"

// Room links a professional (the owner) to the patients who joined with its
// invite code.
type Room struct {
	ID         string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID    string `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name       string `gorm:"type:varchar(120);not null" json:"name"`
	InviteCode string `gorm:"type:varchar(80);not null;uniqueIndex:idx_rooms_invite_code" json:"invite_code"`

	Members []RoomMember `gorm:"foreignKey:RoomID;references:ID;constraint:OnDelete:CASCADE;" json:"members,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RoomMember struct {
	RoomID   string    `gorm:"type:uuid;primaryKey" json:"room_id"`
	UserID   string    `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
