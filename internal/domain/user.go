package domain

// User Model
type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`            // Primary key
	Username       string `gorm:"unique;not null" json:"username"` // Unique username, used as login key and token subject
	HashedPassword string `gorm:"not null" json:"-"`               // Bcrypt hash, never serialized
	// One-to-many relationship with Task; deleting a user deletes their tasks
	Tasks []Task `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
