package domain

// Task Model
type Task struct {
	ID          uint   `gorm:"primaryKey" json:"id"`           // Primary key
	Title       string `gorm:"not null" json:"title"`          // Required task title
	Description string `json:"description"`                    // Optional free-form description
	Completed   bool   `gorm:"default:false" json:"completed"` // Completion flag, defaults to false
	OwnerID     uint   `gorm:"not null;index" json:"owner_id"` // Foreign key to User, set once at creation
}
