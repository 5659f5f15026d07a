package models

// Todo represents a single todo item owned by a user
type Todo struct {
	BaseModel
	Title      string `gorm:"size:255;not null" json:"title"`
	IsComplete bool   `gorm:"default:false" json:"isComplete"`
	UserID     string `gorm:"size:36;index;not null" json:"userId"`

	// Define the relationship to User
	User User `gorm:"foreignKey:UserID" json:"-"`
}
