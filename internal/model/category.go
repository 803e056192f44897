package model

// Category is a named label with a display color. Renaming or removing a
// category never touches existing tasks.
type Category struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"not null;uniqueIndex"`
	Color string
}

func (Category) TableName() string { return "categories" }
