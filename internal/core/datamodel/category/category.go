package category

import "time"

// Category names are unique per owner through uq_categories_user_name.
type Category struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uq_categories_user_name"`
	Name      string    `gorm:"column:name;size:100;not null;uniqueIndex:uq_categories_user_name"`
	Color     *string   `gorm:"column:color;size:7"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}
