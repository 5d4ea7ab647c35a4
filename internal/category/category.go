package category

import (
	"time"

	categoryDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/category"
)

type Category struct {
	ID        int64
	UserID    int64
	Name      string
	Color     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:    c.ID,
		Name:  c.Name,
		Color: c.Color,
	}
}

func (c *Category) Rename(name string) {
	c.Name = name
	c.UpdatedAt = time.Now()
}

func (c *Category) Recolor(color *string) {
	c.Color = color
	c.UpdatedAt = time.Now()
}

func NewCategory(userID int64, name string, color *string) *Category {
	now := time.Now()
	return &Category{
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToResponses(categories []*Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, c.ToResponse())
	}
	return responses
}
