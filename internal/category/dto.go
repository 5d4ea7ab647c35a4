package category

import (
	"strings"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/core/common/patch"
	"github.com/frahmantamala/expense-api/internal/core/common/validation"
)

const maxNameLength = 100

type CategoryResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type CreateCategoryDTO struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Color *string `json:"color" validate:"omitnil,max=7"`
}

func (d *CreateCategoryDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
}

func (d CreateCategoryDTO) Validate() *internal.AppError {
	if err := validation.Struct(d); err != nil {
		return err
	}
	if d.Color == nil {
		return nil
	}
	v := validation.NewValidator()
	v.Field("color", *d.Color).HexColor()
	return v.Validate()
}

// UpdateCategoryDTO changes only the keys present in the body. A null
// color clears it. Name cannot be null.
type UpdateCategoryDTO struct {
	Name  patch.Field[string] `json:"name"`
	Color patch.Field[string] `json:"color"`
}

func (d *UpdateCategoryDTO) Normalize() {
	if d.Name.Set && !d.Name.Null {
		d.Name.Value = strings.TrimSpace(d.Name.Value)
	}
}

func (d UpdateCategoryDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name.Value).
		Present(d.Name.Set).
		NotNull(d.Name.Null).
		Required().
		MaxLength(maxNameLength)
	v.Field("color", d.Color.Value).
		Present(d.Color.Set && !d.Color.Null).
		HexColor()
	return v.Validate()
}
