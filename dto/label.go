package dto

import "github.com/mailflow/mailflow/internal/models"

type CreateLabelRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type UpdateLabelRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func LabelFromModel(l models.Label) Label {
	return Label{
		ID:    l.ID,
		Name:  l.Name,
		Color: l.Color,
	}
}
