package dto

type CreateWorkspaceDTO struct {
	Name string `json:"name" validate:"required,min=3,max=255"`
	Slug string `json:"slug" validate:"required,workspace_slug,max=64"`
}

type UpdateWorkspaceDTO struct {
	Name string `json:"name" validate:"required,min=3,max=255"`
}
