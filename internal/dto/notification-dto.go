package dto

type CreateTemplateDTO struct {
	Name    string `json:"name" validate:"required,min=2,max=128"`
	Subject string `json:"subject" validate:"required,min=2,max=255"`
	Body    string `json:"body" validate:"required,min=2"`
}

type UpdateTemplateDTO struct {
	Subject *string `json:"subject,omitempty" validate:"omitempty,min=2,max=255"`
	Body    *string `json:"body,omitempty" validate:"omitempty,min=2"`
}

// DispatchDTO fans the rendered template out to every recipient.
type DispatchDTO struct {
	TemplateID   uint64            `json:"template_id" validate:"required,gt=0"`
	RecipientIDs []uint64          `json:"recipient_ids" validate:"required,min=1,dive,gt=0"`
	Variables    map[string]string `json:"variables,omitempty"`
}
