package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type AssignManagerRequest struct {
	UserID uint `json:"user_id"`
}

func (req *AssignManagerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, validation.Min(uint(1))),
	)
}

type SetQRCodeActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

func (req *SetQRCodeActiveRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.IsActive, validation.NotNil),
	)
}
