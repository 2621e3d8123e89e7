package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

const IdempotencyKeyHeader = "Idempotency-Key"

var notBlank = regexp.MustCompile(`\S`)

type CreateOrderRequest struct {
	ItemID         uint   `json:"item_id"`
	OptionID       *uint  `json:"option_id,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

func (req *CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ItemID, validation.Required),
		validation.Field(&req.OptionID, validation.NilOrNotEmpty),
		validation.Field(&req.IdempotencyKey,
			validation.Length(1, 128),
			validation.Match(notBlank).Error("must not be blank"),
		),
	)
}
