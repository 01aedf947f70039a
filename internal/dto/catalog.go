package dto

// CreateTransactionTypeRequest is the payload for POST /transaction-types
type CreateTransactionTypeRequest struct {
	Title string `json:"title" validate:"required,max=128"`
}

// UpdateTransactionTypeRequest is the payload for PUT /transaction-types/:id
type UpdateTransactionTypeRequest struct {
	Title string `json:"title" validate:"required,max=128"`
}

// CreateCashbackRequest is the payload for POST /cashbacks
type CreateCashbackRequest struct {
	Title              string `json:"title" validate:"required,max=128"`
	Percent            int    `json:"percent" validate:"percent"`
	TransactionTypeIDs []uint `json:"transaction_types"`
}

// UpdateCashbackRequest carries optional fields for PUT /cashbacks/:id.
// A nil TransactionTypeIDs slice leaves the rule's type set alone; an empty
// one clears it.
type UpdateCashbackRequest struct {
	Title              *string `json:"title" validate:"omitempty,max=128"`
	Percent            *int    `json:"percent" validate:"omitempty,percent"`
	TransactionTypeIDs []uint  `json:"transaction_types"`
}

// CreateCardTypeRequest is the payload for POST /card-types
type CreateCardTypeRequest struct {
	Title        string `json:"title" validate:"required,max=128"`
	PushPrice    *int64 `json:"push_price" validate:"omitempty,min=0"`
	ServicePrice *int64 `json:"service_price" validate:"omitempty,min=0"`
	CashbackIDs  []uint `json:"cashbacks"`
}

// UpdateCardTypeRequest carries optional fields for PUT /card-types/:id
type UpdateCardTypeRequest struct {
	Title        *string `json:"title" validate:"omitempty,max=128"`
	PushPrice    *int64  `json:"push_price" validate:"omitempty,min=0"`
	ServicePrice *int64  `json:"service_price" validate:"omitempty,min=0"`
	CashbackIDs  []uint  `json:"cashbacks"`
}

// CreateCardDesignRequest is the payload for POST /card-designs
type CreateCardDesignRequest struct {
	Title       string `json:"title" validate:"required,max=128"`
	Author      string `json:"author" validate:"omitempty,max=128"`
	Description string `json:"description" validate:"omitempty,max=512"`
	Example     string `json:"example" validate:"omitempty,max=256"`
}

// UpdateCardDesignRequest carries optional fields for PUT /card-designs/:id
type UpdateCardDesignRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=128"`
	Author      *string `json:"author" validate:"omitempty,max=128"`
	Description *string `json:"description" validate:"omitempty,max=512"`
	Example     *string `json:"example" validate:"omitempty,max=256"`
}
