package dto

// FormUpdateRequest mirrors wizard.FormUpdate: only the fields present in
// the JSON body are applied.
type FormUpdateRequest struct {
	Category          *string   `json:"category"`
	ErrorTypeID       *string   `json:"error_type_id"`
	SubOption         *string   `json:"sub_option"`
	StepsCompleted    *[]string `json:"steps_completed"`
	Resolved          *bool     `json:"resolved"`
	CustomerNumber    *string   `json:"customer_number"`
	ShippingMethod    *string   `json:"shipping_method"`
	UseDefaultAddress *bool     `json:"use_default_address"`
	ReturnAddress     *string   `json:"return_address"`
	ContactPerson     *string   `json:"contact_person"`
}

// SelectCategoryRequest sets the wizard's category step selection.
type SelectCategoryRequest struct {
	ErrorTypeID string `json:"error_type_id"`
}

// ValidateCustomerRequest triggers a directory lookup.
type ValidateCustomerRequest struct {
	CustomerNumber string `json:"customer_number"`
}

// FormDataResponse is the accumulated payload inside a session response.
type FormDataResponse struct {
	Category          string   `json:"category,omitempty"`
	ErrorTypeID       string   `json:"error_type_id,omitempty"`
	SubOption         string   `json:"sub_option,omitempty"`
	StepsCompleted    []string `json:"steps_completed,omitempty"`
	Resolved          *bool    `json:"resolved,omitempty"`
	CustomerNumber    string   `json:"customer_number,omitempty"`
	ShippingMethod    string   `json:"shipping_method,omitempty"`
	UseDefaultAddress *bool    `json:"use_default_address,omitempty"`
	ReturnAddress     string   `json:"return_address,omitempty"`
	ContactPerson     string   `json:"contact_person,omitempty"`
}

// ValidationResponse reports the stored customer-number lookup result.
type ValidationResponse struct {
	CustomerNumber string `json:"customer_number"`
	Valid          bool   `json:"valid"`
}

// SessionResponse is the wizard session snapshot.
type SessionResponse struct {
	ID          string              `json:"id"`
	CurrentStep string              `json:"current_step"`
	Form        FormDataResponse    `json:"form"`
	Validation  *ValidationResponse `json:"validation,omitempty"`
	RMANumber   string              `json:"rma_number,omitempty"`
}

// CustomerValidationResponse is the standalone validation endpoint's body.
type CustomerValidationResponse struct {
	CustomerNumber string `json:"customer_number"`
	Valid          bool   `json:"valid"`
}

// RMANumberResponse carries a freshly generated identifier.
type RMANumberResponse struct {
	RMANumber string `json:"rma_number"`
}
