package wizard

// FormData is the ticket payload accumulated across wizard steps.
type FormData struct {
	Category       string   `json:"category"`
	ErrorTypeID    string   `json:"error_type_id"`
	SubOption      string   `json:"sub_option"`
	StepsCompleted []string `json:"steps_completed"`
	// Resolved is the explicit answer to the troubleshooting outcome
	// question. nil means the question has not been answered yet.
	Resolved          *bool  `json:"resolved"`
	CustomerNumber    string `json:"customer_number"`
	ShippingMethod    string `json:"shipping_method"`
	UseDefaultAddress *bool  `json:"use_default_address"`
	ReturnAddress     string `json:"return_address"`
	ContactPerson     string `json:"contact_person"`
}

// FormUpdate is a partial overlay onto FormData. Only non-nil fields are
// applied, so a step can submit just its own fields without disturbing
// answers recorded by earlier steps.
type FormUpdate struct {
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

// Merge overlays the update onto the form. Fields absent from the update
// keep their prior value.
func (f *FormData) Merge(update FormUpdate) {
	if update.Category != nil {
		f.Category = *update.Category
	}
	if update.ErrorTypeID != nil {
		f.ErrorTypeID = *update.ErrorTypeID
	}
	if update.SubOption != nil {
		f.SubOption = *update.SubOption
	}
	if update.StepsCompleted != nil {
		f.StepsCompleted = append([]string(nil), (*update.StepsCompleted)...)
	}
	if update.Resolved != nil {
		resolved := *update.Resolved
		f.Resolved = &resolved
	}
	if update.CustomerNumber != nil {
		f.CustomerNumber = *update.CustomerNumber
	}
	if update.ShippingMethod != nil {
		f.ShippingMethod = *update.ShippingMethod
	}
	if update.UseDefaultAddress != nil {
		useDefault := *update.UseDefaultAddress
		f.UseDefaultAddress = &useDefault
	}
	if update.ReturnAddress != nil {
		f.ReturnAddress = *update.ReturnAddress
	}
	if update.ContactPerson != nil {
		f.ContactPerson = *update.ContactPerson
	}
}

// clearCategoryDependents drops every field whose meaning is scoped to the
// previously selected category. Customer and shipping answers survive.
func (f *FormData) clearCategoryDependents() {
	f.SubOption = ""
	f.StepsCompleted = nil
	f.Resolved = nil
}
