package dto

// CreateCompanyRequest entrada para crear una empresa. El dígito de verificación se calcula.
type CreateCompanyRequest struct {
	NIT     string `json:"NIT"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// UpdateCompanyRequest entrada para actualizar una empresa. Campos nil o vacíos conservan el valor.
type UpdateCompanyRequest struct {
	NIT     *string `json:"NIT"`
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	NIT               string `json:"NIT"`
	VerificationDigit int    `json:"verification_digit"`
	Name              string `json:"name"`
	Address           string `json:"address"`
}
