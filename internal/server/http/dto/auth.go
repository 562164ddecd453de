package dto

import "github.com/feasthq/mealdesk/internal/domain/model"

// RegisterRequest describes the account creation payload.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest describes the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CompanyResponse is a company membership as exposed to the client.
type CompanyResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Shift   string  `json:"shift"`
	Stipend float64 `json:"shiftBudget"`
	Status  string  `json:"status"`
}

// CustomerResponse is the authenticated customer profile.
type CustomerResponse struct {
	ID        string            `json:"id"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Email     string            `json:"email"`
	Role      string            `json:"role"`
	Companies []CompanyResponse `json:"companies"`
}

// ToCustomerResponse converts a domain customer for the wire.
func ToCustomerResponse(c *model.Customer) CustomerResponse {
	companies := make([]CompanyResponse, 0, len(c.Companies))
	for _, m := range c.Companies {
		companies = append(companies, CompanyResponse{
			ID:      m.ID,
			Name:    m.Name,
			Shift:   string(m.Shift),
			Stipend: m.Stipend,
			Status:  string(m.Status),
		})
	}
	return CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Role:      string(c.Role),
		Companies: companies,
	}
}
