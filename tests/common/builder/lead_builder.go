//go:build unit || e2e

package builder

import (
	reqdto "jaac-backend/internal/handler/dto/request"
)

type ContactBuilder struct {
	FullName string
	Email    string
	Phone    string
	Company  string
	Message  string
}

func NewContactBuilder() *ContactBuilder {
	return &ContactBuilder{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+1 (514) 555-0100",
		Company:  "Acme",
		Message:  "Bonjour,\nJ'aimerais en savoir plus.",
	}
}

func (b *ContactBuilder) With(mutate func(*ContactBuilder)) *ContactBuilder {
	mutate(b)
	return b
}

func (b *ContactBuilder) BuildDTO() reqdto.ContactRequest {
	return reqdto.ContactRequest{
		FullName: b.FullName,
		Email:    b.Email,
		Phone:    b.Phone,
		Company:  b.Company,
		Message:  b.Message,
	}
}

type JoinUsBuilder struct {
	Name    string
	Email   string
	Phone   string
	Role    string
	Message string
}

func NewJoinUsBuilder() *JoinUsBuilder {
	return &JoinUsBuilder{
		Name:    "John Smith",
		Email:   "john@example.com",
		Phone:   "514-555-0199",
		Role:    "Consultant",
		Message: "Je souhaite rejoindre l'équipe.",
	}
}

func (b *JoinUsBuilder) With(mutate func(*JoinUsBuilder)) *JoinUsBuilder {
	mutate(b)
	return b
}

func (b *JoinUsBuilder) BuildDTO() reqdto.JoinUsRequest {
	return reqdto.JoinUsRequest{
		Name:    b.Name,
		Email:   b.Email,
		Phone:   b.Phone,
		Role:    b.Role,
		Message: b.Message,
	}
}

// BuildForm returns the multipart fields of the join-us form.
func (b *JoinUsBuilder) BuildForm() map[string]string {
	return map[string]string{
		"name":    b.Name,
		"email":   b.Email,
		"phone":   b.Phone,
		"role":    b.Role,
		"message": b.Message,
	}
}
