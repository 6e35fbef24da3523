package request

import "mime/multipart"

// Field rules live in the domain; binding only caps sizes.
type ContactRequest struct {
	FullName string `json:"fullName" binding:"max=200"`
	Email    string `json:"email" binding:"max=254"`
	Phone    string `json:"phone" binding:"max=40"`
	Company  string `json:"company" binding:"max=200"`
	Message  string `json:"message" binding:"max=5000"`
}

type JoinUsRequest struct {
	Name    string                `form:"name" binding:"max=200"`
	Email   string                `form:"email" binding:"max=254"`
	Phone   string                `form:"phone" binding:"max=40"`
	Role    string                `form:"role" binding:"max=40"`
	Message string                `form:"message" binding:"max=5000"`
	CV      *multipart.FileHeader `form:"cv" swaggerignore:"true"`
}
