package response

type SuccessResponse struct {
	Success bool `json:"success"`
}

func OK() SuccessResponse {
	return SuccessResponse{Success: true}
}
