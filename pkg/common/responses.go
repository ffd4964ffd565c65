package common

import "net/http"

type SuccessResponse struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}, message string) SuccessResponse {
	return SuccessResponse{
		Status:  http.StatusOK,
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewAcceptedResponse is used for webhook deliveries that are
// acknowledged but intentionally ignored (unknown or duplicate
// correlation keys). The 202 tells the partner to stop retrying.
func NewAcceptedResponse(message string) SuccessResponse {
	return SuccessResponse{
		Status:  http.StatusAccepted,
		Success: true,
		Message: message,
	}
}

func NewCreatedResponse(data interface{}, message string) SuccessResponse {
	return SuccessResponse{
		Status:  http.StatusCreated,
		Success: true,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(message string, data interface{}, status int) ErrorResponse {
	return ErrorResponse{
		Status:  status,
		Success: false,
		Message: message,
		Data:    data,
	}
}
