package handler

// The API speaks a uniform envelope: successes carry {"success": true} plus a
// payload, failures are rendered centrally as {"success": false, "message"}.

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type listResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}
