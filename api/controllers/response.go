package controllers

// APIResponse 统一API响应结构
type APIResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data,omitempty"`
}

// SuccessResponse 成功响应
func SuccessResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: 0, Msg: msg, Data: data}
}

// BadRequestResponse 参数错误响应
func BadRequestResponse(msg string, err error) *APIResponse {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return &APIResponse{Status: 400, Msg: msg}
}

// UnauthorizedResponse 鉴权失败响应
func UnauthorizedResponse(msg string) *APIResponse {
	return &APIResponse{Status: 401, Msg: msg}
}

// InternalErrorResponse 服务内部错误响应
func InternalErrorResponse(msg string, err error) *APIResponse {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return &APIResponse{Status: 500, Msg: msg}
}
