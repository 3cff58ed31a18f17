package dto

// ValidateRequest 表单失焦校验查询参数
type ValidateRequest struct {
	Field string `form:"field"`
	Mode  string `form:"mode"` // create（默认）或 update
}

// ValidateResponse 校验结果；Field 非空时仅包含该字段
type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Fields map[string]string `json:"fields"`
}
