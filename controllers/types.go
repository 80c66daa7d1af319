package controllers

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ListUsersQuery struct {
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
	Search  string `form:"search"`
	OrderBy string `form:"orderBy"`
	Order   string `form:"order"`
}
