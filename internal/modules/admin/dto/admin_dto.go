package dto

type CreateProjectRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	Description string   `json:"description" binding:"max=5000"`
	Website     *string  `json:"website" binding:"omitempty,url"`
	Twitter     *string  `json:"twitter" binding:"omitempty,url"`
	Discord     *string  `json:"discord" binding:"omitempty,url"`
	Tags        []string `json:"tags" binding:"max=10,dive,min=1,max=30"`
}

type UpdateProjectRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string   `json:"description" binding:"omitempty,max=5000"`
	Website     *string   `json:"website" binding:"omitempty,url"`
	Twitter     *string   `json:"twitter" binding:"omitempty,url"`
	Discord     *string   `json:"discord" binding:"omitempty,url"`
	Tags        *[]string `json:"tags" binding:"omitempty,max=10,dive,min=1,max=30"`
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
