package dto

// CreateMaterialRequest represents new study material metadata for a class
type CreateMaterialRequest struct {
	ClassID      int64  `json:"classId" binding:"required,min=1"`
	Subject      string `json:"subject"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	MaterialType string `json:"materialType" binding:"omitempty,oneof=pdf doc ppt video link other"`
	FileURL      string `json:"fileUrl" binding:"omitempty,url"`
	FileName     string `json:"fileName"`
	FileSize     int64  `json:"fileSize" binding:"omitempty,min=0"`
	YoutubeLink  string `json:"youtubeLink" binding:"omitempty,url"`
}

// UpdateMaterialRequest represents a partial study material update
type UpdateMaterialRequest struct {
	Subject      string `json:"subject"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	MaterialType string `json:"materialType" binding:"omitempty,oneof=pdf doc ppt video link other"`
	FileURL      string `json:"fileUrl" binding:"omitempty,url"`
	FileName     string `json:"fileName"`
	FileSize     int64  `json:"fileSize" binding:"omitempty,min=0"`
	YoutubeLink  string `json:"youtubeLink" binding:"omitempty,url"`
	IsActive     *bool  `json:"isActive"`
}
