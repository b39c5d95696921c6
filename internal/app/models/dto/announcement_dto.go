package dto

// CreateAnnouncementRequest represents a new announcement for a class
type CreateAnnouncementRequest struct {
	ClassID int64  `json:"classId" binding:"required,min=1"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Type    string `json:"announcementType" binding:"omitempty,oneof=general exam assignment event"`
}

// UpdateAnnouncementRequest represents a partial announcement update
type UpdateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Type    string `json:"announcementType" binding:"omitempty,oneof=general exam assignment event"`
}
