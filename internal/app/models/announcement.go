package models

import "time"

// Announcement defines the announcement model based on the 'announcements' table
type Announcement struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	ClassID   int64     `json:"classId" db:"class_id" example:"3"`
	TeacherID int64     `json:"teacherId" db:"teacher_id" example:"5"`
	Title     string    `json:"title" db:"title" example:"Unit test on Friday"`
	Content   *string   `json:"content,omitempty" db:"content"`
	Type      string    `json:"announcementType" db:"announcement_type" example:"general"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// StudyMaterial defines the study material model based on the
// 'study_materials' table. Only metadata is stored; file blobs live behind
// FileURL.
type StudyMaterial struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	ClassID      int64     `json:"classId" db:"class_id" example:"3"`
	TeacherID    int64     `json:"teacherId" db:"teacher_id" example:"5"`
	Subject      *string   `json:"subject,omitempty" db:"subject" example:"Java"`
	Title        string    `json:"title" db:"title" example:"Week 4 slides"`
	Description  *string   `json:"description,omitempty" db:"description"`
	MaterialType *string   `json:"materialType,omitempty" db:"material_type" example:"pdf"`
	FileURL      *string   `json:"fileUrl,omitempty" db:"file_url"`
	FileName     *string   `json:"fileName,omitempty" db:"file_name"`
	FileSize     *int64    `json:"fileSize,omitempty" db:"file_size"`
	YoutubeLink  *string   `json:"youtubeLink,omitempty" db:"youtube_link"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	UploadDate   time.Time `json:"uploadDate" db:"upload_date"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
