package domain

import "time"

// Document types that act as stage gates.
const (
	DocMaterialsList = "materials_list"
	DocPurchaseOrder = "purchase_order"
	DocGeneral       = "general"
)

// Document is artifact metadata. Binary content lives in the configured
// store; only existence matters to the workflow gates.
type Document struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	ProjectID    int64     `json:"project_id" gorm:"index"`
	Filename     string    `json:"filename"`
	FileType     string    `json:"file_type"`
	DocumentType string    `json:"document_type" gorm:"index"`
	Stage        string    `json:"stage"`
	StoragePath  string    `json:"-"`
	UploadedBy   int64     `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Document) TableName() string { return "documents" }
