package models

import (
	"encoding/json"
	"time"
)

type SchemeBoard string

const (
	BoardGLWB       SchemeBoard = "GLWB"
	BoardGRWWB      SchemeBoard = "GRWWB"
	BoardLabourDept SchemeBoard = "Labour Dept"
	BoardGBOCWWB    SchemeBoard = "GBOCWWB"
	BoardEShram     SchemeBoard = "eShram"
	BoardGovt       SchemeBoard = "Govt"
)

// Scheme is an externally sourced welfare-program listing. The request
// path only ever reads this table; writes come from the sync job and
// the seeder, keyed by exact title.
type Scheme struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Title       string      `json:"title" gorm:"size:255;not null;uniqueIndex"`
	Description string      `json:"description" gorm:"type:text;not null"`
	Benefits    string      `json:"-" gorm:"type:text"`  // JSON array
	Eligibility string      `json:"eligibility" gorm:"size:500"`
	Type        string      `json:"type" gorm:"size:20;default:'General'"` // Urban, Rural, General
	Link        string      `json:"link" gorm:"size:500"`
	Board       SchemeBoard `json:"board" gorm:"type:varchar(20);default:'GLWB'"`
	TargetGroup string      `json:"target_group" gorm:"size:20;default:'Labour'"` // Labour, Contractor, Both
	Documents   string      `json:"-" gorm:"type:text"` // JSON array
	Status      string      `json:"status" gorm:"size:20;default:'Active'"`
	SourceName  string      `json:"source_name" gorm:"size:255"`
	LastChecked time.Time   `json:"last_checked"`
	CreatedAt   time.Time   `json:"created_at"`
}

// TableName specifies the table name for the Scheme model
func (Scheme) TableName() string {
	return "schemes"
}

// BenefitList decodes the stored benefits array.
func (s *Scheme) BenefitList() []string {
	return decodeStringList(s.Benefits)
}

// SetBenefits encodes the benefits array for storage.
func (s *Scheme) SetBenefits(items []string) {
	s.Benefits = encodeStringList(items)
}

// DocumentList decodes the stored required-documents array.
func (s *Scheme) DocumentList() []string {
	return decodeStringList(s.Documents)
}

// SetDocuments encodes the required-documents array for storage.
func (s *Scheme) SetDocuments(items []string) {
	s.Documents = encodeStringList(items)
}

func encodeStringList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

// SchemeResponse is the API view with decoded arrays
type SchemeResponse struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Benefits    []string    `json:"benefits"`
	Eligibility string      `json:"eligibility"`
	Type        string      `json:"type"`
	Link        string      `json:"link"`
	Board       SchemeBoard `json:"board"`
	TargetGroup string      `json:"target_group"`
	Documents   []string    `json:"documents"`
	Status      string      `json:"status"`
	SourceName  string      `json:"source_name"`
	LastChecked time.Time   `json:"last_checked"`
}

// ToResponse converts a Scheme row to its API view.
func (s *Scheme) ToResponse() SchemeResponse {
	return SchemeResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Benefits:    s.BenefitList(),
		Eligibility: s.Eligibility,
		Type:        s.Type,
		Link:        s.Link,
		Board:       s.Board,
		TargetGroup: s.TargetGroup,
		Documents:   s.DocumentList(),
		Status:      s.Status,
		SourceName:  s.SourceName,
		LastChecked: s.LastChecked,
	}
}
