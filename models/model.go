package models

import "time"

// Model replaces gorm.Model so the same structs can live in a document
// collection or a SQL table. IDs are strings in both.
type Model struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (m *Model) GetID() string {
	return m.ID
}

func (m *Model) SetID(id string) {
	m.ID = id
}

// Touch sets CreatedAt on first save and UpdatedAt on every save.
func (m *Model) Touch(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}
