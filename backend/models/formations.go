package models

import "strings"

const DefaultLocale = "fr"

type Formation struct {
	Base
	Title       string   `gorm:"not null" json:"title" validate:"required,max=200"`
	Slug        string   `gorm:"uniqueIndex" json:"slug" validate:"required,max=220"`
	Description string   `json:"description"`
	Locale      string   `gorm:"default:fr" json:"locale" validate:"required,oneof=fr en es"`
	Published   bool     `json:"published"`
	Modules     []Module `json:"modules,omitempty"`
}

type Module struct {
	Base
	FormationID uint     `gorm:"index;not null" json:"formation_id" validate:"required"`
	Title       string   `gorm:"not null" json:"title" validate:"required,max=200"`
	Description string   `json:"description"`
	OrderIndex  int      `json:"order_index" validate:"gte=0"`
	Lessons     []Lesson `json:"lessons,omitempty"`
	Quizzes     []Quiz   `json:"quizzes,omitempty"`
}

type Lesson struct {
	Base
	ModuleID        uint   `gorm:"index;not null" json:"module_id" validate:"required"`
	Title           string `gorm:"not null" json:"title" validate:"required,max=200"`
	Content         string `json:"content"`
	VideoURL        string `json:"video_url" validate:"omitempty,url"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`
	OrderIndex      int    `json:"order_index" validate:"gte=0"`
}

func NewFormation(title, description, locale string, published bool) (*Formation, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	f := &Formation{
		Title:       strings.TrimSpace(title),
		Slug:        Slugify(title),
		Description: description,
		Locale:      locale,
		Published:   published,
	}
	if err := Validate(f); err != nil {
		return nil, err
	}
	return f, nil
}

func NewModule(formationID uint, title, description string, orderIndex int) (*Module, error) {
	m := &Module{
		FormationID: formationID,
		Title:       strings.TrimSpace(title),
		Description: description,
		OrderIndex:  orderIndex,
	}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

func NewLesson(moduleID uint, title, content, videoURL string, durationMinutes, orderIndex int) (*Lesson, error) {
	l := &Lesson{
		ModuleID:        moduleID,
		Title:           strings.TrimSpace(title),
		Content:         content,
		VideoURL:        videoURL,
		DurationMinutes: durationMinutes,
		OrderIndex:      orderIndex,
	}
	if err := Validate(l); err != nil {
		return nil, err
	}
	return l, nil
}
