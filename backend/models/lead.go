package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const DefaultFunnel = "master-class"

// FunnelSteps is the master-class sales funnel in the order a lead walks it.
var FunnelSteps = []string{"optin", "masterclass", "upsell-1", "upsell-2", "checkout"}

var (
	ErrUnknownStep   = errors.New("unknown funnel step")
	ErrStepBackwards = errors.New("funnel step cannot move backwards")
)

// Lead is one opt-in. Token is the public handle a funnel page uses to move
// the lead forward; the numeric id stays internal.
type Lead struct {
	Base
	Token     string `gorm:"uniqueIndex;not null" json:"token" validate:"required,uuid4"`
	FirstName string `gorm:"not null" json:"first_name" validate:"required,max=100"`
	Email     string `gorm:"index;not null" json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	Locale    string `json:"locale" validate:"required,oneof=fr en es"`
	Funnel    string `json:"funnel" validate:"required"`
	Step      string `json:"step" validate:"required"`
	UTMSource string `json:"utm_source"`
}

func NewLead(firstName, email, phone, locale, utmSource string) (*Lead, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	l := &Lead{
		Token:     uuid.NewString(),
		FirstName: strings.TrimSpace(firstName),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Phone:     strings.TrimSpace(phone),
		Locale:    locale,
		Funnel:    DefaultFunnel,
		Step:      FunnelSteps[0],
		UTMSource: utmSource,
	}
	if err := Validate(l); err != nil {
		return nil, err
	}
	return l, nil
}

func stepIndex(step string) int {
	for i, s := range FunnelSteps {
		if s == step {
			return i
		}
	}
	return -1
}

// AdvanceTo moves the lead to step. Staying on the current step is allowed.
func (l *Lead) AdvanceTo(step string) error {
	next := stepIndex(step)
	if next < 0 {
		return ErrUnknownStep
	}
	if next < stepIndex(l.Step) {
		return ErrStepBackwards
	}
	l.Step = step
	return nil
}
