package main

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyDescription = errors.New("description is required")
	ErrNoOwner          = errors.New("not logged in")
	ErrSubmitInFlight   = errors.New("a submission is already in flight")
)

// Draft is the in-progress postcard composition. It lives only in the
// composer's memory: nothing is persisted until the create call succeeds,
// and abandoning the composer discards it.
type Draft struct {
	Owner               string    `json:"owner"`
	Recipients          []string  `json:"recipients"`
	Title               TextField `json:"title"`
	Description         TextField `json:"description"`
	Frame               FrameSpec `json:"frame"`
	Stickers            []any     `json:"stickers"`
	InteractiveElements []any     `json:"interactiveElements"`
	Background          string    `json:"background,omitempty"`
	Audio               string    `json:"audio,omitempty"`

	// SubmissionID is generated once per draft and sent as an
	// Idempotency-Key header so the backend can deduplicate a create that
	// is retried after a client-perceived failure. Never serialized into
	// the body.
	SubmissionID string `json:"-"`
}

func NewDraft(owner string) *Draft {
	return &Draft{
		Owner:               owner,
		Recipients:          []string{},
		Title:               TextField{},
		Description:         TextField{},
		Frame:               defaultFrame(),
		Stickers:            []any{},
		InteractiveElements: []any{},
		SubmissionID:        uuid.NewString(),
	}
}

func (d *Draft) SetTitleValue(v string) {
	d.Title.Value = v
}

func (d *Draft) SetTitlePosition(p Point) {
	d.Title.Position = p
}

func (d *Draft) SetDescriptionValue(v string) {
	d.Description.Value = v
}

func (d *Draft) SetDescriptionPosition(p Point) {
	d.Description.Position = p
}

func (d *Draft) SetFrame(f FrameSpec) {
	d.Frame = f
}

func (d *Draft) SetBackground(path string) {
	d.Background = path
}

func (d *Draft) SetAudio(path string) {
	d.Audio = path
}

func (d *Draft) SetRecipients(ids []string) {
	d.Recipients = append([]string{}, ids...)
}

// SetPosition routes a position update to the field named by kind. Exactly
// one field changes; the other keeps its value and position.
func (d *Draft) SetPosition(kind FieldKind, p Point) {
	switch kind {
	case FieldTitle:
		d.SetTitlePosition(p)
	case FieldDescription:
		d.SetDescriptionPosition(p)
	}
}

func (d *Draft) Field(kind FieldKind) TextField {
	if kind == FieldDescription {
		return d.Description
	}
	return d.Title
}

// Validate enforces the required-field gate that makes an empty submission
// unreachable.
func (d *Draft) Validate() error {
	if d.Owner == "" {
		return ErrNoOwner
	}
	if d.Title.Value == "" {
		return ErrEmptyTitle
	}
	if d.Description.Value == "" {
		return ErrEmptyDescription
	}
	return nil
}
