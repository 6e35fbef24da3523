package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTransition = errors.New("invalid booking transition")
	ErrInvalidModality   = errors.New("Invalid modality")
)

type State string

const (
	StateUnverified       State = "unverified"
	StateVerified         State = "verified"
	StateModalitySelected State = "modality_selected"
	StateWidgetReady      State = "widget_ready"
	StateBooked           State = "booked"
	StateError            State = "error"
)

type Modality string

const (
	ModalityInPerson Modality = "in-person"
	ModalityVirtual  Modality = "virtual"
)

// ParseModality accepts the legacy "face"/"google" values still sent by older pages.
func ParseModality(s string) (Modality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModalityInPerson), "face", "inperson":
		return ModalityInPerson, nil
	case string(ModalityVirtual), "google":
		return ModalityVirtual, nil
	default:
		return "", ErrInvalidModality
	}
}

type Customer struct {
	Name  string
	Email string
}

// Session follows one paid checkout from verification to a booked slot.
// Error is terminal.
type Session struct {
	checkoutID string
	state      State
	customer   Customer
	modality   Modality
	failure    string
}

func NewSession(checkoutID string) *Session {
	return &Session{checkoutID: checkoutID, state: StateUnverified}
}

func (s *Session) CheckoutID() string { return s.checkoutID }
func (s *Session) State() State       { return s.state }
func (s *Session) Customer() Customer { return s.customer }
func (s *Session) Modality() Modality { return s.modality }
func (s *Session) Failure() string    { return s.failure }
func (s *Session) IsTerminal() bool   { return s.state == StateBooked || s.state == StateError }

func (s *Session) Verify(c Customer) error {
	if err := s.expect(StateUnverified); err != nil {
		return err
	}
	s.customer = c
	s.state = StateVerified
	return nil
}

// SelectModality may be repeated until the widget is shown.
func (s *Session) SelectModality(m Modality) error {
	if s.state != StateVerified && s.state != StateModalitySelected {
		return s.invalid("select modality")
	}
	s.modality = m
	s.state = StateModalitySelected
	return nil
}

func (s *Session) WidgetReady() error {
	if err := s.expect(StateModalitySelected); err != nil {
		return err
	}
	s.state = StateWidgetReady
	return nil
}

func (s *Session) Booked() error {
	if err := s.expect(StateWidgetReady); err != nil {
		return err
	}
	s.state = StateBooked
	return nil
}

// Fail moves any non-terminal session to Error.
func (s *Session) Fail(reason string) error {
	if s.IsTerminal() {
		return s.invalid("fail")
	}
	s.failure = reason
	s.state = StateError
	return nil
}

func (s *Session) expect(want State) error {
	if s.state != want {
		return s.invalid("expected " + string(want))
	}
	return nil
}

func (s *Session) invalid(op string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, s.state)
}
