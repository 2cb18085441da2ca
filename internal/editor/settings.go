package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/persistence"
	"github.com/markusressel/heat2go/internal/sanitize"
	"github.com/markusressel/heat2go/internal/settings"
	"github.com/markusressel/heat2go/internal/ui"
)

// SettingsSession edits the configuration of a single device. Edits are kept
// as a draft until they are pushed to the device.
type SettingsSession struct {
	Form   *settings.Form
	Fields settings.MemorySink

	persistence persistence.Persistence
	deviceUrl   string
	diagnostics []settings.Diagnostic
	fetchedAt   time.Time
	fromDraft   bool
}

func OpenSettingsSession(
	ctx context.Context,
	transport device.SettingsTransport,
	p persistence.Persistence,
	deviceUrl string,
	pull bool,
) (*SettingsSession, error) {
	s := &SettingsSession{
		persistence: p,
		deviceUrl:   deviceUrl,
	}

	if !pull {
		draft, err := p.LoadSettingsDraft(deviceUrl)
		if err == nil {
			ui.Debug("Resuming settings draft from %s", draft.FetchedAt.Format(time.RFC3339))
			s.Fields = draft.Fields
			if s.Fields == nil {
				s.Fields = settings.NewMemorySink()
			}
			s.Form = settings.NewForm(transport, s.Fields)
			s.diagnostics = draft.Diagnostics
			s.fetchedAt = draft.FetchedAt
			s.fromDraft = true
			return s, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	s.Fields = settings.NewMemorySink()
	s.Form = settings.NewForm(transport, s.Fields)
	if err := s.Form.Fetch(ctx); err != nil {
		return nil, err
	}
	s.diagnostics = s.Form.Diagnostics()
	s.fetchedAt = time.Now()
	return s, nil
}

func (s *SettingsSession) FromDraft() bool {
	return s.fromDraft
}

func (s *SettingsSession) FetchedAt() time.Time {
	return s.fetchedAt
}

// Diagnostics lists the fields that were replaced by their default on load.
func (s *SettingsSession) Diagnostics() []settings.Diagnostic {
	return s.diagnostics
}

// Set changes a single field. Numeric fields must lie within their bounds.
func (s *SettingsSession) Set(field settings.Field, value string) error {
	if bounds, ok := settings.Bounds[field]; ok {
		number, valid := sanitize.Parse(value)
		if !valid {
			return fmt.Errorf("%s must be a number, got: %s", field, value)
		}
		if number < bounds.Min || number > bounds.Max {
			return fmt.Errorf("%s must be in range %v..%v, got: %v", field, bounds.Min, bounds.Max, number)
		}
		value = sanitize.Sanitize(string(field), number, bounds).Text
	}
	s.Fields.Set(field, value)
	return nil
}

func (s *SettingsSession) Save() error {
	return s.persistence.SaveSettingsDraft(s.deviceUrl, persistence.SettingsDraft{
		Fields:      s.Fields,
		Diagnostics: s.diagnostics,
		FetchedAt:   s.fetchedAt,
	})
}

// Push asks for confirmation and submits the settings. The draft is dropped
// once the device accepted them.
func (s *SettingsSession) Push(ctx context.Context, confirmer ui.Confirmer) error {
	if err := s.Form.Submit(ctx, confirmer); err != nil {
		if saveErr := s.Save(); saveErr != nil {
			ui.Warning("Unable to store settings draft: %v", saveErr)
		}
		return err
	}
	return s.Discard()
}

func (s *SettingsSession) Discard() error {
	return s.persistence.DeleteSettingsDraft(s.deviceUrl)
}
