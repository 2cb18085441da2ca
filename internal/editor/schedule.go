package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/persistence"
	"github.com/markusressel/heat2go/internal/schedule"
	"github.com/markusressel/heat2go/internal/ui"
)

// ScheduleSession edits the schedule of a single device. Edits are kept as a
// draft until they are pushed to the device.
type ScheduleSession struct {
	Store *schedule.Store
	View  *schedule.MemoryRowView

	persistence persistence.Persistence
	deviceUrl   string
	fetchedAt   time.Time
	fromDraft   bool
}

// OpenScheduleSession resumes the stored draft of the device, or fetches the
// schedule from the device if there is none or pull is set.
func OpenScheduleSession(
	ctx context.Context,
	transport device.ScheduleTransport,
	p persistence.Persistence,
	deviceUrl string,
	pull bool,
) (*ScheduleSession, error) {
	view := schedule.NewMemoryRowView()
	s := &ScheduleSession{
		Store:       schedule.NewStore(transport, view),
		View:        view,
		persistence: p,
		deviceUrl:   deviceUrl,
	}

	if !pull {
		draft, err := p.LoadScheduleDraft(deviceUrl)
		if err == nil {
			ui.Debug("Resuming schedule draft from %s", draft.FetchedAt.Format(time.RFC3339))
			s.Store.Load(draft.Schedule.Raw().Days)
			if _, err := s.Store.SelectDay(draft.SelectedDay); err != nil {
				ui.Warning("Ignoring invalid selected day of draft: %v", err)
			}
			s.fetchedAt = draft.FetchedAt
			s.fromDraft = true
			return s, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := s.Store.Fetch(ctx); err != nil {
		return nil, err
	}
	s.fetchedAt = time.Now()
	return s, nil
}

// FromDraft reports whether the session resumed unsubmitted edits.
func (s *ScheduleSession) FromDraft() bool {
	return s.fromDraft
}

func (s *ScheduleSession) FetchedAt() time.Time {
	return s.fetchedAt
}

func (s *ScheduleSession) Select(day int) error {
	_, err := s.Store.SelectDay(day)
	return err
}

// SetRow replaces the row at index (0 based) of the selected day.
func (s *ScheduleSession) SetRow(index int, row schedule.Row) error {
	if err := s.View.Edit(index, row); err != nil {
		return err
	}
	s.Store.FlushSelectedDay()
	return nil
}

func (s *ScheduleSession) AddRow(row schedule.Row) error {
	if err := s.View.Append(row); err != nil {
		return err
	}
	s.Store.FlushSelectedDay()
	return nil
}

// RemoveRow deletes the row at index, removing the last row clears the day.
func (s *ScheduleSession) RemoveRow(index int) error {
	if err := s.View.Remove(index); err != nil {
		return err
	}
	if len(s.View.Rows()) <= 0 {
		return s.Store.ClearSelectedDay()
	}
	s.Store.FlushSelectedDay()
	return nil
}

// Replace loads a whole schedule document, e.g. from an exported file.
func (s *ScheduleSession) Replace(doc device.RawSchedule) error {
	if doc.Days == nil {
		return fmt.Errorf("schedule is missing days")
	}
	selected := s.Store.SelectedDay()
	s.Store.Load(doc.Days)
	_, err := s.Store.SelectDay(selected)
	return err
}

// Save stores the current state as draft.
func (s *ScheduleSession) Save() error {
	s.Store.FlushSelectedDay()
	doc, err := s.Store.Document()
	if err != nil {
		return err
	}
	return s.persistence.SaveScheduleDraft(s.deviceUrl, persistence.ScheduleDraft{
		SelectedDay: s.Store.SelectedDay(),
		Schedule:    doc,
		FetchedAt:   s.fetchedAt,
	})
}

// Push submits the schedule and drops the draft. On failure the draft is kept.
func (s *ScheduleSession) Push(ctx context.Context) error {
	if err := s.Store.Submit(ctx); err != nil {
		if saveErr := s.Save(); saveErr != nil {
			ui.Warning("Unable to store schedule draft: %v", saveErr)
		}
		return err
	}
	return s.Discard()
}

func (s *ScheduleSession) Discard() error {
	return s.persistence.DeleteScheduleDraft(s.deviceUrl)
}
