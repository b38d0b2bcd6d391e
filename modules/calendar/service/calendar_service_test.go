package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"caseload-api/core/errors"
	"caseload-api/modules/calendar/dto"
	"caseload-api/modules/calendar/entity"
)

// fakeEventRepo is an in-memory EventRepositoryInterface for service tests.
type fakeEventRepo struct {
	events map[uuid.UUID]*entity.CalendarEvent
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[uuid.UUID]*entity.CalendarEvent{}}
}

func (r *fakeEventRepo) Create(_ context.Context, event *entity.CalendarEvent) error {
	event.ID = uuid.New()
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.CalendarEvent, error) {
	ev, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	cp := *ev
	return &cp, nil
}

func (r *fakeEventRepo) ListByUserBetween(_ context.Context, userID uuid.UUID, from, to time.Time) ([]entity.CalendarEvent, error) {
	var out []entity.CalendarEvent
	for _, ev := range r.events {
		if ev.UserID == userID && !ev.StartAt.Before(from) && ev.StartAt.Before(to) {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListByStudent(_ context.Context, studentID uuid.UUID) ([]entity.CalendarEvent, error) {
	var out []entity.CalendarEvent
	for _, ev := range r.events {
		if ev.StudentID != nil && *ev.StudentID == studentID {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *entity.CalendarEvent) error {
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.events, id)
	return nil
}

func createReq(title, start, end, setting string, driveMin int) *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title:            title,
		EventType:        string(entity.EventTypeDirectService),
		StartAt:          start,
		EndAt:            end,
		Setting:          setting,
		DriveTimeMinutes: driveMin,
	}
}

func TestCreateEventBlocksOnDriveConflict(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewCalendarService(repo, nil, nil)
	userID := uuid.New()
	ctx := context.Background()

	if _, appErr := svc.CreateEvent(ctx, userID,
		createReq("first", "2026-03-10T09:00:00Z", "2026-03-10T09:50:00Z", "in_person", 0)); appErr != nil {
		t.Fatalf("first event should save: %v", appErr)
	}

	// 10-minute gap against 15 declared drive minutes.
	_, appErr := svc.CreateEvent(ctx, userID,
		createReq("second", "2026-03-10T10:00:00Z", "2026-03-10T11:00:00Z", "in_person", 15))
	if appErr == nil {
		t.Fatal("expected a drive conflict error")
	}
	if appErr.Code != errors.ErrDriveConflict {
		t.Errorf("want code %q, got %q", errors.ErrDriveConflict, appErr.Code)
	}
}

func TestCreateEventBypassNeedsReason(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewCalendarService(repo, nil, nil)
	userID := uuid.New()
	ctx := context.Background()

	if _, appErr := svc.CreateEvent(ctx, userID,
		createReq("first", "2026-03-10T09:00:00Z", "2026-03-10T09:50:00Z", "in_person", 0)); appErr != nil {
		t.Fatalf("first event should save: %v", appErr)
	}

	req := createReq("second", "2026-03-10T10:00:00Z", "2026-03-10T11:00:00Z", "in_person", 15)
	req.BypassDriveWarning = true
	if _, appErr := svc.CreateEvent(ctx, userID, req); appErr == nil {
		t.Error("bypass without a reason should be rejected")
	}

	req.BypassReason = "Schools share a parking lot"
	resp, appErr := svc.CreateEvent(ctx, userID, req)
	if appErr != nil {
		t.Fatalf("bypass with a reason should save: %v", appErr)
	}
	if !resp.BypassDriveWarning || resp.BypassReason == "" {
		t.Errorf("override should be recorded on the event: %+v", resp)
	}
}

func TestCreateEventNormalizesDriveFields(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewCalendarService(repo, nil, nil)
	ctx := context.Background()

	// Telepractice with declared minutes: travel fields are cleared.
	resp, appErr := svc.CreateEvent(ctx, uuid.New(),
		createReq("tele", "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z", "telepractice", 20))
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if resp.DriveTimeIncluded || resp.DriveTimeMinutes != 0 {
		t.Errorf("telepractice should not carry drive time: %+v", resp)
	}
}

func TestCreateEventRejectsInvertedTimes(t *testing.T) {
	svc := NewCalendarService(newFakeEventRepo(), nil, nil)
	_, appErr := svc.CreateEvent(context.Background(), uuid.New(),
		createReq("bad", "2026-03-10T11:00:00Z", "2026-03-10T10:00:00Z", "in_person", 0))
	if appErr == nil {
		t.Fatal("start after end should be rejected")
	}
	if appErr.Code != errors.ErrInvalidInput {
		t.Errorf("want code %q, got %q", errors.ErrInvalidInput, appErr.Code)
	}
}

func TestUpdateEventDoesNotConflictWithItself(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewCalendarService(repo, nil, nil)
	userID := uuid.New()
	ctx := context.Background()

	created, appErr := svc.CreateEvent(ctx, userID,
		createReq("solo", "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z", "in_person", 15))
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}
	eventID, _ := uuid.Parse(created.ID)

	// Shift the same event ten minutes later; its old copy must not count as
	// a prior event.
	upd := &dto.UpdateEventRequest{CreateEventRequest: *createReq(
		"solo", "2026-03-10T10:10:00Z", "2026-03-10T11:00:00Z", "in_person", 15)}
	if _, appErr := svc.UpdateEvent(ctx, userID, eventID, upd); appErr != nil {
		t.Fatalf("edit should not conflict with the event's own old slot: %v", appErr)
	}
}

func TestEventOwnershipEnforced(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewCalendarService(repo, nil, nil)
	ctx := context.Background()

	created, appErr := svc.CreateEvent(ctx, uuid.New(),
		createReq("mine", "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z", "in_person", 0))
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}
	eventID, _ := uuid.Parse(created.ID)

	if _, appErr := svc.GetEvent(ctx, uuid.New(), eventID); appErr == nil {
		t.Error("another user should not read the event")
	} else if appErr.Code != errors.ErrForbidden {
		t.Errorf("want code %q, got %q", errors.ErrForbidden, appErr.Code)
	}
}

func TestCheckConflictEndpointShape(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewCalendarService(repo, nil, nil)
	userID := uuid.New()
	ctx := context.Background()

	if _, appErr := svc.CreateEvent(ctx, userID,
		createReq("prior", "2026-03-10T09:00:00Z", "2026-03-10T09:50:00Z", "in_person", 0)); appErr != nil {
		t.Fatalf("create: %v", appErr)
	}

	resp, appErr := svc.CheckConflict(ctx, userID, &dto.ConflictCheckRequest{
		StartAt:          "2026-03-10T10:00:00Z",
		EndAt:            "2026-03-10T11:00:00Z",
		Setting:          "in_person",
		DriveTimeMinutes: 15,
	})
	if appErr != nil {
		t.Fatalf("check: %v", appErr)
	}
	if !resp.Conflict {
		t.Fatal("expected a conflict")
	}
	if resp.GapMinutes != 10 || resp.DriveMinutes != 15 {
		t.Errorf("gap/drive: want 10/15, got %d/%d", resp.GapMinutes, resp.DriveMinutes)
	}
	if resp.PriorEvent == nil || resp.PriorEvent.Title != "prior" {
		t.Errorf("conflict should name the prior event: %+v", resp.PriorEvent)
	}

	// The same slot with enough margin reports no conflict.
	clear, appErr := svc.CheckConflict(ctx, userID, &dto.ConflictCheckRequest{
		StartAt:          "2026-03-10T10:30:00Z",
		EndAt:            "2026-03-10T11:30:00Z",
		Setting:          "in_person",
		DriveTimeMinutes: 15,
	})
	if appErr != nil {
		t.Fatalf("check: %v", appErr)
	}
	if clear.Conflict {
		t.Error("40-minute gap against 15 drive minutes should not conflict")
	}
}

func TestListByStudentScopedToOwner(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewCalendarService(repo, nil, nil)
	owner, studentID := uuid.New(), uuid.New()
	ctx := context.Background()

	mine := createReq("push-in session", "2026-03-10T09:00:00Z", "2026-03-10T09:50:00Z", "in_person", 0)
	mine.StudentID = studentID.String()
	if _, appErr := svc.CreateEvent(ctx, owner, mine); appErr != nil {
		t.Fatalf("create: %v", appErr)
	}

	// Same student UUID under a different user's caseload.
	theirs := createReq("other caseload", "2026-03-12T09:00:00Z", "2026-03-12T09:50:00Z", "in_person", 0)
	theirs.StudentID = studentID.String()
	if _, appErr := svc.CreateEvent(ctx, uuid.New(), theirs); appErr != nil {
		t.Fatalf("create: %v", appErr)
	}

	events, appErr := svc.ListByStudent(ctx, owner, studentID)
	if appErr != nil {
		t.Fatalf("list: %v", appErr)
	}
	if len(events) != 1 || events[0].Title != "push-in session" {
		t.Errorf("want only the owner's event, got %+v", events)
	}

	if empty, _ := svc.ListByStudent(ctx, uuid.New(), studentID); len(empty) != 0 {
		t.Errorf("a stranger should see no events, got %+v", empty)
	}
}
