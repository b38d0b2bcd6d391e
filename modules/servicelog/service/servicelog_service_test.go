package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"caseload-api/core/errors"
	calendarDto "caseload-api/modules/calendar/dto"
	"caseload-api/modules/servicelog/dto"
	"caseload-api/modules/servicelog/entity"
)

type fakeServiceLogRepo struct {
	logs map[uuid.UUID]*entity.ServiceLog
}

func newFakeServiceLogRepo() *fakeServiceLogRepo {
	return &fakeServiceLogRepo{logs: map[uuid.UUID]*entity.ServiceLog{}}
}

func (r *fakeServiceLogRepo) Create(_ context.Context, log *entity.ServiceLog) error {
	log.ID = uuid.New()
	cp := *log
	r.logs[log.ID] = &cp
	return nil
}

func (r *fakeServiceLogRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ServiceLog, error) {
	l, ok := r.logs[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeServiceLogRepo) ListByStudent(_ context.Context, studentID uuid.UUID) ([]entity.ServiceLog, error) {
	var out []entity.ServiceLog
	for _, l := range r.logs {
		if l.StudentID == studentID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeServiceLogRepo) Update(_ context.Context, log *entity.ServiceLog) error {
	cp := *log
	r.logs[log.ID] = &cp
	return nil
}

func (r *fakeServiceLogRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.logs, id)
	return nil
}

func (r *fakeServiceLogRepo) MonthlyTotals(_ context.Context, userID, studentID uuid.UUID) ([]entity.MonthlyTotal, error) {
	byMonth := map[string]*entity.MonthlyTotal{}
	for _, l := range r.logs {
		if l.UserID != userID || l.StudentID != studentID {
			continue
		}
		month := l.ServiceDate.Format("2006-01")
		t, ok := byMonth[month]
		if !ok {
			t = &entity.MonthlyTotal{Month: month}
			byMonth[month] = t
		}
		t.DirectMinutes += l.DirectMinutes
		t.ConsultMinutes += l.ConsultMinutes
		t.Entries++
	}
	out := make([]entity.MonthlyTotal, 0, len(byMonth))
	for _, t := range byMonth {
		out = append(out, *t)
	}
	return out, nil
}

// fakeEventSource owns a fixed set of (event, user) pairs.
type fakeEventSource struct {
	owners map[uuid.UUID]uuid.UUID
}

func (f *fakeEventSource) GetEvent(_ context.Context, userID, eventID uuid.UUID) (*calendarDto.EventResponse, *errors.AppError) {
	owner, ok := f.owners[eventID]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if owner != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Event belongs to another user", nil)
	}
	return &calendarDto.EventResponse{}, nil
}

func validCreateReq(studentID uuid.UUID) *dto.CreateServiceLogRequest {
	return &dto.CreateServiceLogRequest{
		StudentID:     studentID.String(),
		ServiceDate:   "2026-03-10",
		DirectMinutes: 30,
	}
}

func TestServiceLogCreate(t *testing.T) {
	svc := NewServiceLogService(newFakeServiceLogRepo(), nil)
	userID, studentID := uuid.New(), uuid.New()

	log, appErr := svc.Create(context.Background(), userID, validCreateReq(studentID))
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if log.UserID != userID || log.StudentID != studentID {
		t.Errorf("ownership not recorded: %+v", log)
	}
	if log.ServiceDate.Format("2006-01-02") != "2026-03-10" {
		t.Errorf("service date not parsed: %v", log.ServiceDate)
	}
}

func TestServiceLogCreateRejectsZeroMinutes(t *testing.T) {
	svc := NewServiceLogService(newFakeServiceLogRepo(), nil)

	req := validCreateReq(uuid.New())
	req.DirectMinutes = 0
	req.ConsultMinutes = 0

	_, appErr := svc.Create(context.Background(), uuid.New(), req)
	if appErr == nil {
		t.Fatal("zero total minutes should be rejected")
	}
	if appErr.Code != errors.ErrInvalidInput {
		t.Errorf("want code %q, got %q", errors.ErrInvalidInput, appErr.Code)
	}
}

func TestServiceLogCreateConsultOnlyAllowed(t *testing.T) {
	svc := NewServiceLogService(newFakeServiceLogRepo(), nil)

	req := validCreateReq(uuid.New())
	req.DirectMinutes = 0
	req.ConsultMinutes = 20

	if _, appErr := svc.Create(context.Background(), uuid.New(), req); appErr != nil {
		t.Errorf("consult-only entries are valid: %v", appErr)
	}
}

func TestServiceLogCreateRejectsBadDate(t *testing.T) {
	svc := NewServiceLogService(newFakeServiceLogRepo(), nil)

	req := validCreateReq(uuid.New())
	req.ServiceDate = "03/10/2026"

	if _, appErr := svc.Create(context.Background(), uuid.New(), req); appErr == nil {
		t.Error("non-ISO date should be rejected")
	}
}

func TestServiceLogEventLinkOwnership(t *testing.T) {
	userID := uuid.New()
	ownEvent, foreignEvent := uuid.New(), uuid.New()
	events := &fakeEventSource{owners: map[uuid.UUID]uuid.UUID{
		ownEvent:     userID,
		foreignEvent: uuid.New(),
	}}
	svc := NewServiceLogService(newFakeServiceLogRepo(), events)

	req := validCreateReq(uuid.New())
	req.EventID = ownEvent.String()
	log, appErr := svc.Create(context.Background(), userID, req)
	if appErr != nil {
		t.Fatalf("own event link rejected: %v", appErr)
	}
	if log.EventID == nil || *log.EventID != ownEvent {
		t.Errorf("event link not recorded: %v", log.EventID)
	}

	req = validCreateReq(uuid.New())
	req.EventID = foreignEvent.String()
	if _, appErr := svc.Create(context.Background(), userID, req); appErr == nil {
		t.Error("linking another user's event should fail")
	} else if appErr.Code != errors.ErrForbidden {
		t.Errorf("want code %q, got %q", errors.ErrForbidden, appErr.Code)
	}

	req = validCreateReq(uuid.New())
	req.EventID = uuid.NewString()
	if _, appErr := svc.Create(context.Background(), userID, req); appErr == nil {
		t.Error("linking a missing event should fail")
	}
}

func TestServiceLogOwnership(t *testing.T) {
	svc := NewServiceLogService(newFakeServiceLogRepo(), nil)
	owner := uuid.New()

	log, appErr := svc.Create(context.Background(), owner, validCreateReq(uuid.New()))
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}

	if _, appErr := svc.Get(context.Background(), uuid.New(), log.ID); appErr == nil {
		t.Error("another user should not read the log")
	} else if appErr.Code != errors.ErrForbidden {
		t.Errorf("want code %q, got %q", errors.ErrForbidden, appErr.Code)
	}
}

func TestServiceLogMonthlyTotalsScopedToOwner(t *testing.T) {
	repo := newFakeServiceLogRepo()
	svc := NewServiceLogService(repo, nil)
	owner, studentID := uuid.New(), uuid.New()

	if _, appErr := svc.Create(context.Background(), owner, validCreateReq(studentID)); appErr != nil {
		t.Fatalf("create: %v", appErr)
	}

	totals, appErr := svc.MonthlyTotals(context.Background(), owner, studentID)
	if appErr != nil {
		t.Fatalf("owner totals: %v", appErr)
	}
	if len(totals) != 1 || totals[0].DirectMinutes != 30 {
		t.Fatalf("owner should see their minutes, got %+v", totals)
	}

	// A different caller aiming at the same student gets nothing back.
	other, appErr := svc.MonthlyTotals(context.Background(), uuid.New(), studentID)
	if appErr != nil {
		t.Fatalf("other totals: %v", appErr)
	}
	if len(other) != 0 {
		t.Errorf("another user's totals leaked: %+v", other)
	}
}
