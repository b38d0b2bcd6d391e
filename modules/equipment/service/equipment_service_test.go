package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"caseload-api/core/errors"
	"caseload-api/modules/equipment/dto"
	"caseload-api/modules/equipment/entity"
)

type fakeEquipmentRepo struct {
	items       map[uuid.UUID]*entity.Equipment
	assignments []entity.EquipmentAssignment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: map[uuid.UUID]*entity.Equipment{}}
}

func (r *fakeEquipmentRepo) Create(_ context.Context, item *entity.Equipment) error {
	item.ID = uuid.New()
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeEquipmentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Equipment, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeEquipmentRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.Equipment, error) {
	var out []entity.Equipment
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeEquipmentRepo) ListByStudent(_ context.Context, studentID uuid.UUID) ([]entity.Equipment, error) {
	var out []entity.Equipment
	for _, it := range r.items {
		if it.StudentID != nil && *it.StudentID == studentID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeEquipmentRepo) Update(_ context.Context, item *entity.Equipment) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeEquipmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeEquipmentRepo) CreateAssignment(_ context.Context, a *entity.EquipmentAssignment) error {
	a.ID = uuid.New()
	r.assignments = append(r.assignments, *a)
	return nil
}

func (r *fakeEquipmentRepo) CloseOpenAssignment(_ context.Context, equipmentID uuid.UUID, returnedAt time.Time) error {
	for i := range r.assignments {
		a := &r.assignments[i]
		if a.EquipmentID == equipmentID && a.ReturnedAt == nil {
			t := returnedAt
			a.ReturnedAt = &t
		}
	}
	return nil
}

func (r *fakeEquipmentRepo) ListAssignments(_ context.Context, equipmentID uuid.UUID) ([]entity.EquipmentAssignment, error) {
	var out []entity.EquipmentAssignment
	for _, a := range r.assignments {
		if a.EquipmentID == equipmentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeEquipmentRepo) AddAttachment(_ context.Context, _ *entity.EquipmentAttachment) error {
	return nil
}

func (r *fakeEquipmentRepo) GetAttachmentByID(_ context.Context, _ uuid.UUID) (*entity.EquipmentAttachment, error) {
	return nil, nil
}

func (r *fakeEquipmentRepo) ListAttachments(_ context.Context, _ uuid.UUID) ([]entity.EquipmentAttachment, error) {
	return nil, nil
}

func (r *fakeEquipmentRepo) DeleteAttachment(_ context.Context, _ uuid.UUID) error {
	return nil
}

type recordingNotifier struct {
	titles []string
}

func (n *recordingNotifier) CreateForUser(_ context.Context, _ uuid.UUID, title, _, _ string) error {
	n.titles = append(n.titles, title)
	return nil
}

func newDevice(t *testing.T, svc EquipmentServiceInterface, userID uuid.UUID) *entity.Equipment {
	t.Helper()
	item, appErr := svc.Create(context.Background(), userID, &dto.CreateEquipmentRequest{
		DeviceType: "fm_system",
		Make:       "Phonak",
		Model:      "Roger Touchscreen",
	})
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}
	return item
}

func TestEquipmentAssignReturnCycle(t *testing.T) {
	repo := newFakeEquipmentRepo()
	notifier := &recordingNotifier{}
	svc := NewEquipmentService(repo, nil, notifier)
	userID, studentID := uuid.New(), uuid.New()

	item := newDevice(t, svc, userID)
	if item.Status != entity.EquipmentStatusReturned {
		t.Fatalf("new devices start unassigned, got %q", item.Status)
	}

	item, appErr := svc.Assign(context.Background(), userID, item.ID, &dto.AssignEquipmentRequest{
		StudentID: studentID.String(),
	})
	if appErr != nil {
		t.Fatalf("assign: %v", appErr)
	}
	if item.Status != entity.EquipmentStatusAssigned {
		t.Errorf("want status assigned, got %q", item.Status)
	}
	if item.StudentID == nil || *item.StudentID != studentID {
		t.Errorf("assignee not recorded: %v", item.StudentID)
	}

	item, appErr = svc.Return(context.Background(), userID, item.ID, &dto.ReturnEquipmentRequest{})
	if appErr != nil {
		t.Fatalf("return: %v", appErr)
	}
	if item.Status != entity.EquipmentStatusReturned || item.StudentID != nil {
		t.Errorf("return did not clear assignment: status=%q student=%v", item.Status, item.StudentID)
	}

	assignments, _ := repo.ListAssignments(context.Background(), item.ID)
	if len(assignments) != 1 || assignments[0].ReturnedAt == nil {
		t.Errorf("loan history not closed: %+v", assignments)
	}
	if len(notifier.titles) != 2 {
		t.Errorf("want assign and return notifications, got %v", notifier.titles)
	}
}

func TestEquipmentReassignClosesPreviousLoan(t *testing.T) {
	repo := newFakeEquipmentRepo()
	svc := NewEquipmentService(repo, nil, nil)
	userID := uuid.New()

	item := newDevice(t, svc, userID)
	first, second := uuid.New(), uuid.New()

	if _, appErr := svc.Assign(context.Background(), userID, item.ID, &dto.AssignEquipmentRequest{StudentID: first.String()}); appErr != nil {
		t.Fatalf("first assign: %v", appErr)
	}
	item, appErr := svc.Assign(context.Background(), userID, item.ID, &dto.AssignEquipmentRequest{StudentID: second.String()})
	if appErr != nil {
		t.Fatalf("second assign: %v", appErr)
	}
	if item.StudentID == nil || *item.StudentID != second {
		t.Errorf("want current assignee %s, got %v", second, item.StudentID)
	}

	assignments, _ := repo.ListAssignments(context.Background(), item.ID)
	if len(assignments) != 2 {
		t.Fatalf("want two loan records, got %d", len(assignments))
	}
	var open int
	for _, a := range assignments {
		if a.ReturnedAt == nil {
			open++
		}
	}
	if open != 1 {
		t.Errorf("want exactly one open loan, got %d", open)
	}
}

func TestEquipmentAssignRejectsRetired(t *testing.T) {
	repo := newFakeEquipmentRepo()
	svc := NewEquipmentService(repo, nil, nil)
	userID := uuid.New()

	item := newDevice(t, svc, userID)
	item.Status = entity.EquipmentStatusRetired
	repo.Update(context.Background(), item)

	_, appErr := svc.Assign(context.Background(), userID, item.ID, &dto.AssignEquipmentRequest{StudentID: uuid.NewString()})
	if appErr == nil {
		t.Fatal("retired equipment must not be assignable")
	}
	if appErr.Code != errors.ErrInvalidInput {
		t.Errorf("want code %q, got %q", errors.ErrInvalidInput, appErr.Code)
	}
}

func TestEquipmentReturnRequiresAssigned(t *testing.T) {
	svc := NewEquipmentService(newFakeEquipmentRepo(), nil, nil)
	userID := uuid.New()

	item := newDevice(t, svc, userID)
	if _, appErr := svc.Return(context.Background(), userID, item.ID, &dto.ReturnEquipmentRequest{}); appErr == nil {
		t.Error("returning an unassigned device should fail")
	}
}

func TestEquipmentOwnership(t *testing.T) {
	svc := NewEquipmentService(newFakeEquipmentRepo(), nil, nil)
	owner := uuid.New()

	item := newDevice(t, svc, owner)
	_, appErr := svc.Assign(context.Background(), uuid.New(), item.ID, &dto.AssignEquipmentRequest{StudentID: uuid.NewString()})
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Errorf("another user's device must not be assignable, got %v", appErr)
	}
}
