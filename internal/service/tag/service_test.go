package tag

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/tag"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTags struct {
	rows map[string]tag.Tag
}

func (f *fakeTags) Create(ctx context.Context, t tag.Tag) (tag.Tag, error) {
	for _, existing := range f.rows {
		if existing.Name == t.Name {
			return tag.Tag{}, tag.ErrTagNameExists
		}
	}
	t.ID = fmt.Sprintf("tag-%d", len(f.rows)+1)
	f.rows[t.ID] = t
	return t, nil
}

func (f *fakeTags) GetByID(ctx context.Context, id string) (tag.Tag, error) {
	t, ok := f.rows[id]
	if !ok {
		return tag.Tag{}, tag.ErrTagNotFound
	}
	return t, nil
}

func (f *fakeTags) List(ctx context.Context, filter tag.TagFilter) ([]tag.Tag, int64, error) {
	var out []tag.Tag
	for _, t := range f.rows {
		if filter.IsActive != nil && t.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTags) Update(ctx context.Context, t tag.Tag) error {
	f.rows[t.ID] = t
	return nil
}

type fakeAssignments struct {
	rows map[string][]tag.Assignment
}

func (f *fakeAssignments) Assign(ctx context.Context, employeeID, tagID string) (tag.Assignment, error) {
	for _, a := range f.rows[employeeID] {
		if a.TagID == tagID {
			return tag.Assignment{}, tag.ErrAlreadyAssigned
		}
	}
	a := tag.Assignment{EmployeeID: employeeID, TagID: tagID, AssignedAt: time.Now()}
	f.rows[employeeID] = append(f.rows[employeeID], a)
	return a, nil
}

func (f *fakeAssignments) Unassign(ctx context.Context, employeeID, tagID string) error {
	for i, a := range f.rows[employeeID] {
		if a.TagID == tagID {
			f.rows[employeeID] = append(f.rows[employeeID][:i], f.rows[employeeID][i+1:]...)
			return nil
		}
	}
	return tag.ErrAssignmentNotFound
}

func (f *fakeAssignments) ListByEmployee(ctx context.Context, employeeID string) ([]tag.Assignment, error) {
	return f.rows[employeeID], nil
}

type fakeEmployees map[string]employee.Employee

func (f fakeEmployees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func newTagFixture() (*TagServiceImpl, *fakeTags, *fakeAssignments) {
	tags := &fakeTags{rows: make(map[string]tag.Tag)}
	assignments := &fakeAssignments{rows: make(map[string][]tag.Assignment)}
	employees := fakeEmployees{
		"emp-1": {ID: "emp-1", EmployeeCode: "EMP-001", IsActive: true},
		"emp-2": {ID: "emp-2", EmployeeCode: "EMP-002", IsActive: true},
	}
	return NewTagService(tags, assignments, employees), tags, assignments
}

func claims(t *testing.T, employeeID string, isAdmin bool) context.Context {
	t.Helper()
	ctx, err := jwt.NewJWTService("test-secret", time.Hour).NewContext(t.Context(), employeeID, isAdmin)
	require.NoError(t, err)
	return ctx
}

func ptr[T any](v T) *T { return &v }

func TestCreateTag(t *testing.T) {
	svc, _, _ := newTagFixture()

	resp, err := svc.CreateTag(t.Context(), tag.CreateTagRequest{Name: " Code Review ", TimeMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, "Code Review", resp.Name)
	assert.Equal(t, 30, resp.TimeMinutes)
	assert.True(t, resp.IsActive)

	_, err = svc.CreateTag(t.Context(), tag.CreateTagRequest{Name: "Code Review", TimeMinutes: 15})
	assert.ErrorIs(t, err, tag.ErrTagNameExists)

	_, err = svc.CreateTag(t.Context(), tag.CreateTagRequest{Name: "Bad", TimeMinutes: 0})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "time_minutes", verrs[0].Field)
}

func TestUpdateAndDeleteTag(t *testing.T) {
	svc, tags, _ := newTagFixture()
	created, err := svc.CreateTag(t.Context(), tag.CreateTagRequest{Name: "Support", TimeMinutes: 20})
	require.NoError(t, err)

	updated, err := svc.UpdateTag(t.Context(), tag.UpdateTagRequest{ID: created.ID, TimeMinutes: ptr(25)})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.TimeMinutes)
	assert.Equal(t, "Support", updated.Name)

	require.NoError(t, svc.DeleteTag(t.Context(), created.ID))
	assert.False(t, tags.rows[created.ID].IsActive)
	// deleting twice is a no-op
	require.NoError(t, svc.DeleteTag(t.Context(), created.ID))

	assert.ErrorIs(t, svc.DeleteTag(t.Context(), "missing"), tag.ErrTagNotFound)
}

func TestAssignTag(t *testing.T) {
	svc, _, _ := newTagFixture()
	active, err := svc.CreateTag(t.Context(), tag.CreateTagRequest{Name: "Support", TimeMinutes: 20})
	require.NoError(t, err)
	retired, err := svc.CreateTag(t.Context(), tag.CreateTagRequest{Name: "Legacy", TimeMinutes: 10})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTag(t.Context(), retired.ID))

	resp, err := svc.AssignTag(t.Context(), tag.AssignTagRequest{EmployeeID: "emp-1", TagID: active.ID})
	require.NoError(t, err)
	assert.Equal(t, "Support", resp.TagName)
	assert.Equal(t, 20, resp.TimeMinutes)

	_, err = svc.AssignTag(t.Context(), tag.AssignTagRequest{EmployeeID: "emp-1", TagID: active.ID})
	assert.ErrorIs(t, err, tag.ErrAlreadyAssigned)

	_, err = svc.AssignTag(t.Context(), tag.AssignTagRequest{EmployeeID: "emp-1", TagID: retired.ID})
	assert.ErrorIs(t, err, tag.ErrTagInactive)

	_, err = svc.AssignTag(t.Context(), tag.AssignTagRequest{EmployeeID: "ghost", TagID: active.ID})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUnassignTag(t *testing.T) {
	svc, _, assignments := newTagFixture()
	created, err := svc.CreateTag(t.Context(), tag.CreateTagRequest{Name: "Support", TimeMinutes: 20})
	require.NoError(t, err)
	_, err = svc.AssignTag(t.Context(), tag.AssignTagRequest{EmployeeID: "emp-1", TagID: created.ID})
	require.NoError(t, err)

	req := tag.AssignTagRequest{EmployeeID: "emp-1", TagID: created.ID}
	require.NoError(t, svc.UnassignTag(t.Context(), req))
	assert.Empty(t, assignments.rows["emp-1"])
	assert.ErrorIs(t, svc.UnassignTag(t.Context(), req), tag.ErrAssignmentNotFound)
}

func TestListAssignedTags_ScopesNonAdmins(t *testing.T) {
	svc, _, _ := newTagFixture()
	created, err := svc.CreateTag(t.Context(), tag.CreateTagRequest{Name: "Support", TimeMinutes: 20})
	require.NoError(t, err)
	_, err = svc.AssignTag(t.Context(), tag.AssignTagRequest{EmployeeID: "emp-1", TagID: created.ID})
	require.NoError(t, err)

	// emp-2 asking for emp-1's tags gets their own (empty) list
	got, err := svc.ListAssignedTags(claims(t, "emp-2", false), "emp-1")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.ListAssignedTags(claims(t, "admin-1", true), "emp-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].TagID)

	_, err = svc.ListAssignedTags(t.Context(), "emp-1")
	assert.ErrorIs(t, err, jwt.ErrMissingClaims)
}
