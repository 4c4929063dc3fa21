package dvl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medirep/sfa-backend-go/internal/domain/dvl"
	"github.com/medirep/sfa-backend-go/internal/domain/employee"
)

type fakeDoctorRepo struct {
	dvl.DoctorRepository

	doctors map[string]dvl.Doctor
	deleted []string
}

func (f *fakeDoctorRepo) Create(_ context.Context, doctor dvl.Doctor) (dvl.Doctor, error) {
	doctor.ID = "doc-new"
	f.doctors[doctor.ID] = doctor
	return doctor, nil
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, id string) (dvl.Doctor, error) {
	doctor, ok := f.doctors[id]
	if !ok {
		return dvl.Doctor{}, dvl.ErrDoctorNotFound
	}
	return doctor, nil
}

func (f *fakeDoctorRepo) Update(_ context.Context, doctor dvl.Doctor) error {
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.doctors, id)
	return nil
}

func newTestService(repo *fakeDoctorRepo) *DVLServiceImpl {
	return &DVLServiceImpl{DoctorRepository: repo}
}

func rep() employee.Employee {
	return employee.Employee{ID: "emp-1", Role: employee.RoleTBM}
}

func strPtr(s string) *string { return &s }

func pendingDoctor(action string) dvl.Doctor {
	d := dvl.Doctor{ID: "doc-1", EmployeeID: "emp-1", Name: "Dr. Bhosale", Place: "Kothrud", Approved: true}
	if action != "" {
		d.PendingAction = &action
	}
	return d
}

func TestAddEntersRosterUnapproved(t *testing.T) {
	t.Parallel()

	repo := &fakeDoctorRepo{doctors: map[string]dvl.Doctor{}}
	svc := newTestService(repo)

	doctor, err := svc.Add(context.Background(), rep(), dvl.AddDoctorRequest{Name: "Dr. Bhosale", Place: "Kothrud"})
	require.NoError(t, err)

	assert.False(t, doctor.Approved)
	require.NotNil(t, doctor.PendingAction)
	assert.Equal(t, dvl.ActionAdd, *doctor.PendingAction)
	assert.Equal(t, "emp-1", doctor.EmployeeID)
}

func TestRequestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("stages the change without touching live fields", func(t *testing.T) {
		t.Parallel()

		repo := &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": pendingDoctor("")}}
		svc := newTestService(repo)

		doctor, err := svc.RequestUpdate(context.Background(), rep(), "doc-1", dvl.UpdateDoctorRequest{Name: strPtr("Dr. A. Bhosale")})
		require.NoError(t, err)

		assert.Equal(t, "Dr. Bhosale", doctor.Name, "live name stays until approval")
		require.NotNil(t, doctor.PendingName)
		assert.Equal(t, "Dr. A. Bhosale", *doctor.PendingName)
		require.NotNil(t, doctor.PendingAction)
		assert.Equal(t, dvl.ActionUpdate, *doctor.PendingAction)
	})

	t.Run("rejects a second request while one is pending", func(t *testing.T) {
		t.Parallel()

		repo := &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": pendingDoctor(dvl.ActionUpdate)}}
		svc := newTestService(repo)

		_, err := svc.RequestUpdate(context.Background(), rep(), "doc-1", dvl.UpdateDoctorRequest{Name: strPtr("x")})
		assert.ErrorIs(t, err, dvl.ErrActionInProgress)
	})

	t.Run("rejects another rep's roster", func(t *testing.T) {
		t.Parallel()

		other := pendingDoctor("")
		other.EmployeeID = "emp-2"
		repo := &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": other}}
		svc := newTestService(repo)

		_, err := svc.RequestUpdate(context.Background(), rep(), "doc-1", dvl.UpdateDoctorRequest{Name: strPtr("x")})
		assert.ErrorIs(t, err, dvl.ErrNotRosterOwner)
	})
}

func TestApprove(t *testing.T) {
	t.Parallel()

	t.Run("nothing pending", func(t *testing.T) {
		t.Parallel()

		repo := &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": pendingDoctor("")}}
		svc := newTestService(repo)

		_, err := svc.Approve(context.Background(), "doc-1")
		assert.ErrorIs(t, err, dvl.ErrNoPendingAction)
	})

	t.Run("add flips the approved flag", func(t *testing.T) {
		t.Parallel()

		d := pendingDoctor(dvl.ActionAdd)
		d.Approved = false
		repo := &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": d}}
		svc := newTestService(repo)

		doctor, err := svc.Approve(context.Background(), "doc-1")
		require.NoError(t, err)

		assert.True(t, doctor.Approved)
		assert.Nil(t, doctor.PendingAction)
	})

	t.Run("update promotes the staged fields", func(t *testing.T) {
		t.Parallel()

		d := pendingDoctor(dvl.ActionUpdate)
		d.PendingName = strPtr("Dr. A. Bhosale")
		d.PendingPlace = strPtr("Baner")
		repo := &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": d}}
		svc := newTestService(repo)

		doctor, err := svc.Approve(context.Background(), "doc-1")
		require.NoError(t, err)

		assert.Equal(t, "Dr. A. Bhosale", doctor.Name)
		assert.Equal(t, "Baner", doctor.Place)
		assert.Nil(t, doctor.PendingAction)
		assert.Nil(t, doctor.PendingName)
		assert.Nil(t, doctor.PendingPlace)
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		t.Parallel()

		repo := &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": pendingDoctor(dvl.ActionDelete)}}
		svc := newTestService(repo)

		_, err := svc.Approve(context.Background(), "doc-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"doc-1"}, repo.deleted)
	})
}

func TestReject(t *testing.T) {
	t.Parallel()

	t.Run("rejected add disappears from the roster", func(t *testing.T) {
		t.Parallel()

		d := pendingDoctor(dvl.ActionAdd)
		d.Approved = false
		repo := &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": d}}
		svc := newTestService(repo)

		require.NoError(t, svc.Reject(context.Background(), "doc-1"))
		assert.Equal(t, []string{"doc-1"}, repo.deleted)
	})

	t.Run("rejected update keeps the live record", func(t *testing.T) {
		t.Parallel()

		d := pendingDoctor(dvl.ActionUpdate)
		d.PendingName = strPtr("Dr. A. Bhosale")
		repo := &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": d}}
		svc := newTestService(repo)

		require.NoError(t, svc.Reject(context.Background(), "doc-1"))

		kept := repo.doctors["doc-1"]
		assert.Equal(t, "Dr. Bhosale", kept.Name)
		assert.Nil(t, kept.PendingAction)
		assert.Nil(t, kept.PendingName)
		assert.Empty(t, repo.deleted)
	})
}
