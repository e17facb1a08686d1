package service

import (
	"testing"
	"time"

	"github.com/martinvega/visa462-tracker/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	profiles map[string]*dto.Profile
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: make(map[string]*dto.Profile)}
}

func (f *fakeStore) Load(name string) (*dto.Profile, error) {
	p, ok := f.profiles[name]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.History = append([]dto.HistoryEntry(nil), p.History...)
	return &cp, nil
}

func (f *fakeStore) Save(p *dto.Profile) error {
	cp := *p
	cp.History = append([]dto.HistoryEntry(nil), p.History...)
	f.profiles[p.Name] = &cp
	return nil
}

func (f *fakeStore) Delete(name string) error {
	delete(f.profiles, name)
	return nil
}

func (f *fakeStore) List() ([]string, error) {
	var names []string
	for name := range f.profiles {
		names = append(names, name)
	}
	return names, nil
}

func newTestService() (*LedgerService, *fakeStore) {
	fs := newFakeStore()
	svc := NewLedgerService(fs)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	return svc, fs
}

func TestDaysFor(t *testing.T) {
	cases := []struct {
		hours float64
		days  int
	}{
		{0, 0},
		{0.5, 1},
		{7.6, 1},
		{7.7, 2},
		{15.2, 2},
		{20, 3},
		{34.9, 5},
		{35, 7},
		{35.5, 7},
		{38.5, 7},
		{200, 7},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.days, DaysFor(tc.hours), "DaysFor(%v)", tc.hours)
	}
}

func TestCreateProfile(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.CreateProfile("maria", dto.TargetThirdYear)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Days)
	assert.Equal(t, 179, p.TargetDays)
	assert.Empty(t, p.History)
}

func TestCreateProfileInvalidTarget(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateProfile("maria", 100)
	assert.ErrorIs(t, err, dto.ErrInvalidTarget)
}

func TestCreateProfileDuplicate(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateProfile("maria", dto.TargetSecondYear)
	require.NoError(t, err)

	_, err = svc.CreateProfile("maria", dto.TargetSecondYear)
	assert.ErrorIs(t, err, dto.ErrProfileExists)
}

func TestConfirmFullWeekRule(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateProfile("maria", dto.TargetSecondYear)
	require.NoError(t, err)

	// 20 + 15.5 barely clears 35, still a full qualifying week
	result, err := svc.Confirm("maria", []float64{20.0, 15.5}, "payslip-wk3.pdf")
	require.NoError(t, err)

	assert.Equal(t, 35.5, result.TotalHours)
	assert.Equal(t, 7, result.ContributedDays)
	assert.Equal(t, 7, result.Profile.Days)
	assert.Equal(t, "payslip-wk3.pdf", result.Entry.SourceLabel)
	assert.Equal(t, dto.EntryKindAccrual, result.Entry.Kind)
	assert.Empty(t, result.Warnings)
}

func TestConfirmPersists(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateProfile("maria", dto.TargetSecondYear)
	require.NoError(t, err)

	_, err = svc.Confirm("maria", []float64{20.0}, "")
	require.NoError(t, err)

	p, err := svc.GetProfile("maria")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Days)
	require.Len(t, p.History, 1)
	assert.Equal(t, "Manual", p.History[0].SourceLabel)
	assert.Equal(t, 20.0, p.History[0].SourceHours)
}

func TestConfirmAdvisoryWarnings(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateProfile("maria", dto.TargetSecondYear)
	require.NoError(t, err)

	high, err := svc.Confirm("maria", []float64{150}, "")
	require.NoError(t, err)
	assert.Len(t, high.Warnings, 1)
	assert.Equal(t, 7, high.ContributedDays)

	low, err := svc.Confirm("maria", []float64{0.5}, "")
	require.NoError(t, err)
	assert.Len(t, low.Warnings, 1)
	assert.Equal(t, 1, low.ContributedDays)
}

func TestConfirmRejectsNegativeHours(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateProfile("maria", dto.TargetSecondYear)
	require.NoError(t, err)

	_, err = svc.Confirm("maria", []float64{38.5, -1}, "")
	assert.ErrorIs(t, err, dto.ErrNegativeHours)

	p, _ := svc.GetProfile("maria")
	assert.Equal(t, 0, p.Days)
	assert.Empty(t, p.History)
}

func TestConfirmUnknownProfile(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Confirm("ghost", []float64{38.5}, "")
	assert.ErrorIs(t, err, dto.ErrProfileNotFound)
}

func TestRevertRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateProfile("maria", dto.TargetSecondYear)
	require.NoError(t, err)

	before, err := svc.Confirm("maria", []float64{12}, "first.pdf")
	require.NoError(t, err)

	result, err := svc.Confirm("maria", []float64{38.5}, "second.pdf")
	require.NoError(t, err)

	p, err := svc.Revert("maria", result.Entry.ID)
	require.NoError(t, err)

	// exactly the state before the second accrual
	assert.Equal(t, before.Profile.Days, p.Days)
	assert.Equal(t, before.Profile.History, p.History)
}

func TestRevertUnknownEntry(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateProfile("maria", dto.TargetSecondYear)
	require.NoError(t, err)
	_, err = svc.Confirm("maria", []float64{38.5}, "")
	require.NoError(t, err)

	_, err = svc.Revert("maria", 99)
	assert.ErrorIs(t, err, dto.ErrEntryNotFound)

	p, _ := svc.GetProfile("maria")
	assert.Equal(t, 7, p.Days)
	assert.Len(t, p.History, 1)
}

func TestRevertNegativeDaysInvariant(t *testing.T) {
	svc, fs := newTestService()

	// corrupted state: the entry claims more days than the profile holds
	fs.profiles["maria"] = &dto.Profile{
		Name:       "maria",
		TargetDays: dto.TargetSecondYear,
		Days:       2,
		History: []dto.HistoryEntry{
			{ID: 1, ContributedDays: 5, SourceHours: 38, Kind: dto.EntryKindAccrual},
		},
	}

	_, err := svc.Revert("maria", 1)
	assert.ErrorIs(t, err, dto.ErrNegativeDays)

	p, _ := svc.GetProfile("maria")
	assert.Equal(t, 2, p.Days)
	assert.Len(t, p.History, 1)
}

func TestResetSentinel(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateProfile("maria", dto.TargetSecondYear)
	require.NoError(t, err)
	_, err = svc.Confirm("maria", []float64{38.5}, "")
	require.NoError(t, err)

	p, err := svc.Reset("maria")
	require.NoError(t, err)

	assert.Equal(t, 0, p.Days)
	require.Len(t, p.History, 2)
	sentinel := p.History[1]
	assert.Equal(t, dto.EntryKindReset, sentinel.Kind)
	assert.Equal(t, 0, sentinel.ContributedDays)

	// deleting the sentinel is inert: the pre-reset total is not restored
	p, err = svc.Revert("maria", sentinel.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Days)
	assert.Len(t, p.History, 1)
}

func TestDeleteProfile(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateProfile("maria", dto.TargetSecondYear)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProfile("maria"))

	_, err = svc.GetProfile("maria")
	assert.ErrorIs(t, err, dto.ErrProfileNotFound)

	assert.ErrorIs(t, svc.DeleteProfile("maria"), dto.ErrProfileNotFound)
}

func TestReport(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateProfile("maria", dto.TargetThirdYear)
	require.NoError(t, err)
	_, err = svc.Confirm("maria", []float64{38.5}, "week1.pdf")
	require.NoError(t, err)

	report, err := svc.Report("maria")
	require.NoError(t, err)

	assert.Contains(t, report, "Profile: maria")
	assert.Contains(t, report, "7/179")
	assert.Contains(t, report, "Remaining: 172")
	assert.Contains(t, report, "+7 days (38.50h) week1.pdf")
}
