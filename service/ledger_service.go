package service

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/martinvega/visa462-tracker/dto"
)

const (
	// fullWeekHours is the threshold above which a payslip counts as one
	// full qualifying week regardless of the exact excess.
	fullWeekHours = 35.0
	fullWeekDays  = 7
	// dailyHours is the standard daily divisor for partial weeks.
	dailyHours = 7.6
)

// Advisory bounds on a confirmed hour total. Out-of-range totals warn but
// never block.
const (
	warnHoursHigh = 100.0
	warnHoursLow  = 1.0
)

// DaysFor converts a confirmed hour total into eligible specified-work days:
// 35 hours or more is a full qualifying week (7 days); below that, each
// started 7.6-hour block counts as one day. Defined for hours >= 0 only;
// callers reject negative input before reaching the ledger.
func DaysFor(hours float64) int {
	if hours <= 0 {
		return 0
	}
	if hours >= fullWeekHours {
		return fullWeekDays
	}
	return int(math.Ceil(hours / dailyHours))
}

// ProfileStore is the injected persistence collaborator. Load returns
// (nil, nil) for a missing profile.
type ProfileStore interface {
	Load(name string) (*dto.Profile, error)
	Save(p *dto.Profile) error
	Delete(name string) error
	List() ([]string, error)
}

type LedgerService struct {
	store ProfileStore
	now   func() time.Time
}

func NewLedgerService(store ProfileStore) *LedgerService {
	return &LedgerService{
		store: store,
		now:   time.Now,
	}
}

// CreateProfile registers a new profile with a zero day total. The target
// must be one of the visa program's thresholds.
func (s *LedgerService) CreateProfile(name string, targetDays int) (*dto.Profile, error) {
	if !validTarget(targetDays) {
		return nil, dto.ErrInvalidTarget
	}

	existing, err := s.store.Load(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, dto.ErrProfileExists
	}

	p := &dto.Profile{
		Name:       name,
		TargetDays: targetDays,
	}
	if err := s.store.Save(p); err != nil {
		return nil, err
	}

	log.Printf("created profile %q with target %d days", name, targetDays)
	return p, nil
}

func (s *LedgerService) GetProfile(name string) (*dto.Profile, error) {
	p, err := s.store.Load(name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, dto.ErrProfileNotFound
	}
	return p, nil
}

func (s *LedgerService) ListProfiles() ([]string, error) {
	return s.store.List()
}

func (s *LedgerService) DeleteProfile(name string) error {
	if _, err := s.GetProfile(name); err != nil {
		return err
	}
	return s.store.Delete(name)
}

// Confirm commits a human-confirmed set of hour values against a profile:
// sums them, converts the total to days, appends one accrual entry and
// increments the running total. Implausible totals produce advisory
// warnings, not rejections.
func (s *LedgerService) Confirm(name string, hours []float64, sourceLabel string) (*dto.AccrualResponse, error) {
	for _, h := range hours {
		if h < 0 {
			return nil, dto.ErrNegativeHours
		}
	}

	p, err := s.GetProfile(name)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, h := range hours {
		total += h
	}

	var warnings []string
	if total > warnHoursHigh {
		warnings = append(warnings, fmt.Sprintf("%.2f hours is unusually high for one payslip", total))
	}
	if total < warnHoursLow {
		warnings = append(warnings, fmt.Sprintf("%.2f hours is unusually low for one payslip", total))
	}

	if sourceLabel == "" {
		sourceLabel = "Manual"
	}

	days := DaysFor(total)
	entry := apply(p, days, total, sourceLabel, s.now())

	if err := s.store.Save(p); err != nil {
		return nil, err
	}

	log.Printf("profile %q: +%d days (%.2fh from %s), total now %d/%d",
		name, days, total, sourceLabel, p.Days, p.TargetDays)

	return &dto.AccrualResponse{
		TotalHours:      total,
		ContributedDays: days,
		Warnings:        warnings,
		Entry:           *entry,
		Profile:         *p,
	}, nil
}

// apply appends one immutable history entry and increments the day total.
// The day/hour relationship is expected to have been computed via DaysFor
// already; only non-negativity is checked here.
func apply(p *dto.Profile, contributedDays int, sourceHours float64, sourceLabel string, ts time.Time) *dto.HistoryEntry {
	entry := dto.HistoryEntry{
		ID:              p.NextEntryID(),
		Timestamp:       ts,
		ContributedDays: contributedDays,
		SourceHours:     sourceHours,
		SourceLabel:     sourceLabel,
		Kind:            dto.EntryKindAccrual,
	}
	p.History = append(p.History, entry)
	p.Days += contributedDays
	return &p.History[len(p.History)-1]
}

// Revert removes a history entry and subtracts its recorded contribution.
// Reverting a reset sentinel subtracts its recorded zero days, so it never
// restores the pre-reset total. Fails with ErrEntryNotFound for an unknown
// entry and ErrNegativeDays if the subtraction would drive the total below
// zero; the latter indicates corrupted state and is never clamped away.
func (s *LedgerService) Revert(name string, entryID int64) (*dto.Profile, error) {
	p, err := s.GetProfile(name)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range p.History {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, dto.ErrEntryNotFound
	}

	entry := p.History[idx]
	if p.Days-entry.ContributedDays < 0 {
		return nil, fmt.Errorf("entry %d contributes %d days but profile has %d: %w",
			entryID, entry.ContributedDays, p.Days, dto.ErrNegativeDays)
	}

	p.History = append(p.History[:idx], p.History[idx+1:]...)
	p.Days -= entry.ContributedDays

	if err := s.store.Save(p); err != nil {
		return nil, err
	}

	log.Printf("profile %q: reverted entry %d (-%d days), total now %d",
		name, entryID, entry.ContributedDays, p.Days)
	return p, nil
}

// Reset zeroes the day total and appends a sentinel entry recording the
// event. The sentinel contributes zero days, so deleting it later is
// deliberately inert.
func (s *LedgerService) Reset(name string) (*dto.Profile, error) {
	p, err := s.GetProfile(name)
	if err != nil {
		return nil, err
	}

	p.Days = 0
	p.History = append(p.History, dto.HistoryEntry{
		ID:              p.NextEntryID(),
		Timestamp:       s.now(),
		ContributedDays: 0,
		SourceHours:     0,
		SourceLabel:     "Reset",
		Kind:            dto.EntryKindReset,
	})

	if err := s.store.Save(p); err != nil {
		return nil, err
	}

	log.Printf("profile %q: reset to 0 days", name)
	return p, nil
}

// Report renders a plain-text progress summary with the full history,
// newest first.
func (s *LedgerService) Report(name string) (string, error) {
	p, err := s.GetProfile(name)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Profile: %s\n", p.Name)
	fmt.Fprintf(&b, "Specified work days: %d/%d\n", p.Days, p.TargetDays)
	fmt.Fprintf(&b, "Remaining: %d\n", p.RemainingDays())
	if p.Days >= p.TargetDays {
		b.WriteString("Target reached!\n")
	}
	b.WriteString("\nHistory:\n")
	if len(p.History) == 0 {
		b.WriteString("  (no entries)\n")
		return b.String(), nil
	}
	for i := len(p.History) - 1; i >= 0; i-- {
		e := p.History[i]
		switch e.Kind {
		case dto.EntryKindReset:
			fmt.Fprintf(&b, "  %s  reset to 0 days\n", e.Timestamp.Format("02/01/2006"))
		default:
			fmt.Fprintf(&b, "  %s  +%d days (%.2fh) %s\n",
				e.Timestamp.Format("02/01/2006"), e.ContributedDays, e.SourceHours, e.SourceLabel)
		}
	}
	return b.String(), nil
}

func validTarget(target int) bool {
	for _, t := range dto.AllowedTargets() {
		if target == t {
			return true
		}
	}
	return false
}
