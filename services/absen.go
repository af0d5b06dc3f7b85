package services

import (
	"context"
	"strings"
	"time"

	"github.com/wahyudsn/absensi/models"
	"github.com/wahyudsn/absensi/repository"
)

// EventKind classifies what an attendance event did to the day's record.
type EventKind int

const (
	// EventCheckIn opened a new record for the day.
	EventCheckIn EventKind = iota
	// EventCheckOut completed the day's open record.
	EventCheckOut
	// EventAlreadyComplete left an already completed record untouched.
	EventAlreadyComplete
)

func (k EventKind) String() string {
	switch k {
	case EventCheckIn:
		return "check-in"
	case EventCheckOut:
		return "check-out"
	case EventAlreadyComplete:
		return "already-complete"
	default:
		return "unknown"
	}
}

// AbsenService resolves attendance events into check-in/check-out transitions
// on the daily ledger. The day boundary is computed in a fixed timezone.
type AbsenService struct {
	kartu repository.KartuRepository
	akun  repository.AkunRepository
	absen repository.AbsenRepository
	loc   *time.Location
}

// NewAbsenService creates the resolver. loc defines the attendance day
// boundary; nil falls back to the process-local timezone.
func NewAbsenService(kartu repository.KartuRepository, akun repository.AkunRepository, absen repository.AbsenRepository, loc *time.Location) *AbsenService {
	if loc == nil {
		loc = time.Local
	}
	return &AbsenService{kartu: kartu, akun: akun, absen: absen, loc: loc}
}

// RecordEvent decides whether the (card number, photo link) pair is today's
// check-in, today's check-out, or a no-op on an already completed day, and
// applies the single create or update that follows. The read and the write run
// in one locking transaction so concurrent scans for the same user cannot open
// two records for one day.
func (s *AbsenService) RecordEvent(ctx context.Context, nomorKartu, fotoLink string, now time.Time) (*models.Absen, EventKind, error) {
	nomorKartu = strings.TrimSpace(nomorKartu)
	fotoLink = strings.TrimSpace(fotoLink)
	if nomorKartu == "" || fotoLink == "" {
		return nil, 0, ErrKartuLinkRequired
	}

	kartu, err := s.kartu.FindByNomor(ctx, nomorKartu)
	if err != nil {
		return nil, 0, err
	}
	if kartu == nil {
		return nil, 0, ErrKartuNotFound
	}

	akun, err := s.akun.FindByKartuID(ctx, kartu.IDKartu)
	if err != nil {
		return nil, 0, err
	}
	if akun == nil {
		return nil, 0, ErrAkunNotFound
	}

	dayStart := s.StartOfDay(now)

	var record *models.Absen
	var kind EventKind
	err = s.absen.Transaction(ctx, func(tx repository.AbsenRepository) error {
		existing, err := tx.FindSince(ctx, akun.IDUser, dayStart)
		if err != nil {
			return err
		}

		switch {
		case existing == nil:
			record = &models.Absen{
				IDUser:    akun.IDUser,
				JamMasuk:  now,
				FotoMasuk: fotoLink,
				CreatedAt: now,
				UpdatedAt: now,
			}
			kind = EventCheckIn
			return tx.Create(ctx, record)

		case existing.JamPulang == nil:
			pulang := now
			existing.JamPulang = &pulang
			existing.FotoPulang = &fotoLink
			existing.UpdatedAt = now
			record = existing
			kind = EventCheckOut
			return tx.Save(ctx, existing)

		default:
			record = existing
			kind = EventAlreadyComplete
			return nil
		}
	})
	if err != nil {
		return nil, 0, err
	}
	return record, kind, nil
}

// FindAll returns every attendance record, newest first.
func (s *AbsenService) FindAll(ctx context.Context) ([]models.Absen, error) {
	return s.absen.FindAll(ctx)
}

// FindByID returns one attendance record or ErrAbsenNotFound.
func (s *AbsenService) FindByID(ctx context.Context, id uint) (*models.Absen, error) {
	absen, err := s.absen.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if absen == nil {
		return nil, ErrAbsenNotFound
	}
	return absen, nil
}

// StartOfDay returns 00:00:00 of now's calendar day in the service timezone.
func (s *AbsenService) StartOfDay(now time.Time) time.Time {
	local := now.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
}
