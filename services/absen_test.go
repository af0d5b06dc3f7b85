package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wahyudsn/absensi/models"
	"github.com/wahyudsn/absensi/repository"
)

// WIB is UTC+7, the default attendance timezone.
var testLoc = time.FixedZone("WIB", 7*3600)

// =============================================================================
// Fakes
// =============================================================================

type fakeKartuRepo struct {
	kartus []*models.Kartu
	nextID uint
}

func (f *fakeKartuRepo) FindByNomor(ctx context.Context, nomor string) (*models.Kartu, error) {
	for _, k := range f.kartus {
		if k.NomorKartu == nomor {
			return k, nil
		}
	}
	return nil, nil
}

func (f *fakeKartuRepo) FindByID(ctx context.Context, id uint) (*models.Kartu, error) {
	for _, k := range f.kartus {
		if k.IDKartu == id {
			return k, nil
		}
	}
	return nil, nil
}

func (f *fakeKartuRepo) Create(ctx context.Context, kartu *models.Kartu) error {
	f.nextID++
	kartu.IDKartu = f.nextID
	f.kartus = append(f.kartus, kartu)
	return nil
}

func (f *fakeKartuRepo) Update(ctx context.Context, kartu *models.Kartu) error {
	for i, k := range f.kartus {
		if k.IDKartu == kartu.IDKartu {
			f.kartus[i] = kartu
			return nil
		}
	}
	return errors.New("kartu missing")
}

type fakeAkunRepo struct {
	akuns  []*models.Akun
	nextID uint
}

func (f *fakeAkunRepo) FindByKartuID(ctx context.Context, kartuID uint) (*models.Akun, error) {
	for _, a := range f.akuns {
		if a.IDKartu == kartuID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAkunRepo) FindByUsername(ctx context.Context, username string) (*models.Akun, error) {
	for _, a := range f.akuns {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAkunRepo) FindByID(ctx context.Context, id uint) (*models.Akun, error) {
	for _, a := range f.akuns {
		if a.IDUser == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAkunRepo) FindAll(ctx context.Context) ([]models.Akun, error) {
	out := make([]models.Akun, 0, len(f.akuns))
	for _, a := range f.akuns {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAkunRepo) Create(ctx context.Context, akun *models.Akun) error {
	f.nextID++
	akun.IDUser = f.nextID
	f.akuns = append(f.akuns, akun)
	return nil
}

func (f *fakeAkunRepo) Update(ctx context.Context, akun *models.Akun) error {
	for i, a := range f.akuns {
		if a.IDUser == akun.IDUser {
			f.akuns[i] = akun
			return nil
		}
	}
	return errors.New("akun missing")
}

func (f *fakeAkunRepo) Delete(ctx context.Context, id uint) error {
	for i, a := range f.akuns {
		if a.IDUser == id {
			f.akuns = append(f.akuns[:i], f.akuns[i+1:]...)
			return nil
		}
	}
	return errors.New("akun missing")
}

type fakeLedger struct {
	records []*models.Absen
	nextID  uint
}

func (f *fakeLedger) FindAll(ctx context.Context) ([]models.Absen, error) {
	out := make([]models.Absen, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeLedger) FindByID(ctx context.Context, id uint) (*models.Absen, error) {
	for _, r := range f.records {
		if r.IDAbsen == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) FindSince(ctx context.Context, userID uint, dayStart time.Time) (*models.Absen, error) {
	var newest *models.Absen
	for _, r := range f.records {
		if r.IDUser == userID && !r.JamMasuk.Before(dayStart) {
			if newest == nil || r.JamMasuk.After(newest.JamMasuk) {
				newest = r
			}
		}
	}
	return newest, nil
}

func (f *fakeLedger) Create(ctx context.Context, absen *models.Absen) error {
	f.nextID++
	absen.IDAbsen = f.nextID
	f.records = append(f.records, absen)
	return nil
}

func (f *fakeLedger) Save(ctx context.Context, absen *models.Absen) error {
	for i, r := range f.records {
		if r.IDAbsen == absen.IDAbsen {
			f.records[i] = absen
			return nil
		}
	}
	return errors.New("absen missing")
}

func (f *fakeLedger) Transaction(ctx context.Context, fn func(tx repository.AbsenRepository) error) error {
	return fn(f)
}

// =============================================================================
// Helpers
// =============================================================================

func setupResolver(t *testing.T) (*AbsenService, *fakeLedger) {
	t.Helper()

	kartu := &fakeKartuRepo{}
	akun := &fakeAkunRepo{}
	ledger := &fakeLedger{}

	if err := kartu.Create(context.Background(), &models.Kartu{NomorKartu: "1234"}); err != nil {
		t.Fatalf("seed kartu: %v", err)
	}
	if err := akun.Create(context.Background(), &models.Akun{IDKartu: 1, IDRole: 2, Username: "alice", Nama: "Alice"}); err != nil {
		t.Fatalf("seed akun: %v", err)
	}

	return NewAbsenService(kartu, akun, ledger, testLoc), ledger
}

func wib(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, testLoc)
}

// =============================================================================
// Tests
// =============================================================================

func TestRecordEventRequiresKartuAndLink(t *testing.T) {
	svc, _ := setupResolver(t)
	now := wib(2024, 3, 1, 9, 0, 0)

	cases := []struct {
		name  string
		kartu string
		link  string
	}{
		{"missing kartu", "", "x.jpg"},
		{"missing link", "1234", ""},
		{"whitespace only", "   ", "  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.RecordEvent(context.Background(), tc.kartu, tc.link, now)
			if !errors.Is(err, ErrKartuLinkRequired) {
				t.Fatalf("expected ErrKartuLinkRequired, got %v", err)
			}
		})
	}
}

func TestRecordEventUnknownKartu(t *testing.T) {
	svc, _ := setupResolver(t)

	_, _, err := svc.RecordEvent(context.Background(), "9999", "x.jpg", wib(2024, 3, 1, 9, 0, 0))
	if !errors.Is(err, ErrKartuNotFound) {
		t.Fatalf("expected ErrKartuNotFound, got %v", err)
	}
}

func TestRecordEventKartuWithoutAkun(t *testing.T) {
	kartu := &fakeKartuRepo{}
	_ = kartu.Create(context.Background(), &models.Kartu{NomorKartu: "5678"})
	svc := NewAbsenService(kartu, &fakeAkunRepo{}, &fakeLedger{}, testLoc)

	_, _, err := svc.RecordEvent(context.Background(), "5678", "x.jpg", wib(2024, 3, 1, 9, 0, 0))
	if !errors.Is(err, ErrAkunNotFound) {
		t.Fatalf("expected ErrAkunNotFound, got %v", err)
	}
}

func TestRecordEventDailyCycle(t *testing.T) {
	svc, ledger := setupResolver(t)
	ctx := context.Background()

	masuk := wib(2024, 3, 1, 8, 30, 0)
	rec, kind, err := svc.RecordEvent(ctx, "1234", "in.jpg", masuk)
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if kind != EventCheckIn {
		t.Fatalf("expected EventCheckIn, got %v", kind)
	}
	if rec.FotoMasuk != "in.jpg" || rec.JamPulang != nil || rec.FotoPulang != nil {
		t.Fatalf("unexpected check-in record: %+v", rec)
	}
	if !rec.JamMasuk.Equal(masuk) {
		t.Fatalf("jam_masuk = %v, want %v", rec.JamMasuk, masuk)
	}

	pulang := wib(2024, 3, 1, 17, 15, 0)
	rec, kind, err = svc.RecordEvent(ctx, "1234", "out.jpg", pulang)
	if err != nil {
		t.Fatalf("check-out failed: %v", err)
	}
	if kind != EventCheckOut {
		t.Fatalf("expected EventCheckOut, got %v", kind)
	}
	if rec.JamPulang == nil || !rec.JamPulang.Equal(pulang) {
		t.Fatalf("jam_pulang = %v, want %v", rec.JamPulang, pulang)
	}
	if rec.FotoPulang == nil || *rec.FotoPulang != "out.jpg" {
		t.Fatalf("foto_pulang = %v, want out.jpg", rec.FotoPulang)
	}
	if rec.FotoMasuk != "in.jpg" {
		t.Fatalf("check-out must not touch foto_masuk, got %q", rec.FotoMasuk)
	}

	// third scan of the day must not mutate anything
	third := wib(2024, 3, 1, 18, 0, 0)
	rec, kind, err = svc.RecordEvent(ctx, "1234", "late.jpg", third)
	if err != nil {
		t.Fatalf("third call failed: %v", err)
	}
	if kind != EventAlreadyComplete {
		t.Fatalf("expected EventAlreadyComplete, got %v", kind)
	}
	if *rec.FotoPulang != "out.jpg" || !rec.JamPulang.Equal(pulang) || !rec.UpdatedAt.Equal(pulang) {
		t.Fatalf("already-complete call mutated the record: %+v", rec)
	}
	if len(ledger.records) != 1 {
		t.Fatalf("expected a single record for the day, got %d", len(ledger.records))
	}
}

func TestRecordEventDayBoundary(t *testing.T) {
	svc, ledger := setupResolver(t)
	ctx := context.Background()

	lateNight := wib(2024, 3, 1, 23, 59, 59)
	if _, kind, err := svc.RecordEvent(ctx, "1234", "night.jpg", lateNight); err != nil || kind != EventCheckIn {
		t.Fatalf("late-night check-in: kind=%v err=%v", kind, err)
	}

	// one second past midnight is a new day, so a new check-in, not a check-out
	nextDay := wib(2024, 3, 2, 0, 0, 1)
	rec, kind, err := svc.RecordEvent(ctx, "1234", "morning.jpg", nextDay)
	if err != nil {
		t.Fatalf("next-day check-in failed: %v", err)
	}
	if kind != EventCheckIn {
		t.Fatalf("expected EventCheckIn across the day boundary, got %v", kind)
	}
	if rec.JamPulang != nil {
		t.Fatalf("new day's record must have null jam_pulang, got %v", rec.JamPulang)
	}
	if len(ledger.records) != 2 {
		t.Fatalf("expected two records across the boundary, got %d", len(ledger.records))
	}
}

func TestRecordEventRoundTrip(t *testing.T) {
	svc, _ := setupResolver(t)
	ctx := context.Background()

	created, _, err := svc.RecordEvent(ctx, "1234", "in.jpg", wib(2024, 3, 1, 8, 0, 0))
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	got, err := svc.FindByID(ctx, created.IDAbsen)
	if err != nil {
		t.Fatalf("fetch by id failed: %v", err)
	}
	if got.FotoMasuk != "in.jpg" {
		t.Fatalf("foto_masuk = %q, want in.jpg", got.FotoMasuk)
	}
	if got.JamPulang != nil {
		t.Fatalf("jam_pulang should be null before check-out, got %v", got.JamPulang)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	svc, _ := setupResolver(t)

	if _, err := svc.FindByID(context.Background(), 42); !errors.Is(err, ErrAbsenNotFound) {
		t.Fatalf("expected ErrAbsenNotFound, got %v", err)
	}
}

func TestStartOfDay(t *testing.T) {
	svc, _ := setupResolver(t)

	// 17:30 UTC is already 00:30 the next day in WIB
	utc := time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC)
	got := svc.StartOfDay(utc)
	want := wib(2024, 3, 2, 0, 0, 0)
	if !got.Equal(want) {
		t.Fatalf("StartOfDay(%v) = %v, want %v", utc, got, want)
	}
}
