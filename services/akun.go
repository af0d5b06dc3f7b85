package services

import (
	"context"
	"strings"

	"github.com/wahyudsn/absensi/models"
	"github.com/wahyudsn/absensi/repository"
	"github.com/wahyudsn/absensi/utils"
)

// AkunService manages accounts and the kartu bindings behind them.
type AkunService struct {
	kartu repository.KartuRepository
	akun  repository.AkunRepository
}

// NewAkunService creates the account management service.
func NewAkunService(kartu repository.KartuRepository, akun repository.AkunRepository) *AkunService {
	return &AkunService{kartu: kartu, akun: akun}
}

// RegisterInput carries the registration fields.
type RegisterInput struct {
	NomorKartu string
	IDRole     uint
	Username   string
	Password   string
	Nama       string
}

// Register creates an account bound to a kartu. The kartu is created on first
// reference; a kartu already bound to another account is a conflict, keeping
// the card-to-account binding one-to-one.
func (s *AkunService) Register(ctx context.Context, in RegisterInput) (*models.Akun, error) {
	in.NomorKartu = strings.TrimSpace(in.NomorKartu)
	in.Username = strings.TrimSpace(in.Username)
	in.Nama = strings.TrimSpace(in.Nama)
	if in.NomorKartu == "" || in.Username == "" || in.Password == "" || in.Nama == "" {
		return nil, ErrRegisterFieldsRequired
	}

	existing, err := s.akun.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	kartu, err := s.kartu.FindByNomor(ctx, in.NomorKartu)
	if err != nil {
		return nil, err
	}
	if kartu != nil {
		bound, err := s.akun.FindByKartuID(ctx, kartu.IDKartu)
		if err != nil {
			return nil, err
		}
		if bound != nil {
			return nil, ErrNomorKartuTaken
		}
	} else {
		kartu = &models.Kartu{NomorKartu: in.NomorKartu}
		if err := s.kartu.Create(ctx, kartu); err != nil {
			return nil, err
		}
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	akun := &models.Akun{
		IDKartu:  kartu.IDKartu,
		IDRole:   in.IDRole,
		Username: in.Username,
		Password: hash,
		Nama:     in.Nama,
	}
	if err := s.akun.Create(ctx, akun); err != nil {
		return nil, err
	}
	return akun, nil
}

// UpdateInput carries optional account fields; nil means keep the current value.
type UpdateInput struct {
	NomorKartu *string
	IDRole     *uint
	Username   *string
	Password   *string
	Nama       *string
}

// Update applies a partial account update, re-checking username and card
// number uniqueness for changed values.
func (s *AkunService) Update(ctx context.Context, id uint, in UpdateInput) (*models.Akun, error) {
	akun, err := s.akun.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if akun == nil {
		return nil, ErrUserNotFound
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, ErrRegisterFieldsRequired
		}
		if username != akun.Username {
			other, err := s.akun.FindByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if other != nil && other.IDUser != akun.IDUser {
				return nil, ErrUsernameTaken
			}
			akun.Username = username
		}
	}

	if in.NomorKartu != nil {
		nomor := strings.TrimSpace(*in.NomorKartu)
		if nomor == "" {
			return nil, ErrRegisterFieldsRequired
		}
		if err := s.rebindKartu(ctx, akun, nomor); err != nil {
			return nil, err
		}
	}

	if in.IDRole != nil {
		akun.IDRole = *in.IDRole
	}
	if in.Nama != nil {
		nama := strings.TrimSpace(*in.Nama)
		if nama == "" {
			return nil, ErrRegisterFieldsRequired
		}
		akun.Nama = nama
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, ErrRegisterFieldsRequired
		}
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		akun.Password = hash
	}

	if err := s.akun.Update(ctx, akun); err != nil {
		return nil, err
	}
	return akun, nil
}

// rebindKartu renumbers the account's kartu. A nomor held by a different kartu
// is a conflict; otherwise the account's own kartu row is updated in place.
func (s *AkunService) rebindKartu(ctx context.Context, akun *models.Akun, nomor string) error {
	holder, err := s.kartu.FindByNomor(ctx, nomor)
	if err != nil {
		return err
	}
	if holder != nil {
		if holder.IDKartu == akun.IDKartu {
			return nil
		}
		return ErrNomorKartuTaken
	}

	kartu, err := s.kartu.FindByID(ctx, akun.IDKartu)
	if err != nil {
		return err
	}
	if kartu == nil {
		return ErrKartuNotFound
	}
	kartu.NomorKartu = nomor
	return s.kartu.Update(ctx, kartu)
}

// Delete removes an account. The kartu row is kept; cards outlive accounts.
func (s *AkunService) Delete(ctx context.Context, id uint) error {
	akun, err := s.akun.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if akun == nil {
		return ErrUserNotFound
	}
	return s.akun.Delete(ctx, id)
}

// FindByID returns one account or ErrUserNotFound.
func (s *AkunService) FindByID(ctx context.Context, id uint) (*models.Akun, error) {
	akun, err := s.akun.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if akun == nil {
		return nil, ErrUserNotFound
	}
	return akun, nil
}

// FindAll returns every account.
func (s *AkunService) FindAll(ctx context.Context) ([]models.Akun, error) {
	return s.akun.FindAll(ctx)
}
