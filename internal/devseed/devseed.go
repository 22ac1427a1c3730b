// Package devseed populates a development database with representative
// content so the admin console has something to show.
package devseed

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dayanisma-dernegi/portal/internal/data"
	domainauth "github.com/dayanisma-dernegi/portal/internal/domain/auth"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

// DefaultAdminEmail is the seeded super-admin login.
const DefaultAdminEmail = "admin@dernek.local"

// DefaultAdminPassword is the seeded super-admin password. Development only.
const DefaultAdminPassword = "change-me-please"

// Run seeds an admin account, sample content, and public site settings.
// It is idempotent: records that already exist are left alone.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := seedAdmin(ctx, db, logger); err != nil {
		return err
	}
	if err := seedEvents(ctx, db, logger); err != nil {
		return err
	}
	if err := seedAnnouncements(ctx, db, logger); err != nil {
		return err
	}
	return seedSettings(ctx, db, logger)
}

func seedAdmin(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	repo := data.NewAdminUserRepo(db)
	if _, err := repo.GetByEmail(ctx, DefaultAdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, data.ErrAdminUserNotFound) {
		return fmt.Errorf("check seed admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	_, err = repo.Create(ctx, data.CreateAdminUserParams{
		Req: &model.CreateAdminUserRequest{
			Email:    DefaultAdminEmail,
			Name:     "Geliştirme Yöneticisi",
			Role:     domainauth.RoleSuperAdmin,
			Password: DefaultAdminPassword,
		},
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	logger.InfoContext(ctx, "seeded super admin", "email", DefaultAdminEmail)
	return nil
}

func seedEvents(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	repo := data.NewEventRepo(db)
	if _, err := repo.GetBySlug(ctx, "bahar-kermesi"); err == nil {
		return nil
	} else if !errors.Is(err, data.ErrEventNotFound) {
		return fmt.Errorf("check seed event: %w", err)
	}

	published := true
	starts := time.Now().AddDate(0, 1, 0).Truncate(time.Hour)
	ends := starts.Add(6 * time.Hour)
	_, err := repo.Create(ctx, &model.CreateEventRequest{
		Title:     "Bahar Kermesi",
		Slug:      "bahar-kermesi",
		Summary:   "Geleneksel bahar kermesi, tüm gelir burs fonuna aktarılır.",
		Body:      "Her yıl düzenlediğimiz bahar kermesinde buluşuyoruz.",
		Location:  "Dernek binası bahçesi",
		StartsAt:  starts,
		EndsAt:    &ends,
		Published: &published,
	})
	if err != nil {
		return fmt.Errorf("seed event: %w", err)
	}
	logger.InfoContext(ctx, "seeded sample event", "slug", "bahar-kermesi")
	return nil
}

func seedAnnouncements(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	repo := data.NewAnnouncementRepo(db)
	existing, err := repo.List(ctx, model.AnnouncementListOptions{Limit: 1})
	if err != nil {
		return fmt.Errorf("check seed announcements: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	published := true
	_, err = repo.Create(ctx, &model.CreateAnnouncementRequest{
		Title:     "Burs başvuruları açıldı",
		Body:      "Bu yılın burs başvuruları başvuru formu üzerinden alınmaktadır.",
		Published: &published,
	})
	if err != nil {
		return fmt.Errorf("seed announcement: %w", err)
	}
	logger.InfoContext(ctx, "seeded sample announcement")
	return nil
}

func seedSettings(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	repo := data.NewSettingRepo(db)
	if _, err := repo.Get(ctx, "contact"); err == nil {
		return nil
	} else if !errors.Is(err, data.ErrSettingNotFound) {
		return fmt.Errorf("check seed settings: %w", err)
	}

	contact, err := json.Marshal(map[string]string{
		"email":   "iletisim@dernek.local",
		"phone":   "+90 212 000 00 00",
		"address": "İstanbul",
	})
	if err != nil {
		return fmt.Errorf("marshal contact: %w", err)
	}

	public := true
	_, err = repo.Upsert(ctx, "contact", &model.UpsertSettingRequest{
		Value:  contact,
		Public: &public,
	})
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	logger.InfoContext(ctx, "seeded contact settings")
	return nil
}
