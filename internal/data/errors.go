package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Admin user repository sentinels.
	ErrAdminUserNotFound = errors.New("admin user not found")
	ErrAdminEmailExists  = errors.New("admin email already exists")

	// Content repository sentinels.
	ErrApplicationNotFound  = errors.New("application not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrEventSlugExists      = errors.New("event slug already exists")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrDonationNotFound     = errors.New("donation not found")
	ErrSettingNotFound      = errors.New("setting not found")
)
