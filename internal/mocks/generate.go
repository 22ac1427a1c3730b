// Package mocks provides mock implementations for testing service orchestration.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// auth ports. The mocks are generated using go:generate directives and provide a
// fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	store := mocks.NewMockAccountStore(ctrl)
//	store.EXPECT().GetByID(gomock.Any(), "id").Return(user, nil)
package mocks

// Generate mock for AccountStore interface from internal/ports.
// This creates MockAccountStore with methods: GetByID, GetByEmail.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=account_store_mock.go github.com/dayanisma-dernegi/portal/internal/ports AccountStore
