package ports_test

import (
	"github.com/dayanisma-dernegi/portal/internal/data"
	"github.com/dayanisma-dernegi/portal/internal/mocks"
	"github.com/dayanisma-dernegi/portal/internal/ports"
	"github.com/dayanisma-dernegi/portal/internal/session"
)

// Compile-time checks that the concrete adapters satisfy the ports.
var (
	_ ports.AccountStore = (*data.AdminUserRepo)(nil)
	_ ports.AccountStore = (*mocks.MockAccountStore)(nil)
	_ ports.ClaimCodec   = (*session.Codec)(nil)
	_ ports.SettingStore = (*data.SettingRepo)(nil)
)
