package credential

import (
	"log/slog"
	"time"

	bcryptadapter "quill/contexts/identity-access/credential-service/adapters/bcrypt"
	httpadapter "quill/contexts/identity-access/credential-service/adapters/http"
	jwtadapter "quill/contexts/identity-access/credential-service/adapters/jwt"
	"quill/contexts/identity-access/credential-service/adapters/memory"
	"quill/contexts/identity-access/credential-service/application/commands"
	"quill/contexts/identity-access/credential-service/application/queries"
	"quill/contexts/identity-access/credential-service/ports"
)

// Module is the credential-service composition root exposed to runtime wiring.
type Module struct {
	Handler     httpadapter.Handler
	Credentials Credentials
	Revocations *memory.RevocationStore
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Hasher      ports.PasswordHasher
	Tokens      ports.TokenCodec
	Revocations ports.RevocationList
	Clock       ports.Clock
	// TokenTTL <= 0 issues tokens without expiry.
	TokenTTL time.Duration
	Logger   *slog.Logger
}

// NewModule wires credential use-cases and the guard handler using explicit ports.
func NewModule(deps Dependencies) Module {
	revocations := deps.Revocations
	if revocations == nil {
		revocations = memory.NoRevocations{}
	}

	authenticate := queries.AuthenticateUseCase{
		Tokens:      deps.Tokens,
		Revocations: revocations,
		Logger:      deps.Logger,
	}
	authorize := queries.AuthorizeUseCase{
		Logger: deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Authenticate: authenticate,
			Authorize:    authorize,
			Logger:       deps.Logger,
		},
		Credentials: Credentials{
			hash: commands.HashPasswordUseCase{
				Hasher: deps.Hasher,
				Logger: deps.Logger,
			},
			verify: commands.VerifyPasswordUseCase{
				Hasher: deps.Hasher,
				Logger: deps.Logger,
			},
			issue: commands.IssueTokenUseCase{
				Tokens:   deps.Tokens,
				Clock:    deps.Clock,
				TokenTTL: deps.TokenTTL,
				Logger:   deps.Logger,
			},
		},
	}
}

// NewInMemoryModule builds a development/testing module with a revocation
// store and the minimum bcrypt cost.
func NewInMemoryModule(secret string, logger *slog.Logger) (Module, error) {
	codec, err := jwtadapter.NewCodec(secret)
	if err != nil {
		return Module{}, err
	}
	revocations := memory.NewRevocationStore()
	module := NewModule(Dependencies{
		Hasher:      bcryptadapter.NewHasher(4),
		Tokens:      codec,
		Revocations: revocations,
		Clock:       jwtadapter.SystemClock{},
		Logger:      logger,
	})
	module.Revocations = revocations
	return module, nil
}
