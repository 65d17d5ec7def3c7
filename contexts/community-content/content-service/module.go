package contentservice

import (
	"log/slog"

	httpadapter "quill/contexts/community-content/content-service/adapters/http"
	"quill/contexts/community-content/content-service/adapters/memory"
	"quill/contexts/community-content/content-service/application/commands"
	"quill/contexts/community-content/content-service/application/queries"
	"quill/contexts/community-content/content-service/ports"
)

// Module is the composition surface for the content API.
// Runtime wiring should consume Handler; the memory adapters are exposed for
// tests and inspection when the module was built by NewInMemoryModule.
type Module struct {
	Handler httpadapter.Handler
	Promote commands.PromoteAccountUseCase
	Store   *memory.Store
	Images  *memory.ImageStore
	Files   *memory.StagedFiles
}

// Credentials is the slice of the credential module this module consumes.
type Credentials interface {
	ports.PasswordHasher
	ports.TokenIssuer
}

type Dependencies struct {
	Accounts    ports.AccountRepository
	Posts       ports.PostRepository
	Comments    ports.CommentRepository
	Categories  ports.CategoryRepository
	Images      ports.ImageStore
	Files       ports.StagedFiles
	Passwords   ports.PasswordHasher
	Tokens      ports.TokenIssuer
	Validator   ports.Validator
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Observer    ports.CascadeObserver
	// PageSize <= 0 falls back to queries.DefaultPageSize.
	PageSize            int
	DefaultProfilePhoto string
	Logger              *slog.Logger
}

// NewModule wires the content use cases against explicit ports.
func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		Register: commands.RegisterAccountUseCase{
			Accounts:            deps.Accounts,
			Passwords:           deps.Passwords,
			Validator:           deps.Validator,
			Clock:               deps.Clock,
			IDGenerator:         deps.IDGenerator,
			DefaultProfilePhoto: deps.DefaultProfilePhoto,
			Logger:              deps.Logger,
		},
		Login: commands.LoginUseCase{
			Accounts:  deps.Accounts,
			Passwords: deps.Passwords,
			Tokens:    deps.Tokens,
			Validator: deps.Validator,
			Logger:    deps.Logger,
		},
		UpdateProfile: commands.UpdateProfileUseCase{
			Accounts:  deps.Accounts,
			Passwords: deps.Passwords,
			Validator: deps.Validator,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
		UploadProfilePhoto: commands.UploadProfilePhotoUseCase{
			Accounts: deps.Accounts,
			Images:   deps.Images,
			Files:    deps.Files,
			Clock:    deps.Clock,
			Observer: deps.Observer,
			Logger:   deps.Logger,
		},
		DeleteAccount: commands.DeleteAccountUseCase{
			Accounts: deps.Accounts,
			Posts:    deps.Posts,
			Comments: deps.Comments,
			Images:   deps.Images,
			Observer: deps.Observer,
			Logger:   deps.Logger,
		},
		GetProfile: queries.GetAccountProfileUseCase{
			Accounts: deps.Accounts,
			Posts:    deps.Posts,
			Logger:   deps.Logger,
		},
		ListProfiles: queries.ListAccountsUseCase{
			Accounts: deps.Accounts,
			Posts:    deps.Posts,
			Logger:   deps.Logger,
		},
		CountAccounts: queries.CountAccountsUseCase{Accounts: deps.Accounts},

		CreatePost: commands.CreatePostUseCase{
			Posts:       deps.Posts,
			Images:      deps.Images,
			Files:       deps.Files,
			Validator:   deps.Validator,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		UpdatePost: commands.UpdatePostUseCase{
			Posts:     deps.Posts,
			Validator: deps.Validator,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
		UpdatePostImage: commands.UpdatePostImageUseCase{
			Posts:    deps.Posts,
			Images:   deps.Images,
			Files:    deps.Files,
			Clock:    deps.Clock,
			Observer: deps.Observer,
			Logger:   deps.Logger,
		},
		ToggleLike: commands.ToggleLikeUseCase{
			Posts:  deps.Posts,
			Logger: deps.Logger,
		},
		DeletePost: commands.DeletePostUseCase{
			Posts:    deps.Posts,
			Comments: deps.Comments,
			Images:   deps.Images,
			Observer: deps.Observer,
			Logger:   deps.Logger,
		},
		ListPosts: queries.ListPostsUseCase{
			Posts:    deps.Posts,
			PageSize: deps.PageSize,
			Logger:   deps.Logger,
		},
		GetPost: queries.GetPostUseCase{
			Posts:    deps.Posts,
			Comments: deps.Comments,
		},
		CountPosts: queries.CountPostsUseCase{Posts: deps.Posts},

		CreateComment: commands.CreateCommentUseCase{
			Accounts:    deps.Accounts,
			Posts:       deps.Posts,
			Comments:    deps.Comments,
			Validator:   deps.Validator,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		UpdateComment: commands.UpdateCommentUseCase{
			Comments:  deps.Comments,
			Validator: deps.Validator,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
		DeleteComment: commands.DeleteCommentUseCase{
			Comments: deps.Comments,
			Logger:   deps.Logger,
		},
		ListComments: queries.ListCommentsUseCase{Comments: deps.Comments},

		CreateCategory: commands.CreateCategoryUseCase{
			Categories:  deps.Categories,
			Validator:   deps.Validator,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		DeleteCategory: commands.DeleteCategoryUseCase{
			Categories: deps.Categories,
			Logger:     deps.Logger,
		},
		ListCategories: queries.ListCategoriesUseCase{Categories: deps.Categories},

		Logger: deps.Logger,
	}

	return Module{
		Handler: handler,
		Promote: commands.PromoteAccountUseCase{
			Accounts: deps.Accounts,
			Clock:    deps.Clock,
			Logger:   deps.Logger,
		},
	}
}

// NewInMemoryModule wires the content use cases against in-memory adapters.
// It backs local development and the HTTP tests.
func NewInMemoryModule(credentials Credentials, validator ports.Validator, logger *slog.Logger) Module {
	store := memory.NewStore(logger)
	images := memory.NewImageStore("")
	files := &memory.StagedFiles{}
	module := NewModule(Dependencies{
		Accounts:            store,
		Posts:               store,
		Comments:            store,
		Categories:          store,
		Images:              images,
		Files:               files,
		Passwords:           credentials,
		Tokens:              credentials,
		Validator:           validator,
		Clock:               store,
		IDGenerator:         store,
		DefaultProfilePhoto: DefaultProfilePhotoURL,
		Logger:              logger,
	})
	module.Store = store
	module.Images = images
	module.Files = files
	return module
}

// DefaultProfilePhotoURL is the placeholder every new account starts with.
const DefaultProfilePhotoURL = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png"
