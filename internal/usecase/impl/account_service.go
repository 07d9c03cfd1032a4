// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"passage/config"
	deliverycontext "passage/internal/delivery/context"
	"passage/internal/domain/entity"
	domainerrors "passage/internal/domain/errors"
	"passage/internal/domain/repository"
	"passage/internal/domain/service"
	"passage/internal/errors"
	"passage/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager             repository.TransactionManager
	userRepo              repository.UserRepository
	hasher                service.PasswordHasher
	tokenService          service.TokenService
	notifier              service.Notifier
	publisher             service.EventPublisher
	frontendBaseURL       string
	skipEmailVerification bool
	logger                *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Notifier     service.Notifier
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	skipEmailVerification := false
	if params.Config != nil && params.Config.Auth != nil {
		skipEmailVerification = params.Config.Auth.SkipEmailVerification
	}
	frontendBaseURL := ""
	if params.Config != nil {
		frontendBaseURL = strings.TrimRight(params.Config.Frontend.BaseURL, "/")
	}

	return &accountService{
		txManager:             params.TxManager,
		userRepo:              params.UserRepo,
		hasher:                params.Hasher,
		tokenService:          params.TokenService,
		notifier:              params.Notifier,
		publisher:             params.Publisher,
		frontendBaseURL:       frontendBaseURL,
		skipEmailVerification: skipEmailVerification,
		logger:                params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := normalizeEmail(input.Email)
	if err := checkRegistration(input.Name, email); err != nil {
		return nil, err
	}

	user := new(entity.User)

	// The pre-check gives a clean conflict for the common case; the unique
	// constraint on email closes the race between two concurrent registrations.
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		userRepo := factory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, email)
		if findErr == nil {
			return domainerrors.ErrDuplicateAccount.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check email availability")
		}

		// Hash only once the address is known to be free; a duplicate attempt
		// must not pay the bcrypt cost.
		hash, hashErr := srv.hasher.Hash(input.Password)
		if hashErr != nil {
			return errors.WithStack(hashErr)
		}

		*user = entity.User{
			ID:           uuid.New(),
			Email:        email,
			Name:         input.Name,
			PasswordHash: hash,
			IsVerified:   srv.skipEmailVerification,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		if createErr := userRepo.Create(ctx, user); createErr != nil {
			if errors.Is(createErr, repository.ErrEmailTaken) {
				return domainerrors.ErrDuplicateAccount.WrapMessage("email already registered")
			}

			return domainerrors.ErrUserCreationFailed.WrapMessage(createErr.Error())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if !srv.skipEmailVerification {
		srv.sendVerificationEmail(ctx, user)
	}
	srv.publishAccountEvent(ctx, service.EventAccountRegistered, user)

	return &usecase.RegisterOutput{User: user.Identity()}, nil
}

// Login checks the presented credentials and issues a session token.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same error as a wrong password, so callers cannot probe which
			// emails are registered.
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	ok, err := srv.hasher.Check(input.Password, user.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("stored credential failed structural check",
			slog.String("userID", user.ID.String()),
			slog.Any("error", err))

		return nil, err
	}
	if !ok {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	token, err := srv.tokenService.Issue(user.ID, user.Email, srv.tokenService.SessionTTL())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	return &usecase.LoginOutput{
		AccessToken: token,
		User:        user.Identity(),
	}, nil
}

// VerifyEmail consumes a verification token and flips the account to verified.
func (srv *accountService) VerifyEmail(ctx context.Context, input *usecase.VerifyEmailInput) (*usecase.VerifyEmailOutput, error) {
	if input == nil || input.Token == "" {
		return nil, domainerrors.ErrMissingToken.WrapMessage("verification token is empty")
	}

	claims, err := srv.tokenService.Verify(input.Token)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, normalizeEmail(claims.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// The token was once valid but the account is gone.
			return nil, domainerrors.ErrUserNotFound.WrapMessage("account behind the token no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load user for verification")
	}

	if user.IsVerified {
		// Re-clicking the link is fine.
		return &usecase.VerifyEmailOutput{
			Message: "user was already verified",
			User:    user.Identity(),
		}, nil
	}

	user.IsVerified = true
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, domainerrors.ErrUserUpdateFailed.WrapMessage(err.Error())
	}

	srv.publishAccountEvent(ctx, service.EventAccountVerified, user)

	return &usecase.VerifyEmailOutput{
		Message: "user verified successfully",
		User:    user.Identity(),
	}, nil
}

// Profile returns the account view for an authenticated user.
func (srv *accountService) Profile(ctx context.Context, userID uuid.UUID) (*usecase.ProfileOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("account no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load user profile")
	}

	return &usecase.ProfileOutput{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}, nil
}

// sendVerificationEmail issues a verification token and mails the link.
// Failures are logged and swallowed: registration has already committed, and
// the user can request a fresh link later.
func (srv *accountService) sendVerificationEmail(ctx context.Context, user *entity.User) {
	token, err := srv.tokenService.Issue(user.ID, user.Email, srv.tokenService.VerificationTTL())
	if err != nil {
		srv.log(ctx).Warn("failed to issue verification token",
			slog.String("userID", user.ID.String()),
			slog.Any("error", err))

		return
	}

	link := srv.frontendBaseURL + "/auth/verify-email?token=" + url.QueryEscape(token)
	if err := srv.notifier.SendVerificationEmail(ctx, user.Email, user.Name, link); err != nil {
		srv.log(ctx).Warn("failed to send verification email",
			slog.String("userID", user.ID.String()),
			slog.Any("error", err))
	}
}

// publishAccountEvent emits an account lifecycle event, best-effort.
func (srv *accountService) publishAccountEvent(ctx context.Context, eventType string, user *entity.User) {
	if srv.publisher == nil {
		return
	}

	event := &service.AccountEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		UserID:     user.ID.String(),
		Email:      user.Email,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
	}
	if err := srv.publisher.PublishAccountEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("failed to publish account event",
			slog.String("type", eventType),
			slog.String("userID", user.ID.String()),
			slog.Any("error", err))
	}
}

// checkRegistration re-checks the registration preconditions at the service
// boundary. The delivery layer validates too, but callers other than HTTP
// (tests, future transports) must not reach the store with bad input.
// Password length stays a caller concern.
func checkRegistration(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("name must not be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("email address is malformed")
	}

	return nil
}

// normalizeEmail lower-cases the address so lookup and uniqueness are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
