package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/officegen/internal/config"
	"github.com/vancomm/officegen/internal/middleware"
	"github.com/vancomm/officegen/internal/repository"
)

var (
	ErrBadAuthBody        = errors.New("request body must contain url-encoded username and password")
	ErrBadPasswordTooLong = errors.New("password too long")
	ErrUsernameTaken      = errors.New("username taken")
	ErrBadCredentials     = errors.New("wrong username or password")
)

// bcrypt ignores input past this length
const maxPasswordBytes = 72

type Auth struct {
	logger  *slog.Logger
	store   Store
	cookies *config.Cookies
	cost    int
}

func NewAuth(logger *slog.Logger, store Store, cookies *config.Cookies) *Auth {
	return &Auth{
		logger:  logger,
		store:   store,
		cookies: cookies,
		cost:    bcrypt.DefaultCost,
	}
}

func (a Auth) credentials(w http.ResponseWriter, r *http.Request) (CredentialsDTO, bool) {
	if err := r.ParseForm(); err != nil {
		sendError(w, a.logger, http.StatusBadRequest, ErrBadAuthBody)
		return CredentialsDTO{}, false
	}
	dto, err := decode[CredentialsDTO](r.PostForm)
	if err != nil || dto.Username == "" || dto.Password == "" {
		sendError(w, a.logger, http.StatusBadRequest, ErrBadAuthBody)
		return CredentialsDTO{}, false
	}
	return dto, true
}

func (a Auth) login(w http.ResponseWriter, player *repository.Player) {
	claims := config.NewPlayerClaims(player.PlayerID, player.Username)
	if err := a.cookies.Refresh(w, claims); err != nil {
		internalError(w, a.logger, "unable to set auth cookies", "error", err)
		return
	}
	sendJSONOrLog(w, a.logger, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{player.PlayerID, player.Username},
	})
}

func (a Auth) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		a.logger.Debug("no valid auth cookies - clear cookies")
		a.cookies.Clear(w)
		sendJSONOrLog(w, a.logger, Status{LoggedIn: false})
		return
	}

	refreshed := config.NewPlayerClaims(claims.PlayerID, claims.Username)
	if err := a.cookies.Refresh(w, refreshed); err != nil {
		internalError(w, a.logger, "unable to refresh auth cookies", "error", err)
		return
	}
	sendJSONOrLog(w, a.logger, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{claims.PlayerID, claims.Username},
	})
}

func (a Auth) Register(w http.ResponseWriter, r *http.Request) {
	dto, ok := a.credentials(w, r)
	if !ok {
		return
	}

	if len(dto.Password) > maxPasswordBytes {
		sendError(w, a.logger, http.StatusBadRequest, ErrBadPasswordTooLong)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), a.cost)
	if err != nil {
		internalError(w, a.logger, "unable to hash password", "error", err)
		return
	}

	player, err := a.store.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     dto.Username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		sendError(w, a.logger, http.StatusConflict, ErrUsernameTaken)
		return
	}
	if err != nil {
		internalError(w, a.logger, "unable to insert player", "error", err)
		return
	}

	a.login(w, player)
}

func (a Auth) Login(w http.ResponseWriter, r *http.Request) {
	dto, ok := a.credentials(w, r)
	if !ok {
		return
	}

	player, err := a.store.FetchPlayer(r.Context(), dto.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		sendError(w, a.logger, http.StatusUnauthorized, ErrBadCredentials)
		return
	}
	if err != nil {
		internalError(w, a.logger, "unable to fetch player from db", "error", err)
		return
	}

	err = bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(dto.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		sendError(w, a.logger, http.StatusUnauthorized, ErrBadCredentials)
		return
	}
	if err != nil {
		internalError(w, a.logger, "bcrypt compare error", "error", err)
		return
	}

	a.login(w, player)
}

func (a Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	sendJSONOrLog(w, a.logger, Status{LoggedIn: false})
}
