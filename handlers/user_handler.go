package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"givebridge/models"
	"givebridge/repository"
	"givebridge/storage"

	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer is satisfied by auth.TokenIssuer.
type TokenIssuer interface {
	Issue(userID, email, userType string) (string, error)
}

type UserHandler struct {
	Repo          repository.UserRepository
	Tokens        TokenIssuer
	Images        storage.ImageStore
	Validator     *Validator
	BcryptCost    int
	MaxUploadSize int64
}

type signupRequest struct {
	Email          string `form:"email" validate:"required,email"`
	FirstName      string `form:"firstName" validate:"required,max=100"`
	LastName       string `form:"lastName" validate:"required,max=100"`
	Password       string `form:"password" validate:"required,min=6,bcryptmax"`
	NameNGO        string `form:"nameNGO" validate:"required_unless=Type homeowner,max=200"`
	DescriptionNGO string `form:"descriptionNGO" validate:"max=2000"`
	Date           string `form:"date"`
	Type           string `form:"type" validate:"required,oneof=homeowner head volunteer"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID string          `json:"userId"`
	Email  string          `json:"email"`
	Token  string          `json:"token"`
	Type   models.UserType `json:"type"`
}

// GetUsers lists homeowner profiles.
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.Repo.ListHomeOwners(r.Context())
	if err != nil {
		return NewHTTPError("Fetching users failed, please try again later.", http.StatusInternalServerError, err)
	}
	if users == nil {
		users = []*models.HomeOwner{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
	return nil
}

// Signup handler
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		return invalidInputs(err)
	}
	defer r.MultipartForm.RemoveAll()

	req := signupRequest{
		Email:          normalizeEmail(r.FormValue("email")),
		FirstName:      strings.TrimSpace(r.FormValue("firstName")),
		LastName:       strings.TrimSpace(r.FormValue("lastName")),
		Password:       r.FormValue("password"),
		NameNGO:        strings.TrimSpace(r.FormValue("nameNGO")),
		DescriptionNGO: strings.TrimSpace(r.FormValue("descriptionNGO")),
		Date:           strings.TrimSpace(r.FormValue("date")),
		Type:           strings.TrimSpace(r.FormValue("type")),
	}
	if err := h.Validator.Validate(req); err != nil {
		return invalidInputs(err)
	}
	date, err := parseSignupDate(req.Date)
	if err != nil {
		return invalidInputs(err)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return invalidInputs(err)
	}
	defer file.Close()
	if header.Size > h.MaxUploadSize {
		return invalidInputs(errors.New("image too large"))
	}
	image, err := storage.PrepareImage(file)
	if err != nil {
		return invalidInputs(err)
	}

	ctx := r.Context()

	existingUser, err := h.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return NewHTTPError("Signing up failed, please try again later.", http.StatusInternalServerError, err)
	}
	if existingUser != nil {
		return NewHTTPError("User exists already, please login instead.", http.StatusUnprocessableEntity, nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		return NewHTTPError("Could not create user, please try again.", http.StatusInternalServerError, err)
	}

	userType := models.UserType(req.Type)
	var ngo *models.NGOOwner
	if userType == models.UserTypeVolunteer || userType == models.UserTypeHead {
		ngo, err = h.Repo.GetNGOByName(ctx, req.NameNGO)
		if err != nil {
			return NewHTTPError("Signing up failed, please try again later.", http.StatusInternalServerError, err)
		}
		if userType == models.UserTypeVolunteer && ngo == nil {
			return NewHTTPError("No Such NGO Exists.", http.StatusUnprocessableEntity, nil)
		}
		if userType == models.UserTypeHead && ngo != nil {
			return NewHTTPError("NGO exists already.", http.StatusUnprocessableEntity, nil)
		}
	}

	imageURL, err := storage.SaveImage(ctx, h.Images, image)
	if err != nil {
		return NewHTTPError("Could not upload image, please try again.", http.StatusInternalServerError, err)
	}

	user := &models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Type:     userType,
		Date:     date,
	}
	account := newAccount(user, req, imageURL, ngo)

	if err := h.Repo.CreateAccount(ctx, account); err != nil {
		if delErr := h.Images.Delete(ctx, imageURL); delErr != nil {
			hlog.FromRequest(r).Warn().Err(delErr).Str("image", imageURL).Msg("failed to remove orphaned image")
		}
		if errors.Is(err, repository.ErrDuplicateNGO) {
			return NewHTTPError("NGO exists already.", http.StatusUnprocessableEntity, err)
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return NewHTTPError("User exists already, please login instead.", http.StatusUnprocessableEntity, err)
		}
		return NewHTTPError("Signing up failed, please try again later.", http.StatusInternalServerError, err)
	}

	token, err := h.Tokens.Issue(user.ID.Hex(), user.Email, string(user.Type))
	if err != nil {
		return NewHTTPError("Signing up failed, please try again later.", http.StatusInternalServerError, err)
	}

	hlog.FromRequest(r).Info().Str("user_id", user.ID.Hex()).Str("type", string(user.Type)).Msg("user signed up")

	writeJSON(w, http.StatusCreated, authResponse{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Token:  token,
		Type:   user.Type,
	})
	return nil
}

// Login handler
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var creds credentials
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&creds); err != nil {
		return invalidInputs(err)
	}

	existingUser, err := h.Repo.GetUserByEmail(r.Context(), normalizeEmail(creds.Email))
	if err != nil {
		return NewHTTPError("Logging in failed, please try again later.", http.StatusInternalServerError, err)
	}
	if existingUser == nil {
		return NewHTTPError("Invalid credentials, could not log you in.", http.StatusForbidden, nil)
	}

	err = bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(creds.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return NewHTTPError("Invalid credentials, could not log you in.", http.StatusForbidden, nil)
	}
	if err != nil {
		return NewHTTPError("Could not log you in, please check your credentials and try again.", http.StatusInternalServerError, err)
	}

	token, err := h.Tokens.Issue(existingUser.ID.Hex(), existingUser.Email, string(existingUser.Type))
	if err != nil {
		return NewHTTPError("Logging in failed, please try again later.", http.StatusInternalServerError, err)
	}

	writeJSON(w, http.StatusOK, authResponse{
		UserID: existingUser.ID.Hex(),
		Email:  existingUser.Email,
		Token:  token,
		Type:   existingUser.Type,
	})
	return nil
}

func newAccount(user *models.User, req signupRequest, imageURL string, ngo *models.NGOOwner) *models.Account {
	name := req.FirstName + " " + req.LastName
	account := &models.Account{User: user}

	switch user.Type {
	case models.UserTypeHomeOwner:
		account.HomeOwner = &models.HomeOwner{
			Email: user.Email,
			Name:  name,
			Image: imageURL,
		}
	case models.UserTypeHead:
		account.NGOOwner = &models.NGOOwner{
			Email:          user.Email,
			Name:           name,
			Image:          imageURL,
			NameNGO:        req.NameNGO,
			DescriptionNGO: req.DescriptionNGO,
		}
	case models.UserTypeVolunteer:
		account.Volunteer = &models.Volunteer{
			Email:   user.Email,
			Name:    name,
			Image:   imageURL,
			NameNGO: req.NameNGO,
			HeadNGO: ngo.ID,
		}
		account.NGO = ngo
	}
	return account
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// parseSignupDate accepts RFC 3339 timestamps and plain dates. Empty means now.
func parseSignupDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
