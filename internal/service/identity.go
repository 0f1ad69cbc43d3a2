package service

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/lalith-99/dreams/internal/apperr"
	"github.com/lalith-99/dreams/internal/auth"
	"github.com/lalith-99/dreams/internal/models"
	"github.com/lalith-99/dreams/internal/store"
)

// Identity owns user records, credential checks, session issuance, and
// profile edits.
type Identity struct {
	base
}

// AuthResult is what register and login hand back.
type AuthResult struct {
	Token  string `json:"token"`
	UserID int64  `json:"auth_user_id"`
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9]+[._]?[a-zA-Z0-9]+@\w+\.\w{2,3}$`)

// Register creates an account and an initial session. The first-ever
// registrant becomes the global owner.
func (s *Identity) Register(email, password, nameFirst, nameLast string) (AuthResult, error) {
	var res AuthResult
	err := s.store.Update(func(st *store.State) error {
		if err := checkEmailFormat(email); err != nil {
			return err
		}
		if st.FindUserByEmail(email) != nil {
			return apperr.Input("email address is already being used")
		}
		if utf8.RuneCountInString(password) < 6 {
			return apperr.Input("password must be at least 6 characters")
		}
		if err := checkNameLength(nameFirst); err != nil {
			return err
		}
		if err := checkNameLength(nameLast); err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		now := nowUnix()
		u := &models.User{
			ID:            st.NextUID(),
			Email:         email,
			PasswordHash:  string(hash),
			NameFirst:     nameFirst,
			NameLast:      nameLast,
			Handle:        generateHandle(st, nameFirst, nameLast),
			PermissionID:  models.PermissionMember,
			Notifications: []models.Notification{},
			Stats:         models.NewUserStats(now),
		}
		if globalOwnerCount(st) == 0 {
			u.PermissionID = models.PermissionOwner
		}

		token, err := auth.GenerateToken(u.ID, s.secret)
		if err != nil {
			return err
		}
		st.AddSession(token)
		st.Users = append(st.Users, u)
		refreshDerived(st)

		res = AuthResult{Token: token, UserID: u.ID}
		return nil
	})
	return res, err
}

// Login issues a fresh session for matching credentials.
func (s *Identity) Login(email, password string) (AuthResult, error) {
	var res AuthResult
	err := s.store.Update(func(st *store.State) error {
		if err := checkEmailFormat(email); err != nil {
			return err
		}
		u := st.FindUserByEmail(email)
		if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return apperr.Input("email and password do not match a registered user")
		}

		token, err := auth.GenerateToken(u.ID, s.secret)
		if err != nil {
			return err
		}
		st.AddSession(token)
		res = AuthResult{Token: token, UserID: u.ID}
		return nil
	})
	return res, err
}

// Logout invalidates the token. An already-dead token is a soft fail:
// ok is false, no error.
func (s *Identity) Logout(token string) (bool, error) {
	var ok bool
	err := s.store.Update(func(st *store.State) error {
		ok = st.RemoveSession(token)
		return nil
	})
	return ok, err
}

// Profile looks up a user by id, including the removed-users archive so
// historical authorship still resolves.
func (s *Identity) Profile(token string, uid int64) (models.Profile, error) {
	var p models.Profile
	err := s.store.View(func(st *store.State) error {
		if _, err := s.resolveToken(st, token); err != nil {
			return err
		}
		u := st.FindRemovedUser(uid)
		if u == nil {
			u = st.FindUser(uid)
		}
		if u == nil {
			return apperr.Input("u_id does not refer to a valid user")
		}
		p = u.Profile()
		return nil
	})
	return p, err
}

func (s *Identity) SetName(token, nameFirst, nameLast string) error {
	return s.store.Update(func(st *store.State) error {
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if err := checkNameLength(nameFirst); err != nil {
			return err
		}
		if err := checkNameLength(nameLast); err != nil {
			return err
		}
		u.NameFirst = nameFirst
		u.NameLast = nameLast
		return nil
	})
}

func (s *Identity) SetEmail(token, email string) error {
	return s.store.Update(func(st *store.State) error {
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if err := checkEmailFormat(email); err != nil {
			return err
		}
		if other := st.FindUserByEmail(email); other != nil && other.ID != u.ID {
			return apperr.Input("email address is already being used")
		}
		u.Email = email
		return nil
	})
}

func (s *Identity) SetHandle(token, handle string) error {
	return s.store.Update(func(st *store.State) error {
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		n := utf8.RuneCountInString(handle)
		if n < 3 || n > 20 {
			return apperr.Input("handle must be between 3 and 20 characters")
		}
		if other := st.FindUserByHandle(handle); other != nil && other.ID != u.ID {
			return apperr.Input("handle is already taken")
		}
		u.Handle = handle
		return nil
	})
}

// All lists every active user's profile.
func (s *Identity) All(token string) ([]models.Profile, error) {
	var profiles []models.Profile
	err := s.store.View(func(st *store.State) error {
		if _, err := s.resolveToken(st, token); err != nil {
			return err
		}
		profiles = make([]models.Profile, 0, len(st.Users))
		for _, u := range st.Users {
			profiles = append(profiles, u.Profile())
		}
		return nil
	})
	return profiles, err
}

// Stats returns the caller's activity series.
func (s *Identity) Stats(token string) (models.UserStats, error) {
	var out models.UserStats
	err := s.store.View(func(st *store.State) error {
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		out = u.Stats
		return nil
	})
	return out, err
}

// WorkspaceStats returns the workspace-wide series.
func (s *Identity) WorkspaceStats(token string) (models.WorkspaceStats, error) {
	var out models.WorkspaceStats
	err := s.store.View(func(st *store.State) error {
		if _, err := s.resolveToken(st, token); err != nil {
			return err
		}
		out = st.Stats
		return nil
	})
	return out, err
}

func checkEmailFormat(email string) error {
	if !emailPattern.MatchString(email) {
		return apperr.Input("email is not valid")
	}
	return nil
}

func checkNameLength(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 1 || n > 50 {
		return apperr.Input("name must be between 1 and 50 characters")
	}
	return nil
}

// generateHandle derives a unique handle: lower-cased first+last name,
// whitespace and '@' stripped, cut to 20 characters, then a numeric
// suffix 0,1,2,... on collision (the suffix goes on the cut base, so a
// disambiguated handle may exceed 20 characters).
func generateHandle(st *store.State, nameFirst, nameLast string) string {
	base := strings.ToLower(nameFirst + nameLast)
	base = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '@' {
			return -1
		}
		return r
	}, base)
	if runes := []rune(base); len(runes) > 20 {
		base = string(runes[:20])
	}

	candidate := base
	for i := 0; st.FindUserByHandle(candidate) != nil; i++ {
		candidate = base + strconv.Itoa(i)
	}
	return candidate
}
