package model

import (
	"strings"
	"sync"

	apperrors "learnnest/backend/common/errors"

	"github.com/burugo/thing"
)

// UserProfile is the per-user aggregate ledger: one row per account, created
// lazily on first upload, never deleted. TotalUploads/TotalDownloads track the
// owned notes' counts best-effort; the bumps are separate writes from the note
// mutations, so the aggregates may transiently lag (accepted, see the note on
// eventual consistency in the service layer).
type UserProfile struct {
	thing.BaseModel
	UserID         int64  `db:"user_id,unique" json:"user_id"`
	Nickname       string `db:"nickname,index" json:"nickname"`
	Bio            string `db:"bio" json:"bio,omitempty"`
	TotalUploads   int64  `db:"total_uploads" json:"total_uploads"`
	TotalDownloads int64  `db:"total_downloads" json:"total_downloads"`
}

func (p *UserProfile) TableName() string {
	return "user_profiles"
}

var UserProfileDB *thing.Thing[*UserProfile]

// UserProfileInit initializes UserProfileDB during InitDB.
func UserProfileInit() error {
	var err error
	UserProfileDB, err = thing.Use[*UserProfile]()
	if err != nil {
		return err
	}
	return nil
}

func GetProfileByUserID(userID int64) (*UserProfile, error) {
	profiles, err := UserProfileDB.Where("user_id = ?", userID).Fetch(0, 1)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, apperrors.New(apperrors.ErrProfileNotFound, "profile not found")
	}
	return profiles[0], nil
}

// GetOrCreateProfile returns the user's ledger row, materializing it on first
// use. The nickname defaults to the account display name, then the local part
// of the email address, then "Anonymous". The unique index on user_id keeps
// the row singular per user.
func GetOrCreateProfile(user *User) (*UserProfile, error) {
	profile, err := GetProfileByUserID(user.ID)
	if err == nil {
		return profile, nil
	}
	if !apperrors.IsCode(err, apperrors.ErrProfileNotFound) {
		return nil, err
	}

	nickname := user.DisplayName
	if nickname == "" && user.Email != "" {
		nickname = strings.SplitN(user.Email, "@", 2)[0]
	}
	if nickname == "" {
		nickname = "Anonymous"
	}

	profile = &UserProfile{
		UserID:         user.ID,
		Nickname:       nickname,
		TotalUploads:   0,
		TotalDownloads: 0,
	}
	if err := UserProfileDB.Save(profile); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrProfileCreationFailed, "failed to create user profile")
	}
	return profile, nil
}

// profileCounterMu serializes aggregate bumps for the same reason as
// noteCounterMu: Save writes absolute values.
var profileCounterMu sync.Mutex

// IncrementProfileUploads bumps the user's upload aggregate by one. The row is
// re-read inside the critical section so concurrent bumps all land.
func IncrementProfileUploads(userID int64) error {
	profileCounterMu.Lock()
	defer profileCounterMu.Unlock()

	profile, err := GetProfileByUserID(userID)
	if err != nil {
		return err
	}
	profile.TotalUploads++
	return UserProfileDB.Save(profile)
}

// IncrementProfileDownloads bumps the user's download aggregate by one.
func IncrementProfileDownloads(userID int64) error {
	profileCounterMu.Lock()
	defer profileCounterMu.Unlock()

	profile, err := GetProfileByUserID(userID)
	if err != nil {
		return err
	}
	profile.TotalDownloads++
	return UserProfileDB.Save(profile)
}

// UpdateProfile persists nickname/bio edits.
func UpdateProfile(profile *UserProfile) error {
	return UserProfileDB.Save(profile)
}
