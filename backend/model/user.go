package model

import (
	"learnnest/backend/common"
	apperrors "learnnest/backend/common/errors"

	"github.com/burugo/thing"
)

// User is an account record. It plays the identity-provider role for the
// catalog: every mutation resolves the caller against this table. Sensitive
// fields are excluded from API responses.
type User struct {
	thing.BaseModel
	Username    string `db:"username,unique" json:"username"`
	Password    string `db:"password" json:"-"`
	DisplayName string `db:"display_name" json:"display_name"`
	Role        int    `db:"role" json:"role"`
	Status      int    `db:"status" json:"status"`
	Email       string `db:"email,index" json:"email"`
	Token       string `db:"token,index" json:"token,omitempty"`
}

func (u *User) TableName() string {
	return "users"
}

var UserDB *thing.Thing[*User]

// UserInit initializes UserDB during InitDB.
func UserInit() error {
	var err error
	UserDB, err = thing.Use[*User]()
	if err != nil {
		return err
	}
	return nil
}

func GetUserByID(id int64) (*User, error) {
	if id == 0 {
		return nil, apperrors.New(apperrors.ErrEmptyID, "user id is empty")
	}
	user, err := UserDB.ByID(id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrUserNotFound, "user not found")
	}
	return user, nil
}

func IsUsernameAlreadyTaken(username string) bool {
	users, err := UserDB.Where("username = ?", username).Fetch(0, 1)
	return err == nil && len(users) > 0
}

func (user *User) Insert() error {
	if user.Password != "" {
		var err error
		user.Password, err = common.Password2Hash(user.Password)
		if err != nil {
			return err
		}
	}
	return UserDB.Save(user)
}

func (user *User) Update(updatePassword bool) error {
	if updatePassword {
		var err error
		user.Password, err = common.Password2Hash(user.Password)
		if err != nil {
			return err
		}
	}
	return UserDB.Save(user)
}

// ValidateAndFill checks the credentials held in user and, on success, loads
// the full record in place.
func (user *User) ValidateAndFill() error {
	if user.Username == "" || user.Password == "" {
		return apperrors.New(apperrors.ErrEmptyCredentials, "username or password is empty")
	}
	users, err := UserDB.Where("username = ?", user.Username).Fetch(0, 1)
	if err != nil || len(users) == 0 {
		return apperrors.New(apperrors.ErrInvalidCredentials, "invalid username or password")
	}
	found := users[0]
	okay := common.ValidatePasswordAndHash(user.Password, found.Password)
	if !okay {
		return apperrors.New(apperrors.ErrInvalidCredentials, "invalid username or password")
	}
	if found.Status != common.UserStatusEnabled {
		return apperrors.New(apperrors.ErrUserDisabled, "user is disabled")
	}
	*user = *found
	return nil
}

// ValidateUserToken resolves an API token to its owner, nil when invalid.
func ValidateUserToken(token string) *User {
	if token == "" {
		return nil
	}
	users, err := UserDB.Where("token = ?", token).Fetch(0, 1)
	if err != nil || len(users) == 0 {
		return nil
	}
	return users[0]
}

func GenerateUserToken() string {
	return common.GetUUID()
}
