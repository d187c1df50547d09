package pages

import (
	"context"

	"storefront-bff/internal/models"
	"storefront-bff/internal/services"
)

const (
	blankFieldsAlert     = "There are blank fields in the form"
	blankOrMismatchAlert = "There are blank fields in the form or passwords do not match"
	savedAlert           = "Successfully saved"
)

type ProfilePage struct {
	FullName string        `json:"fullName"`
	Phone    string        `json:"phone"`
	Email    string        `json:"email"`
	Avatar   *models.Image `json:"avatar"`

	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordReply   string `json:"passwordReply"`
}

type profileForm struct {
	FullName string `validate:"notblank"`
	Phone    string `validate:"notblank"`
	Email    string `validate:"notblank"`
}

type passwordForm struct {
	Current  string `validate:"notblank"`
	Password string `validate:"notblank"`
	Reply    string `validate:"notblank,eqfield=Password"`
}

func (p *ProfilePage) Mount(ctx context.Context, api ShopAPI) Effect {
	return p.GetProfile(ctx, api)
}

func (p *ProfilePage) GetProfile(ctx context.Context, api ShopAPI) Effect {
	var profile models.Profile
	if err := api.GetData(ctx, "/api/profile/", &profile); err != nil {
		f := failure{warn: "Error when getting a profile", quiet: true}
		return record("profile.get", f.effect(ctx, "profile.get", err))
	}
	p.apply(profile)
	return record("profile.get", succeeded())
}

func (p *ProfilePage) apply(profile models.Profile) {
	p.FullName = profile.FullName
	p.Avatar = profile.Avatar
	p.Phone = profile.Phone
	p.Email = profile.Email
}

var changeProfile = Submission[ProfilePage, models.Profile]{
	Name:     "profile.change",
	Endpoint: fixedPath[ProfilePage]("/api/profile/"),
	Validate: func(p *ProfilePage) error {
		return validateForm(profileForm{FullName: p.FullName, Phone: p.Phone, Email: p.Email})
	},
	InvalidAlert: blankFieldsAlert,
	Body: func(p *ProfilePage) any {
		return models.Profile{FullName: p.FullName, Avatar: p.Avatar, Phone: p.Phone, Email: p.Email}
	},
	OnSuccess: func(p *ProfilePage, profile models.Profile) Effect {
		p.apply(profile)
		return Effect{Alert: savedAlert}
	},
	Failure: failure{warn: "Error updating profile", alert: "Error updating profile"},
}

func (p *ProfilePage) ChangeProfile(ctx context.Context, api ShopAPI) Effect {
	return changeProfile.Run(ctx, api, p)
}

var changePassword = Submission[ProfilePage, Ignored]{
	Name:     "profile.password",
	Endpoint: fixedPath[ProfilePage]("/api/profile/password/"),
	Validate: func(p *ProfilePage) error {
		return validateForm(passwordForm{Current: p.PasswordCurrent, Password: p.Password, Reply: p.PasswordReply})
	},
	InvalidAlert: blankOrMismatchAlert,
	Body: func(p *ProfilePage) any {
		return models.PasswordChange{Password: p.Password}
	},
	OnSuccess: func(p *ProfilePage, _ Ignored) Effect {
		p.PasswordCurrent, p.Password, p.PasswordReply = "", "", ""
		return Effect{Alert: savedAlert}
	},
	Failure: failure{warn: "Error saving password", alert: "Error saving password"},
}

func (p *ProfilePage) ChangePassword(ctx context.Context, api ShopAPI) Effect {
	return changePassword.Run(ctx, api, p)
}

// avatarUpload pairs the page with the file picked by the user.
type avatarUpload struct {
	page *ProfilePage
	file *services.FormFile
}

var setAvatar = Submission[avatarUpload, models.Image]{
	Name: "profile.avatar",
	Endpoint: func(u *avatarUpload) (string, bool) {
		return "/api/profile/avatar/", u.file != nil
	},
	Body: func(u *avatarUpload) any {
		return u.file
	},
	OnSuccess: func(u *avatarUpload, img models.Image) Effect {
		u.page.Avatar = &img
		return Effect{}
	},
	Failure: failure{warn: "Error updating the image", alert: "Error updating the image"},
}

// SetAvatar uploads file as the new avatar. A nil file is a no-op.
func (p *ProfilePage) SetAvatar(ctx context.Context, api ShopAPI, file *services.FormFile) Effect {
	return setAvatar.Run(ctx, api, &avatarUpload{page: p, file: file})
}

// RejectAvatar reports an upload that could not be read, so it never reached
// the shop API, the same way a refused upload is reported.
func (p *ProfilePage) RejectAvatar(ctx context.Context, err error) Effect {
	return record(setAvatar.Name, setAvatar.Failure.effect(ctx, setAvatar.Name, err))
}

func (p *ProfilePage) ClearAvatar() {
	p.Avatar = nil
}
