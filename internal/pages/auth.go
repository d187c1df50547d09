package pages

import (
	"context"

	"storefront-bff/internal/models"
)

type SignInPage struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

var signIn = Submission[SignInPage, Ignored]{
	Name:     "sign_in.submit",
	Endpoint: fixedPath[SignInPage]("/api/sign-in/"),
	Body: func(p *SignInPage) any {
		return models.Credentials{Username: p.Login, Password: p.Password}
	},
	OnSuccess: func(*SignInPage, Ignored) Effect {
		return navigate(HomePath)
	},
	Failure: failure{public: true},
}

func (p *SignInPage) SignIn(ctx context.Context, api ShopAPI) Effect {
	eff := signIn.Run(ctx, api, p)
	p.Password = ""
	return eff
}

type SignUpPage struct {
	Name          string `json:"name"`
	Login         string `json:"login"`
	Password      string `json:"password"`
	PasswordReply string `json:"passwordReply"`
}

type signUpForm struct {
	Name     string `validate:"notblank"`
	Login    string `validate:"notblank"`
	Password string `validate:"notblank"`
	Reply    string `validate:"notblank,eqfield=Password"`
}

var signUp = Submission[SignUpPage, Ignored]{
	Name:     "sign_up.submit",
	Endpoint: fixedPath[SignUpPage]("/api/sign-up/"),
	Validate: func(p *SignUpPage) error {
		return validateForm(signUpForm{Name: p.Name, Login: p.Login, Password: p.Password, Reply: p.PasswordReply})
	},
	InvalidAlert: blankOrMismatchAlert,
	Body: func(p *SignUpPage) any {
		return models.Registration{Name: p.Name, Username: p.Login, Password: p.Password}
	},
	OnSuccess: func(*SignUpPage, Ignored) Effect {
		return navigate(HomePath)
	},
	Failure: failure{public: true},
}

func (p *SignUpPage) SignUp(ctx context.Context, api ShopAPI) Effect {
	eff := signUp.Run(ctx, api, p)
	p.Password, p.PasswordReply = "", ""
	return eff
}
