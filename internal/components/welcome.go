package components

import "context"

// WelcomePage is the entry page.
type WelcomePage struct {
	lifetime
}

func NewWelcomePage(ctx context.Context, deps Deps) *WelcomePage {
	p := &WelcomePage{}
	p.init(ctx, deps)
	return p
}

func (p *WelcomePage) OpenUserLoginDialog() {
	p.open(LoginDialog)
}

func (p *WelcomePage) OpenUserRegistrationDialog() {
	p.open(RegistrationDialog)
}

func (p *WelcomePage) open(kind DialogKind) {
	if p.alive() != nil || p.deps.Opener == nil {
		return
	}
	p.deps.Logger.Debug("opening dialog", "kind", kind)
	p.deps.Opener.Open(kind, DialogOptions{Width: DialogWidth})
}
