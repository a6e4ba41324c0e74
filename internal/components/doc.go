// Package components implements the screens of the myflix client as controllers independent of any renderer.
//
// Each component pairs a form or page with its collaborators:
//  1. [LoginForm] : exchanges credentials for a session and moves to the movie list
//  2. [RegistrationForm] : creates an account from the sign-up dialog
//  3. [UserProfile] : loads, edits and deletes the current account
//  4. [WelcomePage] : opens the login and sign-up dialogs
//  5. [MovieList] : browses the catalog and toggles favorites
//
// Side effects leave a component only through the [Notifier], [Navigator], [Dialog], [Confirmer]
// and [DialogOpener] interfaces and the [models.SessionStore], so the TUI and the plain CLI commands
// drive the same code.
//
// # Lifetime
//
// Components are built from a parent context. Destroy cancels it: requests in flight are aborted and
// a response arriving afterwards is dropped with [ErrDestroyed] before any storage write, notification
// or navigation. While an action is running a second call returns [ErrInFlight].
package components
