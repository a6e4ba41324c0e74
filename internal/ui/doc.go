// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI mirrors the pages of the myFlix client:
//  1. [WelcomeView] : Entry page that opens the login and sign-up dialogs
//  2. [LoginView] / [RegisterView] : Fixed-width dialogs backed by components.LoginForm and components.RegistrationForm
//  3. [MoviesView] / [DetailView] : Browse the catalog, read synopses and toggle favorites
//  4. [ProfileView] / [EditView] : Show, edit and delete the account, remove favorites
//  5. [ConfirmView] : Yes/no prompt raised by account deletion
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Component actions run as commands off the update loop. Their side effects (notifications, navigation,
// dialog changes and confirmation prompts) are sent by a [bridge] over a channel that a re-armed command
// drains back into Update, so all model state is mutated from one goroutine.
//
// Notifications render as a toast that disappears after its duration or when dismissed with ctrl+o.
package ui
