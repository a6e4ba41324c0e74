// Package models defines the entities exchanged with the myFlix API and the client-side session contract.
//
// The package contains three categories of types:
//
// 1. API records: explicit structs for backend payloads
//   - [User] : account fields plus the favorite movie ID list
//   - [Movie] : catalog entry with nested [Genre] and [Director]
//   - [LoginResult] : the {user, token} login response
//
// 2. Form inputs: validated with go-playground/validator struct tags
//   - [Credentials] : login form
//   - [Registration] : registration and profile edit form
//
// 3. Client state
//   - [Session] : the persisted {user, token} pair
//   - [SessionStore] : single owner of persisted session state
//   - [ProfileView] : normalized profile view model with resolved favorites
//
// Favorites are always resolved to full [Movie] records for display via [ResolveFavorites];
// only the ID list is ever sent back to the server.
package models
