// Package services defines the [Service] interface for the myFlix REST API and implements it with [MovieAPI].
//
// # Service Interface
//
// Components depend on [Service] only, so tests substitute doubles and the dev backend can be swapped in.
//
// # Authentication
//
// Login and registration are unauthenticated. Every other request carries "Authorization: Bearer <token>",
// attached by an [oauth2.Transport] whose token source reads the current session from [models.SessionStore].
// Tokens are JWTs; their exp claim is read without verification so expired sessions fail fast with
// [shared.ErrTokenExpired] instead of a round trip.
//
// # Cached User
//
// [MovieAPI.GetOneUser] is a synchronous accessor over the stored session user and never touches the network.
// [MovieAPI.FetchUser] refreshes it from GET /users/{Username}.
//
// # Error Handling
//
// Non-2xx responses are returned as [*APIError] carrying the status code and the response body verbatim.
// APIError unwraps to [shared.ErrAPIRequest]; 401 additionally matches [shared.ErrNotAuthenticated].
//
// # Rate Limiting
//
// Requests pass through a [rate.Limiter] when a positive rate is configured.
package services
