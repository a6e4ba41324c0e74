// Package server implements a local, in-memory myFlix backend for offline development and tests.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation wraps a gorilla/mux router, so path variables such as {Username} are
// available through mux.Vars and requests with the wrong method get a 405.
//
// # API
//
// [APIHandler] serves the same REST surface the client speaks:
//
//	POST   /login
//	POST   /users
//	GET    /users/{Username}
//	PUT    /users/{Username}
//	DELETE /users/{Username}
//	POST   /users/{Username}/movies/{MovieID}
//	DELETE /users/{Username}/movies/{MovieID}
//	GET    /movies
//	GET    /movies/{Title}
//	GET    /movies/genre/{Name}
//	GET    /movies/directors/{Name}
//
// Everything except login and sign-up requires a bearer token issued by [TokenIssuer] (HS256 JWT whose
// subject is the user ID). Passwords are stored as bcrypt hashes and never returned. Error responses are
// plain text so the client can show them verbatim.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, registering their own routes on a [Router] so route
// definitions stay encapsulated within the implementation.
package server
