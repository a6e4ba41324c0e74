// Package repositories implements SQLite persistence for client-side state.
//
// The storage table is a plain key/value store mirroring browser local storage.
// [SessionRepository] is the only writer of the "user" and "token" keys: both are written together on login
// and removed together on logout or account deletion.
package repositories
