// Package session owns the signed-in user's client-side state.
//
// A [Manager] wraps a [Store] and is the only component that writes session fields: the
// auth service populates it on login and refresh, and the HTTP client clears it when the
// backend answers 401. Everything else reads snapshots.
//
// Stores live in sub-packages: memstore (process memory), filestore (a JSON document on
// disk that survives restarts) and redisstore (shared between processes, with change
// broadcast so every process sees logouts).
package session
