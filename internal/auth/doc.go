// Package auth resolves the requesting user before any query-layer handler
// runs.
//
// Two modes are supported:
//   - "none": no authentication, every request runs as a default user ID
//   - "local": local user database with session cookies and Bearer API tokens
//
// Set AUTH_MODE to select the mode. For local mode:
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # Auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h
//	AUTH_TOKEN_EXPIRY=720h
//	AUTH_BCRYPT_COST=12
//	AUTH_SECURE_COOKIES=true
//
// Handlers never inspect cookies or headers themselves; they read the
// already-resolved user ID from the request context:
//
//	userID := auth.GetUserID(c)
package auth
