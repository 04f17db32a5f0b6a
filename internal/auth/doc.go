// Package auth provides authentication and authorisation for GeoControl.
//
// It implements a 3-tier role model (viewer → operator → admin) with:
//   - Argon2id password hashing (OWASP 2025 recommendation)
//   - Stateless JWT access tokens, validated by signature on each request
//   - Static role-permission mapping (compile-time, no database lookup)
//
// Viewers read the topology and measurements, operators additionally
// manage the fleet and ingest readings, admins additionally manage user
// accounts.
package auth
