// Package identity defines the normalized caller identity the core
// services operate on. Normalization from tokens or session payloads
// happens once at the HTTP boundary, never inside core logic.
package identity

// Caller is the resolved identity of the requester.
type Caller struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
