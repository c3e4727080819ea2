package auth

import "golang.org/x/oauth2"

// TokenStore persists the OAuth token between runs so the consent flow only
// happens when no usable credentials exist.
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Store(token *oauth2.Token) error
}
