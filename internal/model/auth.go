package model

// AccessToken is the JWT payload identifying a player.
type AccessToken struct {
	ID string `json:"id"`
}
