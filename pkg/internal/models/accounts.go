package models

import (
	"fmt"
	"strings"
	"time"
)

// Identity is the authenticated viewer as issued by the gateway at login.
type Identity struct {
	LocalID      string    `json:"localId"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	DisplayName  string    `json:"displayName,omitempty"`
	PhotoURL     string    `json:"photoUrl,omitempty"`
	Following    []string  `json:"following"`
	IDToken      string    `json:"idToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt,omitempty"`
}

func (v Identity) Name() string {
	if len(v.DisplayName) > 0 {
		return v.DisplayName
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", v.FirstName, v.LastName))
}

// Public strips the credentials, what is left is safe to hand to the browser.
func (v Identity) Public() Identity {
	v.IDToken = ""
	v.RefreshToken = ""
	return v
}

type User struct {
	ID          string   `json:"id"`
	Email       string   `json:"email,omitempty"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	DisplayName string   `json:"displayName,omitempty"`
	PhotoURL    string   `json:"photoUrl,omitempty"`
	Followers   []string `json:"followers"`
	Following   []string `json:"following"`
}

func (v User) Name() string {
	if len(v.DisplayName) > 0 {
		return v.DisplayName
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", v.FirstName, v.LastName))
}

type Photo struct {
	Filename string `json:"filename"`
	Content  []byte `json:"-"`
}

type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Photo     *Photo `json:"photo,omitempty"`
}
