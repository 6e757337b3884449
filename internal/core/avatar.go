package core

import (
	"fmt"
	"strings"
)

// AvatarKind is the closed set of selectable avatars. The engine only stores
// and transmits the tag; per-kind visuals belong to the rendering layer.
type AvatarKind string

const (
	AvatarMage     AvatarKind = "mage"
	AvatarScout    AvatarKind = "scout"
	AvatarGuardian AvatarKind = "guardian"
)

// DefaultAvatar is used when no preference or remote value is available.
const DefaultAvatar = AvatarMage

// AvatarInfo describes an avatar for selection screens.
type AvatarInfo struct {
	Kind        AvatarKind
	Name        string
	Description string
}

// Avatars lists every avatar in selection order.
var Avatars = []AvatarInfo{
	{AvatarMage, "TECH MAGE", "Master of data streams. Equipped with a pulse staff."},
	{AvatarScout, "VOID SCOUT", "Agile explorer. Integrated with reconnaissance drones."},
	{AvatarGuardian, "CORE GUARD", "Sturdy sentinel. Heavy armor for deep-layer archives."},
}

// Valid reports whether k is one of the known avatars.
func (k AvatarKind) Valid() bool {
	switch k {
	case AvatarMage, AvatarScout, AvatarGuardian:
		return true
	}
	return false
}

// Info returns the display metadata for k, falling back to the default avatar.
func (k AvatarKind) Info() AvatarInfo {
	for _, a := range Avatars {
		if a.Kind == k {
			return a
		}
	}
	return Avatars[0]
}

// String returns the wire id of the avatar.
func (k AvatarKind) String() string {
	return string(k)
}

// ParseAvatar converts a wire id into an AvatarKind.
func ParseAvatar(s string) (AvatarKind, error) {
	k := AvatarKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown avatar %q", s)
	}
	return k, nil
}
