package authclient

// User is the backend's resolved identity. Field names follow the
// backend's JSON payload. Read-only from this package's perspective.
type User struct {
	Usuario   string   `json:"usuario"` // unique login handle
	Nombre    string   `json:"nombre"`
	Apellidos string   `json:"apellidos"`
	Perfiles  []Perfil `json:"perfiles"`
}

// Perfil is one role assignment in the order the backend returns them.
type Perfil struct {
	Codigo      string `json:"codigo,omitempty"`
	Descripcion string `json:"descripcion"`
}

// HasPerfil reports whether the user carries a profile with the given
// description.
func (u *User) HasPerfil(descripcion string) bool {
	if u == nil {
		return false
	}
	for _, p := range u.Perfiles {
		if p.Descripcion == descripcion {
			return true
		}
	}
	return false
}
