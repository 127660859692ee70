package user

import (
	"encoding/json"
	"fmt"
)

// UpdateRequest represents the body of an update call. Email identifies the
// user; every other field is optional and only applied when present.
type UpdateRequest struct {
	Email           string  `json:"email" validate:"required"`
	Nombre          *string `json:"nombre"`
	Apellido        *string `json:"apellido"`
	FechaNacimiento *string `json:"fechaNacimiento"`
	Celular         *string `json:"celular"`
	Usuario         *string `json:"usuario"`
	Contrasena      *string `json:"contraseña"`
}

// values returns the optional fields keyed by their attribute name.
func (r *UpdateRequest) values() map[string]*string {
	return map[string]*string{
		FieldNombre:          r.Nombre,
		FieldApellido:        r.Apellido,
		FieldFechaNacimiento: r.FechaNacimiento,
		FieldCelular:         r.Celular,
		FieldUsuario:         r.Usuario,
		FieldContrasena:      r.Contrasena,
	}
}

// DecodeUpdateRequest reads an update body. Keys are matched exactly, so
// "EMAIL" or "Nombre" are ignored like any other unknown key. When a key is
// repeated the last value wins.
func DecodeUpdateRequest(body []byte) (*UpdateRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	req := &UpdateRequest{}
	if msg, ok := raw["email"]; ok {
		if err := json.Unmarshal(msg, &req.Email); err != nil {
			return nil, fmt.Errorf("field email: %w", err)
		}
	}

	targets := map[string]**string{
		FieldNombre:          &req.Nombre,
		FieldApellido:        &req.Apellido,
		FieldFechaNacimiento: &req.FechaNacimiento,
		FieldCelular:         &req.Celular,
		FieldUsuario:         &req.Usuario,
		FieldContrasena:      &req.Contrasena,
	}
	for _, field := range Fields {
		msg, ok := raw[field]
		if !ok {
			continue
		}
		if err := json.Unmarshal(msg, targets[field]); err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
	}
	return req, nil
}

// SuccessResponse is the body returned after a successful update.
type SuccessResponse struct {
	StatusDesc        string         `json:"statusDesc"`
	StatusCode        int            `json:"statusCode"`
	UpdatedAttributes map[string]any `json:"updatedAttributes"`
}

// ErrorResponse is the body returned for every failed update.
type ErrorResponse struct {
	StatusDesc    string `json:"statusDesc"`
	StatusMessage string `json:"statusMessage"`
	StatusCode    int    `json:"statusCode"`
}
