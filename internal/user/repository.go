package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cliente-go/internal/database"
)

// columns maps attribute names to their column in the clientes table.
var columns = map[string]string{
	FieldNombre:          "nombre",
	FieldApellido:        "apellido",
	FieldFechaNacimiento: "fecha_nacimiento",
	FieldCelular:         "celular",
	FieldUsuario:         "usuario",
	FieldContrasena:      "contrasena",
}

type repository struct {
	*database.Repository
}

// NewRepository creates a Postgres-backed Store over the clientes table
func NewRepository(db *database.DB) Store {
	return &repository{
		Repository: database.NewRepository(db),
	}
}

func (r *repository) FindIDsByEmail(ctx context.Context, email string) ([]string, error) {
	var ids []string
	if err := r.Select(ctx, &ids, "SELECT id FROM clientes WHERE email = $1", email); err != nil {
		return nil, r.Error("find ids by email", err)
	}
	return ids, nil
}

func (r *repository) UpdateFields(ctx context.Context, id string, patch Patch) (map[string]any, error) {
	if patch.Empty() {
		return nil, ErrNoFields
	}

	setClauses := make([]string, 0, len(patch)+1)
	returning := make([]string, 0, len(patch))
	args := make([]any, 0, len(patch)+1)

	for i, a := range patch {
		col, ok := columns[a.Field]
		if !ok {
			return nil, fmt.Errorf("unknown field %q", a.Field)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i+1))
		returning = append(returning, col)
		args = append(args, a.Value)
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE clientes
		SET    %s
		WHERE  id = $%d
		RETURNING %s`,
		strings.Join(setClauses, ", "), len(args), strings.Join(returning, ", "))

	row := make(map[string]any, len(patch))
	err := r.QueryRow(ctx, query, args...).MapScan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, r.Error("update fields", err)
	}

	updated := make(map[string]any, len(patch))
	for _, a := range patch {
		v := row[columns[a.Field]]
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		updated[a.Field] = v
	}
	return updated, nil
}
