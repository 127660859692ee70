package user

// Attribute names of the optional user fields. They are shared by the request
// body, the stored record and the updatedAttributes of the response.
const (
	FieldNombre          = "nombre"
	FieldApellido        = "apellido"
	FieldFechaNacimiento = "fechaNacimiento"
	FieldCelular         = "celular"
	FieldUsuario         = "usuario"
	FieldContrasena      = "contraseña"
)

// Fields lists the updatable attributes in the order they are applied.
var Fields = []string{
	FieldNombre,
	FieldApellido,
	FieldFechaNacimiento,
	FieldCelular,
	FieldUsuario,
	FieldContrasena,
}

// Assignment sets a single attribute to a new value.
type Assignment struct {
	Field string
	Value string
}

// Patch is an ordered set of assignments for a partial update. Attributes not
// named in the patch are left untouched by the store.
type Patch []Assignment

// NewPatch builds a patch from the optional fields of req. A field counts as
// present when it is non-nil and not the empty string.
func NewPatch(req *UpdateRequest) Patch {
	values := req.values()

	patch := make(Patch, 0, len(Fields))
	for _, field := range Fields {
		v := values[field]
		if v == nil || *v == "" {
			continue
		}
		patch = append(patch, Assignment{Field: field, Value: *v})
	}
	return patch
}

// Empty reports whether the patch has nothing to update.
func (p Patch) Empty() bool {
	return len(p) == 0
}

// FieldNames returns the patched attribute names in order.
func (p Patch) FieldNames() []string {
	names := make([]string, len(p))
	for i, a := range p {
		names[i] = a.Field
	}
	return names
}
