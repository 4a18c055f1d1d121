package entity

// Field valor opcional con bit de presencia explícito.
// Distingue "campo omitido en el payload" (Set=false) de "campo enviado"
// (Set=true), incluso cuando el valor enviado es nulo. Necesario para los
// parches parciales: borrar y no-tocar no son lo mismo.
type Field[T any] struct {
	Set   bool
	Value T
}

// NewField construye un Field presente con el valor dado.
func NewField[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}
