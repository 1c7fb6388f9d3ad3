package erp

import "context"

type storeKey struct{}

// WithStore abre un scope de store: todo lo que reciba el ctx derivado puede usar FromContext.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext devuelve el store del scope. Fuera de un scope es un error de programación y hace panic.
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(storeKey{}).(*Store)
	if !ok || s == nil {
		panic("erp: FromContext usado fuera de un scope de Store (falta WithStore)")
	}
	return s
}
