package ports

// Notifier define el puerto de salida hacia la UI para avisos efímeros (toasts).
// El BFF acumula los avisos por workspace y los entrega en la siguiente respuesta;
// los tests usan un recolector en memoria.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Navigator puerto de navegación: la sesión pide ir a una ruta (ej. /login)
// y el adaptador decide cómo reflejarlo en la UI.
type Navigator interface {
	Navigate(route string)
}

// NopNotifier descarta los avisos.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// NopNavigator ignora la navegación.
type NopNavigator struct{}

func (NopNavigator) Navigate(string) {}
