package workspace

import "sync"

// maxToasts tope de avisos pendientes por workspace.
const maxToasts = 50

// Toast aviso efímero para la UI.
type Toast struct {
	Level   string `json:"level"` // success | error
	Message string `json:"message"`
}

// Inbox acumula avisos y la última navegación pedida hasta que la UI los
// recoge. Implementa ports.Notifier y ports.Navigator.
type Inbox struct {
	mu     sync.Mutex
	toasts []Toast
	route  string
}

// NewInbox construye un inbox vacío.
func NewInbox() *Inbox { return &Inbox{} }

func (i *Inbox) push(level, msg string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.toasts = append(i.toasts, Toast{Level: level, Message: msg})
	if len(i.toasts) > maxToasts {
		i.toasts = i.toasts[len(i.toasts)-maxToasts:]
	}
}

// Success implementa ports.Notifier.
func (i *Inbox) Success(msg string) { i.push("success", msg) }

// Error implementa ports.Notifier.
func (i *Inbox) Error(msg string) { i.push("error", msg) }

// Navigate implementa ports.Navigator.
func (i *Inbox) Navigate(route string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.route = route
}

// Drain entrega y vacía los avisos y la navegación pendiente.
func (i *Inbox) Drain() (toasts []Toast, route string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	toasts, route = i.toasts, i.route
	i.toasts, i.route = nil, ""
	return toasts, route
}
