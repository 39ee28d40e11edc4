package entity

import "time"

// Company representa una organización/tenant del sistema. Raíz de la partición multi-tenant:
// toda consulta se acota por empresa.
type Company struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
