package entity

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/width"
)

// ContainerID identifica un contenedor físico (pallet) por su código de barras.
// El valor cero representa "sin contenedor" (unidades sueltas / cajas) y solo es
// igual a otro valor cero; nunca actúa como comodín.
type ContainerID struct {
	code string
	set  bool
}

// NoContainer devuelve el identificador de unidades sueltas.
func NoContainer() ContainerID { return ContainerID{} }

// NewContainerID normaliza un código escaneado. Los lectores configurados con
// teclados asiáticos envían dígitos de ancho completo ("ＰＬ０１"), que se pliegan
// a su forma angosta. Un código vacío equivale a NoContainer.
func NewContainerID(code string) ContainerID {
	code = strings.TrimSpace(width.Narrow.String(code))
	if code == "" {
		return ContainerID{}
	}
	return ContainerID{code: code, set: true}
}

// ContainerFromNullable construye el identificador desde una columna NULLABLE.
func ContainerFromNullable(code *string) ContainerID {
	if code == nil {
		return ContainerID{}
	}
	return NewContainerID(*code)
}

// IsNone indica unidades sueltas.
func (c ContainerID) IsNone() bool { return !c.set }

// Code devuelve el código del contenedor ("" si no hay contenedor).
func (c ContainerID) Code() string { return c.code }

// Nullable devuelve el valor para una columna NULLABLE (nil = sin contenedor).
func (c ContainerID) Nullable() *string {
	if !c.set {
		return nil
	}
	code := c.code
	return &code
}

// Equal es la única comparación null-safe usada por el ledger: NONE solo es igual a NONE.
func (c ContainerID) Equal(other ContainerID) bool {
	return c.set == other.set && c.code == other.code
}

func (c ContainerID) String() string {
	if !c.set {
		return "NONE"
	}
	return c.code
}

// MarshalJSON serializa NONE como null.
func (c ContainerID) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	return json.Marshal(c.code)
}

// UnmarshalJSON acepta null, "" o un código.
func (c *ContainerID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ContainerID{}
		return nil
	}
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	*c = NewContainerID(code)
	return nil
}
