package planner

import (
	"errors"
	"fmt"
)

// ErrFieldObstructed повертається, коли після віднімання буферизованих
// перешкод від поля не лишається безпечної зони для польоту.
var ErrFieldObstructed = errors.New("field fully obstructed by buffered obstacles")

// ConfigError описує структурну помилку вхідної конфігурації поля.
// Планування переривається до будь-яких геометричних обчислень.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid field config: %s: %s", e.Field, e.Reason)
}
