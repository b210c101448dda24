package domain

import "fmt"

// DecodeError indica que a resposta de um procedimento remoto não respeitou o esquema esperado
type DecodeError struct {
	Call string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("resposta inválida de %s: %v", e.Call, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
