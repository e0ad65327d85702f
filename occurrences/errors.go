package occurrences

import "errors"

// ErrNotFound cobre dois casos de propósito: id inexistente e usuário
// tentando acessar ocorrência de outro usuário. Responder igual evita
// confirmar a existência do registro.
var ErrNotFound = errors.New("ocorrência não encontrada")

// ErrForbidden indica que o domínio de identidade do chamador não tem o
// direito pedido (anônimo ou domínio errado).
var ErrForbidden = errors.New("acesso negado")

// ValidationError carrega o motivo legível de uma rejeição de entrada.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
