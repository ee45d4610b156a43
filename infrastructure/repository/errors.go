package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// wrapExecError padroniza erros de execução, destacando erros do Postgres
func wrapExecError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query: %w", err)
}
