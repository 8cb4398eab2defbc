package service

import (
	"errors"

	"github.com/gatherly/eventhub/internal/core/domain"
)

func isNotFound(err error) bool {
	var derr *domain.Error
	return errors.As(err, &derr) && derr.Kind == domain.KindNotFound
}
