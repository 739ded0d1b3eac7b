package remote

import (
	"fmt"
)

// NoConnection сообщение для ошибок транспорта без текста
const NoConnection = "No connection to back-end"

// SyncError неуспешный вызов REST хранилища. Status == 0 означает ошибку транспорта.
type SyncError struct {
	Status  int
	Message string
	Err     error
}

func (e *SyncError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%d : %s", e.Status, e.Message)
	}
	if e.Message != "" {
		return e.Message
	}
	return NoConnection
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
