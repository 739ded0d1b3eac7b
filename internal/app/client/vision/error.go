package vision

import (
	"fmt"
)

// Kind категория ошибки распознавания
type Kind string

const (
	KindNetwork     Kind = "network"
	KindCredentials Kind = "credentials"
	KindQuota       Kind = "quota"
	KindMalformed   Kind = "malformed"
	KindService     Kind = "service"
)

// RecognitionError ошибка вызова сервиса распознавания.
// Изображение в этом случае считается неаннотированным.
type RecognitionError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *RecognitionError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("recognition %s error: %d : %s", e.Kind, e.Status, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("recognition %s error: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("recognition %s error: %s", e.Kind, e.Message)
	}
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}
