package health

type Input struct{}

type Output struct {
	Body Response
}

// Response ответ проверки, OK только если хранилище отвечает
type Response struct {
	Status string `json:"status" example:"OK" doc:"Состояние сервиса"`
}
