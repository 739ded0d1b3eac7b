package vision

// Annotation одна аннотация сервиса распознавания с оценкой уверенности
type Annotation struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Bundle результат распознавания одного изображения: логотипы, текст и метки сцены.
// Любой из списков может быть пустым.
type Bundle struct {
	Logos     []Annotation `json:"logos"`
	TextLines []string     `json:"text_lines"`
	Labels    []Annotation `json:"labels"`
}

// IsEmpty сообщает, что сервис ничего не распознал
func (b Bundle) IsEmpty() bool {
	return len(b.Logos) == 0 && len(b.TextLines) == 0 && len(b.Labels) == 0
}

// Wire format of the images:annotate endpoint.

type annotateRequest struct {
	Requests []imageRequest `json:"requests"`
}

type imageRequest struct {
	Image    imageContent `json:"image"`
	Features []feature    `json:"features"`
}

type imageContent struct {
	Content string `json:"content"`
}

type feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type annotateResponse struct {
	Responses []imageResponse `json:"responses"`
	Error     *statusError    `json:"error,omitempty"`
}

type imageResponse struct {
	LogoAnnotations  []entityAnnotation `json:"logoAnnotations"`
	LabelAnnotations []entityAnnotation `json:"labelAnnotations"`
	TextAnnotations  []entityAnnotation `json:"textAnnotations"`
	Error            *statusError       `json:"error,omitempty"`
}

type entityAnnotation struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

type statusError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
