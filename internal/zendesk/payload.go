package zendesk

// Request is the ticket payload for POST /api/v2/requests.json. It is built
// once per submission and sent once; the backend answers with the created
// request's id.
type Request struct {
	Subject   string    `json:"subject"`
	Comment   Comment   `json:"comment"`
	Requester Requester `json:"requester"`
	Tags      []string  `json:"tags"`
}

// Comment carries the composed body text and, when a file was uploaded first,
// the upload tokens to attach. Tokens are single-use and consumed by this call.
type Comment struct {
	Body    string   `json:"body"`
	Uploads []string `json:"uploads,omitempty"`
}

// Requester identifies the end user the ticket is opened for.
type Requester struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type requestEnvelope struct {
	Request *Request `json:"request"`
}

type requestCreatedResponse struct {
	Request struct {
		ID int64 `json:"id"`
	} `json:"request"`
}

type uploadResponse struct {
	Upload struct {
		Token string `json:"token"`
	} `json:"upload"`
}
