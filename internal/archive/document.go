package archive

// Document is one archive delivery unit, queued by the scoring service and
// delivered out-of-band by the archive worker. Body is base64-encoded in
// transit through Redis (encoding/json default for []byte).
type Document struct {
	ChatID   string `json:"chat_id"`
	Filename string `json:"filename"`
	Caption  string `json:"caption"`
	MimeType string `json:"mime_type"`
	Body     []byte `json:"body"`
}
