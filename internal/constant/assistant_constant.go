package constant

const (
	// Logger module tags
	ModuleSession   = "session"
	ModuleAssistant = "assistant"
	ModuleLLM       = "llm"
	ModuleServer    = "server"

	// Multipart field carrying the uploaded image/document/audio.
	UploadFieldName = "file"

	// Ceiling used to reject voice clips longer than the capture window.
	// 16kHz 16-bit mono WAV is 32KB/s; the doubled rate leaves headroom for
	// container overhead and stereo captures.
	VoiceBytesPerSecond = 64 * 1024
)
