package transcribe

// Config captures runtime settings for transcription.
type Config struct {
	// Model is the whisper model size (tiny, base, small, medium, large-v3).
	Model string
	// CUDAEnabled enables GPU acceleration.
	CUDAEnabled bool
}

// WhisperX invocation constants.
const (
	DefaultModel   = "base"
	BatchSize      = "4"
	BeamSize       = "5"
	OutputFormat   = "json"
	CPUDevice      = "cpu"
	CUDADevice     = "cuda"
	CPUComputeType = "int8"
	CUDAIndexURL   = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL   = "https://pypi.org/simple"
)

// Command names for external tools.
const UVXCommand = "uvx"
