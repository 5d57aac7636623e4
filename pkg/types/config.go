package types

import "time"

// ConvertConfig holds settings for one conversion run.
type ConvertConfig struct {
	// SourceDir is the directory scanned for convertible documents.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutputDir is the directory that receives the produced PDFs
	// (default: SourceDir/converted_pdfs).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// OCR controls whether a searchable text layer is embedded in the
	// produced PDFs. Disabling it never changes the number of outputs,
	// only their searchability.
	OCR bool `json:"ocr" yaml:"ocr"`

	// Merge controls whether all produced PDFs are concatenated into a
	// single document after conversion.
	Merge bool `json:"merge" yaml:"merge"`

	// Workers is the number of concurrent conversion workers
	// (default: min(NumCPU, 4)).
	Workers int `json:"workers" yaml:"workers"`

	// Cache controls whether unchanged sources are skipped using the
	// on-disk conversion cache in OutputDir.
	Cache bool `json:"cache" yaml:"cache"`

	// OfficeTimeout bounds a single office-suite invocation (default 3m).
	OfficeTimeout time.Duration `json:"office_timeout" yaml:"office_timeout"`

	// ToolTimeout bounds a single OCR or image tool invocation (default 60s).
	ToolTimeout time.Duration `json:"tool_timeout" yaml:"tool_timeout"`
}

// ChatProvider identifies the LLM vendor backing a chat session.
type ChatProvider string

const (
	ProviderOpenAI ChatProvider = "openai"
	ProviderGemini ChatProvider = "gemini"
)

// ChatConfig holds settings for the interactive chat session.
type ChatConfig struct {
	// Provider selects the LLM vendor: openai or gemini.
	Provider ChatProvider `json:"provider" yaml:"provider"`

	// Model is the vendor model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the vendor API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts on rate-limited calls.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxContextRunes caps the amount of document text sent with each
	// turn (default 50000).
	MaxContextRunes int `json:"max_context_runes" yaml:"max_context_runes"`
}

// DefaultModel returns the provider's default model identifier.
func (c ChatConfig) DefaultModel() string {
	switch c.Provider {
	case ProviderGemini:
		return "gemini-1.5-flash"
	default:
		return "gpt-4o-mini"
	}
}
