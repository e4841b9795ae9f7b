package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGoogle ProviderType = "google"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level legisverde configuration, corresponding to .legisverde.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	DataDir           string       `yaml:"data_dir" koanf:"data_dir"`

	Server     ServerConfig    `yaml:"server" koanf:"server"`
	Retrieval  RetrievalConfig `yaml:"retrieval" koanf:"retrieval"`
	Namespaces Namespaces      `yaml:"namespaces" koanf:"namespaces"`
	Keywords   Keywords        `yaml:"keywords" koanf:"keywords"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// RetrievalConfig tunes the retrieval pipeline.
type RetrievalConfig struct {
	// GeneralK is the result count for the general semantic path.
	GeneralK int `yaml:"general_k" koanf:"general_k"`
	// LawNumberK is the result count for exact law-number lookups.
	LawNumberK int `yaml:"law_number_k" koanf:"law_number_k"`
	// SecondaryK bounds each secondary source (ABNT, COEMA) fan-out.
	SecondaryK int `yaml:"secondary_k" koanf:"secondary_k"`
	// MaxInflight bounds concurrent query resolutions.
	MaxInflight int `yaml:"max_inflight" koanf:"max_inflight"`
	// SearchTimeoutSeconds applies to each vector index call.
	SearchTimeoutSeconds int `yaml:"search_timeout_seconds" koanf:"search_timeout_seconds"`
	// SynthesisTimeoutSeconds applies to each LLM call.
	SynthesisTimeoutSeconds int `yaml:"synthesis_timeout_seconds" koanf:"synthesis_timeout_seconds"`
}

// Namespaces names the vector index partitions, one per content source.
type Namespaces struct {
	Statutes  string `yaml:"statutes" koanf:"statutes"`
	Standards string `yaml:"standards" koanf:"standards"`
	Council   string `yaml:"council" koanf:"council"`
}

// Keywords holds the heuristic keyword lists used by normalization,
// revocation filtering and question classification. They live in
// configuration so legal-terminology changes and test fixtures don't
// require code changes.
type Keywords struct {
	// Stopwords are removed during query compaction.
	Stopwords []string `yaml:"stopwords" koanf:"stopwords"`
	// LegalTerms are always kept during compaction, even when short.
	LegalTerms []string `yaml:"legal_terms" koanf:"legal_terms"`
	// RevocationMarkers flag a legal instrument as no longer in force.
	RevocationMarkers []string `yaml:"revocation_markers" koanf:"revocation_markers"`
	// Greetings match short salutation-only messages.
	Greetings []string `yaml:"greetings" koanf:"greetings"`
	// Domain terms mark a question as being about environmental law.
	Domain []string `yaml:"domain" koanf:"domain"`
	// Technical terms mark a meta-question about the system itself.
	Technical []string `yaml:"technical" koanf:"technical"`
	// Sub-groups used to pick a canned technical answer.
	TechnicalCount        []string `yaml:"technical_count" koanf:"technical_count"`
	TechnicalDatabase     []string `yaml:"technical_database" koanf:"technical_database"`
	TechnicalArchitecture []string `yaml:"technical_architecture" koanf:"technical_architecture"`
}
