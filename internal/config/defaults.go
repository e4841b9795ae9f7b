package config

// DefaultStopwords are Portuguese articles, prepositions, conjunctions and
// discourse particles removed during query compaction.
var DefaultStopwords = []string{
	"a", "o", "as", "os", "um", "uma", "uns", "umas",
	"de", "do", "da", "dos", "das", "em", "no", "na", "nos", "nas",
	"por", "pelo", "pela", "pelos", "pelas", "para", "pra",
	"com", "sem", "sob", "sobre", "entre", "ate", "apos", "desde",
	"e", "ou", "mas", "porem", "nem", "que", "se", "como", "quando",
	"qual", "quais", "quem", "onde", "porque", "pois",
	"ser", "estar", "ter", "haver", "foi", "sao", "esta", "estao",
	"me", "te", "lhe", "nos", "vos", "seu", "sua", "seus", "suas",
	"este", "esta", "isso", "isto", "aquele", "aquela", "aquilo",
	"ja", "tambem", "ainda", "muito", "mais", "menos", "tao", "bem",
	"favor", "gostaria", "saber", "poderia", "pode", "quero", "preciso",
}

// DefaultLegalTerms are always retained during compaction regardless of
// length, because they anchor retrieval in legal text.
var DefaultLegalTerms = []string{
	"lei", "leis", "artigo", "art", "decreto", "portaria", "resolucao",
	"norma", "nbr", "abnt", "coema", "dispoe", "institui", "regulamenta",
	"altera", "revoga", "vigente", "ambiental", "licenciamento",
}

// DefaultRevocationMarkers flag a repealed or suspended instrument. The
// asterisk-prefixed variants appear in listings scraped from some state
// legislature sites.
var DefaultRevocationMarkers = []string{
	"revogada", "revogado", "revoga",
	"*revogada", "*revogado",
	"ab-rogada", "ab-rogado",
	"derrogada", "derrogado",
	"não vigente", "nao vigente",
	"sem vigência", "sem vigencia",
}

// DefaultGreetings match salutation-only messages.
var DefaultGreetings = []string{
	"oi", "ola", "olá", "bom dia", "boa tarde", "boa noite",
	"e ai", "eai", "tudo bem", "tudo bom", "hey", "hello", "hi",
}

// DefaultDomainKeywords mark a question as being about environmental law.
// Domain relevance always wins over technical-question detection.
var DefaultDomainKeywords = []string{
	"lei", "leis", "decreto", "portaria", "resolucao", "resolução",
	"artigo", "norma", "nbr", "abnt", "coema", "conama", "ibama",
	"licenciamento", "licenca", "licença", "ambiental", "ambiente",
	"meio ambiente", "poluicao", "poluição", "residuo", "resíduo",
	"desmatamento", "fauna", "flora", "hidrico", "hídrico", "agrotoxico",
	"agrotóxico", "saneamento", "multa", "infracao", "infração", "crime",
	"unidade de conservacao", "unidade de conservação", "outorga",
}

// DefaultTechnicalKeywords mark meta-questions about the system itself.
var DefaultTechnicalKeywords = []string{
	"banco de dados", "base de dados", "quantas leis", "quantos documentos",
	"quantas normas", "arquitetura", "como o sistema funciona",
	"como voce funciona", "como você funciona", "como funciona o assistente",
	"tecnologia", "modelo de linguagem", "inteligencia artificial",
	"inteligência artificial", "llm", "embedding", "indexad",
	"o que voce sabe", "o que você sabe", "quais leis voce",
	"quais leis você", "fonte dos dados", "de onde vem",
}

// Sub-groups selecting which canned technical answer to produce.
var (
	DefaultTechnicalCount = []string{
		"quantas", "quantos", "numero de", "número de", "total de",
	}
	DefaultTechnicalDatabase = []string{
		"banco de dados", "base de dados", "tecnologia", "embedding",
		"modelo", "llm", "indexad", "fonte dos dados", "de onde vem",
	}
	DefaultTechnicalArchitecture = []string{
		"arquitetura", "como o sistema funciona", "como voce funciona",
		"como você funciona", "como funciona o assistente",
	}
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		DataDir:           "data",
		Server: ServerConfig{
			Port: 8080,
		},
		Retrieval: RetrievalConfig{
			GeneralK:                8,
			LawNumberK:              5,
			SecondaryK:              2,
			MaxInflight:             4,
			SearchTimeoutSeconds:    20,
			SynthesisTimeoutSeconds: 45,
		},
		Namespaces: Namespaces{
			Statutes:  "legislacao",
			Standards: "abnt",
			Council:   "coema",
		},
		Keywords: Keywords{
			Stopwords:             DefaultStopwords,
			LegalTerms:            DefaultLegalTerms,
			RevocationMarkers:     DefaultRevocationMarkers,
			Greetings:             DefaultGreetings,
			Domain:                DefaultDomainKeywords,
			Technical:             DefaultTechnicalKeywords,
			TechnicalCount:        DefaultTechnicalCount,
			TechnicalDatabase:     DefaultTechnicalDatabase,
			TechnicalArchitecture: DefaultTechnicalArchitecture,
		},
	}
}
