package vectordb

// Metadata keys used by the legisverde index. Adapters at the corpus
// boundary also accept legacy spellings left over from earlier scrapes
// ("title", "descricao"/"description"); everything written by this
// module uses the canonical keys below.
const (
	MetaTitle      = "titulo"
	MetaSummary    = "descricao"
	MetaSource     = "fonte"
	MetaLawNumber  = "numero_lei"
	MetaLawDigits  = "numero_lei_digitos"
	MetaCode       = "codigo"
	MetaYear       = "ano"
	MetaStatus     = "situacao"
	MetaChunkIndex = "indice_trecho"
	MetaChunkTotal = "total_trechos"
	MetaInstrument = "instrumento"
)

// Document is a unit of indexed text plus its free-form metadata, the
// shape the vector backend natively speaks.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// Result pairs a document with the similarity score assigned at query
// time. Scores from different namespaces are not comparable.
type Result struct {
	Document   Document
	Similarity float32
}
