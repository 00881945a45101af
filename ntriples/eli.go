package ntriples

// Namespaces.
const (
	NamespaceELI = "http://data.europa.eu/eli/ontology#"
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceOWL = "http://www.w3.org/2002/07/owl#"
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"
)

// ELI classes.
const (
	ClassLegalResource   = NamespaceELI + "LegalResource"
	ClassLegalExpression = NamespaceELI + "LegalExpression"
	ClassFormat          = NamespaceELI + "Format"
)

// Predicates.
const (
	PropType = NamespaceRDF + "type"

	// PropSameAs links the same act published in another language.
	PropSameAs = NamespaceOWL + "sameAs"

	PropTypeDocument     = NamespaceELI + "type_document"
	PropIDLocal          = NamespaceELI + "id_local"
	PropIsRealizedBy     = NamespaceELI + "is_realized_by"
	PropRealizes         = NamespaceELI + "realizes"
	PropResponsibilityOf = NamespaceELI + "responsibility_of"
	PropLanguage         = NamespaceELI + "language"
	PropTitle            = NamespaceELI + "title"
	PropDateDocument     = NamespaceELI + "date_document"
	PropDatePublication  = NamespaceELI + "date_publication"
	PropPublisher        = NamespaceELI + "publisher"
	PropIsEmbodiedBy     = NamespaceELI + "is_embodied_by"
	PropEmbodies         = NamespaceELI + "embodies"
	PropFormat           = NamespaceELI + "format"
)

// DatatypeDateTime is the datatype of date literals.
const DatatypeDateTime = NamespaceXSD + "dateTime"

// Publisher identifies the publisher of the Official Journal in the
// Crossroads Bank for Enterprises.
const Publisher = "http://org.belgif.be/cbe/org/0307_614_813#id"

// MediaTypeHTML is the format of the consolidated text.
const MediaTypeHTML = "http://www.iana.org/assignments/media-types/text/html"

// FormatSuffix is appended to an expression IRI to name its HTML format.
const FormatSuffix = "/html"
