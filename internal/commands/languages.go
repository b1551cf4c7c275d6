package commands

// LanguageDefinition describes the comment syntax of one language for
// line classification.
type LanguageDefinition struct {
	Name         string
	SinglePrefix string
	BlockStart   string
	BlockEnd     string
}

// languagesByExtension maps lower-case file extensions (with dot) to their
// language definitions. Only files with a known extension are counted.
var languagesByExtension = map[string]LanguageDefinition{
	".py":   {Name: "Python", SinglePrefix: "#", BlockStart: `"""`, BlockEnd: `"""`},
	".html": {Name: "HTML", BlockStart: "<!--", BlockEnd: "-->"},
	".css":  {Name: "CSS", BlockStart: "/*", BlockEnd: "*/"},
	".scss": {Name: "Sass", SinglePrefix: "//", BlockStart: "/*", BlockEnd: "*/"},
	".js":   {Name: "JavaScript", SinglePrefix: "//", BlockStart: "/*", BlockEnd: "*/"},
	".jsx":  {Name: "JavaScript JSX", SinglePrefix: "//", BlockStart: "/*", BlockEnd: "*/"},
	".ts":   {Name: "TypeScript", SinglePrefix: "//", BlockStart: "/*", BlockEnd: "*/"},
	".tsx":  {Name: "TypeScript TSX", SinglePrefix: "//", BlockStart: "/*", BlockEnd: "*/"},
	".json": {Name: "JSON"},
	".c":    {Name: "C", SinglePrefix: "//", BlockStart: "/*", BlockEnd: "*/"},
	".h":    {Name: "C Header", SinglePrefix: "//", BlockStart: "/*", BlockEnd: "*/"},
	".cpp":  {Name: "C++", SinglePrefix: "//", BlockStart: "/*", BlockEnd: "*/"},
	".cs":   {Name: "C#", SinglePrefix: "//", BlockStart: "/*", BlockEnd: "*/"},
	".java": {Name: "Java", SinglePrefix: "//", BlockStart: "/*", BlockEnd: "*/"},
	".go":   {Name: "Go", SinglePrefix: "//", BlockStart: "/*", BlockEnd: "*/"},
	".rs":   {Name: "Rust", SinglePrefix: "//", BlockStart: "/*", BlockEnd: "*/"},
	".php":  {Name: "PHP", SinglePrefix: "//", BlockStart: "/*", BlockEnd: "*/"},
	".md":   {Name: "Markdown"},
	".yaml": {Name: "YAML", SinglePrefix: "#"},
	".yml":  {Name: "YAML", SinglePrefix: "#"},
	".toml": {Name: "TOML", SinglePrefix: "#"},
	".xml":  {Name: "XML", BlockStart: "<!--", BlockEnd: "-->"},
	".sql":  {Name: "SQL", SinglePrefix: "--", BlockStart: "/*", BlockEnd: "*/"},
	".sh":   {Name: "Shell", SinglePrefix: "#"},
	".lua":  {Name: "Lua", SinglePrefix: "--", BlockStart: "--[[", BlockEnd: "]]"},
}

// LookupLanguage returns the definition for a lower-case extension.
func LookupLanguage(extension string) (LanguageDefinition, bool) {
	definition, known := languagesByExtension[extension]
	return definition, known
}

// KnownExtensions returns every extension the counter understands, without dots.
func KnownExtensions() []string {
	extensions := make([]string, 0, len(languagesByExtension))
	for extension := range languagesByExtension {
		extensions = append(extensions, extension[1:])
	}
	return extensions
}
