package filematch

import (
	"path/filepath"
	"strings"
)

// extensionTypes maps file extensions to inferred types.
var extensionTypes = map[string][]string{
	".py":    {"python", "text"},
	".pyi":   {"pyi", "python", "text"},
	".go":    {"go", "text"},
	".js":    {"javascript", "text"},
	".jsx":   {"jsx", "javascript", "text"},
	".ts":    {"ts", "text"},
	".tsx":   {"tsx", "ts", "text"},
	".rb":    {"ruby", "text"},
	".rs":    {"rust", "text"},
	".c":     {"c", "text"},
	".h":     {"c", "header", "text"},
	".cpp":   {"c++", "text"},
	".hpp":   {"c++", "header", "text"},
	".java":  {"java", "text"},
	".sh":    {"shell", "text"},
	".bash":  {"shell", "bash", "text"},
	".zsh":   {"shell", "zsh", "text"},
	".yaml":  {"yaml", "text"},
	".yml":   {"yaml", "text"},
	".json":  {"json", "text"},
	".toml":  {"toml", "text"},
	".xml":   {"xml", "text"},
	".html":  {"html", "text"},
	".css":   {"css", "text"},
	".md":    {"markdown", "text"},
	".rst":   {"rst", "text"},
	".txt":   {"plain-text", "text"},
	".sql":   {"sql", "text"},
	".proto": {"proto", "text"},
	".tf":    {"terraform", "text"},
	".ini":   {"ini", "text"},
	".cfg":   {"ini", "text"},
	".png":   {"png", "image", "binary"},
	".jpg":   {"jpeg", "image", "binary"},
	".jpeg":  {"jpeg", "image", "binary"},
	".gif":   {"gif", "image", "binary"},
	".pdf":   {"pdf", "binary"},
	".zip":   {"zip", "binary"},
	".gz":    {"gzip", "binary"},
	".so":    {"binary"},
	".exe":   {"binary"},
}

// nameTypes maps well-known file names to inferred types.
var nameTypes = map[string][]string{
	"Dockerfile": {"dockerfile", "text"},
	"Makefile":   {"makefile", "text"},
	"go.mod":     {"go-mod", "text"},
	"go.sum":     {"go-sum", "text"},
}

// Classify infers the types of a file from its name. Every file gets the
// "file" type; files without a recognized extension are assumed to be text.
func Classify(path string) FileRecord {
	types := map[string]struct{}{"file": {}}

	base := filepath.Base(path)
	if inferred, ok := nameTypes[base]; ok {
		for _, t := range inferred {
			types[t] = struct{}{}
		}
	}
	if inferred, ok := extensionTypes[strings.ToLower(filepath.Ext(base))]; ok {
		for _, t := range inferred {
			types[t] = struct{}{}
		}
	}
	if len(types) == 1 {
		types["text"] = struct{}{}
	}

	return FileRecord{Path: path, Types: types}
}

// ClassifyAll classifies a set of paths into file records.
func ClassifyAll(paths []string) []FileRecord {
	records := make([]FileRecord, 0, len(paths))
	for _, path := range paths {
		records = append(records, Classify(path))
	}
	return records
}
