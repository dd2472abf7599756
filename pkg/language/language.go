// Package language maps file extensions to display language names.
package language

import (
	"path/filepath"
	"strings"
)

var languagesByExtension = map[string]string{
	"js":         "JavaScript",
	"jsx":        "JSX",
	"ts":         "TypeScript",
	"tsx":        "TSX",
	"html":       "HTML",
	"htm":        "HTML",
	"css":        "CSS",
	"scss":       "SCSS",
	"sass":       "SCSS",
	"less":       "LESS",
	"vue":        "Vue.js",
	"svelte":     "Svelte",
	"astro":      "Astro",
	"rs":         "Rust",
	"c":          "C",
	"cpp":        "C++",
	"cc":         "C++",
	"cxx":        "C++",
	"c++":        "C++",
	"h":          "C++",
	"hpp":        "C++",
	"hxx":        "C++",
	"go":         "Go",
	"zig":        "Zig",
	"v":          "V",
	"java":       "Java",
	"kt":         "Kotlin",
	"kts":        "Kotlin",
	"scala":      "Scala",
	"sc":         "Scala",
	"groovy":     "Groovy",
	"gvy":        "Groovy",
	"clj":        "Clojure",
	"cljs":       "Clojure",
	"cljc":       "Clojure",
	"cs":         "CSharp",
	"fs":         "FSharp",
	"fsx":        "FSharp",
	"vb":         "Visual Basic",
	"py":         "Python",
	"pyw":        "Python",
	"pyi":        "Python",
	"rb":         "Ruby",
	"rbw":        "Ruby",
	"php":        "PHP",
	"pl":         "Perl",
	"pm":         "Perl",
	"lua":        "Lua",
	"sh":         "Shell Script",
	"bash":       "Shell Script",
	"zsh":        "Shell Script",
	"fish":       "Fish",
	"ps1":        "PowerShell",
	"psm1":       "PowerShell",
	"psd1":       "PowerShell",
	"r":          "R",
	"hs":         "Haskell",
	"lhs":        "Haskell",
	"ml":         "OCaml",
	"mli":        "OCaml",
	"elm":        "Elm",
	"ex":         "Elixir",
	"exs":        "Elixir",
	"erl":        "Erlang",
	"hrl":        "Erlang",
	"purs":       "PureScript",
	"roc":        "Roc",
	"gleam":      "Gleam",
	"json":       "JSON",
	"jsonc":      "JSONC",
	"yaml":       "YAML",
	"yml":        "YAML",
	"toml":       "TOML",
	"xml":        "XML",
	"csv":        "CSV",
	"ini":        "ini",
	"cfg":        "ini",
	"env":        "env",
	"md":         "Markdown",
	"markdown":   "Markdown",
	"rst":        "reST",
	"tex":        "LaTeX",
	"adoc":       "AsciiDoc",
	"asciidoc":   "AsciiDoc",
	"org":        "Org",
	"sql":        "SQL",
	"graphql":    "GraphQL",
	"gql":        "GraphQL",
	"cypher":     "Cypher",
	"cyp":        "Cypher",
	"swift":      "Swift",
	"m":          "Objective-C",
	"dart":       "Dart",
	"tf":         "Terraform",
	"tfvars":     "Terraform",
	"hcl":        "HCL",
	"dockerfile": "Dockerfile",
	"pp":         "Puppet",
	"proto":      "Proto",
	"wasm":       "WebAssembly Text Format",
	"wat":        "WebAssembly Text Format",
	"wgsl":       "Wgsl",
	"glsl":       "GLSL",
	"vert":       "GLSL",
	"frag":       "GLSL",
	"hlsl":       "HLSL",
	"sol":        "Solidity",
	"cairo":      "Cairo",
	"move":       "Move",
	"noir":       "Noir",
	"fe":         "Fe",
	"aiken":      "Aiken",
	"el":         "Elisp",
	"lisp":       "Lisp",
	"lsp":        "Lisp",
	"scm":        "Scheme",
	"ss":         "Scheme",
	"rkt":        "Racket",
	"jl":         "Julia",
	"d":          "D",
	"nim":        "Nim",
	"cr":         "Crystal",
	"pony":       "Pony",
	"ada":        "Ada",
	"adb":        "Ada",
	"ads":        "Ada",
	"pas":        "Pascal",
	"f90":        "Fortran",
	"f95":        "Fortran",
	"f03":        "Fortran",
	"f":          "Fortran",
	"for":        "Fortran",
	"cob":        "COBOL",
	"cbl":        "COBOL",
	"asm":        "Assembly",
	"s":          "Assembly",
	"bf":         "Brainfuck",
	"pkl":        "Pkl",
	"prisma":     "Prisma",
	"gd":         "GDScript",
	"gdshader":   "Godot Shader",
	"wren":       "Wren",
	"awk":        "AWK",
	"sed":        "sed",
	"jq":         "jq",
	"just":       "Just",
	"make":       "Make",
	"cmake":      "CMake",
	"ninja":      "Ninja",
	"bazel":      "Starlark",
	"bzl":        "Starlark",
	"nix":        "Nix",
	"dhall":      "Dhall",
	"jsonnet":    "Jsonnet",
	"cue":        "CUE",
	"kdl":        "Kdl",
	"ron":        "RON",
}

// Detect returns the display name of the language for the given file path,
// or an empty string when the extension is unknown.
func Detect(filePath string) string {
	if filePath == "" {
		return ""
	}

	name := filepath.Base(filePath)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	if ext == "" {
		return ""
	}

	// docker-compose.yml is reported as its own language
	if (ext == "yml" || ext == "yaml") && strings.HasPrefix(name, "docker-compose") {
		return "Docker Compose"
	}

	return languagesByExtension[ext]
}

// FileName returns the base name of the given path, or an empty string.
func FileName(filePath string) string {
	if filePath == "" {
		return ""
	}
	return filepath.Base(filePath)
}
