package config

const SourceFileExt = ".js"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".js", ".mjs", ".es6"}

// DefaultSeparator joins a module id and a binding name in flattened
// output, e.g. a$$x.
const DefaultSeparator = "$$"

// DefaultCacheFile is the parse-metadata cache location, relative to
// the working directory.
const DefaultCacheFile = ".modfuse-cache.db"

// ConfigFileName is the project configuration file looked up in the
// working directory when no explicit -config flag is given.
const ConfigFileName = "modfuse.yaml"
