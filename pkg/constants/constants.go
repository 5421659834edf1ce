package constants

// CLIName is the binary name used in user-facing output.
const CLIName = "jsonls"

// ServerName identifies the language server to LSP clients.
const ServerName = "jsonls"

// SchemaFileSuffix is the filename suffix schema files must carry to be
// picked up from a schema directory.
const SchemaFileSuffix = ".schema.json"

// DefaultSchemaName is the schema used for documents that declare no
// schema reference of their own.
const DefaultSchemaName = "service"

// ConfigFileName is the optional per-directory mapping file binding
// file patterns to schema names.
const ConfigFileName = "jsonls.yml"
