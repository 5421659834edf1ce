package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsonls/jsonls/pkg/cli"
	"github.com/jsonls/jsonls/pkg/console"
	"github.com/jsonls/jsonls/pkg/constants"
	"github.com/jsonls/jsonls/pkg/server"
)

// Build-time variables set by GoReleaser
var (
	version = "dev"
)

// Global flags
var (
	verbose    bool
	schemaDir  string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   constants.CLIName,
	Short: "JSON document validation with editor-grade diagnostics",
	Long: `jsonls validates JSON documents against JSON Schemas and reports
findings as ranged diagnostics: every finding points at the line and
column of the offending value, not just at the document.

It runs as a language server over stdio for editors, as a batch checker
for CI, and as an MCP server for agents. Documents pick their schema
with a "#$schema <name>" first line or a top-level "$schema" member;
filename patterns in jsonls.yml cover the rest.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the language server on stdin/stdout",
	Run: func(cmd *cobra.Command, args []string) {
		server.Version = version
		if err := cli.RunServer(cli.ServeOptions{SchemaDir: schemaDir, ConfigPath: configPath}); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate JSON files and print diagnostics",
	Long: `Validate JSON files and print diagnostics in an IDE-parseable
file:line:column format. Exits non-zero when any file fails.

Examples:
  ` + constants.CLIName + ` check app.json
  ` + constants.CLIName + ` check --schema deploy conf/*.json
  ` + constants.CLIName + ` check --watch app.json`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		schemaName, _ := cmd.Flags().GetString("schema")
		watch, _ := cmd.Flags().GetBool("watch")
		if err := cli.CheckFiles(args, cli.CheckOptions{
			SchemaDir:  schemaDir,
			SchemaName: schemaName,
			ConfigPath: configPath,
			Watch:      watch,
			Verbose:    verbose,
		}); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List available schemas and their sources",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ListSchemas(schemaDir, configPath); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server exposing validation tools on stdin/stdout",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.RunMCPServer(version, schemaDir, configPath); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", constants.CLIName, version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&schemaDir, "schema-dir", "", "Directory of <name>.schema.json files")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration file (default "+constants.ConfigFileName+")")

	checkCmd.Flags().String("schema", "", "Validate every file against this schema, ignoring declarations")
	checkCmd.Flags().Bool("watch", false, "Re-validate files when they change")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(schemasCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
