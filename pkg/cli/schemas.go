package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsonls/jsonls/pkg/console"
	"github.com/jsonls/jsonls/pkg/constants"
	"github.com/jsonls/jsonls/pkg/schemas"
)

// ListSchemas prints every schema the store can serve and where each
// one comes from.
func ListSchemas(schemaDir, cfgPath string) error {
	cfg, err := schemas.LoadConfig(configPath(CheckOptions{ConfigPath: cfgPath}))
	if err != nil {
		return err
	}
	if schemaDir != "" {
		cfg.SchemaDir = schemaDir
	}
	store := schemas.NewStore(cfg.SchemaDir)

	names := store.Names()
	if len(names) == 0 {
		fmt.Println(console.FormatInfoMessage("no schemas available"))
		return nil
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, schemaSource(cfg.SchemaDir, name)})
	}

	fmt.Print(console.RenderTable(console.TableConfig{
		Title:   "Available Schemas",
		Headers: []string{"Name", "Source"},
		Rows:    rows,
	}))
	return nil
}

// schemaSource reports where a schema is loaded from. The embedded
// default wins over a directory file of the same name, matching the
// store's lookup order.
func schemaSource(dir, name string) string {
	if name == constants.DefaultSchemaName {
		return "embedded"
	}
	if dir != "" {
		path := filepath.Join(dir, name+constants.SchemaFileSuffix)
		if _, err := os.Stat(path); err == nil {
			return console.ToRelativePath(path)
		}
	}
	return "registered"
}
