// levelschema 生成关卡和物理配置文件的 JSON Schema
//
// 编辑器（例如 VS Code 的 YAML 插件）可以用它校验 data/ 下的文件：
//
//	levelschema -out schema/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/decker502/tumble/pkg/config"
)

const (
	levelSchemaFile   = "level.schema.json"
	physicsSchemaFile = "physics.schema.json"
)

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "", "directory to write the JSON schemas")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	for name, schema := range buildSchemas() {
		if err := writeSchema(filepath.Join(outDir, name), schema); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
			os.Exit(1)
		}
	}
}

// buildSchemas 按输出文件名返回所有 schema
func buildSchemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}

	level := reflector.Reflect(new(config.LevelConfig))
	level.Title = "Tumble Level"
	level.Description = "Validates level files in data/levels/*.yaml"

	physics := reflector.Reflect(new(config.PhysicsConfig))
	physics.Title = "Tumble Physics"
	physics.Description = "Validates data/physics.yaml and user overrides in $XDG_CONFIG_HOME/tumble/physics.yaml"

	return map[string]*jsonschema.Schema{
		levelSchemaFile:   level,
		physicsSchemaFile: physics,
	}
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
